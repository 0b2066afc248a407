package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Given Writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("Nil Writer Defaults", func(t *testing.T) {
		if NewLogger(nil) == nil {
			t.Error("expected logger with default writer")
		}
	})
}

func TestWithLogger(t *testing.T) {
	t.Run("Child Carries Key-Value Pairs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WithLogger(NewLogger(buf), "run_id", "abc-123")

		logger.Info("tagged entry")

		out := buf.String()
		if !strings.Contains(out, "run_id") || !strings.Contains(out, "abc-123") {
			t.Errorf("expected correlation id on entry, got %q", out)
		}
	})

	t.Run("Parent Unaffected", func(t *testing.T) {
		buf := &bytes.Buffer{}
		parent := NewLogger(buf)
		WithLogger(parent, "run_id", "abc-123")

		parent.Info("plain entry")

		if strings.Contains(buf.String(), "abc-123") {
			t.Errorf("expected parent without child fields, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	t.Run("Non-Empty", func(t *testing.T) {
		if GenerateID() == "" {
			t.Error("expected non-empty id")
		}
	})

	t.Run("Unique Across Calls", func(t *testing.T) {
		seen := map[string]bool{}
		for range 50 {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate id generated: %s", id)
			}
			seen[id] = true
		}
	})
}
