package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://nightorbs-myflix.herokuapp.com" {
			t.Errorf("expected default base URL, got %s", config.API.BaseURL)
		}

		if config.API.Timeout != 30 {
			t.Errorf("expected timeout 30, got %d", config.API.Timeout)
		}

		if config.Database.Path != "flixctl.db" {
			t.Errorf("expected database path flixctl.db, got %s", config.Database.Path)
		}

		if config.API.RequestsPerSecond != 5 {
			t.Errorf("expected 5 requests per second, got %d", config.API.RequestsPerSecond)
		}
	})

	t.Run("SessionPath", func(t *testing.T) {
		config := DefaultConfig()

		t.Run("Explicit Path", func(t *testing.T) {
			config.Session.Path = "/tmp/session.json"
			if got := config.SessionPath(); got != "/tmp/session.json" {
				t.Errorf("expected explicit session path, got %s", got)
			}
		})

		t.Run("Default Under Home", func(t *testing.T) {
			config.Session.Path = ""
			got := config.SessionPath()
			if filepath.Base(got) != "session.json" {
				t.Errorf("expected session.json file, got %s", got)
			}
			if filepath.Base(filepath.Dir(got)) != ".flixctl" {
				t.Errorf("expected .flixctl directory, got %s", got)
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:8080"
timeout = 5
requests_per_second = 10

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[session]
path = "/custom/session.json"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:8080" {
			t.Errorf("expected base URL http://localhost:8080, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Session.Path != "/custom/session.json" {
			t.Errorf("expected session path /custom/session.json, got %s", config.Session.Path)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
