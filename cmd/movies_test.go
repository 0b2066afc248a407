package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/session"
	tu "github.com/nightorbs/flixctl/internal/testing"
)

func exportCatalog() *tu.MockCatalog {
	return &tu.MockCatalog{
		AllMoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
			return []models.Movie{
				{ID: "m1", Title: "Alien", Director: models.Director{Name: "Ridley Scott"}, Genre: models.Genre{Name: "Horror"}},
				{ID: "m2", Title: "The Thing", Director: models.Director{Name: "John Carpenter"}, Genre: models.Genre{Name: "Horror"}},
			}, nil
		},
		FavoritesFunc: func(ctx context.Context) (models.FavoriteSet, error) {
			return models.FavoriteSet{"m1"}, nil
		},
	}
}

func TestMoviesExport(t *testing.T) {
	t.Run("Markdown Export Marks Server-Side Favorites", func(t *testing.T) {
		output := &bytes.Buffer{}
		sessions := session.NewMemStore()
		sessions.Save(models.Session{Token: "tok-1", Username: "moviefan"})

		runner := NewRunner(RunnerOpts{Catalog: exportCatalog(), Sessions: sessions, Output: output})

		path := filepath.Join(t.TempDir(), "movies.md")
		if err := runCommand(t, runner, "movies", "list", "--export", path); err != nil {
			t.Fatalf("export command failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}

		out := string(data)
		if !strings.Contains(out, "**Alien** ★") {
			t.Errorf("expected favorite marker on Alien, got: %s", out)
		}
		if strings.Contains(out, "**The Thing** ★") {
			t.Errorf("did not expect marker on The Thing, got: %s", out)
		}
		if !strings.Contains(output.String(), "Exported 2 movies") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
	})

	t.Run("Logged-Out Export Succeeds Without Markers", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Catalog:  exportCatalog(),
			Sessions: session.NewMemStore(),
			Output:   &bytes.Buffer{},
		})

		path := filepath.Join(t.TempDir(), "movies.md")
		if err := runCommand(t, runner, "movies", "list", "--export", path); err != nil {
			t.Fatalf("export command failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if strings.Contains(string(data), "★") {
			t.Errorf("expected no favorite markers when logged out, got: %s", string(data))
		}
	})
}
