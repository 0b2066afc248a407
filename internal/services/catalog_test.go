package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/session"
	"github.com/nightorbs/flixctl/internal/shared"
	tu "github.com/nightorbs/flixctl/internal/testing"
)

// authedStore returns a MemStore already holding a complete session.
func authedStore(t *testing.T) *session.MemStore {
	t.Helper()
	store := session.NewMemStore()
	if err := store.Save(models.Session{Token: "tok-1", Username: "alice"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return store
}

func newService(t *testing.T, baseURL string, store session.Store) *CatalogService {
	t.Helper()
	svc, err := NewCatalogService(CatalogOpts{BaseURL: baseURL, Sessions: store})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestNewCatalogService(t *testing.T) {
	t.Run("Requires Session Store", func(t *testing.T) {
		_, err := NewCatalogService(CatalogOpts{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		svc, err := NewCatalogService(CatalogOpts{Sessions: session.NewMemStore()})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if svc.baseURL != defaultBaseURL {
			t.Errorf("expected default base URL, got %s", svc.baseURL)
		}
		if svc.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient to be used")
		}
		if svc.limiter != nil {
			t.Error("expected no limiter by default")
		}
	})
}

func TestCatalogAuthentication(t *testing.T) {
	t.Run("Empty Session Fails Before Network", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer server.Close()

		svc := newService(t, server.URL, session.NewMemStore())

		_, err := svc.AllMovies(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
		if hits != 0 {
			t.Errorf("expected zero network calls, got %d", hits)
		}
	})

	t.Run("Partial Session Reads As Logged Out", func(t *testing.T) {
		// stores refuse partial pairs on Save, so write the file directly
		path := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(path, []byte(`{"token":"tok-1"}`), 0600); err != nil {
			t.Fatalf("failed to write partial session: %v", err)
		}

		svc := newService(t, "http://unused.invalid", session.NewFileStore(path))

		_, err := svc.User(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Token Read Fresh On Every Call", func(t *testing.T) {
		var seen []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]models.Movie{})
		}))
		defer server.Close()

		store := session.NewMemStore()
		svc := newService(t, server.URL, store)

		// session saved after the service was constructed
		store.Save(models.Session{Token: "tok-1", Username: "alice"})
		if _, err := svc.AllMovies(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// token rotated without rebuilding the service
		store.Save(models.Session{Token: "tok-2", Username: "alice"})
		if _, err := svc.AllMovies(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(seen) != 2 || seen[0] != "Bearer tok-1" || seen[1] != "Bearer tok-2" {
			t.Errorf("expected fresh token per call, saw %v", seen)
		}
	})
}

func TestCatalogLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/login" {
				t.Errorf("expected POST /login, got %s %s", r.Method, r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "" {
				t.Errorf("login must not carry a bearer token, got %q", auth)
			}

			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["Username"] != "alice" || creds["Password"] != "secret" {
				t.Errorf("unexpected credentials payload: %v", creds)
			}

			json.NewEncoder(w).Encode(models.LoginResponse{
				Token: "tok-1",
				User:  models.UserProfile{Username: "alice", Email: "alice@example.com"},
			})
		}))
		defer server.Close()

		svc := newService(t, server.URL, session.NewMemStore())

		resp, err := svc.Login(context.Background(), "alice", "secret")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Token != "tok-1" || resp.User.Username != "alice" {
			t.Errorf("unexpected login response: %+v", resp)
		}
	})

	t.Run("Wrong Password Collapses To Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		}))
		defer server.Close()

		svc := newService(t, server.URL, session.NewMemStore())

		_, err := svc.Login(context.Background(), "alice", "wrong")
		if !errors.Is(err, shared.ErrRequestRejected) {
			t.Fatalf("expected ErrRequestRejected, got %v", err)
		}
		if !strings.Contains(err.Error(), "401") {
			t.Errorf("expected status preserved in error, got %v", err)
		}
	})

	t.Run("Missing Token In Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"Username": "alice"}})
		}))
		defer server.Close()

		svc := newService(t, server.URL, session.NewMemStore())

		_, err := svc.Login(context.Background(), "alice", "secret")
		if !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("Empty Credentials Rejected Locally", func(t *testing.T) {
		svc := newService(t, "http://unused.invalid", session.NewMemStore())

		if _, err := svc.Login(context.Background(), "", "secret"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCatalogRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users" {
				t.Errorf("expected POST /users, got %s %s", r.Method, r.URL.Path)
			}

			var profile models.UserProfile
			json.NewDecoder(r.Body).Decode(&profile)
			profile.Password = ""
			json.NewEncoder(w).Encode(profile)
		}))
		defer server.Close()

		svc := newService(t, server.URL, session.NewMemStore())

		created, err := svc.Register(context.Background(), models.UserProfile{
			Username: "bob", Password: "secret", Email: "bob@example.com", Birthday: "1990-01-01",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Username != "bob" {
			t.Errorf("expected created user bob, got %s", created.Username)
		}
	})

	t.Run("Missing Password Rejected Locally", func(t *testing.T) {
		svc := newService(t, "http://unused.invalid", session.NewMemStore())

		_, err := svc.Register(context.Background(), models.UserProfile{Username: "bob", Email: "bob@example.com"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCatalogMovies(t *testing.T) {
	t.Run("AllMovies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movies" {
				t.Errorf("expected /movies, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Movie{
				{ID: "m1", Title: "Arrival"},
				{ID: "m2", Title: "Alien"},
			})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		movies, err := svc.AllMovies(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(movies) != 2 || movies[0].ID != "m1" {
			t.Errorf("unexpected movie list: %+v", movies)
		}
	})

	t.Run("Movie Title Is Path Escaped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.EscapedPath() != "/movies/The%20Thing" {
				t.Errorf("expected escaped title path, got %s", r.URL.EscapedPath())
			}
			json.NewEncoder(w).Encode(models.Movie{ID: "m3", Title: "The Thing"})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		movie, err := svc.Movie(context.Background(), "The Thing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if movie.ID != "m3" {
			t.Errorf("unexpected movie: %+v", movie)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		_, err := svc.AllMovies(context.Background())
		if !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("Server Error Collapses To Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		_, err := svc.AllMovies(context.Background())
		if !errors.Is(err, shared.ErrRequestRejected) {
			t.Fatalf("expected ErrRequestRejected, got %v", err)
		}
		if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
			t.Errorf("expected status and body preserved, got %v", err)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		svc, err := NewCatalogService(CatalogOpts{
			BaseURL:    "http://example.com",
			Sessions:   authedStore(t),
			HTTPClient: &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))},
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = svc.AllMovies(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestCatalogUser(t *testing.T) {
	t.Run("User Reads Username From Session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/alice" {
				t.Errorf("expected /users/alice, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.UserProfile{Username: "alice", Email: "alice@example.com"})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		profile, err := svc.User(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.Username != "alice" {
			t.Errorf("expected profile for alice, got %s", profile.Username)
		}
	})

	t.Run("UpdateUser Sends Full Profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/users/alice" {
				t.Errorf("expected PUT /users/alice, got %s %s", r.Method, r.URL.Path)
			}

			var profile models.UserProfile
			json.NewDecoder(r.Body).Decode(&profile)
			if profile.Username == "" || profile.Email == "" || profile.Password == "" {
				t.Errorf("expected full profile resubmission, got %+v", profile)
			}
			json.NewEncoder(w).Encode(profile)
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		updated, err := svc.UpdateUser(context.Background(), models.UserProfile{
			Username: "alice", Password: "newpass", Email: "alice@example.com", Birthday: "1988-05-05",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Username != "alice" {
			t.Errorf("unexpected updated profile: %+v", updated)
		}
	})

	t.Run("DeleteUser Returns Confirmation Text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/users/alice" {
				t.Errorf("expected DELETE /users/alice, got %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte("alice was deleted"))
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		confirmation, err := svc.DeleteUser(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if confirmation != "alice was deleted" {
			t.Errorf("unexpected confirmation: %q", confirmation)
		}
	})
}

func TestCatalogFavorites(t *testing.T) {
	t.Run("Bare Array Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/alice/favorites" {
				t.Errorf("expected favorites path, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]string{"m1", "m2"})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		favorites, err := svc.Favorites(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(favorites) != 2 || !favorites.Contains("m1") {
			t.Errorf("unexpected favorites: %v", favorites)
		}
	})

	t.Run("Wrapped User Object Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"Username":       "alice",
				"FavoriteMovies": []string{"m7"},
			})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		favorites, err := svc.Favorites(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(favorites) != 1 || favorites[0] != "m7" {
			t.Errorf("expected normalized favorites [m7], got %v", favorites)
		}
	})

	t.Run("AddFavorite", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users/alice/favorites/m1" {
				t.Errorf("expected POST favorites/m1, got %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode([]string{"m1"})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		favorites, err := svc.AddFavorite(context.Background(), "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !favorites.Contains("m1") {
			t.Errorf("expected updated set containing m1, got %v", favorites)
		}
	})

	t.Run("RemoveFavorite", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/users/alice/favorites/m1" {
				t.Errorf("expected DELETE favorites/m1, got %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode([]string{})
		}))
		defer server.Close()

		svc := newService(t, server.URL, authedStore(t))

		favorites, err := svc.RemoveFavorite(context.Background(), "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if favorites.Contains("m1") {
			t.Errorf("expected m1 removed, got %v", favorites)
		}
	})

	t.Run("Duplicate Add And Absent Remove Leave Session Intact", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				// id already a member, server answers with the unchanged set
				json.NewEncoder(w).Encode([]string{"m1"})
			case http.MethodDelete:
				// id was never a member
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("movie not in favorites"))
			}
		}))
		defer server.Close()

		store := authedStore(t)
		svc := newService(t, server.URL, store)

		favorites, err := svc.AddFavorite(context.Background(), "m1")
		if err != nil {
			t.Fatalf("expected duplicate add tolerated, got %v", err)
		}
		if !favorites.Contains("m1") {
			t.Errorf("expected server-defined set with m1, got %v", favorites)
		}

		if _, err := svc.RemoveFavorite(context.Background(), "m9"); !errors.Is(err, shared.ErrRequestRejected) {
			t.Errorf("expected absent remove to surface rejection, got %v", err)
		}

		s, err := store.Current()
		if err != nil {
			t.Fatalf("failed to read session: %v", err)
		}
		if s.Token != "tok-1" || s.Username != "alice" {
			t.Errorf("expected session pair untouched, got %+v", s)
		}
	})

	t.Run("Empty Movie ID Rejected Locally", func(t *testing.T) {
		svc := newService(t, "http://unused.invalid", authedStore(t))

		if _, err := svc.AddFavorite(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Garbage Payload", func(t *testing.T) {
		if _, err := decodeFavorites([]byte(`"just a string"`)); !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}
