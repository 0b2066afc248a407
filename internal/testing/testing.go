// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/nightorbs/flixctl/internal/models"
)

// MockCatalog is a test double for [services.Catalog]. Each operation
// delegates to the matching func field when set and returns zero values
// otherwise, so tests only stub what they exercise.
type MockCatalog struct {
	RegisterFunc       func(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
	LoginFunc          func(ctx context.Context, username, password string) (*models.LoginResponse, error)
	AllMoviesFunc      func(ctx context.Context) ([]models.Movie, error)
	MovieFunc          func(ctx context.Context, title string) (*models.Movie, error)
	AllGenresFunc      func(ctx context.Context) ([]models.Genre, error)
	GenreFunc          func(ctx context.Context, name string) (*models.Genre, error)
	AllDirectorsFunc   func(ctx context.Context) ([]models.Director, error)
	DirectorFunc       func(ctx context.Context, name string) (*models.Director, error)
	UserFunc           func(ctx context.Context) (*models.UserProfile, error)
	UpdateUserFunc     func(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
	DeleteUserFunc     func(ctx context.Context) (string, error)
	FavoritesFunc      func(ctx context.Context) (models.FavoriteSet, error)
	AddFavoriteFunc    func(ctx context.Context, movieID string) (models.FavoriteSet, error)
	RemoveFavoriteFunc func(ctx context.Context, movieID string) (models.FavoriteSet, error)
}

func (m *MockCatalog) Register(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, profile)
	}
	return &profile, nil
}

func (m *MockCatalog) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &models.LoginResponse{Token: "mock-token", User: models.UserProfile{Username: username}}, nil
}

func (m *MockCatalog) AllMovies(ctx context.Context) ([]models.Movie, error) {
	if m.AllMoviesFunc != nil {
		return m.AllMoviesFunc(ctx)
	}
	return []models.Movie{}, nil
}

func (m *MockCatalog) Movie(ctx context.Context, title string) (*models.Movie, error) {
	if m.MovieFunc != nil {
		return m.MovieFunc(ctx, title)
	}
	return &models.Movie{Title: title}, nil
}

func (m *MockCatalog) AllGenres(ctx context.Context) ([]models.Genre, error) {
	if m.AllGenresFunc != nil {
		return m.AllGenresFunc(ctx)
	}
	return []models.Genre{}, nil
}

func (m *MockCatalog) Genre(ctx context.Context, name string) (*models.Genre, error) {
	if m.GenreFunc != nil {
		return m.GenreFunc(ctx, name)
	}
	return &models.Genre{Name: name}, nil
}

func (m *MockCatalog) AllDirectors(ctx context.Context) ([]models.Director, error) {
	if m.AllDirectorsFunc != nil {
		return m.AllDirectorsFunc(ctx)
	}
	return []models.Director{}, nil
}

func (m *MockCatalog) Director(ctx context.Context, name string) (*models.Director, error) {
	if m.DirectorFunc != nil {
		return m.DirectorFunc(ctx, name)
	}
	return &models.Director{Name: name}, nil
}

func (m *MockCatalog) User(ctx context.Context) (*models.UserProfile, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx)
	}
	return &models.UserProfile{}, nil
}

func (m *MockCatalog) UpdateUser(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, profile)
	}
	return &profile, nil
}

func (m *MockCatalog) DeleteUser(ctx context.Context) (string, error) {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx)
	}
	return "deleted", nil
}

func (m *MockCatalog) Favorites(ctx context.Context) (models.FavoriteSet, error) {
	if m.FavoritesFunc != nil {
		return m.FavoritesFunc(ctx)
	}
	return models.FavoriteSet{}, nil
}

func (m *MockCatalog) AddFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error) {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, movieID)
	}
	return models.FavoriteSet{movieID}, nil
}

func (m *MockCatalog) RemoveFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error) {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, movieID)
	}
	return models.FavoriteSet{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
