// package services defines interface Catalog for the remote movie catalog API
package services

import (
	"context"

	"github.com/nightorbs/flixctl/internal/models"
)

// Catalog defines the operations the movie catalog service exposes. Each
// method issues exactly one HTTP request and returns the parsed response.
// Methods never touch session or favorites state; callers own both.
type Catalog interface {
	// Register creates a new account (POST /users). No authentication.
	Register(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)

	// Login exchanges credentials for a bearer token (POST /login). No authentication.
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)

	// AllMovies retrieves the full movie list (GET /movies).
	AllMovies(ctx context.Context) ([]models.Movie, error)

	// Movie retrieves a single movie by title (GET /movies/{title}).
	Movie(ctx context.Context, title string) (*models.Movie, error)

	// AllGenres retrieves all genres (GET /genres).
	AllGenres(ctx context.Context) ([]models.Genre, error)

	// Genre retrieves a single genre by name (GET /genres/{name}).
	Genre(ctx context.Context, name string) (*models.Genre, error)

	// AllDirectors retrieves all directors (GET /directors).
	AllDirectors(ctx context.Context) ([]models.Director, error)

	// Director retrieves a single director by name (GET /directors/{name}).
	Director(ctx context.Context, name string) (*models.Director, error)

	// User retrieves the current user's profile (GET /users/{username}).
	// The username comes from the injected session store.
	User(ctx context.Context) (*models.UserProfile, error)

	// UpdateUser resubmits the full profile (PUT /users/{username}).
	UpdateUser(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)

	// DeleteUser removes the account (DELETE /users/{username}) and returns
	// the service's confirmation text.
	DeleteUser(ctx context.Context) (string, error)

	// Favorites retrieves the user's favorite movie ids (GET /users/{username}/favorites).
	Favorites(ctx context.Context) (models.FavoriteSet, error)

	// AddFavorite adds a movie id to the favorites list
	// (POST /users/{username}/favorites/{id}) and returns the updated list.
	AddFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error)

	// RemoveFavorite removes a movie id from the favorites list
	// (DELETE /users/{username}/favorites/{id}) and returns the updated list.
	RemoveFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error)
}
