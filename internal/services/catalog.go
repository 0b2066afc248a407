// myFlix REST API implementation of [Catalog]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/session"
	"github.com/nightorbs/flixctl/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nightorbs-myflix.herokuapp.com"

// CatalogService implements [Catalog] against the myFlix REST service.
// The session store is read fresh on every authenticated call.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	limiter    *rate.Limiter
}

var _ Catalog = (*CatalogService)(nil)

// CatalogOpts contains configuration options for creating a CatalogService.
type CatalogOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	Sessions          session.Store
	RequestsPerSecond int
}

// NewCatalogService creates a new catalog client. Sessions is required; the
// other options fall back to defaults.
func NewCatalogService(opts CatalogOpts) (*CatalogService, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("%w: session store is required", shared.ErrMissingArgument)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.RequestsPerSecond)
	}

	return &CatalogService{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		sessions:   opts.Sessions,
		limiter:    limiter,
	}, nil
}

// username returns the session's username, failing when the pair is incomplete.
func (c *CatalogService) username() (string, error) {
	s, err := c.sessions.Current()
	if err != nil {
		return "", err
	}
	if !s.Valid() {
		return "", shared.ErrNotAuthenticated
	}
	return s.Username, nil
}

// do performs one HTTP request and returns the raw response body.
//
// When authed is set, the bearer token is read from the session store at call
// time; an incomplete session fails before any network I/O.
func (c *CatalogService) do(ctx context.Context, method, path string, authed bool, payload any) ([]byte, error) {
	var token string
	if authed {
		s, err := c.sessions.Current()
		if err != nil {
			return nil, err
		}
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %s %s requires a session", shared.ErrNotAuthenticated, method, path)
		}
		token = s.Token
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrRequestRejected, resp.StatusCode, string(data))
	}

	return data, nil
}

// doJSON performs a request and decodes the body into result.
func (c *CatalogService) doJSON(ctx context.Context, method, path string, authed bool, payload, result any) error {
	data, err := c.do(ctx, method, path, authed, payload)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrParse, err)
		}
	}

	return nil
}

func (c *CatalogService) Register(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if profile.Password == "" {
		return nil, fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}

	var created models.UserProfile
	if err := c.doJSON(ctx, http.MethodPost, "/users", false, profile, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *CatalogService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	payload := map[string]string{"Username": username, "Password": password}

	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", false, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response missing token", shared.ErrParse)
	}
	return &resp, nil
}

func (c *CatalogService) AllMovies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.doJSON(ctx, http.MethodGet, "/movies", true, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *CatalogService) Movie(ctx context.Context, title string) (*models.Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	var movie models.Movie
	if err := c.doJSON(ctx, http.MethodGet, "/movies/"+url.PathEscape(title), true, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *CatalogService) AllGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := c.doJSON(ctx, http.MethodGet, "/genres", true, nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *CatalogService) Genre(ctx context.Context, name string) (*models.Genre, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: genre name is required", shared.ErrMissingArgument)
	}

	var genre models.Genre
	if err := c.doJSON(ctx, http.MethodGet, "/genres/"+url.PathEscape(name), true, nil, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (c *CatalogService) AllDirectors(ctx context.Context) ([]models.Director, error) {
	var directors []models.Director
	if err := c.doJSON(ctx, http.MethodGet, "/directors", true, nil, &directors); err != nil {
		return nil, err
	}
	return directors, nil
}

func (c *CatalogService) Director(ctx context.Context, name string) (*models.Director, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: director name is required", shared.ErrMissingArgument)
	}

	var director models.Director
	if err := c.doJSON(ctx, http.MethodGet, "/directors/"+url.PathEscape(name), true, nil, &director); err != nil {
		return nil, err
	}
	return &director, nil
}

func (c *CatalogService) User(ctx context.Context) (*models.UserProfile, error) {
	username, err := c.username()
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(username), true, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *CatalogService) UpdateUser(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	username, err := c.username()
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var updated models.UserProfile
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(username), true, profile, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *CatalogService) DeleteUser(ctx context.Context) (string, error) {
	username, err := c.username()
	if err != nil {
		return "", err
	}

	data, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(username), true, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *CatalogService) Favorites(ctx context.Context) (models.FavoriteSet, error) {
	username, err := c.username()
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/favorites", true, nil)
	if err != nil {
		return nil, err
	}
	return decodeFavorites(data)
}

func (c *CatalogService) AddFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error) {
	return c.mutateFavorite(ctx, http.MethodPost, movieID)
}

func (c *CatalogService) RemoveFavorite(ctx context.Context, movieID string) (models.FavoriteSet, error) {
	return c.mutateFavorite(ctx, http.MethodDelete, movieID)
}

func (c *CatalogService) mutateFavorite(ctx context.Context, method, movieID string) (models.FavoriteSet, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	username, err := c.username()
	if err != nil {
		return nil, err
	}

	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(movieID)
	data, err := c.do(ctx, method, path, true, nil)
	if err != nil {
		return nil, err
	}
	return decodeFavorites(data)
}

// decodeFavorites normalizes the two favorites payload shapes the service
// produces (a bare id array, or a user object with FavoriteMovies) into one.
func decodeFavorites(data []byte) (models.FavoriteSet, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		return models.FavoriteSet(ids), nil
	}

	var wrapped struct {
		FavoriteMovies []string `json:"FavoriteMovies"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: favorites payload: %v", shared.ErrParse, err)
	}
	return models.FavoriteSet(wrapped.FavoriteMovies), nil
}
