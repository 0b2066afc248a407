package tasks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/services"
	"github.com/nightorbs/flixctl/internal/session"
	"github.com/nightorbs/flixctl/internal/shared"
)

// AccountFlow drives session state transitions. It is the only component
// that writes the session store; the catalog client only reads it.
type AccountFlow struct {
	catalog  services.Catalog
	sessions session.Store
}

// NewAccountFlow creates an AccountFlow with the given dependencies.
func NewAccountFlow(catalog services.Catalog, sessions session.Store) *AccountFlow {
	return &AccountFlow{catalog: catalog, sessions: sessions}
}

// Login exchanges credentials for a token and persists the session pair.
func (a *AccountFlow) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	resp, err := a.catalog.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s := models.Session{Token: resp.Token, Username: resp.User.Username}
	if s.Username == "" {
		// some deployments omit the user record on login; the submitted
		// username is the identity either way
		s.Username = username
	}

	if err := a.sessions.Save(s); err != nil {
		return nil, fmt.Errorf("login succeeded but session could not be persisted: %w", err)
	}

	return &resp.User, nil
}

// Register creates an account and immediately logs in with the same
// credentials. The created profile is returned even when the follow-up login
// fails; the account exists remotely regardless.
func (a *AccountFlow) Register(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	created, err := a.catalog.Register(ctx, profile)
	if err != nil {
		return nil, err
	}

	if _, err := a.Login(ctx, profile.Username, profile.Password); err != nil {
		return created, fmt.Errorf("account created but login failed: %w", err)
	}

	return created, nil
}

// Logout clears all persisted session state in one operation.
func (a *AccountFlow) Logout() error {
	return a.sessions.Clear()
}

// DeleteAccount issues the remote deletion and clears local session state
// regardless of the outcome. The remote error, if any, is returned alongside
// the cleared state so callers can report it.
func (a *AccountFlow) DeleteAccount(ctx context.Context) (string, error) {
	confirmation, remoteErr := a.catalog.DeleteUser(ctx)

	if err := a.sessions.Clear(); err != nil {
		return confirmation, errors.Join(remoteErr, err)
	}

	return confirmation, remoteErr
}

// Authenticated reports whether a complete session is currently persisted.
func (a *AccountFlow) Authenticated() bool {
	return a.sessions.Authenticated()
}

// FavoritesEngine mirrors the server's favorite list for membership checks.
// The server stays the source of truth: every mutation is followed by a
// wholesale refetch, never a local delta.
type FavoritesEngine struct {
	catalog  services.Catalog
	sessions session.Store

	mu        sync.Mutex
	favorites models.FavoriteSet
}

// NewFavoritesEngine creates a FavoritesEngine with an empty mirrored set.
func NewFavoritesEngine(catalog services.Catalog, sessions session.Store) *FavoritesEngine {
	return &FavoritesEngine{catalog: catalog, sessions: sessions}
}

// Refresh replaces the mirrored set with the server's current list. A result
// arriving after logout is discarded rather than written into cleared state.
func (e *FavoritesEngine) Refresh(ctx context.Context) error {
	favorites, err := e.catalog.Favorites(ctx)
	if err != nil {
		return err
	}

	if !e.sessions.Authenticated() {
		return shared.ErrNotAuthenticated
	}

	e.mu.Lock()
	e.favorites = favorites
	e.mu.Unlock()
	return nil
}

// Contains reports membership by exact identifier match on the mirrored set.
func (e *FavoritesEngine) Contains(movieID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.favorites.Contains(movieID)
}

// Set returns a copy of the mirrored favorite set.
func (e *FavoritesEngine) Set() models.FavoriteSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.favorites)
}

// Toggle adds the movie when absent and removes it when present, then
// refetches the whole list. Returns whether the movie was added. A failed
// mutation leaves the mirrored set unchanged and is surfaced to the caller;
// nothing retries.
func (e *FavoritesEngine) Toggle(ctx context.Context, movieID string) (bool, error) {
	if movieID == "" {
		return false, fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	var err error
	added := !e.Contains(movieID)
	if added {
		_, err = e.catalog.AddFavorite(ctx, movieID)
	} else {
		_, err = e.catalog.RemoveFavorite(ctx, movieID)
	}
	if err != nil {
		return false, err
	}

	// mutation before refetch, strictly sequential
	if err := e.Refresh(ctx); err != nil {
		return added, fmt.Errorf("favorite %s but refresh failed: %w", toggleVerb(added), err)
	}

	return added, nil
}

func toggleVerb(added bool) string {
	if added {
		return "added"
	}
	return "removed"
}
