package models

import (
	"fmt"
	"slices"
)

// Director describes the director of a [Movie].
type Director struct {
	Name      string `json:"Name"`
	Bio       string `json:"Bio"`
	BirthYear string `json:"BirthYear"`
}

// Genre describes the genre a [Movie] belongs to.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Movie represents a single catalog entry. Movies are read-only from the
// client's perspective; the structs are populated from API responses and
// never written back.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Director    Director `json:"Director"`
	Genre       Genre    `json:"Genre"`
	ImagePath   string   `json:"ImagePath"`
	Featured    bool     `json:"Featured"`
}

// UserProfile represents an account as the service exposes it. Updates
// resubmit the full profile; there are no partial-patch semantics.
type UserProfile struct {
	Username string `json:"Username"`
	Password string `json:"Password,omitempty"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday,omitempty"`
}

// Validate checks that the profile carries the fields the registration and
// update endpoints require.
func (p UserProfile) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("username is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// Session is the persisted identity pair. Token and username are valid only
// together; a session missing either reads as logged out.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Valid reports whether the session carries both credentials.
func (s Session) Valid() bool {
	return s.Token != "" && s.Username != ""
}

// FavoriteSet is the ordered sequence of movie identifiers associated with
// the current user, refreshed wholesale from the server after every mutation.
type FavoriteSet []string

// Contains reports membership by exact identifier match.
func (f FavoriteSet) Contains(movieID string) bool {
	return slices.Contains(f, movieID)
}
