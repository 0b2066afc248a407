package ui

import (
	"github.com/nightorbs/flixctl/internal/models"
)

// catalogFetchedMsg carries the movie list loaded at startup; favorite
// membership lives in the engine by the time this arrives.
type catalogFetchedMsg struct {
	movies []models.Movie
	err    error
}

// favoriteToggledMsg carries the outcome of a favorite toggle for a single movie.
type favoriteToggledMsg struct {
	title string
	added bool
	err   error
}
