package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/nightorbs/flixctl/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.favorite {
		return fmt.Sprintf("%s ★", i.movie.Title)
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := i.movie.Director.Name
	if i.movie.Genre.Name != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Genre.Name)
	}
	return desc
}
