// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the movie catalog:
//  1. [MovieListView] : Browse the full catalog with favorites marked
//  2. [SynopsisView] : Read a movie's full description
//  3. [GenreView] : Genre name and description for the selected movie
//  4. [DirectorView] : Director name, bio, and birth year
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via plain message structs.
// Favorite toggles run as background commands against the FavoritesEngine, which refetches the membership set wholesale after each mutation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, g, d, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
