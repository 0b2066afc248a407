package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/services"
	"github.com/nightorbs/flixctl/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	SynopsisView
	GenreView
	DirectorView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   services.Catalog
	engine    *tasks.FavoritesEngine
	width     int
	height    int
	movieList list.Model
	movies    []models.Movie
	selected  *models.Movie
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, catalog services.Catalog, engine *tasks.FavoritesEngine) *Model {
	return &Model{
		ctx:     ctx,
		view:    MovieListView,
		catalog: catalog,
		engine:  engine,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching the catalog and favorite memberships.
func (m *Model) Init() tea.Cmd {
	return m.fetchCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleMovieListKeys(msg)
		case SynopsisView, GenreView, DirectorView:
			return m.handleDetailKeys(msg)
		}

	case catalogFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.movies = msg.movies
		m.movieList = list.New(m.buildItems(), list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "Movies"
		m.movieList.SetSize(m.width-4, m.height-8)
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("Could not update favorites: %v", msg.err))
			return m, nil
		}
		if msg.added {
			m.status = styles.ok.Render(fmt.Sprintf("Added '%s' to favorites", msg.title))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("Removed '%s' from favorites", msg.title))
		}
		m.refreshItems()
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case MovieListView:
		return m.renderMovieList()
	case SynopsisView:
		return m.renderSynopsis()
	case GenreView:
		return m.renderGenre()
	case DirectorView:
		return m.renderDirector()
	default:
		return ""
	}
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "g", "d":
		if movie := m.selectedMovie(); movie != nil {
			m.selected = movie
			switch msg.String() {
			case "enter":
				m.view = SynopsisView
			case "g":
				m.view = GenreView
			case "d":
				m.view = DirectorView
			}
		}
		return m, nil
	case "f":
		if movie := m.selectedMovie(); movie != nil {
			return m, m.toggleFavorite(*movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == MovieListView {
		m.movieList, cmd = m.movieList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedMovie() *models.Movie {
	selected := m.movieList.SelectedItem()
	if selected == nil {
		return nil
	}
	if item, ok := selected.(movieItem); ok {
		return &item.movie
	}
	return nil
}

func (m *Model) buildItems() []list.Item {
	items := make([]list.Item, len(m.movies))
	for i, movie := range m.movies {
		items[i] = movieItem{movie: movie, favorite: m.engine.Contains(movie.ID)}
	}
	return items
}

// refreshItems rebuilds list items so favorite markers track the current
// membership set, keeping the cursor in place.
func (m *Model) refreshItems() {
	index := m.movieList.Index()
	m.movieList.SetItems(m.buildItems())
	m.movieList.Select(index)
}

func (m *Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.catalog.AllMovies(m.ctx)
		if err != nil {
			return catalogFetchedMsg{err: err}
		}
		if err := m.engine.Refresh(m.ctx); err != nil {
			return catalogFetchedMsg{err: err}
		}
		return catalogFetchedMsg{movies: movies}
	}
}

func (m *Model) toggleFavorite(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		added, err := m.engine.Toggle(m.ctx, movie.ID)
		return favoriteToggledMsg{title: movie.Title, added: added, err: err}
	}
}

func (m *Model) renderMovieList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.genre, m.keys.director, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	if m.status != "" {
		return fmt.Sprintf("%s\n%s\n\n%s", m.movieList.View(), m.status, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderSynopsis() string {
	if m.selected == nil {
		return ""
	}

	title := styles.title.Render(m.selected.Title)
	body := m.selected.Description
	if body == "" {
		body = "No synopsis available."
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderGenre() string {
	if m.selected == nil {
		return ""
	}

	title := styles.title.Render(m.selected.Genre.Name)
	body := m.selected.Genre.Description
	if body == "" {
		body = "No genre description available."
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderDirector() string {
	if m.selected == nil {
		return ""
	}

	director := m.selected.Director
	title := styles.title.Render(director.Name)

	var info string
	if director.BirthYear != "" {
		info = fmt.Sprintf("Born: %s\n\n", director.BirthYear)
	}

	bio := director.Bio
	if bio == "" {
		bio = "No biography available."
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, bio, helpView)
}
