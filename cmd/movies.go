package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/nightorbs/flixctl/internal/formatter"
	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/repositories"
	"github.com/nightorbs/flixctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCache opens the local cache database, applying migrations so a fresh
// database is usable without a separate setup step.
func (r *Runner) openCache(configPath string) (*sql.DB, error) {
	config := r.config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if loaded, err := shared.LoadConfig(configPath); err == nil {
				config = loaded
			}
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// MoviesList lists the catalog, from the service or the local cache.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")
	cached := cmd.Bool("cached")
	genre := cmd.String("genre")
	exportPath := cmd.String("export")

	var movies []models.Movie
	var err error

	if cached {
		db, err := r.openCache(cmd.String("config"))
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repositories.NewMovieRepository(db)
		if movies, err = repo.List(genre); err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}

		if fetchedAt, err := repo.FetchedAt(); err == nil && !fetchedAt.IsZero() {
			r.logger.Infof("cache last refreshed %v", fetchedAt.Format("2006-01-02 15:04"))
		}
	} else {
		r.logger.Info("fetching movie catalog")

		if movies, err = r.catalog.AllMovies(ctx); err != nil {
			return err
		}

		if genre != "" {
			filtered := movies[:0]
			for _, movie := range movies {
				if movie.Genre.Name == genre {
					filtered = append(filtered, movie)
				}
			}
			movies = filtered
		}

		if save {
			db, err := r.openCache(cmd.String("config"))
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repositories.NewMovieRepository(db)
			if err := repo.SaveAll(movies); err != nil {
				r.logger.Warn("failed to cache movies", "error", err)
			} else {
				r.logger.Info("catalog cached", "movies", len(movies))
			}
		}
	}

	if exportPath != "" {
		// best effort: an export without favorite markers still succeeds
		if r.flow.Authenticated() {
			if err := r.engine.Refresh(ctx); err != nil {
				r.logger.Warn("could not load favorites for export", "error", err)
			}
		}

		favorites := r.engine.Set()
		if err := formatter.WriteExport(movies, favorites, exportPath); err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(movies), exportPath)
		return nil
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	r.writePlain("Found %d movies:\n\n", len(movies))
	for i, movie := range movies {
		r.writePlain("%d. %s\n", i+1, movie.Title)
		if movie.Director.Name != "" {
			r.writePlain("   Director: %s\n", movie.Director.Name)
		}
		if movie.Genre.Name != "" {
			r.writePlain("   Genre: %s\n", movie.Genre.Name)
		}
		r.writePlain("   ID: %s\n", movie.ID)
		r.writePlain("\n")
	}

	return nil
}

// MoviesGet shows a single movie by exact title.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	movie, err := r.catalog.Movie(ctx, title)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlainHeader(movie.Title)
	if movie.Description != "" {
		r.writePlain("%s\n\n", movie.Description)
	}
	if movie.Director.Name != "" {
		r.writePlain("Director: %s\n", movie.Director.Name)
	}
	if movie.Genre.Name != "" {
		r.writePlain("Genre: %s\n", movie.Genre.Name)
	}
	if movie.Featured {
		r.writePlain("Featured\n")
	}

	return nil
}

// MoviesGenres lists all genres, or shows one by name.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if name != "" {
		genre, err := r.catalog.Genre(ctx, name)
		if err != nil {
			return err
		}

		if useJSON {
			return r.writeJSON(genre, pretty)
		}

		r.writePlainHeader(genre.Name)
		r.writePlain("%s\n", genre.Description)
		return nil
	}

	genres, err := r.catalog.AllGenres(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(genres, pretty)
	}

	r.writePlain("Found %d genres:\n\n", len(genres))
	for i, genre := range genres {
		r.writePlain("%d. %s\n", i+1, genre.Name)
	}

	return nil
}

// MoviesDirectors lists all directors, or shows one by name.
func (r *Runner) MoviesDirectors(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if name != "" {
		director, err := r.catalog.Director(ctx, name)
		if err != nil {
			return err
		}

		if useJSON {
			return r.writeJSON(director, pretty)
		}

		r.writePlainHeader(director.Name)
		if director.BirthYear != "" {
			r.writePlain("Born: %s\n\n", director.BirthYear)
		}
		r.writePlain("%s\n", director.Bio)
		return nil
	}

	directors, err := r.catalog.AllDirectors(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(directors, pretty)
	}

	r.writePlain("Found %d directors:\n\n", len(directors))
	for i, director := range directors {
		r.writePlain("%d. %s\n", i+1, director.Name)
	}

	return nil
}
