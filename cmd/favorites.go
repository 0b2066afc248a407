package main

import (
	"context"
	"fmt"

	"github.com/nightorbs/flixctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList lists favorite movies, resolving titles unless --ids is set.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	idsOnly := cmd.Bool("ids")

	favorites, err := r.catalog.Favorites(ctx)
	if err != nil {
		return err
	}

	if idsOnly {
		if useJSON {
			return r.writeJSON(favorites, pretty)
		}
		for _, id := range favorites {
			r.writePlain("%s\n", id)
		}
		return nil
	}

	movies, err := r.catalog.AllMovies(ctx)
	if err != nil {
		return err
	}

	matched := movies[:0]
	for _, movie := range movies {
		if favorites.Contains(movie.ID) {
			matched = append(matched, movie)
		}
	}

	if useJSON {
		return r.writeJSON(matched, pretty)
	}

	r.writePlain("Found %d favorites:\n\n", len(matched))
	for i, movie := range matched {
		r.writePlain("%d. %s (%s)\n", i+1, movie.Title, movie.ID)
	}

	return nil
}

// FavoritesAdd adds a movie to favorites by ID.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("adding favorite %v", movieID)

	favorites, err := r.catalog.AddFavorite(ctx, movieID)
	if err != nil {
		return err
	}

	r.writePlain("✓ Added to favorites (%d total)\n", len(favorites))
	return nil
}

// FavoritesRemove removes a movie from favorites by ID.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("removing favorite %v", movieID)

	favorites, err := r.catalog.RemoveFavorite(ctx, movieID)
	if err != nil {
		return err
	}

	r.writePlain("✓ Removed from favorites (%d total)\n", len(favorites))
	return nil
}

// FavoritesToggle flips a movie's membership, resolving the title first when --title is set.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	if cmd.Bool("title") {
		movie, err := r.catalog.Movie(ctx, movieID)
		if err != nil {
			return err
		}
		movieID = movie.ID
	}

	if err := r.engine.Refresh(ctx); err != nil {
		return err
	}

	added, err := r.engine.Toggle(ctx, movieID)
	if err != nil {
		return err
	}

	if added {
		r.writePlain("✓ Added to favorites\n")
	} else {
		r.writePlain("✓ Removed from favorites\n")
	}

	return nil
}
