package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/shared"
)

// MovieRepository persists catalog movies fetched from the remote service.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// SaveAll replaces the cached catalog with the given movies in one transaction.
func (r *MovieRepository) SaveAll(movies []models.Movie) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movie cache: %w", err)
	}

	query := `
		INSERT INTO movies (
			remote_id, title, description,
			director_name, director_bio, director_birth_year,
			genre_name, genre_description,
			image_path, featured, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for _, m := range movies {
		if m.ID == "" {
			return fmt.Errorf("%w: movie %q has no remote id", shared.ErrInvalidInput, m.Title)
		}
		_, err := tx.Exec(query,
			m.ID, m.Title, m.Description,
			m.Director.Name, m.Director.Bio, m.Director.BirthYear,
			m.Genre.Name, m.Genre.Description,
			m.ImagePath, m.Featured, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert movie %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a cached movie by its remote identifier.
func (r *MovieRepository) Get(remoteID string) (*models.Movie, error) {
	query := `
		SELECT remote_id, title, description,
			director_name, director_bio, director_birth_year,
			genre_name, genre_description,
			image_path, featured
		FROM movies
		WHERE remote_id = ?
	`

	movie, err := scanMovie(r.db.QueryRow(query, remoteID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}

	return movie, nil
}

// GetByTitle retrieves a cached movie by exact title.
func (r *MovieRepository) GetByTitle(title string) (*models.Movie, error) {
	query := `
		SELECT remote_id, title, description,
			director_name, director_bio, director_birth_year,
			genre_name, genre_description,
			image_path, featured
		FROM movies
		WHERE title = ?
	`

	movie, err := scanMovie(r.db.QueryRow(query, title))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}

	return movie, nil
}

// List retrieves all cached movies, optionally filtered by genre name.
func (r *MovieRepository) List(genre string) ([]models.Movie, error) {
	query := `
		SELECT remote_id, title, description,
			director_name, director_bio, director_birth_year,
			genre_name, genre_description,
			image_path, featured
		FROM movies
	`

	args := []any{}
	if genre != "" {
		query += " WHERE genre_name = ?"
		args = append(args, genre)
	}
	query += " ORDER BY title ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Count returns the number of cached movies.
func (r *MovieRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// FetchedAt returns when the cache was last populated, or the zero time for
// an empty cache.
func (r *MovieRepository) FetchedAt() (time.Time, error) {
	var fetched sql.NullTime
	err := r.db.QueryRow("SELECT MAX(fetched_at) FROM movies").Scan(&fetched)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query fetch time: %w", err)
	}
	if !fetched.Valid {
		return time.Time{}, nil
	}
	return fetched.Time, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	var m models.Movie
	err := s.Scan(
		&m.ID, &m.Title, &m.Description,
		&m.Director.Name, &m.Director.Bio, &m.Director.BirthYear,
		&m.Genre.Name, &m.Genre.Description,
		&m.ImagePath, &m.Featured,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
