// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nightorbs/flixctl/internal/models"
)

// ExportToCSV converts a movie list to CSV format with columns: ID, Title, Genre, Director, Featured
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Director", "Featured"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			movie.ID,
			movie.Title,
			movie.Genre.Name,
			movie.Director.Name,
			strconv.FormatBool(movie.Featured),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie list to a Markdown document, marking
// favorites with a star when the membership set is non-nil.
func ExportToMarkdown(movies []models.Movie, favorites models.FavoriteSet) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Movies\n\n")
	buf.WriteString(fmt.Sprintf("**Titles**: %d\n\n", len(movies)))

	for i, movie := range movies {
		marker := ""
		if favorites.Contains(movie.ID) {
			marker = " ★"
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s — %s (%s)\n", i+1, movie.Title, marker, movie.Director.Name, movie.Genre.Name))
		if movie.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", movie.Description))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie list to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))

	for i, movie := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, movie.Title, movie.Director.Name))
	}

	return buf.Bytes(), nil
}

// WriteExport writes formatted movie data to the given path, choosing the
// format from the file extension (.csv, .md, anything else is plain text).
func WriteExport(movies []models.Movie, favorites models.FavoriteSet, path string) error {
	var data []byte
	var err error

	switch {
	case len(path) > 4 && path[len(path)-4:] == ".csv":
		data, err = ExportToCSV(movies)
	case len(path) > 3 && path[len(path)-3:] == ".md":
		data, err = ExportToMarkdown(movies, favorites)
	default:
		data, err = ExportToText(movies)
	}
	if err != nil {
		return fmt.Errorf("failed to format export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
