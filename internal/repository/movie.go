package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moviweb/internal/model"
)

const movieColumns = `id, title, release_year, director, poster_url, plot, writer, actors,
	genre, runtime, released, rated, language, country, awards, imdb_rating, imdb_id,
	created_at, updated_at`

type movieRepository struct {
	db *sqlx.DB
}

func NewMovieRepository(db *sqlx.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts a catalog row inside the caller's transaction. The unique
// indexes on imdb_id and (title, year) are the real duplicate guard, and the
// targetless ON CONFLICT covers both: a row created first by a concurrent
// request inserts nothing and is reported as model.ErrMovieExists. The
// conflict never raises a unique violation, so the transaction stays usable
// and the caller can re-select the winner row on the same tx.
func (r *movieRepository) Create(ctx context.Context, tx *sqlx.Tx, m *model.Movie) error {
	query := `
		INSERT INTO movies (title, release_year, director, poster_url, plot, writer, actors,
		                    genre, runtime, released, rated, language, country, awards,
		                    imdb_rating, imdb_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		ON CONFLICT DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRowxContext(ctx, query,
		m.Title, m.ReleaseYear, m.Director, m.PosterURL, m.Plot, m.Writer, m.Actors,
		m.Genre, m.Runtime, m.Released, m.Rated, m.Language, m.Country, m.Awards,
		m.IMDbRating, m.IMDbID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrMovieExists
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// Find resolves a catalog identity. IMDb ID wins when present; otherwise the
// (title, year) pair is matched with IS NOT DISTINCT FROM so a NULL year
// compares equal to a NULL year.
func (r *movieRepository) Find(ctx context.Context, tx *sqlx.Tx, imdbID *string, title string, year *int) (*model.Movie, error) {
	var (
		query string
		args  []interface{}
	)

	if imdbID != nil {
		query = `SELECT ` + movieColumns + ` FROM movies WHERE imdb_id = $1`
		args = []interface{}{*imdbID}
	} else {
		query = `SELECT ` + movieColumns + ` FROM movies
			WHERE title = $1 AND release_year IS NOT DISTINCT FROM $2`
		args = []interface{}{title, year}
	}

	var m model.Movie
	err := tx.GetContext(ctx, &m, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &m, nil
}

// GetByID loads a movie and locks the row for the rest of the transaction,
// so a read-merge-write sequence cannot lose a concurrent edit.
func (r *movieRepository) GetByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 FOR UPDATE`

	var m model.Movie
	err := tx.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}

	return &m, nil
}

// Update writes the full row back on the same transaction that read and
// locked it. The service layer owns merge semantics; by the time a movie
// reaches here its fields are final.
func (r *movieRepository) Update(ctx context.Context, tx *sqlx.Tx, m *model.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, release_year = $3, director = $4, poster_url = $5, plot = $6,
		    writer = $7, actors = $8, genre = $9, runtime = $10, released = $11,
		    rated = $12, language = $13, country = $14, awards = $15,
		    imdb_rating = $16, imdb_id = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := tx.QueryRowxContext(ctx, query,
		m.ID, m.Title, m.ReleaseYear, m.Director, m.PosterURL, m.Plot,
		m.Writer, m.Actors, m.Genre, m.Runtime, m.Released,
		m.Rated, m.Language, m.Country, m.Awards,
		m.IMDbRating, m.IMDbID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrMovieNotFound
		}
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}
