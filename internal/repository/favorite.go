package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moviweb/internal/model"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the association. ON CONFLICT DO NOTHING makes re-favoriting a
// no-op; the bool reports whether a new row was actually written.
func (r *favoriteRepository) Add(ctx context.Context, tx *sqlx.Tx, userID, movieID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Remove deletes the association only. The catalog movie survives for any
// other user who favorited it.
func (r *favoriteRepository) Remove(ctx context.Context, userID, movieID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrFavoriteNotFound
	}

	return nil
}

// ListMovies returns the user's favorites, most recently favorited first.
// movie_id breaks ties between favorites created in the same instant.
func (r *favoriteRepository) ListMovies(ctx context.Context, userID int64) ([]model.Movie, error) {
	query := `
		SELECT m.id, m.title, m.release_year, m.director, m.poster_url, m.plot, m.writer,
		       m.actors, m.genre, m.runtime, m.released, m.rated, m.language, m.country,
		       m.awards, m.imdb_rating, m.imdb_id, m.created_at, m.updated_at
		FROM favorites f
		JOIN movies m ON m.id = f.movie_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.movie_id DESC
	`

	var movies []model.Movie
	err := r.db.SelectContext(ctx, &movies, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return movies, nil
}
