package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"moviweb/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
}

type MovieRepository interface {
	// Create inserts a catalog row. A collision with an existing row (same
	// imdb_id or same title/year) returns model.ErrMovieExists.
	Create(ctx context.Context, tx *sqlx.Tx, movie *model.Movie) error
	// Find resolves a catalog identity: imdb_id when non-nil, else the
	// (title, year) pair. Runs on tx so a row committed by a concurrent
	// request is visible after our own insert lost the race.
	Find(ctx context.Context, tx *sqlx.Tx, imdbID *string, title string, year *int) (*model.Movie, error)
	// GetByID locks the row until the transaction ends, so the caller can
	// merge and write back without losing a concurrent edit.
	GetByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Movie, error)
	Update(ctx context.Context, tx *sqlx.Tx, movie *model.Movie) error
}

type FavoriteRepository interface {
	// Add links user and movie; returns false when the favorite already
	// existed (idempotent insert).
	Add(ctx context.Context, tx *sqlx.Tx, userID, movieID int64) (bool, error)
	// Remove deletes only the association. Zero rows affected returns
	// model.ErrFavoriteNotFound.
	Remove(ctx context.Context, userID, movieID int64) error
	// ListMovies returns the user's favorited movies, most recently
	// favorited first.
	ListMovies(ctx context.Context, userID int64) ([]model.Movie, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}
