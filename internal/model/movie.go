package model

import (
	"errors"
	"time"
)

// Movie is a catalog-wide record shared by every user who favorites it.
// Enrichment fields are pointers: nil means "unknown", never the literal
// "N/A" the provider uses as its sentinel. IMDbRating stays a string so a
// rating the provider reports as e.g. "8.8" round-trips unchanged.
type Movie struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ReleaseYear *int      `db:"release_year" json:"release_year"`
	Director    *string   `db:"director" json:"director"`
	PosterURL   *string   `db:"poster_url" json:"poster_url"`
	Plot        *string   `db:"plot" json:"plot"`
	Writer      *string   `db:"writer" json:"writer"`
	Actors      *string   `db:"actors" json:"actors"`
	Genre       *string   `db:"genre" json:"genre"`
	Runtime     *string   `db:"runtime" json:"runtime"`
	Released    *string   `db:"released" json:"released"`
	Rated       *string   `db:"rated" json:"rated"`
	Language    *string   `db:"language" json:"language"`
	Country     *string   `db:"country" json:"country"`
	Awards      *string   `db:"awards" json:"awards"`
	IMDbRating  *string   `db:"imdb_rating" json:"imdb_rating"`
	IMDbID      *string   `db:"imdb_id" json:"imdb_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Favorite links a user to a catalog movie. The pair is the identity;
// removing a favorite deletes only this row, never the movie.
type Favorite struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	MovieID   int64     `db:"movie_id" json:"movie_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MovieMetadata is a normalized provider lookup result. Every field is
// optional: nil means the provider did not return a usable value.
type MovieMetadata struct {
	Title      *string
	Year       *int
	Director   *string
	PosterURL  *string
	Plot       *string
	Writer     *string
	Actors     *string
	Genre      *string
	Runtime    *string
	Released   *string
	Rated      *string
	Language   *string
	Country    *string
	Awards     *string
	IMDbRating *string
	IMDbID     *string
}

// MovieUpdate is the fixed set of user-editable movie fields. Anything not
// listed here simply cannot be set through the update path. Nil and empty
// values leave the stored value untouched. Year arrives as a string because
// it goes through the same range-tolerant parsing as provider data.
type MovieUpdate struct {
	Title      *string `json:"title"`
	Director   *string `json:"director"`
	Year       *string `json:"year"`
	PosterURL  *string `json:"poster_url"`
	Plot       *string `json:"plot"`
	Writer     *string `json:"writer"`
	Actors     *string `json:"actors"`
	Genre      *string `json:"genre"`
	Runtime    *string `json:"runtime"`
	Released   *string `json:"released"`
	Rated      *string `json:"rated"`
	Language   *string `json:"language"`
	Country    *string `json:"country"`
	Awards     *string `json:"awards"`
	IMDbRating *string `json:"imdb_rating"`
}

// AddMovieRequest is the request body for POST /me/movies
type AddMovieRequest struct {
	Title string `json:"title"`
}

var (
	// ErrMovieNotFound is returned when a movie cannot be found
	ErrMovieNotFound = errors.New("movie not found")

	// ErrMovieExists is returned when an insert hits an existing catalog row
	ErrMovieExists = errors.New("movie already in catalog")

	// ErrFavoriteNotFound is returned when the user has no such favorite
	ErrFavoriteNotFound = errors.New("favorite not found")
)
