package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"moviweb/internal/apperror"
	"moviweb/internal/model"
	"moviweb/internal/omdb"
	"moviweb/internal/repository"
)

// MetadataProvider is the outbound movie-information contract. omdb.Client
// implements it; tests substitute their own.
type MetadataProvider interface {
	// Lookup returns normalized metadata, (nil, nil) when the provider has
	// no data (disabled, nothing to ask, or title unknown).
	Lookup(ctx context.Context, imdbID, title string) (*model.MovieMetadata, error)
	// Enabled reports whether a provider credential is configured.
	Enabled() bool
}

// TxRunner executes fn inside one database transaction, rolling back when
// fn errors and committing otherwise. repository.SQLTxRunner is the real
// implementation.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// MovieService is the business façade for the favorites catalog: validation,
// catalog upserts, provider enrichment, and the favorite association. Every
// mutation runs inside a single transaction.
type MovieService struct {
	movieRepo repository.MovieRepository
	favRepo   repository.FavoriteRepository
	userRepo  repository.UserRepository
	provider  MetadataProvider
	tx        TxRunner
}

func NewMovieService(
	movieRepo repository.MovieRepository,
	favRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	provider MetadataProvider,
	tx TxRunner,
) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		favRepo:   favRepo,
		userRepo:  userRepo,
		provider:  provider,
		tx:        tx,
	}
}

// ListFavorites returns the user's movies, most recently favorited first.
func (s *MovieService) ListFavorites(ctx context.Context, userID int64) ([]model.Movie, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Persistence("failed to get user", err)
	}

	movies, err := s.favRepo.ListMovies(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("failed to list favorites", err)
	}
	return movies, nil
}

// AddMovieByTitle looks the title up with the provider (when configured),
// upserts the catalog row and favorites it for the user. Adding a movie the
// user already favorited is a no-op, not an error. Without provider data a
// minimal row carrying only the supplied title is created.
func (s *MovieService) AddMovieByTitle(ctx context.Context, userID int64, title string) (*model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("movie title must not be empty")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Persistence("failed to get user", err)
	}

	meta, err := s.provider.Lookup(ctx, "", title)
	if err != nil {
		return nil, err
	}

	candidate := buildMovie(title, meta)

	var (
		movie    *model.Movie
		inserted bool
	)
	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		m, err := s.upsertCatalog(ctx, tx, candidate)
		if err != nil {
			return err
		}

		inserted, err = s.favRepo.Add(ctx, tx, userID, m.ID)
		if err != nil {
			return apperror.Persistence("failed to add favorite", err)
		}

		movie = m
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	if inserted {
		log.Printf("[MovieService] Favorited movie id=%d title=%q user=%d", movie.ID, movie.Title, userID)
	}
	return movie, nil
}

// asAppError passes classified errors through and folds anything else
// (begin/commit failures) into the persistence kind.
func asAppError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence("transaction failed", err)
}

// upsertCatalog resolves the candidate's catalog identity (imdb_id, else
// title/year) to an existing row, inserting when absent. Losing the insert
// race to a concurrent request is fine: the unique index rejects the
// duplicate and the winner's row is reused.
func (s *MovieService) upsertCatalog(ctx context.Context, tx *sqlx.Tx, candidate *model.Movie) (*model.Movie, error) {
	existing, err := s.movieRepo.Find(ctx, tx, candidate.IMDbID, candidate.Title, candidate.ReleaseYear)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrMovieNotFound) {
		return nil, apperror.Persistence("failed to look up catalog", err)
	}

	if err := s.movieRepo.Create(ctx, tx, candidate); err != nil {
		if errors.Is(err, model.ErrMovieExists) {
			existing, err = s.reloadCatalogRow(ctx, tx, candidate)
			if err != nil {
				return nil, apperror.Persistence("failed to reload catalog row", err)
			}
			return existing, nil
		}
		return nil, apperror.Persistence("failed to insert movie", err)
	}

	return candidate, nil
}

// reloadCatalogRow re-selects the row a lost insert race conflicted with.
// The conflict can sit on either unique index: the winner may carry the
// same imdb_id, or no imdb_id at all with the same (title, year), so an
// imdb_id miss falls back to the title/year identity.
func (s *MovieService) reloadCatalogRow(ctx context.Context, tx *sqlx.Tx, candidate *model.Movie) (*model.Movie, error) {
	existing, err := s.movieRepo.Find(ctx, tx, candidate.IMDbID, candidate.Title, candidate.ReleaseYear)
	if errors.Is(err, model.ErrMovieNotFound) && candidate.IMDbID != nil {
		existing, err = s.movieRepo.Find(ctx, tx, nil, candidate.Title, candidate.ReleaseYear)
	}
	return existing, err
}

// RefreshMetadata re-queries the provider and merges the result field by
// field: only values the provider actually returned overwrite stored data,
// so user edits and earlier enrichment survive an incomplete response.
func (s *MovieService) RefreshMetadata(ctx context.Context, movieID int64) (*model.Movie, error) {
	var movie *model.Movie
	err := s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		m, err := s.movieRepo.GetByID(ctx, tx, movieID)
		if err != nil {
			if errors.Is(err, model.ErrMovieNotFound) {
				return apperror.NotFound("movie not found")
			}
			return apperror.Persistence("failed to get movie", err)
		}

		if !s.provider.Enabled() {
			return apperror.Validation("OMDb API key not configured (OMDB_API_KEY)")
		}

		var imdbID string
		if m.IMDbID != nil {
			imdbID = *m.IMDbID
		}
		meta, err := s.provider.Lookup(ctx, imdbID, m.Title)
		if err != nil {
			return err
		}
		if meta == nil {
			// Provider knows nothing about this movie; keep what we have.
			movie = m
			return nil
		}

		applyMetadata(m, meta)

		if err := s.movieRepo.Update(ctx, tx, m); err != nil {
			return apperror.Persistence("failed to update movie", err)
		}

		movie = m
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	log.Printf("[MovieService] Refreshed metadata for movie id=%d title=%q", movie.ID, movie.Title)
	return movie, nil
}

// Update applies a partial edit. Only the fields enumerated in
// model.MovieUpdate can change, and empty values never clear stored data.
func (s *MovieService) Update(ctx context.Context, movieID int64, upd model.MovieUpdate) (*model.Movie, error) {
	var movie *model.Movie
	err := s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		m, err := s.movieRepo.GetByID(ctx, tx, movieID)
		if err != nil {
			if errors.Is(err, model.ErrMovieNotFound) {
				return apperror.NotFound("movie not found")
			}
			return apperror.Persistence("failed to get movie", err)
		}

		if year := optional(upd.Year); year != nil {
			parsed := omdb.ParseYear(*year)
			if parsed == nil {
				return apperror.Validation(fmt.Sprintf("invalid year %q", *year))
			}
			m.ReleaseYear = parsed
		}

		if v := optional(upd.Title); v != nil {
			m.Title = *v
		}
		setIfPresent(&m.Director, upd.Director)
		setIfPresent(&m.PosterURL, upd.PosterURL)
		setIfPresent(&m.Plot, upd.Plot)
		setIfPresent(&m.Writer, upd.Writer)
		setIfPresent(&m.Actors, upd.Actors)
		setIfPresent(&m.Genre, upd.Genre)
		setIfPresent(&m.Runtime, upd.Runtime)
		setIfPresent(&m.Released, upd.Released)
		setIfPresent(&m.Rated, upd.Rated)
		setIfPresent(&m.Language, upd.Language)
		setIfPresent(&m.Country, upd.Country)
		setIfPresent(&m.Awards, upd.Awards)
		setIfPresent(&m.IMDbRating, upd.IMDbRating)

		if err := s.movieRepo.Update(ctx, tx, m); err != nil {
			return apperror.Persistence("failed to update movie", err)
		}

		movie = m
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return movie, nil
}

// RemoveFavorite drops the user/movie association. The catalog row stays.
// A second removal of the same favorite fails with not-found; callers that
// retry must tolerate the 404.
func (s *MovieService) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	if err := s.favRepo.Remove(ctx, userID, movieID); err != nil {
		if errors.Is(err, model.ErrFavoriteNotFound) {
			return apperror.NotFound("favorite not found")
		}
		return apperror.Persistence("failed to remove favorite", err)
	}

	log.Printf("[MovieService] Removed favorite user=%d movie=%d", userID, movieID)
	return nil
}

// buildMovie assembles the catalog candidate from the supplied title and
// whatever the provider returned.
func buildMovie(title string, meta *model.MovieMetadata) *model.Movie {
	movie := &model.Movie{Title: title}
	if meta == nil {
		return movie
	}

	if meta.Title != nil {
		movie.Title = *meta.Title
	}
	movie.ReleaseYear = meta.Year
	movie.Director = meta.Director
	movie.PosterURL = meta.PosterURL
	movie.Plot = meta.Plot
	movie.Writer = meta.Writer
	movie.Actors = meta.Actors
	movie.Genre = meta.Genre
	movie.Runtime = meta.Runtime
	movie.Released = meta.Released
	movie.Rated = meta.Rated
	movie.Language = meta.Language
	movie.Country = meta.Country
	movie.Awards = meta.Awards
	movie.IMDbRating = meta.IMDbRating
	movie.IMDbID = meta.IMDbID
	return movie
}

// applyMetadata merges provider data into the stored movie. Nil provider
// fields (absent or "N/A") leave the stored value untouched.
func applyMetadata(movie *model.Movie, meta *model.MovieMetadata) {
	if meta.Title != nil {
		movie.Title = *meta.Title
	}
	if meta.Year != nil {
		movie.ReleaseYear = meta.Year
	}
	mergeField(&movie.Director, meta.Director)
	mergeField(&movie.PosterURL, meta.PosterURL)
	mergeField(&movie.Plot, meta.Plot)
	mergeField(&movie.Writer, meta.Writer)
	mergeField(&movie.Actors, meta.Actors)
	mergeField(&movie.Genre, meta.Genre)
	mergeField(&movie.Runtime, meta.Runtime)
	mergeField(&movie.Released, meta.Released)
	mergeField(&movie.Rated, meta.Rated)
	mergeField(&movie.Language, meta.Language)
	mergeField(&movie.Country, meta.Country)
	mergeField(&movie.Awards, meta.Awards)
	mergeField(&movie.IMDbRating, meta.IMDbRating)
	mergeField(&movie.IMDbID, meta.IMDbID)
}

func mergeField(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

// optional trims a user-supplied value; nil or blank means "not provided".
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func setIfPresent(dst **string, src *string) {
	if v := optional(src); v != nil {
		*dst = v
	}
}
