package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moviweb/internal/httputil"
	"moviweb/internal/model"
	"moviweb/internal/service"
	"moviweb/internal/transport/http/middleware"
)

// MovieHandler exposes the authenticated user's favorites list.
type MovieHandler struct {
	movieService *service.MovieService
}

func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

// List returns the current user's favorites, most recently added first.
// GET /me/movies
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	movies, err := h.movieService.ListFavorites(r.Context(), userID)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	if movies == nil {
		movies = []model.Movie{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"movies": movies,
	})
}

// Add favorites a movie by title, enriching it from OMDb when configured.
// POST /me/movies
func (h *MovieHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.AddMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	movie, err := h.movieService.AddMovieByTitle(r.Context(), userID, req.Title)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, movie)
}

// Update applies a partial edit to a movie's fields.
// PATCH /me/movies/{id}
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.movieIDParam(w, r)
	if !ok {
		return
	}

	var upd model.MovieUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	movie, err := h.movieService.Update(r.Context(), movieID, upd)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, movie)
}

// Refresh re-fetches provider metadata for a movie.
// POST /me/movies/{id}/refresh
func (h *MovieHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.movieIDParam(w, r)
	if !ok {
		return
	}

	movie, err := h.movieService.RefreshMetadata(r.Context(), movieID)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, movie)
}

// Delete removes a movie from the current user's favorites.
// DELETE /me/movies/{id}
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	movieID, ok := h.movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.movieService.RemoveFavorite(r.Context(), userID, movieID); err != nil {
		httputil.WriteAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Favorite removed",
	})
}

func (h *MovieHandler) movieIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid movie ID")
		return 0, false
	}
	return movieID, true
}
