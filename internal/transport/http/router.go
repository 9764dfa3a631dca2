package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"moviweb/internal/handler"
	"moviweb/internal/httputil"
	authmw "moviweb/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler  *handler.AuthHandler
	UserHandler  *handler.UserHandler
	MovieHandler *handler.MovieHandler
	JWTSecret    string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/me", cfg.AuthHandler.Me)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)

		r.Get("/users", cfg.UserHandler.List)

		r.Route("/me/movies", func(r chi.Router) {
			r.Get("/", cfg.MovieHandler.List)
			r.Post("/", cfg.MovieHandler.Add)
			r.Patch("/{id}", cfg.MovieHandler.Update)
			r.Post("/{id}/refresh", cfg.MovieHandler.Refresh)
			r.Delete("/{id}", cfg.MovieHandler.Delete)
		})
	})

	return r
}
