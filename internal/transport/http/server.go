package http

import (
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"moviweb/internal/config"
	"moviweb/internal/database"
	"moviweb/internal/handler"
	"moviweb/internal/omdb"
	"moviweb/internal/repository"
	"moviweb/internal/service"
)

// Run builds the dependency graph and serves HTTP until the process exits.
// Everything is wired here once and passed down explicitly; nothing holds
// package-level state.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	omdbClient := omdb.NewClient(cfg.OMDbAPIKey, cfg.OMDbTimeout)
	if !omdbClient.Enabled() {
		log.Println("OMDB_API_KEY not set; movies will be added without metadata")
	}

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	movieService := service.NewMovieService(movieRepo, favRepo, userRepo, omdbClient, repository.NewTxRunner(db))

	router := NewRouter(RouterConfig{
		AuthHandler:  handler.NewAuthHandler(userService, authService),
		UserHandler:  handler.NewUserHandler(userService),
		MovieHandler: handler.NewMovieHandler(movieService),
		JWTSecret:    cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on :%s", cfg.ServerPort)
	return server.ListenAndServe()
}
