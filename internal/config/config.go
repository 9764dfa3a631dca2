package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Provider timeout bounds. Anything outside this window is clamped back so a
// misconfigured env var cannot hang requests or spam the provider.
const (
	minOMDbTimeout = 1 * time.Second
	maxOMDbTimeout = 15 * time.Second
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	JWTSecret string

	AccessTokenMaxAge  int
	RefreshTokenMaxAge int

	OMDbAPIKey  string
	OMDbTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 900
	}

	refreshTokenMaxAge, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_MAX_AGE"))
	if err != nil || refreshTokenMaxAge <= 0 {
		refreshTokenMaxAge = 2592000
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	omdbTimeoutSecs, err := strconv.Atoi(os.Getenv("OMDB_TIMEOUT_SECONDS"))
	if err != nil || omdbTimeoutSecs <= 0 {
		omdbTimeoutSecs = 8
	}
	omdbTimeout := time.Duration(omdbTimeoutSecs) * time.Second
	if omdbTimeout < minOMDbTimeout {
		omdbTimeout = minOMDbTimeout
	}
	if omdbTimeout > maxOMDbTimeout {
		omdbTimeout = maxOMDbTimeout
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		AccessTokenMaxAge:  accessTokenMaxAge,
		RefreshTokenMaxAge: refreshTokenMaxAge,

		OMDbAPIKey:  os.Getenv("OMDB_API_KEY"),
		OMDbTimeout: omdbTimeout,
	}, nil
}
