package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// League registry (JSON array of league settings).
	LeaguesFile string

	// Scoring provider API.
	CartolaAPIBaseURL        string
	CartolaRequestsPerMinute int

	// Cloudflare R2 bucket for published exports.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

const (
	defaultCartolaAPIBaseURL = "https://api.cartola.globo.com"
	defaultRequestsPerMinute = 60
)

// Load reads configuration from environment variables. A .env file is
// loaded first when present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	leaguesFile := os.Getenv("LEAGUES_FILE")
	if leaguesFile == "" {
		leaguesFile = "leagues.json"
	}

	apiURL := os.Getenv("CARTOLA_API_URL")
	if apiURL == "" {
		apiURL = defaultCartolaAPIBaseURL
	}

	rpm := defaultRequestsPerMinute
	if rpmStr := os.Getenv("CARTOLA_REQUESTS_PER_MINUTE"); rpmStr != "" {
		rpm, err = strconv.Atoi(rpmStr)
		if err != nil || rpm <= 0 {
			return nil, fmt.Errorf("invalid CARTOLA_REQUESTS_PER_MINUTE environment variable: %q", rpmStr)
		}
	}

	cfg := &Config{
		DatabaseURL:              dbURL,
		ServerPort:               port,
		LeaguesFile:              leaguesFile,
		CartolaAPIBaseURL:        apiURL,
		CartolaRequestsPerMinute: rpm,
		R2AccountID:              os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:            os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:        os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:             os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:          os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// R2Configured reports whether all bucket credentials are present.
// Exports are disabled when they are not.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}
