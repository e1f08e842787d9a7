// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first when present, so local development needs no exported variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override. Defaults to
	// ["*"] — the API serves public data to arbitrary frontends.
	CORSOrigins []string

	// One API key per upstream provider. All required.
	GeocodeAPIKey string
	WeatherAPIKey string
	YelpAPIKey    string
	MovieAPIKey   string
	MeetupAPIKey  string
	TrailAPIKey   string
}

// Load reads configuration from a .env file (when present) and the
// environment, and returns a Config. Returns an error listing every required
// variable that is not set.
func Load() (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	var missing []string

	for _, v := range []struct {
		key  string
		dest *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"GEOCODE_API_KEY", &cfg.GeocodeAPIKey},
		{"WEATHER_API_KEY", &cfg.WeatherAPIKey},
		{"YELP_API_KEY", &cfg.YelpAPIKey},
		{"TMDB_API_KEY", &cfg.MovieAPIKey},
		{"MEETUPS_API_KEY", &cfg.MeetupAPIKey},
		{"TRAILS_API_KEY", &cfg.TrailAPIKey},
	} {
		*v.dest = os.Getenv(v.key)
		if *v.dest == "" {
			missing = append(missing, v.key)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
