package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/maidacontrol/internal/constants"
	"github.com/maidacontrol/internal/logger"
)

// BuildBaseURL is the build-time API base URL override, set with
// -ldflags "-X github.com/maidacontrol/internal/config.BuildBaseURL=https://api.example"
var BuildBaseURL = ""

// Config holds the client configuration
type Config struct {
	Environment string
	LogJSON     bool
	APIBaseURL  string // explicit base URL; empty means "derive"
	PageURL     string // page the session is resolved from (may carry user_id/session_id query)
	Session     SessionConfig
	Sync        SyncConfig
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	Store string // memory, file or sqlite
	Path  string
}

// SyncConfig holds the periodic favorites sync configuration
type SyncConfig struct {
	Schedule string // cron schedule, e.g. "@every 24h" or "0 4 * * *"
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	environment := getEnv("APP_ENV", "production")

	store := strings.ToLower(getEnv("SESSION_STORE", constants.StoreFile))

	return &Config{
		Environment: environment,
		LogJSON:     logger.JSONPreferred(environment, os.Getenv("LOG_JSON")),
		APIBaseURL:  getEnv("API_BASE_URL", BuildBaseURL),
		PageURL:     os.Getenv("PAGE_URL"),
		Session: SessionConfig{
			Store: store,
			Path:  getEnv("SESSION_STORE_PATH", DefaultStorePath(store)),
		},
		Sync: SyncConfig{
			Schedule: getEnv("SYNC_SCHEDULE", constants.DefaultSyncSchedule),
		},
	}, nil
}

// DefaultStorePath picks a data file matching the store kind
func DefaultStorePath(store string) string {
	switch store {
	case constants.StoreSQLite:
		return filepath.Join("data", "session.db")
	case constants.StoreMemory:
		return ""
	default:
		return filepath.Join("data", "session.yaml")
	}
}

// ResolveBaseURL picks the API base URL: explicit configuration first, then
// the origin of the page the client runs on, then the local fallback.
func ResolveBaseURL(explicit string, page *url.URL) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return strings.TrimSuffix(explicit, "/")
	}
	if origin := Origin(page); origin != "" {
		return origin
	}
	return constants.FallbackAPIBaseURL
}

// Origin returns scheme://host of u, or "" when u has no host
func Origin(u *url.URL) string {
	if u == nil || u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + u.Host
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
