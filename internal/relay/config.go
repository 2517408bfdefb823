package relay

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/maidacontrol/internal/apipaths"
	"github.com/maidacontrol/internal/constants"
	"github.com/maidacontrol/internal/domain"
	"github.com/maidacontrol/internal/logger"
	"github.com/maidacontrol/internal/validation"
)

// Config holds relay configuration
type Config struct {
	Environment     string // development enables debug logs and gin debug mode
	LogJSON         bool
	ListenAddress   string // Address to listen on (e.g. :3000)
	UpstreamBaseURL string // Auth gateway origin (e.g. https://tgk-wcaime.wahlap.com)
	GameID          string // Game segment of the authorize path (e.g. maimai-dx)
}

// LoadConfig loads relay configuration from environment
func LoadConfig() (*Config, error) {
	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "production"
	}
	listenAddr := os.Getenv("RELAY_LISTEN_ADDRESS")
	if listenAddr == "" {
		listenAddr = constants.DefaultRelayListenAddress
	}
	upstream := os.Getenv("RELAY_UPSTREAM_BASE_URL")
	if upstream == "" {
		upstream = constants.DefaultAuthUpstreamURL
	}
	gameID := os.Getenv("RELAY_GAME_ID")
	if gameID == "" {
		gameID = constants.DefaultGameID
	}

	cfg := &Config{
		Environment:     environment,
		LogJSON:         logger.JSONPreferred(environment, os.Getenv("LOG_JSON")),
		ListenAddress:   listenAddr,
		UpstreamBaseURL: strings.TrimSuffix(upstream, "/"),
		GameID:          gameID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the relay can listen and the upstream can be addressed
func (c *Config) Validate() error {
	if err := validation.ValidateListenAddress(c.ListenAddress); err != nil {
		return domain.WrapConfigInvalid("RELAY_LISTEN_ADDRESS", err)
	}
	u, err := url.Parse(c.UpstreamBaseURL)
	if err != nil {
		return domain.WrapConfigInvalid("RELAY_UPSTREAM_BASE_URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return domain.WrapConfigInvalid("RELAY_UPSTREAM_BASE_URL", fmt.Errorf("%q is not an absolute http(s) URL", c.UpstreamBaseURL))
	}
	if err := validation.ValidateGameID(c.GameID); err != nil {
		return domain.WrapConfigInvalid("RELAY_GAME_ID", err)
	}
	return nil
}

// AuthorizeURL is the upstream URL that answers with the login redirect
func (c *Config) AuthorizeURL() string {
	return c.UpstreamBaseURL + apipaths.UpstreamAuthorize(c.GameID)
}
