package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/maidacontrol/internal/domain"
)

// maxDrainBytes bounds how much of a redirect body is read before closing
const maxDrainBytes = 64 << 10

// Upstream fetches the auth gateway's authorize URL without following redirects
type Upstream struct {
	client       *http.Client
	authorizeURL string
	logger       *slog.Logger
}

// NewUpstream creates an upstream fetcher. A nil transport uses http.DefaultTransport.
func NewUpstream(authorizeURL string, transport http.RoundTripper, logger *slog.Logger) *Upstream {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Upstream{
		client: &http.Client{
			Transport: transport,
			// Hand the 3xx back instead of following it; its Location is the payload
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		authorizeURL: authorizeURL,
		logger:       logger,
	}
}

// AuthorizeURL returns the upstream URL this fetcher calls
func (u *Upstream) AuthorizeURL() string {
	return u.authorizeURL
}

// FetchLocation requests the authorize URL and returns its Location header.
// found is false when the upstream answered without one.
func (u *Upstream) FetchLocation(ctx context.Context) (location string, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.authorizeURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", false, domain.WrapUpstreamRequestFailed(u.authorizeURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	location = resp.Header.Get("Location")
	u.logger.DebugContext(ctx, "relay: upstream response received",
		"status", resp.StatusCode,
		"has_location", location != "",
	)
	return location, location != "", nil
}
