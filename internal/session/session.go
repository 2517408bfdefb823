// Package session resolves the identity the backend API expects on every call.
//
// The identity comes either from query parameters on the page that started the
// flow (the auth callback lands on /home?user_id=...&session_id=...) or from
// values persisted by an earlier resolve. Query values always win and are
// written back to the store; without them the stored values are reused verbatim.
package session

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maidacontrol/internal/constants"
)

// Session is the identity triple sent to the backend
type Session struct {
	UserID     string `json:"user_id" yaml:"user_id"`
	OpenGameID string `json:"open_game_id" yaml:"open_game_id"`
	SessionID  string `json:"session_id" yaml:"session_id"`
}

// IsZero reports whether no field is set
func (s Session) IsZero() bool {
	return s.UserID == "" && s.OpenGameID == "" && s.SessionID == ""
}

// Headers returns the identity headers, empty values included
func (s Session) Headers() http.Header {
	h := make(http.Header, 3)
	h.Set(constants.HeaderUserID, s.UserID)
	h.Set(constants.HeaderOpenGameID, s.OpenGameID)
	h.Set(constants.HeaderSessionID, s.SessionID)
	return h
}

// fromQuery reads the recognized keys from a query string.
// ok is false when none of them carries a value.
func fromQuery(q url.Values) (s Session, ok bool) {
	s.UserID = q.Get(constants.KeyUserID)
	s.OpenGameID = q.Get(constants.KeyOpenGameID)
	if s.OpenGameID == "" {
		s.OpenGameID = q.Get(constants.KeyOpenUserID)
	}
	s.SessionID = q.Get(constants.KeySessionID)
	return s, !s.IsZero()
}

// Store is durable storage for the session fields.
// Implementations must be safe for concurrent use.
type Store interface {
	// Read returns the persisted fields; missing keys read as empty strings.
	Read(ctx context.Context) (*Session, error)
	// Write persists every non-empty field of s and leaves the others untouched.
	Write(ctx context.Context, s Session) error
}

// Location exposes the URL of the page a request originates from.
// A nil URL means there is no browsing context.
type Location interface {
	PageURL() *url.URL
}

// LocationFunc adapts a function to Location
type LocationFunc func() *url.URL

func (f LocationFunc) PageURL() *url.URL { return f() }

// StaticLocation is a fixed page URL
type StaticLocation struct {
	URL *url.URL
}

func (l StaticLocation) PageURL() *url.URL { return l.URL }

// ParseLocation parses a raw page URL; an empty string yields no browsing context
func ParseLocation(raw string) (StaticLocation, error) {
	if raw == "" {
		return StaticLocation{}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return StaticLocation{}, err
	}
	return StaticLocation{URL: u}, nil
}
