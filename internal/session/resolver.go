package session

import (
	"context"
	"log/slog"

	"github.com/maidacontrol/internal/domain"
)

// Resolver turns the current page location and store into a Session.
// It keeps no state of its own; every Resolve reads its inputs afresh.
type Resolver struct {
	store    Store
	location Location
	logger   *slog.Logger
}

// NewResolver creates a resolver. store may be nil when nothing should persist.
func NewResolver(store Store, location Location, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:    store,
		location: location,
		logger:   logger,
	}
}

// Resolve returns the active session, or nil outside a browsing context.
func (r *Resolver) Resolve(ctx context.Context) (*Session, error) {
	if r.location == nil {
		return nil, nil
	}
	page := r.location.PageURL()
	if page == nil {
		return nil, nil
	}

	if s, ok := fromQuery(page.Query()); ok {
		r.logger.DebugContext(ctx, "session: resolved from query",
			"has_user_id", s.UserID != "",
			"has_open_game_id", s.OpenGameID != "",
			"has_session_id", s.SessionID != "",
		)
		if r.store != nil {
			if err := r.store.Write(ctx, s); err != nil {
				return &s, domain.WrapSessionStore("write", err)
			}
		}
		return &s, nil
	}

	if r.store == nil {
		return &Session{}, nil
	}
	s, err := r.store.Read(ctx)
	if err != nil {
		return nil, domain.WrapSessionStore("read", err)
	}
	if s == nil {
		s = &Session{}
	}
	return s, nil
}
