package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maidacontrol/internal/constants"
	"github.com/maidacontrol/internal/logger"
	"github.com/maidacontrol/internal/session"
)

func TestSessionHeaders_WithoutNetwork(t *testing.T) {
	store := session.NewMemoryStore()
	mw := SessionHeaders(resolverAt(t, store, "https://companion.example/home?user_id=1&open_game_id=2&session_id=3"), logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "http://backend/api", nil)
	out, err := mw(req)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}

	want := map[string]string{
		constants.HeaderUserID:     "1",
		constants.HeaderOpenGameID: "2",
		constants.HeaderSessionID:  "3",
	}
	for name, v := range want {
		if got := out.Header.Get(name); got != v {
			t.Errorf("%s = %q, want %q", name, got, v)
		}
	}
}

type brokenStore struct{}

func (brokenStore) Read(context.Context) (*session.Session, error) {
	return nil, errors.New("storage disabled")
}
func (brokenStore) Write(context.Context, session.Session) error { return errors.New("storage disabled") }

func TestSessionHeaders_StoreFailureDoesNotFailRequest(t *testing.T) {
	resolver := resolverAt(t, brokenStore{}, "https://companion.example/favorites")
	req := httptest.NewRequest(http.MethodGet, "http://backend/api", nil)

	out, err := SessionHeaders(resolver, logger.Discard())(req)
	if err != nil {
		t.Fatalf("middleware error = %v, want nil", err)
	}
	if _, ok := out.Header[http.CanonicalHeaderKey(constants.HeaderUserID)]; ok {
		t.Error("identity header added although no session was resolved")
	}

	// A failed write still yields the query session
	resolver = resolverAt(t, brokenStore{}, "https://companion.example/home?user_id=9")
	req = httptest.NewRequest(http.MethodGet, "http://backend/api", nil)
	out, err = SessionHeaders(resolver, logger.Discard())(req)
	if err != nil {
		t.Fatalf("middleware error = %v, want nil", err)
	}
	if got := out.Header.Get(constants.HeaderUserID); got != "9" {
		t.Errorf("user id = %q, want %q", got, "9")
	}
}

func TestChain_OrderAndAbort(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(req *http.Request) (*http.Request, error) {
			order = append(order, name)
			return req, nil
		}
	}
	stop := errors.New("stop")
	failing := func(req *http.Request) (*http.Request, error) { return nil, stop }

	req := httptest.NewRequest(http.MethodGet, "http://backend/api", nil)
	if _, err := Chain(mark("a"), mark("b"))(req); err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}

	order = nil
	if _, err := Chain(mark("a"), failing, mark("c"))(req); !errors.Is(err, stop) {
		t.Fatalf("Chain() error = %v, want stop", err)
	}
	if len(order) != 1 {
		t.Errorf("middlewares after failure ran: %v", order)
	}
}

func TestStaticHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "maidactl")
	req := httptest.NewRequest(http.MethodGet, "http://backend/api", nil)
	req.Header.Set("User-Agent", "Go-http-client")

	out, err := StaticHeaders(h)(req)
	if err != nil {
		t.Fatalf("StaticHeaders() error = %v", err)
	}
	if got := out.Header.Values("User-Agent"); len(got) != 1 || got[0] != "maidactl" {
		t.Errorf("User-Agent = %v, want [maidactl]", got)
	}
}

func TestClient_MiddlewareErrorAbortsCall(t *testing.T) {
	fb := newFakeBackend(t)
	abort := errors.New("blocked")
	c, err := New(fb.server.URL, WithLogger(logger.Discard()), WithMiddleware(func(*http.Request) (*http.Request, error) {
		return nil, abort
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.GetFavorites(context.Background()); !errors.Is(err, abort) {
		t.Fatalf("error = %v, want middleware error", err)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.requests) != 0 {
		t.Errorf("backend saw %d requests, want 0", len(fb.requests))
	}
}
