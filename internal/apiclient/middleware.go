package apiclient

import (
	"log/slog"
	"net/http"

	"github.com/maidacontrol/internal/session"
)

// Middleware rewrites an outgoing request before it is dispatched.
// Middlewares run in registration order; an error aborts the call.
type Middleware func(req *http.Request) (*http.Request, error)

// Chain composes middlewares into one, applied left to right
func Chain(mws ...Middleware) Middleware {
	return func(req *http.Request) (*http.Request, error) {
		var err error
		for _, mw := range mws {
			if req, err = mw(req); err != nil {
				return nil, err
			}
		}
		return req, nil
	}
}

// SessionHeaders resolves the session for every request and attaches the
// identity headers. Outside a browsing context no identity headers are added.
// Store failures are logged and never fail the request: the backend decides
// what to do with a missing identity.
func SessionHeaders(resolver *session.Resolver, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(req *http.Request) (*http.Request, error) {
		sess, err := resolver.Resolve(req.Context())
		if err != nil {
			logger.WarnContext(req.Context(), "session: resolve failed, continuing",
				"path", req.URL.Path,
				"error", err,
			)
		}
		if sess == nil {
			return req, nil
		}
		for k, v := range sess.Headers() {
			req.Header[k] = v
		}
		return req, nil
	}
}

// StaticHeaders sets fixed headers on every request
func StaticHeaders(h http.Header) Middleware {
	return func(req *http.Request) (*http.Request, error) {
		for k, vv := range h {
			req.Header.Del(k)
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}
		return req, nil
	}
}
