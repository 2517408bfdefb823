package relay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maidacontrol/internal/apipaths"
	"github.com/maidacontrol/internal/domain"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 30 * time.Second
)

// LocationResponse is the body of GET /aime; Location is null when the
// upstream sent no redirect target
type LocationResponse struct {
	Location *string `json:"location"`
}

// ErrorResponse is the body of failed relay calls
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is the auth redirect relay
type Server struct {
	config   *Config
	upstream *Upstream
	engine   *gin.Engine
	logger   *slog.Logger
}

// NewServer creates the relay and registers its routes
func NewServer(cfg *Config, upstream *Upstream, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	engine := gin.New()

	// Middleware - order matters
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(corsMiddleware())
	engine.Use(loggerMiddleware(logger))

	s := &Server{
		config:   cfg,
		upstream: upstream,
		engine:   engine,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET(apipaths.Health, s.health)
	s.engine.HEAD(apipaths.Health, s.health)

	s.engine.GET(apipaths.Aime, s.aime)
	s.engine.GET(apipaths.Authorize(s.config.GameID), s.authorize)
}

// Handler returns the relay's http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:           s.config.ListenAddress,
		Handler:        s.engine,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening",
			"address", s.config.ListenAddress,
			"upstream", s.upstream.AuthorizeURL(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down relay...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "relay",
	})
}

// aime answers with the login URL the auth gateway redirects to
func (s *Server) aime(c *gin.Context) {
	location, found, err := s.upstream.FetchLocation(c.Request.Context())
	if err != nil {
		s.logUpstreamFailure(c, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: domain.ClientMessage(err)})
		return
	}

	var resp LocationResponse
	if found {
		resp.Location = &location
	}
	// PureJSON keeps '&' in query strings unescaped
	c.PureJSON(http.StatusOK, resp)
}

// authorize sends the browser straight to the login URL
func (s *Server) authorize(c *gin.Context) {
	location, found, err := s.upstream.FetchLocation(c.Request.Context())
	if err == nil && !found {
		err = domain.ErrUpstreamNoLocation
	}
	if err != nil {
		s.logUpstreamFailure(c, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "oauth authorize error: " + domain.ClientMessage(err)})
		return
	}

	s.logger.DebugContext(c.Request.Context(), "relay: redirecting to login", "location", location)
	c.Redirect(http.StatusTemporaryRedirect, location)
}

func (s *Server) logUpstreamFailure(c *gin.Context, err error) {
	// Client disconnect is normal; avoid noisy ERROR logs
	if errors.Is(err, context.Canceled) {
		s.logger.DebugContext(c.Request.Context(), "relay: upstream request canceled by client",
			"path", c.Request.URL.Path,
		)
		return
	}
	s.logger.ErrorContext(c.Request.Context(), "relay: upstream request failed",
		"path", c.Request.URL.Path,
		"upstream", s.upstream.AuthorizeURL(),
		"request_id", c.GetString("request_id"),
		"error", err,
	)
}
