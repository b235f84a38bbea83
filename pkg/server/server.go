// Package server exposes the upload and search workflow over HTTP.
//
// Every upload gets its own session in a bounded in-memory store. Responses
// use a {code, message, data} envelope; business failures are reported with
// HTTP 200 and a non-zero code, unknown sessions with HTTP 404.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/session"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end of the session store.
type Server struct {
	router *gin.Engine
	store  *session.Store
	h      *Handlers
	log    zerolog.Logger
}

// Options configure a Server.
//
// Fields:
//   - Logger: Request log sink; verbose.NewLogger(nil) when nil
//   - Debug: Leave gin's mode as is; otherwise release mode is set
type Options struct {
	Logger *zerolog.Logger
	Debug  bool
}

// New creates a server over a fresh session store sized by cfg.
//
// Parameters:
//   - cfg: Effective configuration; nil uses defaults
//   - opts: Logging options
//
// Returns:
//   - *Server: Server with all routes registered
func New(cfg *config.Config, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	log := verbose.NewLogger(nil)
	if opts.Logger != nil {
		log = *opts.Logger
	}

	store := session.NewStore(cfg.GetMaxSessions(), session.OptionsFromConfig(cfg))
	s := &Server{
		router: gin.New(),
		store:  store,
		h:      NewHandlers(store, cfg),
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestLogger(s.log), cors())

	s.router.GET("/healthz", s.h.Health)

	api := s.router.Group("/api")
	{
		s.h.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: "not found"})
	})
}

// Handler returns the routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the session store behind the server.
func (s *Server) Store() *session.Store {
	return s.store
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
//
// Parameters:
//   - ctx: Cancelling it stops the server
//   - addr: Listen address, e.g. ":8080"
//
// Returns:
//   - error: Listen failure; nil after a clean shutdown
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("server stopped")
	return nil
}
