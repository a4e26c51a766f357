// Package httpapi exposes the REST/JSON API: routing, session cookies,
// error translation, CORS and request logging.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/services"
)

const shutdownTimeout = 30 * time.Second

// Options tunes cookies, CORS and uploads.
type Options struct {
	SecureCookie   bool
	AllowedOrigins []string
	MaxUploadSize  int64
}

type HTTPServer struct {
	address string
	users   *services.UserService
	blogs   *services.BlogService
	tokens  *auth.TokenService
	opts    Options
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, bs *services.BlogService,
	tokens *auth.TokenService, opts Options) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		blogs:   bs,
		tokens:  tokens,
		opts:    opts,
	}
}

// Handler returns the full middleware chain around the router.
func (s *HTTPServer) Handler() http.Handler {
	return s.recoverer(s.accessLog(s.cors(s.session(s.routes()))))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
