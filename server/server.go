package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"github.com/SaiNageswarS/go-rest-boot/rest"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BootServer is the built, ready-to-serve HTTP server.
type BootServer struct {
	http        *http.Server
	ln          net.Listener
	mux         http.Handler
	sslProvider SSLProvider
	jwtAuth     *rest.JWTAuth
}

// Handler exposes the routing tree, mainly for tests and embedding.
func (s *BootServer) Handler() http.Handler { return s.mux }

// Addr is the bound listen address.
func (s *BootServer) Addr() net.Addr { return s.ln.Addr() }

// JWTAuth exposes the token middleware's administrative surface, e.g. for
// blacklisting a token on logout.
func (s *BootServer) JWTAuth() *rest.JWTAuth { return s.jwtAuth }

// Close releases the listener without draining in-flight requests. Serve
// callers should cancel the context instead.
func (s *BootServer) Close() error {
	_ = s.http.Close()
	return s.ln.Close()
}

// Serve blocks until ctx is cancelled or the listener fails, then shuts the
// server down gracefully.
func (s *BootServer) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", s.ln.Addr().String()))

		var err error
		if s.sslProvider != nil {
			err = s.http.ServeTLS(s.ln, "", "")
		} else {
			err = s.http.Serve(s.ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if s.sslProvider != nil {
		g.Go(func() error { return s.sslProvider.Run(ctx) })
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
