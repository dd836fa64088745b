package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/logging"
)

// Config configures one dashboard server.
type Config struct {
	Addr    string
	Options explorer.Options
	// WatchPath, when set, reloads the store whenever that file changes.
	WatchPath string
	Logger    *zap.Logger

	ShutdownTimeout time.Duration
}

// Server couples the HTTP handler with an optional file watcher.
type Server struct {
	cfg     Config
	store   *Store
	handler *Handler
	log     *zap.Logger
}

// New builds a server over store.
func New(store *Store, cfg Config) *Server {
	log := logging.OrNop(cfg.Logger)
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Server{cfg: cfg, store: store, handler: NewHandler(store, cfg.Options, log), log: log}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe binds cfg.Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. The watcher, if configured, runs alongside and stops with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)

	if s.cfg.WatchPath != "" {
		w, err := NewWatcher(s.cfg.WatchPath, s.store, s.log)
		if err != nil {
			_ = ln.Close()
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
		s.log.Info("watching dataset", zap.String("path", s.cfg.WatchPath))
	}

	g.Go(func() error {
		s.log.Info("dashboard listening", zap.String("addr", "http://"+ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("dashboard stopped")
		return nil
	})
	return g.Wait()
}
