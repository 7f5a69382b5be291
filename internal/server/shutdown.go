package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"supermarket-dashboard/internal/config"
)

// GracefulServer runs an http.Server next to background tasks and stops
// everything on SIGINT, SIGTERM or context cancellation.
type GracefulServer struct {
	server     *http.Server
	logger     *slog.Logger
	config     *config.Config
	shutdownFn []func(ctx context.Context) error
	background []func(ctx context.Context) error
	mu         sync.RWMutex
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, cfg *config.Config) *GracefulServer {
	return &GracefulServer{
		server: server,
		logger: logger,
		config: cfg,
	}
}

// RegisterShutdownHook adds fn to the functions run while the server drains.
func (gs *GracefulServer) RegisterShutdownHook(fn func(ctx context.Context) error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.shutdownFn = append(gs.shutdownFn, fn)
}

// RegisterBackground adds a task that runs until the server stops. The task
// must return once its context is done.
func (gs *GracefulServer) RegisterBackground(fn func(ctx context.Context) error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.background = append(gs.background, fn)
}

func (gs *GracefulServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", gs.server.Addr, err)
	}
	return gs.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled or a shutdown signal
// arrives, then shuts down within the configured timeout.
func (gs *GracefulServer) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gs.mu.RLock()
	background := append([]func(context.Context) error(nil), gs.background...)
	gs.mu.RUnlock()

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		gs.logger.Info("starting server",
			"addr", ln.Addr().String(),
			"read_timeout", gs.config.Server.ReadTimeout,
			"write_timeout", gs.config.Server.WriteTimeout,
		)
		if err := gs.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	for _, task := range background {
		eg.Go(func() error {
			return task(egctx)
		})
	}

	eg.Go(func() error {
		<-egctx.Done()
		gs.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gs.config.Server.ShutdownTimeout)
		defer cancel()

		return gs.shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (gs *GracefulServer) shutdown(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown",
		"timeout", gs.config.Server.ShutdownTimeout,
	)

	gs.mu.RLock()
	hooks := append([]func(ctx context.Context) error(nil), gs.shutdownFn...)
	gs.mu.RUnlock()

	var eg errgroup.Group

	for i, hook := range hooks {
		eg.Go(func() error {
			gs.logger.Debug("executing shutdown hook", "hook_index", i)
			if err := hook(ctx); err != nil {
				gs.logger.Error("shutdown hook failed",
					"hook_index", i,
					"error", err,
				)
				return fmt.Errorf("shutdown hook %d failed: %w", i, err)
			}
			gs.logger.Debug("shutdown hook completed", "hook_index", i)
			return nil
		})
	}

	eg.Go(func() error {
		gs.logger.Info("stopping HTTP server")
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.logger.Error("HTTP server shutdown failed", "error", err)
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		gs.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	gs.logger.Info("graceful shutdown completed")
	return nil
}
