package utils

import (
	"context"
	"sync"
	"time"
)

// GracefulShutdown runs a fixed, small set of registered shutdown funcs in
// LIFO order (the last-registered component is torn down first, since it
// typically depends on components registered before it) within a bound.
// The driver here registers at most two components (the worker pool, then
// an optional run-length log), so a single ordered pass is enough — unlike
// the teacher's version, which fanned every shutdown func out to its own
// goroutine, this one runs them one at a time so LIFO order is an actual
// guarantee rather than a comment contradicted by concurrent execution.
type GracefulShutdown struct {
	mu         sync.Mutex
	shutdownFn []func() error
	timeout    time.Duration
	logger     *Logger
}

// NewGracefulShutdown creates a new graceful shutdown manager
func NewGracefulShutdown(timeout time.Duration, logger *Logger) *GracefulShutdown {
	if logger == nil {
		logger = DefaultLogger("shutdown")
	}

	return &GracefulShutdown{
		shutdownFn: make([]func() error, 0),
		timeout:    timeout,
		logger:     logger,
	}
}

// Register registers a shutdown function
func (g *GracefulShutdown) Register(fn func() error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.shutdownFn = append(g.shutdownFn, fn)
}

// Shutdown runs every registered function in LIFO order, returning early
// with a timeout error if the bound elapses before all of them return; the
// remaining functions still run in the background goroutine. An
// individual function's error is logged but does not interrupt the rest of
// the sequence or cause Shutdown itself to return an error.
func (g *GracefulShutdown) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	fns := make([]func() error, len(g.shutdownFn))
	copy(fns, g.shutdownFn)
	g.mu.Unlock()

	g.logger.Info("starting graceful shutdown", Int("components", len(fns)))

	shutdownCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(fns) - 1; i >= 0; i-- {
			if err := fns[i](); err != nil {
				g.logger.Error("shutdown function failed", Int("index", i), Err(err))
			}
		}
	}()

	select {
	case <-done:
		g.logger.Info("graceful shutdown complete")
		return nil
	case <-shutdownCtx.Done():
		g.logger.Warn("graceful shutdown timed out")
		return WrapError(shutdownCtx.Err(), "graceful shutdown timed out")
	}
}
