package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// closeOrder lists the resources released after the HTTP server has drained.
// The summary module goes first so queued diagnostics reach the error log
// before anything else is torn down.
var closeOrder = []string{"Summary", "Rate Limiter", "Config"}

// Start serves HTTP in the background. The returned channel yields once,
// either a termination signal or a failure of the listener, and is then closed.
func (a *App) Start() <-chan error {
	done := make(chan error, 2)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			done <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		slog.Info("shutdown requested", "signal", (<-sig).String())
		done <- nil
	}()

	out := make(chan error)
	go func() {
		out <- <-done
		close(out)
	}()

	return out
}

// Stop cancels background work, drains HTTP, waits for in-flight summary
// runs, then releases resources in closeOrder. Every failure is logged and
// returned joined.
func (a *App) Stop(ctx context.Context) error {
	a.cancel()

	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		errs = append(errs, err)
	}

	slog.InfoContext(ctx, "waiting for background runs to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background run failed", "error", err)
		errs = append(errs, err)
	}

	for _, name := range closeOrder {
		closer, ok := a.closerFn[name]
		if !ok {
			continue
		}
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	slog.InfoContext(ctx, "application stopped")
	return errors.Join(errs...)
}
