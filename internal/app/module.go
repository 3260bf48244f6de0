package app

import (
	"log/slog"
	"os"

	"github.com/officialforloop/summary-report/internal/summary"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.summary.enabled") {
		closer, err := summary.New(summary.Dependency{
			Config:      a.config,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Context:     a.ctx,
			RunID:       a.runID,
			Metrics:     a.metrics,
			RateLimiter: a.limiter,
		})
		if err != nil {
			slog.Error("failed to init module summary", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.closerFn["Summary"] = closer
		}
	}
}
