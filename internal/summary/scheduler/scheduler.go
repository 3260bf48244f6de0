package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"github.com/officialforloop/summary-report/internal/summary/entity"
	"github.com/robfig/cron/v3"
)

type generator interface {
	Generate(ctx context.Context) (entity.Summary, error)
}

type Config struct {
	// Schedule is a standard five-field cron expression or a descriptor
	// such as "@every 5m".
	Schedule string
	Location *time.Location
}

// Scheduler regenerates the summary report on a cron schedule so the report
// file stays current even when nobody calls the HTTP endpoint.
type Scheduler struct {
	cron    *cron.Cron
	gen     generator
	rootCtx context.Context
}

func New(ctx context.Context, gen generator, cfg Config) (*Scheduler, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		gen:     gen,
		rootCtx: ctx,
	}

	if _, err := s.cron.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid summary schedule %q: %w", cfg.Schedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	ctx := s.rootCtx
	if ctx.Err() != nil {
		return
	}

	summary, err := s.gen.Generate(ctx)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "scheduled summary report refreshed", "total_users", summary.TotalUsers)
	case pkgerror.IsCode(err, pkgerror.CodeNoData):
		slog.InfoContext(ctx, "scheduled summary skipped, no valid data")
	default:
		slog.ErrorContext(ctx, "scheduled summary failed", "error", err)
	}
}
