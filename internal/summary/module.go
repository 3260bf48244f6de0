package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/officialforloop/summary-report/internal/pkg/pkgconfig"
	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"github.com/officialforloop/summary-report/internal/pkg/pkgrouter"
	"github.com/officialforloop/summary-report/internal/pkg/pkgroutine"
	"github.com/officialforloop/summary-report/internal/pkg/pkguid"
	"github.com/officialforloop/summary-report/internal/summary/event"
	"github.com/officialforloop/summary-report/internal/summary/inbound"
	"github.com/officialforloop/summary-report/internal/summary/scheduler"
	"github.com/officialforloop/summary-report/internal/summary/store"
	"github.com/officialforloop/summary-report/internal/summary/usecase"
)

type Dependency struct {
	Config      pkgconfig.Config
	Goroutine   *pkgroutine.Manager
	Router      *pkgrouter.Router
	Context     context.Context
	RunID       pkguid.NumberID
	Metrics     usecase.Recorder
	RateLimiter pkgrouter.RateLimiter
}

func New(dep Dependency) (func(context.Context) error, error) {
	cfg := dep.Config

	bus := event.NewBus(int(cfg.GetInt("summary.diagnostics.buffer")))
	consumer := event.NewDiagnosticConsumer(bus, store.NewErrorLog(cfg.GetString("summary.error_log")), event.ConsumerConfig{
		MaxRetries:  int(cfg.GetInt("summary.diagnostics.max_retries")),
		BaseBackoff: 50 * time.Millisecond,
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Source:      store.NewDirSource(cfg.GetString("summary.data_dir")),
		Diagnostics: bus,
		Report:      store.NewReportFile(cfg.GetString("summary.report_file")),
		Metrics:     dep.Metrics,
		RunID:       dep.RunID,
		Extension:   cfg.GetString("summary.extension"),
		Workers:     int(cfg.GetInt("summary.workers")),
		Timeout:     cfg.GetDuration("summary.timeout"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, pkgrouter.MiddlewareRateLimit(dep.RateLimiter))

	var sched *scheduler.Scheduler
	if expr := cfg.GetString("summary.schedule"); expr != "" {
		var err error
		sched, err = scheduler.New(dep.Context, uc, scheduler.Config{Schedule: expr})
		if err != nil {
			_ = consumer.Stop(context.Background())
			return nil, err
		}
		sched.Start()
		slog.Info("summary scheduler started", "schedule", expr)
	}

	if cfg.GetBool("summary.generate_on_start") && dep.Goroutine != nil {
		dep.Goroutine.Go(dep.Context, func(ctx context.Context) error {
			if _, err := uc.Generate(ctx); err != nil && !pkgerror.IsCode(err, pkgerror.CodeNoData) {
				return err
			}
			return nil
		})
	}

	return func(ctx context.Context) error {
		var errs []error
		if sched != nil {
			errs = append(errs, sched.Stop(ctx))
		}
		errs = append(errs, consumer.Stop(ctx))
		return errors.Join(errs...)
	}, nil
}
