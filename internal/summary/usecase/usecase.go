package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"github.com/officialforloop/summary-report/internal/pkg/pkglog"
	"github.com/officialforloop/summary-report/internal/pkg/pkguid"
	"github.com/officialforloop/summary-report/internal/summary/entity"
)

const (
	MsgNoData           = "No valid JSON data found"
	MsgGenerationFailed = "An error occurred during summary report generation"

	DefaultExtension = ".txt"
	DefaultWorkers   = 8
)

// Source lists and reads the raw input files of one run.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// DiagnosticPublisher forwards per-file problems to the error log. Publish
// must not block; a publisher that cannot take a diagnostic drops it.
type DiagnosticPublisher interface {
	Publish(diag entity.Diagnostic) error
}

// ReportSink persists a finished summary.
type ReportSink interface {
	Save(ctx context.Context, summary entity.Summary) error
}

// Recorder receives run and file level measurements.
type Recorder interface {
	ObserveRun(outcome entity.RunOutcome, elapsed time.Duration, users int)
	ObserveFile(status entity.FileStatus)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Source      Source
	Diagnostics DiagnosticPublisher
	Report      ReportSink
	Metrics     Recorder
	Clock       Clock
	RunID       pkguid.NumberID

	Extension string
	Workers   int
	Timeout   time.Duration
}

type Usecase struct {
	source      Source
	diagnostics DiagnosticPublisher
	report      ReportSink
	metrics     Recorder
	clock       Clock
	runID       pkguid.NumberID

	extension string
	workers   int
	timeout   time.Duration
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	metrics := dep.Metrics
	if metrics == nil {
		metrics = noopRecorder{}
	}

	extension := dep.Extension
	if extension == "" {
		extension = DefaultExtension
	}

	workers := dep.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	return &Usecase{
		source:      dep.Source,
		diagnostics: dep.Diagnostics,
		report:      dep.Report,
		metrics:     metrics,
		clock:       clock,
		runID:       dep.RunID,
		extension:   extension,
		workers:     workers,
		timeout:     dep.Timeout,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type noopRecorder struct{}

func (noopRecorder) ObserveRun(entity.RunOutcome, time.Duration, int) {}

func (noopRecorder) ObserveFile(entity.FileStatus) {}

// Generate runs the whole pipeline: ingest every input file, publish the
// diagnostics, build the summary and persist it.
//
// It returns a CodeNoData business error when no valid user was found, in
// which case the report file is left untouched.
func (u *Usecase) Generate(ctx context.Context) (entity.Summary, error) {
	if u.source == nil || u.report == nil {
		return entity.Summary{}, pkgerror.NewServerMsg(errors.New("missing dependency"), MsgGenerationFailed)
	}

	startedAt := u.clock.Now()
	if u.runID != nil {
		ctx = pkglog.SetRunID(ctx, u.runID.Generate())
	}
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	batch, err := u.ingest(ctx)
	if err != nil {
		u.metrics.ObserveRun(entity.RunOutcomeFailed, u.clock.Now().Sub(startedAt), 0)
		slog.ErrorContext(ctx, "failed to ingest input files", "error", err)
		return entity.Summary{}, pkgerror.NewServerMsg(err, MsgGenerationFailed)
	}

	u.publish(ctx, batch.diagnostics)
	for _, status := range batch.statuses {
		u.metrics.ObserveFile(status)
	}

	if batch.aggregate.Users == 0 {
		u.metrics.ObserveRun(entity.RunOutcomeNoData, u.clock.Now().Sub(startedAt), 0)
		slog.InfoContext(ctx, "no valid users found", "files", len(batch.statuses))
		return entity.Summary{}, pkgerror.NewBusiness(MsgNoData, pkgerror.CodeNoData)
	}

	summary := BuildSummary(batch.aggregate)
	if err := u.report.Save(ctx, summary); err != nil {
		u.metrics.ObserveRun(entity.RunOutcomeFailed, u.clock.Now().Sub(startedAt), summary.TotalUsers)
		slog.ErrorContext(ctx, "failed to save summary report", "error", err)
		return entity.Summary{}, pkgerror.NewServerMsg(err, MsgGenerationFailed)
	}

	elapsed := u.clock.Now().Sub(startedAt)
	u.metrics.ObserveRun(entity.RunOutcomeSuccess, elapsed, summary.TotalUsers)
	slog.InfoContext(ctx, "summary report generated",
		"total_users", summary.TotalUsers,
		"average_age", summary.AverageAge,
		"files", len(batch.statuses),
		"diagnostics", len(batch.diagnostics),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return summary, nil
}

// publish hands every diagnostic to the error log. Rejected diagnostics are
// logged and never fail or delay the run.
func (u *Usecase) publish(ctx context.Context, diags []entity.Diagnostic) {
	if u.diagnostics == nil {
		return
	}

	for _, diag := range diags {
		if err := u.diagnostics.Publish(diag); err != nil {
			slog.WarnContext(ctx, "diagnostic dropped", "file", diag.File, "kind", diag.Kind, "error", err)
		}
	}
}
