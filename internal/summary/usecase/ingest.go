package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/officialforloop/summary-report/internal/summary/entity"
	"golang.org/x/sync/errgroup"
)

type batch struct {
	aggregate   Aggregate
	diagnostics []entity.Diagnostic
	statuses    []entity.FileStatus
}

type fileResult struct {
	aggregate  Aggregate
	diagnostic *entity.Diagnostic
}

// ingest lists the source, rejects entries with the wrong extension and
// processes the candidates concurrently. Each file task only fills its own
// result slot; totals are reduced after every task has joined.
//
// Per-file problems become diagnostics. Only a listing failure or context
// cancellation makes ingest return an error.
func (u *Usecase) ingest(ctx context.Context) (batch, error) {
	names, err := u.source.List(ctx)
	if err != nil {
		return batch{}, err
	}

	var out batch
	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if filepath.Ext(name) == u.extension {
			candidates = append(candidates, name)
			continue
		}

		slog.WarnContext(ctx, "skip file with invalid format", "file", name)
		out.diagnostics = append(out.diagnostics, entity.Diagnostic{
			Time: u.clock.Now(),
			Kind: entity.DiagnosticInvalidFormat,
			File: name,
		})
		out.statuses = append(out.statuses, entity.FileStatusRejected)
	}

	results := make([]fileResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)

	for i, name := range candidates {
		g.Go(func() error {
			res, err := u.processFile(gctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batch{}, err
	}

	parts := make([]Aggregate, 0, len(results))
	for _, res := range results {
		if res.diagnostic != nil {
			out.diagnostics = append(out.diagnostics, *res.diagnostic)
			out.statuses = append(out.statuses, res.diagnostic.Status())
			continue
		}
		parts = append(parts, res.aggregate)
		out.statuses = append(out.statuses, entity.FileStatusOK)
	}
	out.aggregate = Merge(parts...)

	return out, nil
}

// processFile reads and validates a single candidate file. It returns an
// error only when ctx is done, so one bad file never aborts the batch.
func (u *Usecase) processFile(ctx context.Context, name string) (fileResult, error) {
	content, err := u.source.Read(ctx, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fileResult{}, ctxErr
		}

		slog.WarnContext(ctx, "failed to read file", "file", name, "error", err)
		return fileResult{diagnostic: &entity.Diagnostic{
			Time: u.clock.Now(),
			Kind: entity.DiagnosticReadFailed,
			File: name,
			Err:  err,
		}}, nil
	}

	users, err := decodeUsers(content)
	if err != nil {
		slog.WarnContext(ctx, "failed to decode file", "file", name, "error", err)
		return fileResult{diagnostic: &entity.Diagnostic{
			Time: u.clock.Now(),
			Kind: diagnosticKind(err),
			File: name,
			Err:  err,
		}}, nil
	}

	return fileResult{aggregate: Fold(users)}, nil
}
