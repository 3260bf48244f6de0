package pkglog

import "context"

type chainIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context.
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and propagated to downstream calls.
func GetCorrelationID(ctx context.Context) string {
	clm, ok := ctx.Value(chainIDContextKey{}).(string)
	if !ok {
		return "[invalid_chain_id]"
	}
	return clm
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}

type runIDContextKey struct{}

// GetRunID returns the pipeline run ID stored in the context, if any.
func GetRunID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(runIDContextKey{}).(int64)
	return id, ok
}

// SetRunID stores a pipeline run ID into the context so every log line
// emitted during one summary run can be grouped together.
func SetRunID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, runIDContextKey{}, id)
}
