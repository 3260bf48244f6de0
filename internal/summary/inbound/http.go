package inbound

import (
	"context"

	"github.com/officialforloop/summary-report/internal/pkg/pkgrouter"
	"github.com/officialforloop/summary-report/internal/summary/entity"
)

type uc interface {
	Generate(ctx context.Context) (entity.Summary, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, mws ...pkgrouter.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/summary", end.Summary, mws...)
}
