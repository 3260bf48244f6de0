package inbound

import (
	"context"
	"errors"
	"net/http"

	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"github.com/officialforloop/summary-report/internal/summary/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

// Summary regenerates the report from the data directory on every call.
func (h *HTTPEndpoint) Summary(ctx context.Context, r *http.Request) (any, error) {
	summary, err := h.uc.Generate(ctx)
	if err != nil {
		var perr *pkgerror.Error
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, pkgerror.NewServerMsg(err, usecase.MsgGenerationFailed)
	}

	return toSummaryResponse(summary), nil
}
