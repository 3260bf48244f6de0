package inbound

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"github.com/officialforloop/summary-report/internal/summary/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	summary entity.Summary
	err     error
}

func (s stubUsecase) Generate(ctx context.Context) (entity.Summary, error) {
	return s.summary, s.err
}

func TestSummaryHandlerWrapsUnknownErrors(t *testing.T) {
	end := &HTTPEndpoint{uc: stubUsecase{err: errors.New("boom")}}

	_, err := end.Summary(context.Background(), httptest.NewRequest(http.MethodGet, "/summary", nil))
	require.Error(t, err)

	var perr *pkgerror.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode())
	assert.Equal(t, "An error occurred during summary report generation", perr.Msg())
}

func TestSummaryHandlerNeverReturnsNullArrays(t *testing.T) {
	end := &HTTPEndpoint{uc: stubUsecase{summary: entity.Summary{TotalUsers: 1, AverageAge: 20}}}

	resp, err := end.Summary(context.Background(), httptest.NewRequest(http.MethodGet, "/summary", nil))
	require.NoError(t, err)

	got, ok := resp.(SummaryResponse)
	require.True(t, ok)
	assert.NotNil(t, got.CountryLabels)
	assert.NotNil(t, got.CountryData)
}
