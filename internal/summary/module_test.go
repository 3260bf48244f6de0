package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/officialforloop/summary-report/internal/pkg/pkgrouter"
	"github.com/officialforloop/summary-report/internal/pkg/pkgroutine"
	"github.com/officialforloop/summary-report/internal/pkg/pkguid"
	"github.com/officialforloop/summary-report/internal/summary/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapConfig map[string]any

func (m mapConfig) GetInt(key string) int64 {
	v, _ := m[key].(int)
	return int64(v)
}

func (m mapConfig) GetBool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

func (m mapConfig) GetFloat(key string) float64 {
	v, _ := m[key].(float64)
	return v
}

func (m mapConfig) GetString(key string) string {
	v, _ := m[key].(string)
	return v
}

func (m mapConfig) GetDuration(key string) time.Duration {
	v, _ := m[key].(time.Duration)
	return v
}

func (m mapConfig) GetArray(key string) []string {
	return strings.Split(m.GetString(key), ",")
}

func (m mapConfig) Close() error {
	return nil
}

func testConfig(t *testing.T) (mapConfig, string) {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.txt"),
		[]byte(`[{"id":1,"name":"Al","email":"a@x.com","age":30,"country":"US"}]`), 0o600))

	return mapConfig{
		"summary.data_dir":                dataDir,
		"summary.extension":               ".txt",
		"summary.error_log":               filepath.Join(root, "error_log.txt"),
		"summary.report_file":             filepath.Join(root, "summary_report.txt"),
		"summary.workers":                 2,
		"summary.timeout":                 5 * time.Second,
		"summary.diagnostics.buffer":      8,
		"summary.diagnostics.max_retries": 1,
	}, root
}

func TestModuleServesSummary(t *testing.T) {
	cfg, root := testConfig(t)
	cfg["summary.generate_on_start"] = true

	runner := pkgroutine.NewManager(2)
	router := pkgrouter.NewRouter(pkguid.NewUUID())
	recorder := metrics.NewPrometheus()
	ids, err := pkguid.NewSnowflake()
	require.NoError(t, err)

	closer, err := New(Dependency{
		Config:    cfg,
		Goroutine: runner,
		Router:    router,
		Context:   context.Background(),
		RunID:     ids,
		Metrics:   recorder,
	})
	require.NoError(t, err)
	require.NoError(t, runner.Wait())

	_, err = os.Stat(filepath.Join(root, "summary_report.txt"))
	require.NoError(t, err, "startup run should write the report")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(1), body["totalUsers"])
	assert.Equal(t, float64(30), body["averageAge"])

	series, err := testutil.GatherAndCount(recorder.Registry(), "summary_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series, "both runs succeed so only the SUCCESS series exists")
	require.NoError(t, closer(context.Background()))
}

func TestModuleAppliesRateLimit(t *testing.T) {
	cfg, _ := testConfig(t)
	limiter, stop := pkgrouter.NewTokenBucketLimiter(0.001, 1, time.Minute)
	defer stop()

	router := pkgrouter.NewRouter(nil)
	closer, err := New(Dependency{
		Config:      cfg,
		Router:      router,
		Context:     context.Background(),
		RateLimiter: limiter,
	})
	require.NoError(t, err)
	defer func() { _ = closer(context.Background()) }()

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestModuleRejectsBadSchedule(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg["summary.schedule"] = "every now and then"

	_, err := New(Dependency{
		Config:  cfg,
		Router:  pkgrouter.NewRouter(nil),
		Context: context.Background(),
	})
	require.Error(t, err)
}

func TestModuleStartsScheduler(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg["summary.schedule"] = "@every 1h"

	closer, err := New(Dependency{
		Config:  cfg,
		Router:  pkgrouter.NewRouter(nil),
		Context: context.Background(),
	})
	require.NoError(t, err)
	require.NoError(t, closer(context.Background()))
}
