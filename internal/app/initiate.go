package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/officialforloop/summary-report/internal/pkg/pkgconfig"
	"github.com/officialforloop/summary-report/internal/pkg/pkgrouter"
	"github.com/officialforloop/summary-report/internal/pkg/pkgroutine"
	"github.com/officialforloop/summary-report/internal/pkg/pkguid"
	"github.com/officialforloop/summary-report/internal/summary/metrics"
	"github.com/rs/cors"
)

func configDefaults() map[string]any {
	return map[string]any{
		"tz":                              "UTC",
		"server.address.http":             ":3001",
		"server.cors.allowed_origins":     "*",
		"modules.summary.enabled":         true,
		"summary.data_dir":                "./data",
		"summary.extension":               ".txt",
		"summary.error_log":               "./error_log.txt",
		"summary.report_file":             "./summary_report.txt",
		"summary.workers":                 8,
		"summary.timeout":                 "30s",
		"summary.schedule":                "",
		"summary.generate_on_start":       false,
		"summary.diagnostics.buffer":      256,
		"summary.diagnostics.max_retries": 3,
		"ratelimit.enabled":               true,
		"ratelimit.refill_per_second":     5,
		"ratelimit.burst":                 20,
	}
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViperWithDefaults(path, configDefaults())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()
	a.metrics = metrics.NewPrometheus()

	runID, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init run id generator", "error", err)
		os.Exit(1)
	}
	a.runID = runID

	if a.config.GetBool("ratelimit.enabled") {
		limiter, stop := pkgrouter.NewTokenBucketLimiter(
			a.config.GetFloat("ratelimit.refill_per_second"),
			int(a.config.GetInt("ratelimit.burst")),
			30*time.Minute,
		)
		a.limiter = limiter
		a.closerFn["Rate Limiter"] = func(context.Context) error {
			stop()
			return nil
		}
	}
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.HandleBare(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
