package app

import (
	"context"
	"net/http"

	"github.com/officialforloop/summary-report/internal/pkg/pkgconfig"
	"github.com/officialforloop/summary-report/internal/pkg/pkglog"
	"github.com/officialforloop/summary-report/internal/pkg/pkgrouter"
	"github.com/officialforloop/summary-report/internal/pkg/pkgroutine"
	"github.com/officialforloop/summary-report/internal/pkg/pkguid"
	"github.com/officialforloop/summary-report/internal/summary/metrics"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	runID     pkguid.NumberID
	goroutine *pkgroutine.Manager
	metrics   *metrics.Prometheus
	limiter   pkgrouter.RateLimiter

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// shutdown hooks keyed by component name
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:      ctx,
		cancel:   cancel,
		closerFn: map[string]func(context.Context) error{},
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
