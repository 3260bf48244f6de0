package metrics

import (
	"net/http"
	"time"

	"github.com/officialforloop/summary-report/internal/summary/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus records summary pipeline metrics.
//
// Exposed series:
//   - summary_runs_total{outcome}: pipeline runs by outcome (SUCCESS, NO_DATA, FAILED)
//   - summary_run_duration_seconds: wall time of one pipeline run
//   - summary_files_total{status}: input files by status (OK, REJECTED, FAILED)
//   - summary_last_total_users: total users of the last successful run
//   - summary_last_success_timestamp_seconds: unix time of the last successful run
type Prometheus struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	files       *prometheus.CounterVec
	lastUsers   prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewPrometheus builds the collectors and registers them, together with the
// Go runtime and process collectors, on a dedicated registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summary_runs_total",
			Help: "Total number of summary pipeline runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "summary_run_duration_seconds",
			Help:    "Duration of summary pipeline runs.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30},
		}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summary_files_total",
			Help: "Total number of input files seen by status.",
		}, []string{"status"}),
		lastUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summary_last_total_users",
			Help: "Total users counted by the last successful run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summary_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful run.",
		}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.runs,
		p.duration,
		p.files,
		p.lastUsers,
		p.lastSuccess,
	)

	return p
}

func (p *Prometheus) ObserveRun(outcome entity.RunOutcome, elapsed time.Duration, users int) {
	p.runs.WithLabelValues(string(outcome)).Inc()
	p.duration.Observe(elapsed.Seconds())

	if outcome == entity.RunOutcomeSuccess {
		p.lastUsers.Set(float64(users))
		p.lastSuccess.SetToCurrentTime()
	}
}

func (p *Prometheus) ObserveFile(status entity.FileStatus) {
	p.files.WithLabelValues(string(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
