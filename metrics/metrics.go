// Package metrics records run measurements and pushes them to a
// Prometheus Pushgateway, the usual arrangement for batch jobs.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "ppodgraph"

// DefaultJob is the Pushgateway job name used when none is configured.
const DefaultJob = "ppodgraph"

// Recorder collects the metrics of one run in its own registry.
type Recorder struct {
	registry *prometheus.Registry
	logger   *slog.Logger
	pushURL  string
	job      string

	rows        *prometheus.CounterVec
	statements  prometheus.Counter
	problems    *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a recorder. An empty pushURL disables Push.
func NewRecorder(pushURL, job string, logger *slog.Logger) *Recorder {
	if job == "" {
		job = DefaultJob
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		pushURL:  pushURL,
		job:      job,
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Worksheet rows processed, by sheet and outcome.",
		}, []string{"sheet", "outcome"}),
		statements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Statements in the assembled graph.",
		}),
		problems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_errors_total",
			Help:      "Unknown lookup codes collected, by vocabulary.",
		}, []string{"vocabulary"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs, by result.",
		}, []string{"result"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
	r.registry.MustRegister(r.rows, r.statements, r.problems, r.runs, r.duration, r.lastSuccess)
	return r
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRow counts a processed row.
func (r *Recorder) ObserveRow(sheet, outcome string) {
	r.rows.WithLabelValues(sheet, outcome).Inc()
}

// ObserveStatements adds to the statement count.
func (r *Recorder) ObserveStatements(n int) {
	r.statements.Add(float64(n))
}

// ObserveProblem counts an unknown lookup code.
func (r *Recorder) ObserveProblem(vocabulary string) {
	r.problems.WithLabelValues(vocabulary).Inc()
}

// ObserveRun records the end of a run.
func (r *Recorder) ObserveRun(d time.Duration, success bool) {
	r.duration.Set(d.Seconds())
	if success {
		r.runs.WithLabelValues("success").Inc()
		r.lastSuccess.SetToCurrentTime()
		return
	}
	r.runs.WithLabelValues("failure").Inc()
}

// Push sends the registry to the Pushgateway, replacing the job's
// previous metrics. It does nothing when no URL is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if r.pushURL == "" {
		return nil
	}
	err := push.New(r.pushURL, r.job).Gatherer(r.registry).PushContext(ctx)
	if err != nil {
		return err
	}
	r.logger.Debug("Metrics pushed", "url", r.pushURL, "job", r.job)
	return nil
}
