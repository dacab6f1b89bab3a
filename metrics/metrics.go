// Package metrics collects and exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates sweep and HTTP counters on a private registry.
type Collector struct {
	registry *prometheus.Registry

	sweepPublished prometheus.Counter
	sweepErrors    prometheus.Counter
	sweepDuration  prometheus.Histogram
	httpResponses  *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sweepPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_sweep_published_total",
			Help: "Scheduled posts promoted to published by the sweep.",
		}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_sweep_errors_total",
			Help: "Sweep ticks that failed.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scheduler_sweep_duration_seconds",
			Help:    "Duration of sweep ticks.",
			Buckets: prometheus.DefBuckets,
		}),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	c.registry.MustRegister(c.sweepPublished, c.sweepErrors, c.sweepDuration, c.httpResponses)
	return c
}

func (c *Collector) RecordSweep(published int, duration time.Duration) {
	c.sweepPublished.Add(float64(published))
	c.sweepDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordSweepError() {
	c.sweepErrors.Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpResponses.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler serves the collector's registry at /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts every response by status code.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.RecordHTTPStatus(rec.status)
	})
}
