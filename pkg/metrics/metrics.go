package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus collectors for the screener
// ⭐ SSOT: 모든 메트릭은 이 구조체를 통해서만 기록
//
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	SubFetches   *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
	BreakerState *prometheus.GaugeVec

	RunDuration prometheus.Histogram
	RunRecords  *prometheus.CounterVec
}

// New creates a registry with every collector registered
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_http_requests_total",
				Help: "Outbound HTTP requests by host and outcome",
			},
			[]string{"host", "outcome"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_http_request_duration_seconds",
				Help:    "Outbound HTTP request duration including retries",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"host"},
		),

		SubFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_subfetch_total",
				Help: "Per-symbol collaborator calls by source and result",
			},
			[]string{"source", "result"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_run_cache_lookups_total",
				Help: "Run-scoped memo cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),

		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "screener_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),

		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screener_run_duration_seconds",
				Help:    "Duration of a full extract and rank run",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),

		RunRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_run_records_total",
				Help: "Records produced per run by status (ranked, unavailable)",
			},
			[]string{"status"},
		),
	}

	r.reg.MustRegister(
		r.HTTPRequests,
		r.HTTPDuration,
		r.SubFetches,
		r.CacheLookups,
		r.BreakerState,
		r.RunDuration,
		r.RunRecords,
	)

	return r
}

// Handler exposes the registry in Prometheus text format
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying gatherer (used by tests)
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveHTTP records one outbound request
func (r *Registry) ObserveHTTP(host, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(host, outcome).Inc()
	r.HTTPDuration.WithLabelValues(host).Observe(d.Seconds())
}

// ObserveSubFetch records one collaborator call (history, fundamentals, ownership)
func (r *Registry) ObserveSubFetch(source string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.SubFetches.WithLabelValues(source, result).Inc()
}

// ObserveCache records a memo cache lookup
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.CacheLookups.WithLabelValues("miss").Inc()
}

// SetBreakerState records the state of a named circuit breaker
func (r *Registry) SetBreakerState(name string, state int) {
	if r == nil {
		return
	}
	r.BreakerState.WithLabelValues(name).Set(float64(state))
}

// ObserveRun records the outcome of one batch run
func (r *Registry) ObserveRun(d time.Duration, ranked, unavailable int) {
	if r == nil {
		return
	}
	r.RunDuration.Observe(d.Seconds())
	r.RunRecords.WithLabelValues("ranked").Add(float64(ranked))
	r.RunRecords.WithLabelValues("unavailable").Add(float64(unavailable))
}
