package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	analyzesTotal  *prometheus.CounterVec
	refreshesTotal *prometheus.CounterVec
	refreshedBars  *prometheus.GaugeVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analyzesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seasonpulse_analyzes_total",
				Help: "Total number of analysis requests served",
			},
			[]string{"symbol", "filter"},
		),
		refreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seasonpulse_refreshes_total",
				Help: "Total number of symbol data refreshes",
			},
			[]string{"symbol"},
		),
		refreshedBars: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "seasonpulse_weekly_bars",
				Help: "Weekly bar count produced by the last refresh",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seasonpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seasonpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalyze records a served analysis request.
func (r *Recorder) RecordAnalyze(symbol, filter string) {
	r.analyzesTotal.WithLabelValues(symbol, filter).Inc()
}

// RecordRefresh records a completed refresh and its bar count.
func (r *Recorder) RecordRefresh(symbol string, bars int) {
	r.refreshesTotal.WithLabelValues(symbol).Inc()
	r.refreshedBars.WithLabelValues(symbol).Set(float64(bars))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
