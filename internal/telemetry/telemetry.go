// Package telemetry exports Prometheus metrics for the stacklens service:
// corpus size at load time and per-operation analysis timings.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all stacklens Prometheus metrics.
type Metrics struct {
	// Corpus metrics, set once after the load completes
	CorpusThreads      prometheus.Gauge
	CorpusSkippedLines prometheus.Gauge

	// Analysis metrics, labeled by operation
	// (pattern_frequency, cooccurrence, topic_trend, topic_activity, solvable)
	AnalysisDuration *prometheus.HistogramVec
	AnalysisRequests *prometheus.CounterVec
	ThreadsFiltered  *prometheus.CounterVec
}

// NewMetrics registers all metrics with the default registry. Call once per
// process; promauto panics on duplicate registration.
func NewMetrics() *Metrics {
	return &Metrics{
		CorpusThreads: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stacklens_corpus_threads",
			Help: "Number of threads loaded into the in-memory corpus",
		}),
		CorpusSkippedLines: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stacklens_corpus_skipped_lines",
			Help: "Number of malformed corpus lines skipped during load",
		}),
		AnalysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stacklens_analysis_duration_seconds",
			Help:    "Time to run one analysis over the corpus",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		AnalysisRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stacklens_analysis_requests_total",
			Help: "Total analysis runs by operation",
		}, []string{"operation"}),
		ThreadsFiltered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stacklens_threads_filtered_total",
			Help: "Threads that passed an operation's upstream filter",
		}, []string{"operation"}),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// SetCorpusStats records the outcome of the corpus load.
func (m *Metrics) SetCorpusStats(threads, skipped int) {
	m.CorpusThreads.Set(float64(threads))
	m.CorpusSkippedLines.Set(float64(skipped))
}

// ObserveAnalysis records one completed analysis run.
func (m *Metrics) ObserveAnalysis(operation string, d time.Duration) {
	m.AnalysisRequests.WithLabelValues(operation).Inc()
	m.AnalysisDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddThreadsFiltered records how many threads an operation's filter kept.
func (m *Metrics) AddThreadsFiltered(operation string, n int) {
	m.ThreadsFiltered.WithLabelValues(operation).Add(float64(n))
}
