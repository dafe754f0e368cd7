package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skillmatch"

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Matches         *prometheus.CounterVec
	GapAnalyses     prometheus.Counter
	FeedbackTotal   *prometheus.CounterVec
	CorpusReloads   *prometheus.CounterVec
	CorpusPostings  prometheus.Gauge
	CacheLookups    *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		Matches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "match_computations_total",
				Help:      "Candidate-versus-corpus match computations by kind",
			},
			[]string{"kind"},
		),
		GapAnalyses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gap_analyses_total",
			Help:      "Skill gap analyses performed",
		}),
		FeedbackTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feedback_total",
				Help:      "Career feedback responses by source",
			},
			[]string{"source"},
		),
		CorpusReloads: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corpus_reloads_total",
				Help:      "Corpus load attempts by outcome",
			},
			[]string{"outcome"},
		),
		CorpusPostings: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_postings",
			Help:      "Job postings in the active corpus snapshot",
		}),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "match_cache_lookups_total",
				Help:      "Match cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveReload records a corpus load attempt. postings is ignored on failure.
func (m *Metrics) ObserveReload(postings int, err error) {
	if err != nil {
		m.CorpusReloads.WithLabelValues("failure").Inc()
		return
	}
	m.CorpusReloads.WithLabelValues("success").Inc()
	m.CorpusPostings.Set(float64(postings))
}
