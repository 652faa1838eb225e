// Package metrics defines the Prometheus collectors for the webhook server
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the bot.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	MessagesTotal       *prometheus.CounterVec
	ResultsCount        prometheus.Histogram
	PredicatesApplied   *prometheus.CounterVec
	DatasetListings     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them on reg. The scrape handler
// serves whatever gatherer collects, normally the same registry.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "path"},
		),
		MessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_messages_total",
				Help: "Inbound messages by outcome (greeting, results, no_results).",
			},
			[]string{"outcome"},
		),
		ResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bot_results_count",
				Help:    "Number of listings returned per filtered message.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		PredicatesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_predicates_applied_total",
				Help: "How often each filter predicate was triggered by a message.",
			},
			[]string{"predicate"},
		),
		DatasetListings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_listings",
				Help: "Number of listings loaded at startup.",
			},
		),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MessagesTotal,
		m.ResultsCount,
		m.PredicatesApplied,
		m.DatasetListings,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for the gatherer.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
