// Package metrics holds the Prometheus collectors shared by the feed pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FeedRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promfeed_runs_total",
		Help: "Feed generation runs by dialect and outcome.",
	}, []string{"dialect", "status"})

	FeedRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promfeed_run_duration_seconds",
		Help:    "Wall time of a full feed generation run.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"dialect"})

	FeedOffers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "promfeed_offers",
		Help: "Offers emitted by the most recent successful run.",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promfeed_upstream_requests_total",
		Help: "Requests sent to the catalog API by endpoint and status code.",
	}, []string{"endpoint", "code"})

	UpstreamRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promfeed_upstream_retries_total",
		Help: "Retried catalog API requests by endpoint.",
	}, []string{"endpoint"})

	DataQualityWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promfeed_data_quality_warnings_total",
		Help: "Fallbacks applied while resolving offer fields, by kind.",
	}, []string{"kind"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
