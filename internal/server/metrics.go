package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the preview server's prometheus collectors on a private
// registry so tests can run servers side by side.
type metrics struct {
	registry        *prometheus.Registry
	rebuildsTotal   *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	requestsTotal   *prometheus.CounterVec
	reloadClients   prometheus.Gauge
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		rebuildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "langmatrix_rebuilds_total",
			Help: "Preview rebuilds by result.",
		}, []string{"result"}),
		rebuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "langmatrix_rebuild_duration_seconds",
			Help:    "Time spent rebuilding the site.",
			Buckets: prometheus.DefBuckets,
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "langmatrix_http_requests_total",
			Help: "HTTP requests served by the preview server.",
		}, []string{"code"}),
		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "langmatrix_livereload_clients",
			Help: "Connected livereload clients.",
		}),
	}
}
