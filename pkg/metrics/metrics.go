package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderlab",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orderlab",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	prometheus.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// PlacementMetrics counts workflow results by outcome label
// (placed / validation_error / pricing_error / service_error).
type PlacementMetrics struct {
	Placements *prometheus.CounterVec
}

func NewPlacementMetrics(service string) *PlacementMetrics {
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderlab",
		Subsystem: service,
		Name:      "order_placements_total",
		Help:      "Total number of order placement attempts by outcome.",
	}, []string{"outcome"})

	prometheus.MustRegister(placements)
	return &PlacementMetrics{Placements: placements}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
