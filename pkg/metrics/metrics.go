package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	serviceName string

	// HTTP слой самого сервиса
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Запросы к railway API
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed, partitioned by handler, method and status code.",
				ConstLabels: prometheus.Labels{
					"service": serviceName,
				},
			},
			[]string{"handler", "method", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds, partitioned by handler and method.",
				Buckets: prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{
					"service": serviceName,
				},
			},
			[]string{"handler", "method"},
		),
		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "railway_upstream_requests_total",
				Help: "Total number of requests sent to the railway API, partitioned by endpoint and outcome.",
				ConstLabels: prometheus.Labels{
					"service": serviceName,
				},
			},
			[]string{"endpoint", "status"},
		),
		UpstreamRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "railway_upstream_request_duration_seconds",
				Help:    "Railway API request latency in seconds, partitioned by endpoint.",
				Buckets: prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{
					"service": serviceName,
				},
			},
			[]string{"endpoint"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
	)

	return m
}

// ObserveHTTPRequest записывает метрики одного HTTP запроса к сервису
func (m *Metrics) ObserveHTTPRequest(handler, method, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(handler, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(handler, method).Observe(duration.Seconds())
}

// ObserveUpstreamRequest записывает метрики одного запроса к railway API
func (m *Metrics) ObserveUpstreamRequest(endpoint, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
