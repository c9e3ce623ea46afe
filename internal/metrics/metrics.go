package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a dedicated registry
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	modelsLoaded    *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "housing",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "housing",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		modelsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "housing",
			Name:      "models_loaded",
			Help:      "1 when the pipeline for a mode is loaded, 0 otherwise.",
		}, []string{"mode"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.modelsLoaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// SetModelLoaded publishes whether a mode has a pipeline
func (m *Metrics) SetModelLoaded(mode string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1
	}
	m.modelsLoaded.WithLabelValues(mode).Set(v)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
