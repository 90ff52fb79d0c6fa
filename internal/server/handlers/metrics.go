package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "zipweather"

// Metrics owns a private registry so handlers and tests never share global state.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	lookupErrors   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	activeRequests prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total cache hits",
		}, []string{"cache"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total cache misses",
		}, []string{"cache"}),
		lookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_errors_total",
			Help:      "Total failed forecast lookups by error kind",
		}, []string{"kind"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Number of in-flight HTTP requests",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordCacheHit(ctx context.Context, cacheType string) {
	m.cacheHits.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) RecordCacheMiss(ctx context.Context, cacheType string) {
	m.cacheMisses.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) RecordLookupError(ctx context.Context, kind string) {
	m.lookupErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) RequestStarted() {
	m.activeRequests.Inc()
}

func (m *Metrics) RequestFinished(method, route, status string, seconds float64) {
	m.activeRequests.Dec()
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

type MetricsHandler struct {
	logger  *zap.Logger
	handler http.Handler
}

func NewMetricsHandler(logger *zap.Logger, metrics *Metrics) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		handler: promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{
			ErrorLog: zap.NewStdLog(logger),
		}),
	}
}

// ServeMetrics exposes the registry in the Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.handler.ServeHTTP(c.Writer, c.Request)
}
