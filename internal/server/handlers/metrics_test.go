package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMetricsRecorders(t *testing.T) {
	metrics := NewMetrics()
	ctx := context.Background()

	metrics.RecordCacheHit(ctx, "forecast")
	metrics.RecordCacheHit(ctx, "forecast")
	metrics.RecordCacheMiss(ctx, "forecast")
	metrics.RecordLookupError(ctx, "UPSTREAM_TIMEOUT")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.cacheHits.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheMisses.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.lookupErrors.WithLabelValues("UPSTREAM_TIMEOUT")))
}

func TestMetricsRequestLifecycle(t *testing.T) {
	metrics := NewMetrics()

	metrics.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.activeRequests))

	metrics.RequestFinished("GET", "/weather", "200", 0.02)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.activeRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpRequests.WithLabelValues("GET", "/weather", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.httpDuration))
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	first := NewMetrics()
	second := NewMetrics()

	first.RecordCacheHit(context.Background(), "forecast")

	assert.Equal(t, 0.0, testutil.ToFloat64(second.cacheHits.WithLabelValues("forecast")))
}

func TestServeMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics()
	metrics.RecordLookupError(context.Background(), "ADDRESS_REJECTED")

	engine := gin.New()
	engine.GET("/metrics", NewMetricsHandler(zaptest.NewLogger(t), metrics).ServeMetrics)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `zipweather_lookup_errors_total{kind="ADDRESS_REJECTED"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
