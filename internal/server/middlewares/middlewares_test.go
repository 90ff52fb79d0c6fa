package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/zipweather/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRequestIDMiddlewareSetsContext(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware())

	var fromContext, fromGin string
	engine.GET("/ping", func(c *gin.Context) {
		fromContext = logger.RequestIDFromContext(c.Request.Context())
		fromGin = c.GetString(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	rec := serve(engine, "/ping")

	header := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, header)
	assert.Equal(t, header, fromContext)
	assert.Equal(t, header, fromGin)
}

func TestLoggingMiddlewareLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	engine := gin.New()
	engine.Use(RequestIDMiddleware(), LoggingMiddleware(log, "2006-01-02T15:04:05Z07:00", true))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	engine.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(engine, "/ok?zip=78701")
	serve(engine, "/bad")
	serve(engine, "/fail")

	entries := logs.FilterMessage("HTTP request").AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.Equal(t, "zip=78701", fields["query"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	engine := gin.New()
	engine.Use(RecoveryMiddleware(zap.New(core), false))
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := serve(engine, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal error","code":"INTERNAL"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("HTTP panic recovered").Len())
}

type recordedRequest struct {
	method, route, status string
}

type fakeRecorder struct {
	active   int
	requests []recordedRequest
}

func (r *fakeRecorder) RequestStarted() { r.active++ }

func (r *fakeRecorder) RequestFinished(method, route, status string, seconds float64) {
	r.active--
	r.requests = append(r.requests, recordedRequest{method, route, status})
}

func TestMetricsMiddleware(t *testing.T) {
	recorder := &fakeRecorder{}

	engine := gin.New()
	engine.Use(MetricsMiddleware(recorder))
	engine.GET("/weather", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, "/weather?zip=1")
	serve(engine, "/metrics")
	serve(engine, "/missing")

	assert.Equal(t, 0, recorder.active)
	assert.Equal(t, []recordedRequest{
		{"GET", "/weather", "200"},
		{"GET", "unmatched", "404"},
	}, recorder.requests)
}
