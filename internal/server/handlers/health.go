package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CacheStatsProvider interface {
	Stats() map[string]interface{}
}

type HealthHandler struct {
	logger    *zap.Logger
	cache     CacheStatsProvider
	startTime time.Time
}

func NewHealthHandler(logger *zap.Logger, cache CacheStatsProvider) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	response := HealthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).String(),
	}
	if h.cache != nil {
		response.Cache = h.cache.Stats()
	}

	c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
