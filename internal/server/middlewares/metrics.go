package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HTTPMetricsRecorder interface {
	RequestStarted()
	RequestFinished(method, route, status string, seconds float64)
}

const metricsPath = "/metrics"

func MetricsMiddleware(recorder HTTPMetricsRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		recorder.RequestStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		recorder.RequestFinished(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
