package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/platform/metrics"
)

// PrometheusMiddleware records request counts and latency per route. The
// route template (c.FullPath) is used instead of the raw URL so path
// parameters do not explode label cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
