package middleware

import (
	"strconv"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
