package middleware

import (
	"strconv"
	"time"

	"volunteer_platform/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records in-flight, count and latency per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		metrics.RequestFinished(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
