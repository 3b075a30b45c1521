package middleware

import (
	"strconv"
	"time"

	"ninetytozero-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency by matched route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
