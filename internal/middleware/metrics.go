package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"kanban-api/internal/metrics"
)

// Metrics records request counts and latencies. The route template is
// used as the path label so IDs do not blow up cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		m.IncInFlight()
		start := time.Now()

		c.Next()

		m.DecInFlight()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
