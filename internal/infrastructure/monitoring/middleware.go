package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection. Requests are
// labelled by route template so unknown paths share one series.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(c.Request.Method, path, status, time.Since(start), reqSize, respSize)
	}
}

// Timer measures a flow engine call
type Timer struct {
	start   time.Time
	metrics *Metrics
	client  string
	method  string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, client, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		client:  client,
		method:  method,
	}
}

// Stop records the elapsed time under status
func (t *Timer) Stop(status string) time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordRelayCall(t.client, t.method, status, duration)
	return duration
}
