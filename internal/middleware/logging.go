package middleware

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

var requestCounter uint64

// RequestMetrics holds in-memory request metrics
type RequestMetrics struct {
	mu                 sync.RWMutex
	TotalRequests      uint64
	RequestsByEndpoint map[string]uint64
	RequestsByStatus   map[string]uint64
}

var metrics = &RequestMetrics{
	RequestsByEndpoint: make(map[string]uint64),
	RequestsByStatus:   make(map[string]uint64),
}

// GetMetrics returns the current request metrics
func GetMetrics() RequestMetrics {
	metrics.mu.RLock()
	defer metrics.mu.RUnlock()
	return RequestMetrics{
		TotalRequests:      metrics.TotalRequests,
		RequestsByEndpoint: copyMap(metrics.RequestsByEndpoint),
		RequestsByStatus:   copyMap(metrics.RequestsByStatus),
	}
}

// copyMap creates a copy of the map
func copyMap(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// StructuredLoggingMiddleware provides structured logging with a request id,
// request latency, and query parameters
func StructuredLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = fmt.Sprintf("%d-%d", start.UnixNano(), atomic.AddUint64(&requestCounter, 1))
		}
		c.Header(requestIDHeader, requestID)

		logger.Info("request started",
			"request_id", requestID,
			"method", method,
			"path", path,
			"query_params", c.Request.URL.Query().Encode(),
			"remote_addr", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		// Group by route pattern so path parameters don't blow up the
		// endpoint map; fall back to the raw path for unmatched routes.
		endpoint := method + " " + c.FullPath()
		if c.FullPath() == "" {
			endpoint = method + " " + path
		}

		metrics.mu.Lock()
		metrics.TotalRequests++
		metrics.RequestsByEndpoint[endpoint]++
		metrics.RequestsByStatus[statusClass(statusCode)]++
		metrics.mu.Unlock()

		logger.Info("request completed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status_code", statusCode,
			"latency_ms", latency.Milliseconds(),
			"latency", latency.String(),
			"bytes_written", c.Writer.Size(),
		)

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.Error("request error",
					"request_id", requestID,
					"method", method,
					"path", path,
					"error", err.Error(),
					"latency_ms", latency.Milliseconds(),
				)
			}
		}
	}
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
