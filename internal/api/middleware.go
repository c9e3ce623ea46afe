package api

import (
	"net/http"
	"time"

	"housing/server/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const traceHeader = "X-Trace-ID"

// RequestLogger logs one line per request and tags it with a trace id,
// reusing the caller's X-Trace-ID when it is a valid UUID. Bodies are never
// logged.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Header(traceHeader, traceID)

		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"trace_id":    traceID,
			"http_method": c.Request.Method,
			"http_path":   c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("Request finished")
			return
		}
		entry.Info("Request finished")
	}
}

// RequestMetrics records request counts and latency by matched route
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a handler panic into a 500 with a JSON detail
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithField("panic", recovered).Error("Handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	})
}

// CORS allows the form front end to call the API from a browser
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", traceHeader}
	cfg.ExposeHeaders = []string{traceHeader}

	if len(allowedOrigins) == 0 || containsWildcard(allowedOrigins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
