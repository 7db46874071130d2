// Package middleware provides the gin middleware shared across the
// pricing HTTP surface: request-id propagation, structured access
// logging and panic recovery.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/white07S/OptionPricing/pkg/logger"
)

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

// RequestID assigns a request id (from X-Request-ID if present,
// otherwise a fresh UUID) and stores it on the gin context and the
// request's context.Context for downstream logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// AccessLog logs two structured lines per request, one before and one
// after handling, in the same start/duration/status shape the rest of the
// service's request-scoped logs use.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		log := logger.FromContext(c.Request.Context())
		log.Info("http request started", "method", method, "path", path, "client_ip", c.ClientIP())

		c.Next()

		log.Info("http request completed",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Recovery turns a panic in a downstream handler into a 500 response
// instead of taking the process down, logging the recovered value.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context()).Error("panic recovered", "error", r)
				c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
