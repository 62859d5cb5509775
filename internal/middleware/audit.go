package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/service"
)

type auditRecorder interface {
	Record(ctx context.Context, entry service.AuditEntry) error
}

// Audit creates a middleware that records audit logs after successful requests.
func Audit(recorder auditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if recorder == nil {
			c.Next()
			return
		}
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		_ = recorder.Record(c.Request.Context(), service.AuditEntry{
			SessionID:  SessionID(c),
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			Details: map[string]interface{}{
				"path":    c.FullPath(),
				"method":  c.Request.Method,
				"status":  c.Writer.Status(),
				"latency": time.Since(start).Milliseconds(),
			},
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
}
