package middleware

import (
	"SocialPulse/internal/pkg/logger"
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 外部传入的 trace id 只接受短的字母数字串，避免污染日志
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if !traceIDPattern.MatchString(traceID) {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID))
		c.Header("X-Trace-ID", traceID)
		c.Next()
	}
}
