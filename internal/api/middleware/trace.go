package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"social-stats-service/pkg/logger"
)

const (
	// TraceIDHeader 追踪ID的HTTP头
	TraceIDHeader = "X-Trace-ID"
)

// Trace 为每个请求添加追踪ID，已有的追踪ID会被沿用
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = logger.GenerateTraceID()
		}

		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}

// RequestLogger 请求日志
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}).InfoContext(c.Request.Context(), "请求完成")
	}
}
