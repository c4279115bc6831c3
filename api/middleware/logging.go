package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/internal/utils"
)

// RequestLoggerMiddleware writes one structured line per request
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestId", c.GetString(utils.RequestIdKey)),
		}
		if span := opentracing.SpanFromContext(c.Request.Context()); span != nil {
			if traceId := tracing.GetTraceId(span); traceId != "" {
				fields = append(fields, zap.String("traceId", traceId))
			}
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Logger().Error("request completed", fields...)
		case status >= 400:
			log.Logger().Warn("request completed", fields...)
		default:
			log.Logger().Info("request completed", fields...)
		}
	}
}
