package middleware

import (
	"log/slog"
	"time"

	"food-ordering-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxRequestID    = "requestID"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string { return c.GetString(ctxRequestID) }

// RequestLogger logs one line per request; server errors attached with
// c.Error are logged at error level.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if uid := c.GetString(ctxUserID); uid != "" {
			attrs = append(attrs, slog.String("user_id", uid))
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			if last := c.Errors.Last(); last != nil {
				attrs = append(attrs, logger.Err(last.Err))
			}
			log.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
		case status >= 400:
			log.LogAttrs(ctx, slog.LevelWarn, "request rejected", attrs...)
		default:
			log.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
		}
	}
}
