package logging

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// RequestIDHeader 請求追蹤標頭
const RequestIDHeader = "X-Request-Id"

// GinMiddleware 記錄每個 HTTP 請求，並把 request id 放進 request context
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := ensureRequestID(c)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields,
				zap.String("error_kind", string(shared.KindOf(last.Err))),
				zap.String("error_code", string(shared.CodeOf(last.Err))),
				zap.Error(last.Err),
			)
		}

		log := WithContext(c.Request.Context(), base)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http_request", fields...)
		case strings.EqualFold(route, "/metrics") || strings.EqualFold(route, "/health"):
			log.Debug("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

func ensureRequestID(c *gin.Context) string {
	requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set("request_id", requestID)
	c.Header(RequestIDHeader, requestID)
	return requestID
}
