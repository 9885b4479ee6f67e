package logging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestGinMiddleware_LogsRequestWithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := observedLogger(zapcore.DebugLevel)

	var seenRequestID string
	r := gin.New()
	r.Use(GinMiddleware(log))
	r.GET("/api/v1/tiers", func(c *gin.Context) {
		seenRequestID = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tiers", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", seenRequestID)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/v1/tiers", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestGinMiddleware_GeneratesRequestIDAndClassifiesErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := observedLogger(zapcore.InfoLevel)

	notFound := shared.NewDomainError(shared.KindNotFound, "THING_NOT_FOUND", "missing")
	r := gin.New()
	r.Use(GinMiddleware(log))
	r.GET("/things/:id", func(c *gin.Context) {
		_ = c.Error(notFound)
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/1", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "not_found", fields["error_kind"])
	assert.Equal(t, "THING_NOT_FOUND", fields["error_code"])
}

type testEvent struct {
	shared.BaseEvent
}

func TestEventPublisher_PublishBatch(t *testing.T) {
	log, logs := observedLogger(zapcore.InfoLevel)
	publisher := NewEventPublisher(log)

	err := publisher.PublishBatch([]shared.DomainEvent{
		testEvent{shared.NewBaseEvent("customer.tier_changed", "c-1")},
		testEvent{shared.NewBaseEvent("card.issued", "card-1")},
	})

	require.NoError(t, err)
	entries := logs.FilterMessage("domain_event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "customer.tier_changed", entries[0].ContextMap()["event_type"])
	assert.Equal(t, "card-1", entries[1].ContextMap()["aggregate_id"])
}

func TestGormLogger_Trace(t *testing.T) {
	log, logs := observedLogger(zapcore.DebugLevel)
	gl := NewGormLogger(log)
	sql := func() (string, int64) { return "SELECT * FROM customers", 1 }

	t.Run("找不到資料不記錄", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("其他錯誤記錄為 error", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "SELECT * FROM customers", entries[0].ContextMap()["sql"])
	})

	t.Run("慢查詢記錄為 warn", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("Silent 模式不記錄", func(t *testing.T) {
		gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
		assert.Equal(t, 0, logs.Len())
	})
}
