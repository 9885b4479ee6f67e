// Package metrics Prometheus 指標：HTTP 請求、交易來源呼叫、領域事件
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loyalty"

// Metrics 獨立的 Registry（不使用全域 DefaultRegisterer，測試可重複建立）
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	sourceDuration *prometheus.HistogramVec
	sourceErrors   *prometheus.CounterVec
	sourceSkipped  *prometheus.CounterVec
	domainEvents   *prometheus.CounterVec
}

// New 建立並註冊所有指標
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ledger_source_duration_seconds",
			Help:      "Latency of reading transactions from a ledger source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		sourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_source_errors_total",
			Help:      "Failed ledger source reads by source and error code.",
		}, []string{"source", "code"}),
		sourceSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_source_records_skipped_total",
			Help:      "External ledger records skipped or coerced by source and reason.",
		}, []string{"source", "reason"}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Published domain events by type.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.sourceDuration,
		m.sourceErrors,
		m.sourceSkipped,
		m.domainEvents,
	)
	return m
}

// Registry 供測試與額外 collector 使用
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler GET /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware 記錄請求數與延遲（以路由樣板為 label，避免 ID 造成高基數）
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ===========================
// 交易來源
// ===========================

type instrumentedSource struct {
	next ledger.SourceAdapter
	m    *Metrics
}

// InstrumentSources 為每個來源加上延遲與錯誤指標，順序不變
func (m *Metrics) InstrumentSources(sources []ledger.SourceAdapter) []ledger.SourceAdapter {
	out := make([]ledger.SourceAdapter, len(sources))
	for i, s := range sources {
		out[i] = &instrumentedSource{next: s, m: m}
	}
	return out
}

func (s *instrumentedSource) Name() string { return s.next.Name() }

func (s *instrumentedSource) ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	start := time.Now()
	txs, err := s.next.ListCompletedTransactions(ctx, customerID)
	s.m.sourceDuration.WithLabelValues(s.next.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		code := string(shared.CodeOf(err))
		if code == "" {
			code = "unknown"
		}
		s.m.sourceErrors.WithLabelValues(s.next.Name(), code).Inc()
	}
	return txs, err
}

// RecordSkipped 外部來源單筆紀錄被略過
func (m *Metrics) RecordSkipped(source, reason string) {
	m.sourceSkipped.WithLabelValues(source, reason).Inc()
}

// ===========================
// 領域事件
// ===========================

// CountingPublisher 計數後轉交下一個 EventPublisher
type CountingPublisher struct {
	next shared.EventPublisher
	m    *Metrics
}

// NewCountingPublisher 建構函數
func NewCountingPublisher(m *Metrics, next shared.EventPublisher) *CountingPublisher {
	return &CountingPublisher{next: next, m: m}
}

var _ shared.EventPublisher = (*CountingPublisher)(nil)

func (p *CountingPublisher) Publish(event shared.DomainEvent) error {
	p.m.domainEvents.WithLabelValues(event.EventType()).Inc()
	return p.next.Publish(event)
}

func (p *CountingPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		p.m.domainEvents.WithLabelValues(event.EventType()).Inc()
	}
	return p.next.PublishBatch(events)
}
