package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
// 介面定義在 Domain Layer（使用者），由 Infrastructure 實作
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}

// BaseEvent 事件共用欄位，具體事件以嵌入方式取得 DomainEvent 實作
type BaseEvent struct {
	eventID     string
	eventType   string
	aggregateID string
	occurredAt  time.Time
}

// NewBaseEvent 建立事件基礎欄位
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.New().String(),
		eventType:   eventType,
		aggregateID: aggregateID,
		occurredAt:  time.Now(),
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// EventRecorder 聚合根內嵌的待發布事件列表
type EventRecorder struct {
	events []DomainEvent
}

// Record 添加事件
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 取出並清空待發布事件（Pull 模式：聚合根不依賴 EventPublisher）
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
