package logging

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// EventPublisher 把領域事件寫入結構化日誌
//
// 目前沒有訊息佇列，事件只作為稽核紀錄；之後接上 broker 時替換此實作即可。
type EventPublisher struct {
	log *zap.Logger
}

func NewEventPublisher(log *zap.Logger) *EventPublisher {
	return &EventPublisher{log: log.With(zap.String("component", "events"))}
}

func (p *EventPublisher) Publish(event shared.DomainEvent) error {
	p.log.Info("domain_event",
		zap.String("event_id", event.EventID()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

func (p *EventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

var _ shared.EventPublisher = (*EventPublisher)(nil)
