// Package events 把聚合累積的領域事件交給 EventPublisher
package events

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder 可以取出事件的聚合
type Recorder interface {
	PullEvents() []shared.DomainEvent
}

// Dispatch 在事務提交後發布事件
//
// 發布失敗只記錄 warn，不影響已提交的結果。
func Dispatch(ctx context.Context, log *zap.Logger, publisher shared.EventPublisher, recorders ...Recorder) {
	var pending []shared.DomainEvent
	for _, r := range recorders {
		if r == nil {
			continue
		}
		pending = append(pending, r.PullEvents()...)
	}
	if len(pending) == 0 {
		return
	}

	if err := publisher.PublishBatch(pending); err != nil {
		log.Warn("publish domain events failed",
			zap.Int("events", len(pending)),
			zap.Error(err),
			zap.Bool("cancelled", ctx.Err() != nil),
		)
	}
}
