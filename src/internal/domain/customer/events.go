package customer

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// TierChangeReason 等級變動原因
type TierChangeReason string

const (
	TierChangeReasonSpend    TierChangeReason = "spend"
	TierChangeReasonOverride TierChangeReason = "override"
)

// ===========================
// CustomerRegistered 領域事件
// ===========================

// CustomerRegisteredEvent 顧客註冊事件
type CustomerRegisteredEvent struct {
	shared.BaseEvent
	email Email
}

// NewCustomerRegisteredEvent 創建顧客註冊事件
func NewCustomerRegisteredEvent(id CustomerID, email Email) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseEvent: shared.NewBaseEvent("customer.registered", id.String()),
		email:     email,
	}
}

func (e *CustomerRegisteredEvent) Email() Email { return e.email }

// ===========================
// TierChanged 領域事件
// ===========================

// TierChangedEvent 顧客等級變動事件
//
// 卡片管理在收到此事件後同步有效卡片的等級。
type TierChangedEvent struct {
	shared.BaseEvent
	customerID CustomerID
	previous   tier.TierID // 零值表示先前沒有等級
	current    tier.TierID
	reason     TierChangeReason
}

// NewTierChangedEvent 創建等級變動事件
func NewTierChangedEvent(id CustomerID, previous, current tier.TierID, reason TierChangeReason) *TierChangedEvent {
	return &TierChangedEvent{
		BaseEvent:  shared.NewBaseEvent("customer.tier_changed", id.String()),
		customerID: id,
		previous:   previous,
		current:    current,
		reason:     reason,
	}
}

func (e *TierChangedEvent) CustomerID() CustomerID    { return e.customerID }
func (e *TierChangedEvent) PreviousTier() tier.TierID { return e.previous }
func (e *TierChangedEvent) CurrentTier() tier.TierID  { return e.current }
func (e *TierChangedEvent) Reason() TierChangeReason  { return e.reason }
