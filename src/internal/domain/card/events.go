package card

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// CardIssuedEvent 發卡事件
type CardIssuedEvent struct {
	shared.BaseEvent
	customerID string
	cardNumber string
}

// NewCardIssuedEvent 創建發卡事件
func NewCardIssuedEvent(c *MembershipCard) *CardIssuedEvent {
	return &CardIssuedEvent{
		BaseEvent:  shared.NewBaseEvent("card.issued", c.id.String()),
		customerID: c.customerID.String(),
		cardNumber: c.cardNumber.String(),
	}
}

func (e *CardIssuedEvent) CustomerID() string { return e.customerID }
func (e *CardIssuedEvent) CardNumber() string { return e.cardNumber }

// CardStatusChangedEvent 卡片狀態變更事件
type CardStatusChangedEvent struct {
	shared.BaseEvent
	cardNumber string
	from       Status
	to         Status
}

// NewCardStatusChangedEvent 以卡片目前狀態作為 to
func NewCardStatusChangedEvent(c *MembershipCard, from Status) *CardStatusChangedEvent {
	return &CardStatusChangedEvent{
		BaseEvent:  shared.NewBaseEvent("card.status_changed", c.id.String()),
		cardNumber: c.cardNumber.String(),
		from:       from,
		to:         c.status,
	}
}

func (e *CardStatusChangedEvent) CardNumber() string { return e.cardNumber }
func (e *CardStatusChangedEvent) From() Status       { return e.from }
func (e *CardStatusChangedEvent) To() Status         { return e.to }
