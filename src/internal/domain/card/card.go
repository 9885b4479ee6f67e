package card

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// ===========================
// MembershipCard Aggregate Root
// ===========================

// MembershipCard 會員卡聚合根
//
// 不變量：
// 1. cardNumber、nfcID 全域唯一（倉儲與資料庫唯一索引保證）
// 2. 每位顧客最多一張 active 卡（由發卡流程保證）
// 3. replaced 為終止狀態，replacedBy 指向新卡
// 4. 停用、換卡都不刪除資料，保留稽核紀錄
type MembershipCard struct {
	id         CardID
	customerID customer.CustomerID
	cardNumber CardNumber
	nfcID      NFCID
	tierID     tier.TierID
	status     Status

	activationDate time.Time
	deactivatedAt  *time.Time
	replacedBy     CardID

	createdAt time.Time
	updatedAt time.Time

	shared.EventRecorder
}

// IssueCard 發行新卡（直接為啟用狀態）
func IssueCard(customerID customer.CustomerID, number CardNumber, nfcID NFCID, tierID tier.TierID) (*MembershipCard, error) {
	if customerID.IsEmpty() {
		return nil, customer.ErrInvalidCustomerID.WithContext("reason", "customer id is required")
	}
	if number.IsZero() {
		return nil, ErrInvalidCardNumber.WithContext("reason", "card number is required")
	}

	now := time.Now()
	c := &MembershipCard{
		id:             NewCardID(),
		customerID:     customerID,
		cardNumber:     number,
		nfcID:          nfcID,
		tierID:         tierID,
		status:         StatusActive,
		activationDate: now,
		createdAt:      now,
		updatedAt:      now,
	}
	c.Record(NewCardIssuedEvent(c))
	return c, nil
}

// ReconstructCard 從資料庫重建
func ReconstructCard(
	id CardID,
	customerID customer.CustomerID,
	number CardNumber,
	nfcID NFCID,
	tierID tier.TierID,
	status Status,
	activationDate time.Time,
	deactivatedAt *time.Time,
	replacedBy CardID,
	createdAt time.Time,
	updatedAt time.Time,
) (*MembershipCard, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidCardID.WithContext("reason", "card id cannot be empty")
	}
	if !status.IsValid() {
		return nil, ErrInvalidCardStatus.WithContext("card_id", id.String(), "status", status)
	}

	return &MembershipCard{
		id:             id,
		customerID:     customerID,
		cardNumber:     number,
		nfcID:          nfcID,
		tierID:         tierID,
		status:         status,
		activationDate: activationDate,
		deactivatedAt:  deactivatedAt,
		replacedBy:     replacedBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ===========================
// 狀態轉換
// ===========================

// Activate 重新啟用停用中的卡片
func (c *MembershipCard) Activate() error {
	switch c.status {
	case StatusReplaced:
		return ErrCardReplaced.WithContext("card_number", c.cardNumber.String())
	case StatusActive:
		return ErrCardAlreadyActive.WithContext("card_number", c.cardNumber.String())
	}

	now := time.Now()
	c.status = StatusActive
	c.activationDate = now
	c.deactivatedAt = nil
	c.updatedAt = now
	c.Record(NewCardStatusChangedEvent(c, StatusInactive))
	return nil
}

// Deactivate 停用（遺失、暫停使用、發新卡時停用舊卡）
func (c *MembershipCard) Deactivate() error {
	switch c.status {
	case StatusReplaced:
		return ErrCardReplaced.WithContext("card_number", c.cardNumber.String())
	case StatusInactive:
		return ErrCardAlreadyInactive.WithContext("card_number", c.cardNumber.String())
	}

	now := time.Now()
	c.status = StatusInactive
	c.deactivatedAt = &now
	c.updatedAt = now
	c.Record(NewCardStatusChangedEvent(c, StatusActive))
	return nil
}

// MarkReplaced 換卡：舊卡進入終止狀態並記錄新卡 ID
func (c *MembershipCard) MarkReplaced(newCardID CardID) error {
	if c.status == StatusReplaced {
		return ErrCardReplaced.WithContext("card_number", c.cardNumber.String())
	}

	previous := c.status
	now := time.Now()
	c.status = StatusReplaced
	c.replacedBy = newCardID
	if c.deactivatedAt == nil {
		c.deactivatedAt = &now
	}
	c.updatedAt = now
	c.Record(NewCardStatusChangedEvent(c, previous))
	return nil
}

// SyncTier 跟隨顧客等級；返回 true 表示有變動
func (c *MembershipCard) SyncTier(tierID tier.TierID) bool {
	if c.tierID.Equals(tierID) {
		return false
	}
	c.tierID = tierID
	c.updatedAt = time.Now()
	return true
}

// ===========================
// Getters
// ===========================

func (c *MembershipCard) ID() CardID                      { return c.id }
func (c *MembershipCard) CustomerID() customer.CustomerID { return c.customerID }
func (c *MembershipCard) CardNumber() CardNumber          { return c.cardNumber }
func (c *MembershipCard) NFCID() NFCID                    { return c.nfcID }
func (c *MembershipCard) TierID() tier.TierID             { return c.tierID }
func (c *MembershipCard) Status() Status                  { return c.status }
func (c *MembershipCard) IsActive() bool                  { return c.status == StatusActive }
func (c *MembershipCard) ActivationDate() time.Time       { return c.activationDate }
func (c *MembershipCard) DeactivatedAt() *time.Time       { return c.deactivatedAt }
func (c *MembershipCard) ReplacedBy() CardID              { return c.replacedBy }
func (c *MembershipCard) CreatedAt() time.Time            { return c.createdAt }
func (c *MembershipCard) UpdatedAt() time.Time            { return c.updatedAt }
