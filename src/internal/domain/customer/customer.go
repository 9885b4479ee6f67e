package customer

import (
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// ===========================
// Customer Aggregate Root
// ===========================

// Customer 顧客聚合根
//
// 不變量：
// 1. totalSpend >= 0，且只由交易帳本重新計算後寫入（ApplySpend）
// 2. tierOverridden 為 true 時，消費變動不會改變 tierID
// 3. version 為樂觀鎖版本號，由倉儲在每次成功更新後遞增
type Customer struct {
	id    CustomerID
	name  string
	email Email
	phone PhoneNumber

	totalSpend     shared.Money
	tierID         tier.TierID // 零值表示尚未分配
	tierOverridden bool
	active         bool

	createdAt time.Time
	updatedAt time.Time
	version   int

	shared.EventRecorder
}

// NewCustomer 創建新顧客（消費 0，尚未分配等級）
func NewCustomer(name string, email Email, phone PhoneNumber) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if email.IsZero() {
		return nil, ErrInvalidEmail.WithContext("reason", "email is required")
	}

	now := time.Now()
	c := &Customer{
		id:         NewCustomerID(),
		name:       name,
		email:      email,
		phone:      phone,
		totalSpend: shared.ZeroMoney(),
		active:     true,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
	}
	c.Record(NewCustomerRegisteredEvent(c.id, email))
	return c, nil
}

// ReconstructCustomer 從資料庫重建（不產生事件）
func ReconstructCustomer(
	id CustomerID,
	name string,
	email Email,
	phone PhoneNumber,
	totalSpend shared.Money,
	tierID tier.TierID,
	tierOverridden bool,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Customer, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidCustomerID.WithContext("reason", "customer id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName.WithContext("customer_id", id.String())
	}

	return &Customer{
		id:             id,
		name:           name,
		email:          email,
		phone:          phone,
		totalSpend:     totalSpend,
		tierID:         tierID,
		tierOverridden: tierOverridden,
		active:         active,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
	}, nil
}

// ===========================
// 行為
// ===========================

// ApplySpend 寫入重新計算後的累積消費，並在未手動指定時套用解析出的等級
//
// 返回 true 表示等級有變動。
func (c *Customer) ApplySpend(total shared.Money, resolved *tier.Tier) bool {
	c.totalSpend = total
	c.updatedAt = time.Now()

	if c.tierOverridden || resolved == nil {
		return false
	}
	return c.assignTier(resolved.ID(), TierChangeReasonSpend)
}

// OverrideTier 手動指定等級（邀請制等級只能透過此方法取得）
func (c *Customer) OverrideTier(t *tier.Tier) error {
	if !c.active {
		return ErrCustomerInactive.WithContext("customer_id", c.id.String())
	}
	c.tierOverridden = true
	c.updatedAt = time.Now()
	c.assignTier(t.ID(), TierChangeReasonOverride)
	return nil
}

// ClearOverride 取消手動指定，回到依消費解析的等級
func (c *Customer) ClearOverride(resolved *tier.Tier) (bool, error) {
	if !c.tierOverridden {
		return false, ErrTierNotOverridden.WithContext("customer_id", c.id.String())
	}
	c.tierOverridden = false
	c.updatedAt = time.Now()
	return c.assignTier(resolved.ID(), TierChangeReasonSpend), nil
}

// Deactivate 停用顧客（保留歷史資料）
func (c *Customer) Deactivate() error {
	if !c.active {
		return ErrCustomerInactive.WithContext("customer_id", c.id.String())
	}
	c.active = false
	c.updatedAt = time.Now()
	return nil
}

// AdvanceVersion 由倉儲在樂觀鎖更新成功後呼叫
func (c *Customer) AdvanceVersion() {
	c.version++
}

func (c *Customer) assignTier(id tier.TierID, reason TierChangeReason) bool {
	if c.tierID.Equals(id) {
		return false
	}
	previous := c.tierID
	c.tierID = id
	c.Record(NewTierChangedEvent(c.id, previous, id, reason))
	return true
}

// ===========================
// Getters
// ===========================

func (c *Customer) ID() CustomerID           { return c.id }
func (c *Customer) Name() string             { return c.name }
func (c *Customer) Email() Email             { return c.email }
func (c *Customer) Phone() PhoneNumber       { return c.phone }
func (c *Customer) TotalSpend() shared.Money { return c.totalSpend }
func (c *Customer) TierID() tier.TierID      { return c.tierID }
func (c *Customer) HasTier() bool            { return !c.tierID.IsEmpty() }
func (c *Customer) IsTierOverridden() bool   { return c.tierOverridden }
func (c *Customer) IsActive() bool           { return c.active }
func (c *Customer) CreatedAt() time.Time     { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time     { return c.updatedAt }
func (c *Customer) Version() int             { return c.version }
