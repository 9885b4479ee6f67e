package customer

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/shopspring/decimal"
)

// ===========================
// GORM Models
// ===========================

// CustomerGORM 顧客資料表模型
//
// 資料庫約束：
// - id: 主鍵（UUID）
// - email: 唯一索引（顧客唯一鍵）
// - tier_id: 可為空（尚未分配等級）
// - version: 樂觀鎖
type CustomerGORM struct {
	ID    string  `gorm:"column:id;type:varchar(36);primaryKey"`
	Name  string  `gorm:"column:name;type:varchar(255);not null"`
	Email string  `gorm:"column:email;type:varchar(320);uniqueIndex;not null"`
	Phone *string `gorm:"column:phone;type:varchar(16)"`

	TotalSpend     decimal.Decimal `gorm:"column:total_spend;type:decimal(14,2);not null;default:0"`
	TierID         *string         `gorm:"column:tier_id;type:varchar(36);index"`
	TierOverridden bool            `gorm:"column:tier_overridden;not null;default:false"`
	Active         bool            `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	Version   int       `gorm:"column:version;not null;default:1"`
}

// TableName 指定資料表名稱
func (CustomerGORM) TableName() string {
	return "customers"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 模型（NULL 欄位轉為零值）
func (m *CustomerGORM) toDomain() (*customer.Customer, error) {
	id, err := customer.CustomerIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	email, err := customer.NewEmail(m.Email)
	if err != nil {
		return nil, err
	}

	var phone customer.PhoneNumber
	if m.Phone != nil {
		phone, err = customer.NewPhoneNumber(*m.Phone)
		if err != nil {
			return nil, err
		}
	}

	var tierID tier.TierID
	if m.TierID != nil {
		tierID, err = tier.TierIDFromString(*m.TierID)
		if err != nil {
			return nil, err
		}
	}

	totalSpend, err := shared.NewMoney(m.TotalSpend)
	if err != nil {
		return nil, err
	}

	return customer.ReconstructCustomer(
		id,
		m.Name,
		email,
		phone,
		totalSpend,
		tierID,
		m.TierOverridden,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	)
}

// toGORM 將 Domain 模型轉換為 GORM 模型（零值轉為 NULL）
func toGORM(c *customer.Customer) *CustomerGORM {
	var phone *string
	if !c.Phone().IsZero() {
		s := c.Phone().String()
		phone = &s
	}

	var tierID *string
	if c.HasTier() {
		s := c.TierID().String()
		tierID = &s
	}

	return &CustomerGORM{
		ID:             c.ID().String(),
		Name:           c.Name(),
		Email:          c.Email().String(),
		Phone:          phone,
		TotalSpend:     c.TotalSpend().Decimal(),
		TierID:         tierID,
		TierOverridden: c.IsTierOverridden(),
		Active:         c.IsActive(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
		Version:        c.Version(),
	}
}
