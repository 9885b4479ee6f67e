package tier

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/shopspring/decimal"
)

// TierGORM 等級資料表模型
//
// 資料庫約束：
// - code: 唯一索引（設定檔與 API 以 code 引用等級）
type TierGORM struct {
	ID             string          `gorm:"column:id;type:varchar(36);primaryKey"`
	Name           string          `gorm:"column:name;type:varchar(100);not null"`
	Code           string          `gorm:"column:code;type:varchar(100);uniqueIndex;not null"`
	SpendThreshold decimal.Decimal `gorm:"column:spend_threshold;type:decimal(14,2);not null"`
	SortOrder      int             `gorm:"column:sort_order;not null"`
	Active         bool            `gorm:"column:active;not null;default:true;index"`
	InviteOnly     bool            `gorm:"column:invite_only;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (TierGORM) TableName() string {
	return "tiers"
}

func (m *TierGORM) toDomain() (*tier.Tier, error) {
	id, err := tier.TierIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	threshold, err := shared.NewMoney(m.SpendThreshold)
	if err != nil {
		return nil, err
	}
	return tier.ReconstructTier(
		id,
		m.Name,
		m.Code,
		threshold,
		m.SortOrder,
		m.Active,
		m.InviteOnly,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toGORM(t *tier.Tier) *TierGORM {
	return &TierGORM{
		ID:             t.ID().String(),
		Name:           t.Name(),
		Code:           t.Code(),
		SpendThreshold: t.SpendThreshold().Decimal(),
		SortOrder:      t.SortOrder(),
		Active:         t.IsActive(),
		InviteOnly:     t.IsInviteOnly(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func toDomainList(models []TierGORM) ([]*tier.Tier, error) {
	tiers := make([]*tier.Tier, 0, len(models))
	for i := range models {
		t, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}
