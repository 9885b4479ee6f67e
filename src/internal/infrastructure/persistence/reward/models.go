package reward

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"gorm.io/datatypes"
)

// RewardGORM 獎勵定義資料表模型
//
// benefit 以 JSON 欄位儲存，內容依 type 而不同。
type RewardGORM struct {
	ID           string         `gorm:"column:id;type:varchar(36);primaryKey"`
	Name         string         `gorm:"column:name;type:varchar(255);not null"`
	MinTierID    string         `gorm:"column:min_tier_id;type:varchar(36);not null;index"`
	Type         string         `gorm:"column:type;type:varchar(32);not null"`
	Benefit      datatypes.JSON `gorm:"column:benefit;not null"`
	ValidityDays int            `gorm:"column:validity_days;not null;default:0"`
	Active       bool           `gorm:"column:active;not null;default:true;index"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (RewardGORM) TableName() string {
	return "rewards"
}

// CustomerRewardGORM 已發放獎勵資料表模型
type CustomerRewardGORM struct {
	ID         string     `gorm:"column:id;type:varchar(36);primaryKey"`
	RewardID   string     `gorm:"column:reward_id;type:varchar(36);not null;index"`
	CustomerID string     `gorm:"column:customer_id;type:varchar(36);not null;index"`
	IssuedDate time.Time  `gorm:"column:issued_date;not null"`
	ExpiryDate *time.Time `gorm:"column:expiry_date"`
	Redeemed   bool       `gorm:"column:redeemed;not null;default:false"`
	RedeemedAt *time.Time `gorm:"column:redeemed_at"`
}

// TableName 指定資料表名稱
func (CustomerRewardGORM) TableName() string {
	return "customer_rewards"
}

func (m *RewardGORM) toDomain() (*reward.Reward, error) {
	id, err := reward.RewardIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	minTierID, err := tier.TierIDFromString(m.MinTierID)
	if err != nil {
		return nil, err
	}
	benefit, err := decodeBenefit(m.Type, m.Benefit)
	if err != nil {
		return nil, err
	}
	return reward.ReconstructReward(
		id,
		m.Name,
		minTierID,
		benefit,
		m.ValidityDays,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func rewardToGORM(r *reward.Reward) (*RewardGORM, error) {
	benefit, err := encodeBenefit(r.Benefit())
	if err != nil {
		return nil, err
	}
	return &RewardGORM{
		ID:           r.ID().String(),
		Name:         r.Name(),
		MinTierID:    r.MinTierID().String(),
		Type:         string(r.Type()),
		Benefit:      benefit,
		ValidityDays: r.ValidityDays(),
		Active:       r.IsActive(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}, nil
}

func (m *CustomerRewardGORM) toDomain() (*reward.CustomerReward, error) {
	id, err := reward.CustomerRewardIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	rewardID, err := reward.RewardIDFromString(m.RewardID)
	if err != nil {
		return nil, err
	}
	customerID, err := customer.CustomerIDFromString(m.CustomerID)
	if err != nil {
		return nil, err
	}
	return reward.ReconstructCustomerReward(
		id,
		rewardID,
		customerID,
		m.IssuedDate,
		m.ExpiryDate,
		m.Redeemed,
		m.RedeemedAt,
	)
}

func customerRewardToGORM(cr *reward.CustomerReward) *CustomerRewardGORM {
	return &CustomerRewardGORM{
		ID:         cr.ID().String(),
		RewardID:   cr.RewardID().String(),
		CustomerID: cr.CustomerID().String(),
		IssuedDate: cr.IssuedDate(),
		ExpiryDate: cr.ExpiryDate(),
		Redeemed:   cr.IsRedeemed(),
		RedeemedAt: cr.RedeemedAt(),
	}
}
