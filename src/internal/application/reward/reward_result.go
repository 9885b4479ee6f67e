package reward

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
)

// RewardResult 獎勵定義（Output DTO）
type RewardResult struct {
	RewardID     string
	Name         string
	MinTierID    string
	Type         string
	Description  string
	Percent      string
	Amount       string
	SKU          string
	Quantity     int
	Factor       string
	ValidityDays int
	Active       bool
}

func newRewardResult(r *reward.Reward) *RewardResult {
	result := &RewardResult{
		RewardID:     r.ID().String(),
		Name:         r.Name(),
		MinTierID:    r.MinTierID().String(),
		Type:         string(r.Type()),
		Description:  r.Benefit().Describe(),
		ValidityDays: r.ValidityDays(),
		Active:       r.IsActive(),
	}

	f := r.Benefit().Fields()
	switch r.Type() {
	case reward.TypePercentOff:
		result.Percent = f.Percent.String()
	case reward.TypeAmountOff:
		result.Amount = f.Amount.StringFixed(2)
	case reward.TypeFreeItem:
		result.SKU = f.SKU
		result.Quantity = f.Quantity
	case reward.TypePointsMultiplier:
		result.Factor = f.Factor.String()
	}
	return result
}

// CustomerRewardResult 已發放獎勵（Output DTO）
type CustomerRewardResult struct {
	CustomerRewardID string
	RewardID         string
	RewardName       string
	CustomerID       string
	IssuedDate       time.Time
	ExpiryDate       *time.Time
	Redeemed         bool
	RedeemedAt       *time.Time
	Expired          bool
}

func newCustomerRewardResult(cr *reward.CustomerReward, name string, now time.Time) *CustomerRewardResult {
	return &CustomerRewardResult{
		CustomerRewardID: cr.ID().String(),
		RewardID:         cr.RewardID().String(),
		RewardName:       name,
		CustomerID:       cr.CustomerID().String(),
		IssuedDate:       cr.IssuedDate(),
		ExpiryDate:       cr.ExpiryDate(),
		Redeemed:         cr.IsRedeemed(),
		RedeemedAt:       cr.RedeemedAt(),
		Expired:          cr.IsExpired(now),
	}
}
