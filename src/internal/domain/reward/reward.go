package reward

import (
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// ===========================
// Reward 聚合根（獎勵定義）
// ===========================

// Reward 以最低等級作為門檻的獎勵定義
//
// validityDays 為發放後的有效天數，0 表示不過期。
type Reward struct {
	id           RewardID
	name         string
	minTierID    tier.TierID
	benefit      Benefit
	validityDays int
	active       bool

	createdAt time.Time
	updatedAt time.Time
}

// NewReward 創建獎勵定義（預設啟用）
func NewReward(name string, minTierID tier.TierID, benefit Benefit, validityDays int) (*Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRewardName
	}
	if minTierID.IsEmpty() {
		return nil, tier.ErrInvalidTierID.WithContext("reason", "min tier is required")
	}
	if benefit == nil {
		return nil, ErrInvalidBenefit.WithContext("reason", "benefit is required")
	}
	if validityDays < 0 {
		return nil, ErrInvalidValidity.WithContext("validity_days", validityDays)
	}

	now := time.Now()
	return &Reward{
		id:           NewRewardID(),
		name:         name,
		minTierID:    minTierID,
		benefit:      benefit,
		validityDays: validityDays,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructReward 從資料庫重建
func ReconstructReward(
	id RewardID,
	name string,
	minTierID tier.TierID,
	benefit Benefit,
	validityDays int,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Reward, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidRewardID.WithContext("reason", "reward id cannot be empty")
	}
	if benefit == nil {
		return nil, ErrInvalidBenefit.WithContext("reward_id", id.String())
	}
	return &Reward{
		id:           id,
		name:         name,
		minTierID:    minTierID,
		benefit:      benefit,
		validityDays: validityDays,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// Deactivate 停用（已發放的獎勵不受影響）
func (r *Reward) Deactivate() {
	if !r.active {
		return
	}
	r.active = false
	r.updatedAt = time.Now()
}

// CheckEligibility 顧客目前等級是否達到最低等級
//
// 以門檻比較；邀請制等級符合所有獎勵。customerTier 為 nil（尚未分配等級）時不符合。
func (r *Reward) CheckEligibility(customerTier, minTier *tier.Tier) error {
	if customerTier == nil || !customerTier.IsAtLeast(minTier) {
		current := ""
		if customerTier != nil {
			current = customerTier.Code()
		}
		return ErrTierNotEligible.WithContext(
			"reward_id", r.id.String(),
			"customer_tier", current,
			"min_tier_id", r.minTierID.String(),
		)
	}
	return nil
}

// ExpiryFrom 以發放時間計算到期時間；不過期時返回 nil
func (r *Reward) ExpiryFrom(issuedAt time.Time) *time.Time {
	if r.validityDays == 0 {
		return nil
	}
	expiry := issuedAt.AddDate(0, 0, r.validityDays)
	return &expiry
}

func (r *Reward) ID() RewardID           { return r.id }
func (r *Reward) Name() string           { return r.name }
func (r *Reward) MinTierID() tier.TierID { return r.minTierID }
func (r *Reward) Benefit() Benefit       { return r.benefit }
func (r *Reward) Type() Type             { return r.benefit.Type() }
func (r *Reward) ValidityDays() int      { return r.validityDays }
func (r *Reward) IsActive() bool         { return r.active }
func (r *Reward) CreatedAt() time.Time   { return r.createdAt }
func (r *Reward) UpdatedAt() time.Time   { return r.updatedAt }
