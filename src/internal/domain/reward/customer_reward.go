package reward

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
)

// ===========================
// CustomerReward 聚合根（已發放獎勵）
// ===========================

// CustomerReward 發放給顧客的獎勵實例
//
// 不變量：只能兌換一次；到期後拒絕兌換
type CustomerReward struct {
	id         CustomerRewardID
	rewardID   RewardID
	customerID customer.CustomerID
	issuedDate time.Time
	expiryDate *time.Time
	redeemed   bool
	redeemedAt *time.Time
}

// IssueTo 發放獎勵給顧客（等級資格由呼叫端先以 CheckEligibility 確認）
func (r *Reward) IssueTo(customerID customer.CustomerID, now time.Time) (*CustomerReward, error) {
	if !r.active {
		return nil, ErrRewardInactive.WithContext("reward_id", r.id.String())
	}
	if customerID.IsEmpty() {
		return nil, customer.ErrInvalidCustomerID.WithContext("reason", "customer id is required")
	}

	return &CustomerReward{
		id:         NewCustomerRewardID(),
		rewardID:   r.id,
		customerID: customerID,
		issuedDate: now,
		expiryDate: r.ExpiryFrom(now),
	}, nil
}

// ReconstructCustomerReward 從資料庫重建
func ReconstructCustomerReward(
	id CustomerRewardID,
	rewardID RewardID,
	customerID customer.CustomerID,
	issuedDate time.Time,
	expiryDate *time.Time,
	redeemed bool,
	redeemedAt *time.Time,
) (*CustomerReward, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidCustomerRewardID.WithContext("reason", "customer reward id cannot be empty")
	}
	return &CustomerReward{
		id:         id,
		rewardID:   rewardID,
		customerID: customerID,
		issuedDate: issuedDate,
		expiryDate: expiryDate,
		redeemed:   redeemed,
		redeemedAt: redeemedAt,
	}, nil
}

// Redeem 兌換
//
// 已兌換 → ErrRewardAlreadyRedeemed（conflict）；已過期 → ErrRewardExpired（validation）
func (cr *CustomerReward) Redeem(now time.Time) error {
	if cr.redeemed {
		return ErrRewardAlreadyRedeemed.WithContext(
			"customer_reward_id", cr.id.String(),
			"redeemed_at", cr.redeemedAt,
		)
	}
	if cr.IsExpired(now) {
		return ErrRewardExpired.WithContext(
			"customer_reward_id", cr.id.String(),
			"expiry_date", cr.expiryDate,
		)
	}

	cr.redeemed = true
	cr.redeemedAt = &now
	return nil
}

// IsExpired 到期時間已過（到期當下仍可兌換）
func (cr *CustomerReward) IsExpired(now time.Time) bool {
	return cr.expiryDate != nil && now.After(*cr.expiryDate)
}

func (cr *CustomerReward) ID() CustomerRewardID            { return cr.id }
func (cr *CustomerReward) RewardID() RewardID              { return cr.rewardID }
func (cr *CustomerReward) CustomerID() customer.CustomerID { return cr.customerID }
func (cr *CustomerReward) IssuedDate() time.Time           { return cr.issuedDate }
func (cr *CustomerReward) ExpiryDate() *time.Time          { return cr.expiryDate }
func (cr *CustomerReward) IsRedeemed() bool                { return cr.redeemed }
func (cr *CustomerReward) RedeemedAt() *time.Time          { return cr.redeemedAt }
