package reward

import (
	"context"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// IssueRewardUseCase 發放獎勵給顧客
//
// 業務規則：
// 1. 顧客必須為啟用狀態，獎勵必須為啟用狀態
// 2. 顧客目前等級的門檻不低於獎勵的最低等級；邀請制等級符合所有獎勵
// 3. 有效天數大於 0 時，到期日 = 發放時間 + 有效天數
type IssueRewardUseCase struct {
	customers       customer.Repository
	rewards         reward.Repository
	customerRewards reward.CustomerRewardRepository
	catalog         tier.CatalogProvider
	txManager       shared.TransactionManager
	now             func() time.Time
}

func NewIssueRewardUseCase(
	customers customer.Repository,
	rewards reward.Repository,
	customerRewards reward.CustomerRewardRepository,
	catalog tier.CatalogProvider,
	txManager shared.TransactionManager,
) *IssueRewardUseCase {
	return &IssueRewardUseCase{
		customers:       customers,
		rewards:         rewards,
		customerRewards: customerRewards,
		catalog:         catalog,
		txManager:       txManager,
		now:             time.Now,
	}
}

func (uc *IssueRewardUseCase) Execute(ctx context.Context, customerID, rewardID string) (*CustomerRewardResult, error) {
	// Step 1: 驗證輸入
	cid, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}
	rid, err := reward.RewardIDFromString(rewardID)
	if err != nil {
		return nil, err
	}

	// Step 2: 讀取顧客與獎勵
	c, err := uc.customers.FindByID(nil, cid)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, customer.ErrCustomerInactive.WithContext("customer_id", customerID)
	}
	r, err := uc.rewards.FindByID(nil, rid)
	if err != nil {
		return nil, err
	}

	// Step 3: 等級資格
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	minTier, ok := catalog.FindByID(r.MinTierID())
	if !ok {
		return nil, tier.ErrTierNotFound.WithContext("tier_id", r.MinTierID().String(), "reward_id", rewardID)
	}
	customerTier, _ := catalog.FindByID(c.TierID())
	if err := r.CheckEligibility(customerTier, minTier); err != nil {
		return nil, err
	}

	// Step 4: 發放
	now := uc.now()
	issued, err := r.IssueTo(cid, now)
	if err != nil {
		return nil, err
	}
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		return uc.customerRewards.Save(tx, issued)
	})
	if err != nil {
		return nil, err
	}
	return newCustomerRewardResult(issued, r.Name(), now), nil
}
