package reward

import (
	"context"
	"errors"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
)

// ListRewardsUseCase 查詢獎勵定義與顧客已發放的獎勵
type ListRewardsUseCase struct {
	rewards         reward.Repository
	customerRewards reward.CustomerRewardRepository
	now             func() time.Time
}

func NewListRewardsUseCase(rewards reward.Repository, customerRewards reward.CustomerRewardRepository) *ListRewardsUseCase {
	return &ListRewardsUseCase{rewards: rewards, customerRewards: customerRewards, now: time.Now}
}

// Active 所有啟用中的獎勵
func (uc *ListRewardsUseCase) Active(ctx context.Context) ([]*RewardResult, error) {
	rewards, err := uc.rewards.ListActive(nil)
	if err != nil {
		return nil, err
	}
	results := make([]*RewardResult, 0, len(rewards))
	for _, r := range rewards {
		results = append(results, newRewardResult(r))
	}
	return results, nil
}

// ForCustomer 顧客已發放的獎勵，依發放時間排序
func (uc *ListRewardsUseCase) ForCustomer(ctx context.Context, customerID string) ([]*CustomerRewardResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}
	issued, err := uc.customerRewards.ListByCustomer(nil, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	names := make(map[reward.RewardID]string)
	results := make([]*CustomerRewardResult, 0, len(issued))
	for _, cr := range issued {
		name, ok := names[cr.RewardID()]
		if !ok {
			r, err := uc.rewards.FindByID(nil, cr.RewardID())
			switch {
			case err == nil:
				name = r.Name()
			case !errors.Is(err, reward.ErrRewardNotFound):
				return nil, err
			}
			names[cr.RewardID()] = name
		}
		results = append(results, newCustomerRewardResult(cr, name, now))
	}
	return results, nil
}
