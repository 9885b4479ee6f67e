package reward

import (
	"context"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// RedeemRewardUseCase 兌換已發放的獎勵
//
// 重複兌換 → ErrRewardAlreadyRedeemed（conflict）；過期 → ErrRewardExpired（validation）。
// 兩個請求同時兌換時由倉儲的條件更新擋下後到者。
type RedeemRewardUseCase struct {
	customerRewards reward.CustomerRewardRepository
	rewards         reward.Repository
	txManager       shared.TransactionManager
	now             func() time.Time
}

func NewRedeemRewardUseCase(
	customerRewards reward.CustomerRewardRepository,
	rewards reward.Repository,
	txManager shared.TransactionManager,
) *RedeemRewardUseCase {
	return &RedeemRewardUseCase{
		customerRewards: customerRewards,
		rewards:         rewards,
		txManager:       txManager,
		now:             time.Now,
	}
}

func (uc *RedeemRewardUseCase) Execute(ctx context.Context, customerRewardID string) (*CustomerRewardResult, error) {
	id, err := reward.CustomerRewardIDFromString(customerRewardID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var redeemed *reward.CustomerReward
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		cr, err := uc.customerRewards.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := cr.Redeem(now); err != nil {
			return err
		}
		redeemed = cr
		return uc.customerRewards.Update(tx, cr)
	})
	if err != nil {
		return nil, err
	}

	name := ""
	if r, err := uc.rewards.FindByID(nil, redeemed.RewardID()); err == nil {
		name = r.Name()
	}
	return newCustomerRewardResult(redeemed, name, now), nil
}
