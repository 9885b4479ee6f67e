package reward

import (
	"context"
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/shopspring/decimal"
)

// CreateRewardCommand 建立獎勵指令（Input DTO）
//
// 只需填寫 Type 對應的欄位：percent_off → Percent，amount_off → Amount，
// free_item → SKU + Quantity，points_multiplier → Factor。
type CreateRewardCommand struct {
	Name         string
	MinTierID    string
	Type         string
	Percent      string
	Amount       string
	SKU          string
	Quantity     int
	Factor       string
	ValidityDays int // 0 表示不過期
}

// CreateRewardUseCase 建立獎勵定義；最低等級必須存在於目前的目錄
type CreateRewardUseCase struct {
	rewards   reward.Repository
	catalog   tier.CatalogProvider
	txManager shared.TransactionManager
}

func NewCreateRewardUseCase(rewards reward.Repository, catalog tier.CatalogProvider, txManager shared.TransactionManager) *CreateRewardUseCase {
	return &CreateRewardUseCase{rewards: rewards, catalog: catalog, txManager: txManager}
}

func (uc *CreateRewardUseCase) Execute(ctx context.Context, cmd CreateRewardCommand) (*RewardResult, error) {
	// Step 1: 組出 Benefit
	fields := reward.BenefitFields{SKU: cmd.SKU, Quantity: cmd.Quantity}
	var err error
	if fields.Percent, err = parseDecimal("percent", cmd.Percent); err != nil {
		return nil, err
	}
	if fields.Amount, err = parseDecimal("amount", cmd.Amount); err != nil {
		return nil, err
	}
	if fields.Factor, err = parseDecimal("factor", cmd.Factor); err != nil {
		return nil, err
	}
	benefit, err := reward.NewBenefit(reward.Type(strings.ToLower(strings.TrimSpace(cmd.Type))), fields)
	if err != nil {
		return nil, err
	}

	// Step 2: 最低等級
	minTierID, err := tier.TierIDFromString(cmd.MinTierID)
	if err != nil {
		return nil, err
	}
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.FindByID(minTierID); !ok {
		return nil, tier.ErrTierNotFound.WithContext("tier_id", cmd.MinTierID)
	}

	// Step 3: 建立並保存
	r, err := reward.NewReward(cmd.Name, minTierID, benefit, cmd.ValidityDays)
	if err != nil {
		return nil, err
	}
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		return uc.rewards.Save(tx, r)
	})
	if err != nil {
		return nil, err
	}
	return newRewardResult(r), nil
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, reward.ErrInvalidBenefit.WithContext(field, value, "reason", "not a decimal")
	}
	return d, nil
}
