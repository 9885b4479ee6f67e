package reward

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// Repository 獎勵定義倉儲
type Repository interface {
	Save(ctx shared.TransactionContext, reward *Reward) error

	// FindByID 找不到時返回 ErrRewardNotFound
	FindByID(ctx shared.TransactionContext, id RewardID) (*Reward, error)

	// ListActive 所有啟用中的獎勵
	ListActive(ctx shared.TransactionContext) ([]*Reward, error)
}

// CustomerRewardRepository 已發放獎勵倉儲
type CustomerRewardRepository interface {
	Save(ctx shared.TransactionContext, cr *CustomerReward) error

	// Update 寫入兌換狀態
	Update(ctx shared.TransactionContext, cr *CustomerReward) error

	// FindByID 找不到時返回 ErrCustomerRewardNotFound
	FindByID(ctx shared.TransactionContext, id CustomerRewardID) (*CustomerReward, error)

	// ListByCustomer 依發放時間排序
	ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*CustomerReward, error)
}
