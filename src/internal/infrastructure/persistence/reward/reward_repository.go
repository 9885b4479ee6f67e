package reward

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// RewardRepositoryImpl
// ===========================

// RewardRepositoryImpl 獎勵定義倉儲（GORM）
type RewardRepositoryImpl struct {
	db *gorm.DB
}

// NewRewardRepository 創建獎勵定義倉儲
func NewRewardRepository(db *gorm.DB) reward.Repository {
	return &RewardRepositoryImpl{db: db}
}

// Save 新增或更新（Upsert）
func (r *RewardRepositoryImpl) Save(ctx shared.TransactionContext, rw *reward.Reward) error {
	model, err := rewardToGORM(rw)
	if err != nil {
		return persistence.WrapError(reward.ErrRepositoryError, "encode benefit", err)
	}
	if err := persistence.DB(ctx, r.db).Save(model).Error; err != nil {
		return persistence.WrapError(reward.ErrRepositoryError, "save reward", err)
	}
	return nil
}

func (r *RewardRepositoryImpl) FindByID(ctx shared.TransactionContext, id reward.RewardID) (*reward.Reward, error) {
	var model RewardGORM
	if err := persistence.DB(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, reward.ErrRewardNotFound.WithContext("reward_id", id.String())
		}
		return nil, persistence.WrapError(reward.ErrRepositoryError, "find reward", err)
	}
	return model.toDomain()
}

// ListActive 啟用中的獎勵，依建立時間排序
func (r *RewardRepositoryImpl) ListActive(ctx shared.TransactionContext) ([]*reward.Reward, error) {
	var models []RewardGORM
	err := persistence.DB(ctx, r.db).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(reward.ErrRepositoryError, "list rewards", err)
	}

	rewards := make([]*reward.Reward, 0, len(models))
	for i := range models {
		rw, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	return rewards, nil
}

// ===========================
// CustomerRewardRepositoryImpl
// ===========================

// CustomerRewardRepositoryImpl 已發放獎勵倉儲（GORM）
type CustomerRewardRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRewardRepository 創建已發放獎勵倉儲
func NewCustomerRewardRepository(db *gorm.DB) reward.CustomerRewardRepository {
	return &CustomerRewardRepositoryImpl{db: db}
}

func (r *CustomerRewardRepositoryImpl) Save(ctx shared.TransactionContext, cr *reward.CustomerReward) error {
	if err := persistence.DB(ctx, r.db).Create(customerRewardToGORM(cr)).Error; err != nil {
		return persistence.WrapError(reward.ErrRepositoryError, "save customer reward", err)
	}
	return nil
}

// Update 寫入兌換狀態
//
// 條件包含 redeemed = false，避免兩個請求同時兌換同一張。
func (r *CustomerRewardRepositoryImpl) Update(ctx shared.TransactionContext, cr *reward.CustomerReward) error {
	model := customerRewardToGORM(cr)
	result := persistence.DB(ctx, r.db).
		Model(&CustomerRewardGORM{}).
		Where("id = ? AND redeemed = ?", model.ID, false).
		Updates(map[string]interface{}{
			"redeemed":    model.Redeemed,
			"redeemed_at": model.RedeemedAt,
		})
	if result.Error != nil {
		return persistence.WrapError(reward.ErrRepositoryError, "update customer reward", result.Error)
	}
	if result.RowsAffected == 0 {
		return reward.ErrRewardAlreadyRedeemed.WithContext("customer_reward_id", model.ID)
	}
	return nil
}

func (r *CustomerRewardRepositoryImpl) FindByID(ctx shared.TransactionContext, id reward.CustomerRewardID) (*reward.CustomerReward, error) {
	var model CustomerRewardGORM
	if err := persistence.DB(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, reward.ErrCustomerRewardNotFound.WithContext("customer_reward_id", id.String())
		}
		return nil, persistence.WrapError(reward.ErrRepositoryError, "find customer reward", err)
	}
	return model.toDomain()
}

// ListByCustomer 依發放時間排序
func (r *CustomerRewardRepositoryImpl) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*reward.CustomerReward, error) {
	var models []CustomerRewardGORM
	err := persistence.DB(ctx, r.db).
		Where("customer_id = ?", customerID.String()).
		Order("issued_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(reward.ErrRepositoryError, "list customer rewards", err)
	}

	out := make([]*reward.CustomerReward, 0, len(models))
	for i := range models {
		cr, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, nil
}
