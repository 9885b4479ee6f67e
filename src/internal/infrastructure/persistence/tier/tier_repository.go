package tier

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// TierRepositoryImpl 等級倉儲（GORM），同時作為資料表版本的 CatalogProvider
type TierRepositoryImpl struct {
	db *gorm.DB
}

// NewTierRepository 創建等級倉儲
func NewTierRepository(db *gorm.DB) *TierRepositoryImpl {
	return &TierRepositoryImpl{db: db}
}

var (
	_ tier.Repository      = (*TierRepositoryImpl)(nil)
	_ tier.CatalogProvider = (*TierRepositoryImpl)(nil)
)

// Save 新增或更新等級（Upsert）
//
// code 唯一約束違反 → ErrTierExists
func (r *TierRepositoryImpl) Save(ctx shared.TransactionContext, t *tier.Tier) error {
	if err := persistence.DB(ctx, r.db).Save(toGORM(t)).Error; err != nil {
		if persistence.IsDuplicateKeyErr(err) {
			return tier.ErrTierExists.WithContext("code", t.Code())
		}
		return persistence.WrapError(tier.ErrRepositoryError, "save tier", err)
	}
	return nil
}

// FindByID 根據 ID 查找（包含停用中的等級）
func (r *TierRepositoryImpl) FindByID(ctx shared.TransactionContext, id tier.TierID) (*tier.Tier, error) {
	var model TierGORM
	if err := persistence.DB(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, tier.ErrTierNotFound.WithContext("tier_id", id.String())
		}
		return nil, persistence.WrapError(tier.ErrRepositoryError, "find tier", err)
	}
	return model.toDomain()
}

// FindAll 所有等級，依 sort_order 排序
func (r *TierRepositoryImpl) FindAll(ctx shared.TransactionContext) ([]*tier.Tier, error) {
	var models []TierGORM
	if err := persistence.DB(ctx, r.db).Order("sort_order ASC").Find(&models).Error; err != nil {
		return nil, persistence.WrapError(tier.ErrRepositoryError, "list tiers", err)
	}
	return toDomainList(models)
}

// ListActiveTiers 啟用中的等級，依門檻遞增（CatalogProvider）
func (r *TierRepositoryImpl) ListActiveTiers(ctx context.Context) ([]*tier.Tier, error) {
	var models []TierGORM
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("spend_threshold ASC, sort_order ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(tier.ErrRepositoryError, "list active tiers", err)
	}
	return toDomainList(models)
}
