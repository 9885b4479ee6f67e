package customer

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// CustomerRepositoryImpl
// ===========================

// CustomerRepositoryImpl 顧客倉儲實現（GORM）
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRepository 創建新的顧客倉儲實例
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &CustomerRepositoryImpl{db: db}
}

// Create 新增顧客
//
// 錯誤處理：
// - email 唯一約束違反 → ErrCustomerExists
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *CustomerRepositoryImpl) Create(ctx shared.TransactionContext, c *customer.Customer) error {
	db := persistence.DB(ctx, r.db)

	if err := db.Create(toGORM(c)).Error; err != nil {
		if persistence.IsDuplicateKeyErr(err) {
			return customer.ErrCustomerExists.WithContext("email", c.Email().String())
		}
		return persistence.WrapError(customer.ErrRepositoryError, "create customer", err)
	}
	return nil
}

// Update 樂觀鎖更新
//
// 實作邏輯：
// 1. UPDATE ... WHERE id = ? AND version = ?，同時 version + 1
// 2. 影響 0 筆：資料不存在 → ErrCustomerNotFound，否則 → ErrConcurrentModification
// 3. 成功後同步聚合的版本號
//
// 使用 map 更新，確保 false / 0 / NULL 也會寫入。
func (r *CustomerRepositoryImpl) Update(ctx shared.TransactionContext, c *customer.Customer) error {
	db := persistence.DB(ctx, r.db)
	model := toGORM(c)

	result := db.Model(&CustomerGORM{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"email":           model.Email,
			"phone":           model.Phone,
			"total_spend":     model.TotalSpend,
			"tier_id":         model.TierID,
			"tier_overridden": model.TierOverridden,
			"active":          model.Active,
			"updated_at":      model.UpdatedAt,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if persistence.IsDuplicateKeyErr(result.Error) {
			return customer.ErrCustomerExists.WithContext("email", model.Email)
		}
		return persistence.WrapError(customer.ErrRepositoryError, "update customer", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&CustomerGORM{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return persistence.WrapError(customer.ErrRepositoryError, "update customer", err)
		}
		if count == 0 {
			return customer.ErrCustomerNotFound.WithContext("customer_id", model.ID)
		}
		return customer.ErrConcurrentModification.WithContext(
			"customer_id", model.ID,
			"expected_version", model.Version,
		)
	}

	c.AdvanceVersion()
	return nil
}

// FindByID 根據 ID 查找顧客
func (r *CustomerRepositoryImpl) FindByID(ctx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	var model CustomerGORM
	if err := persistence.DB(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, customer.ErrCustomerNotFound.WithContext("customer_id", id.String())
		}
		return nil, persistence.WrapError(customer.ErrRepositoryError, "find customer", err)
	}
	return model.toDomain()
}

// FindByEmail 根據 email 查找顧客
func (r *CustomerRepositoryImpl) FindByEmail(ctx shared.TransactionContext, email customer.Email) (*customer.Customer, error) {
	var model CustomerGORM
	if err := persistence.DB(ctx, r.db).Where("email = ?", email.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, customer.ErrCustomerNotFound.WithContext("email", email.String())
		}
		return nil, persistence.WrapError(customer.ErrRepositoryError, "find customer by email", err)
	}
	return model.toDomain()
}

// ExistsByEmail 只執行 COUNT，不載入完整資料
func (r *CustomerRepositoryImpl) ExistsByEmail(ctx shared.TransactionContext, email customer.Email) (bool, error) {
	var count int64
	err := persistence.DB(ctx, r.db).
		Model(&CustomerGORM{}).
		Where("email = ?", email.String()).
		Count(&count).Error
	if err != nil {
		return false, persistence.WrapError(customer.ErrRepositoryError, "count customers", err)
	}
	return count > 0, nil
}
