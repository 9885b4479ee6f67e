package ledger

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// TransactionRepositoryImpl 原生交易帳本倉儲（GORM）
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// NewTransactionRepository 創建交易倉儲
func NewTransactionRepository(db *gorm.DB) ledger.Repository {
	return &TransactionRepositoryImpl{db: db}
}

// Save 新增交易
//
// (source, reference_id) 唯一約束違反 → ErrDuplicateReference
func (r *TransactionRepositoryImpl) Save(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	if err := persistence.DB(ctx, r.db).Create(toGORM(tx)).Error; err != nil {
		if persistence.IsDuplicateKeyErr(err) {
			return ledger.ErrDuplicateReference.WithContext(
				"source", tx.Source().String(),
				"reference_id", tx.ReferenceID(),
			)
		}
		return persistence.WrapError(ledger.ErrRepositoryError, "save transaction", err)
	}
	return nil
}

// Update 只更新狀態（金額與參考編號入帳後不可變）
func (r *TransactionRepositoryImpl) Update(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	result := persistence.DB(ctx, r.db).
		Model(&TransactionGORM{}).
		Where("id = ?", tx.ID().String()).
		Updates(map[string]interface{}{
			"status":     tx.Status().String(),
			"updated_at": tx.UpdatedAt(),
		})
	if result.Error != nil {
		return persistence.WrapError(ledger.ErrRepositoryError, "update transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return ledger.ErrTransactionNotFound.WithContext("transaction_id", tx.ID().String())
	}
	return nil
}

// Delete 刪除交易（入帳後重新計算失敗時的補償）
func (r *TransactionRepositoryImpl) Delete(ctx shared.TransactionContext, id ledger.TransactionID) error {
	result := persistence.DB(ctx, r.db).Where("id = ?", id.String()).Delete(&TransactionGORM{})
	if result.Error != nil {
		return persistence.WrapError(ledger.ErrRepositoryError, "delete transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return ledger.ErrTransactionNotFound.WithContext("transaction_id", id.String())
	}
	return nil
}

// FindByID 根據 ID 查找交易
func (r *TransactionRepositoryImpl) FindByID(ctx shared.TransactionContext, id ledger.TransactionID) (*ledger.Transaction, error) {
	var model TransactionGORM
	if err := persistence.DB(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, ledger.ErrTransactionNotFound.WithContext("transaction_id", id.String())
		}
		return nil, persistence.WrapError(ledger.ErrRepositoryError, "find transaction", err)
	}
	return model.toDomain()
}

// FindByReferenceID 任一來源中最早入帳的同參考編號交易
func (r *TransactionRepositoryImpl) FindByReferenceID(ctx shared.TransactionContext, referenceID string) (*ledger.Transaction, error) {
	var model TransactionGORM
	err := persistence.DB(ctx, r.db).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, ledger.ErrTransactionNotFound.WithContext("reference_id", referenceID)
		}
		return nil, persistence.WrapError(ledger.ErrRepositoryError, "find transaction by reference", err)
	}
	return model.toDomain()
}

// ListByCustomer 顧客的所有交易，依發生時間排序
func (r *TransactionRepositoryImpl) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	var models []TransactionGORM
	err := persistence.DB(ctx, r.db).
		Where("customer_id = ?", customerID.String()).
		Order("occurred_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(ledger.ErrRepositoryError, "list transactions", err)
	}

	txs := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		tx, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
