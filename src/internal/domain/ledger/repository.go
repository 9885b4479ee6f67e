package ledger

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// Repository 原生交易帳本倉儲
type Repository interface {
	// Save 新增交易；(source, referenceID) 重複時返回 ErrDuplicateReference
	Save(ctx shared.TransactionContext, tx *Transaction) error

	// Update 更新交易狀態
	Update(ctx shared.TransactionContext, tx *Transaction) error

	// Delete 撤銷尚未計入累積消費的入帳，找不到時返回 ErrTransactionNotFound
	Delete(ctx shared.TransactionContext, id TransactionID) error

	// FindByID 找不到時返回 ErrTransactionNotFound
	FindByID(ctx shared.TransactionContext, id TransactionID) (*Transaction, error)

	// FindByReferenceID 任一來源中相同參考編號的交易，找不到時返回 ErrTransactionNotFound
	FindByReferenceID(ctx shared.TransactionContext, referenceID string) (*Transaction, error)

	// ListByCustomer 顧客的所有交易（含未完成），依發生時間排序
	ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*Transaction, error)
}
