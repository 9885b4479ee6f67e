package persistence

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 gorm.DB.Transaction 實作 shared.TransactionManager
//
// fn 返回錯誤或 panic 時回滾（panic 會被重新拋出），否則提交。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 建構函數
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)
