package persistence

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext 封裝 *gorm.DB，避免洩漏到 Domain Layer
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 僅供 Infrastructure Layer 內部使用（不在 shared.TransactionContext 介面中）
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// dbProvider 各倉儲用來辨識 GORM 事務上下文
type dbProvider interface {
	GetDB() *gorm.DB
}

// DB 取得倉儲應使用的連線
//
//   - ctx 為 GORM 事務上下文：返回事務中的 DB
//   - ctx 為 nil 或其他實作：返回 fallback（auto-commit 模式）
func DB(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if p, ok := ctx.(dbProvider); ok {
		return p.GetDB()
	}
	return fallback
}
