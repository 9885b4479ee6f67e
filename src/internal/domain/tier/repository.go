package tier

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// Repository 等級倉儲介面（管理操作；讀取目錄請用 CatalogProvider）
type Repository interface {
	// Save 新增或更新等級
	Save(ctx shared.TransactionContext, tier *Tier) error

	// FindByID 找不到時返回 ErrTierNotFound（包含停用中的等級）
	FindByID(ctx shared.TransactionContext, id TierID) (*Tier, error)

	// FindAll 所有等級，依 sortOrder 排序
	FindAll(ctx shared.TransactionContext) ([]*Tier, error)
}
