package customer

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// Repository 顧客倉儲接口
//
// 事務管理策略：
//   - 寫操作（Create, Update）ctx 必須 non-nil
//   - 讀操作 ctx 可為 nil，nil 時使用獨立連接
type Repository interface {
	// Create 新增顧客；email 重複時返回 ErrCustomerExists
	Create(ctx shared.TransactionContext, customer *Customer) error

	// Update 以樂觀鎖更新（WHERE version = customer.Version()）
	//
	// 版本不符返回 ErrConcurrentModification；成功後 customer.Version() 遞增。
	Update(ctx shared.TransactionContext, customer *Customer) error

	// FindByID 找不到時返回 ErrCustomerNotFound
	FindByID(ctx shared.TransactionContext, id CustomerID) (*Customer, error)

	// FindByEmail 找不到時返回 ErrCustomerNotFound
	FindByEmail(ctx shared.TransactionContext, email Email) (*Customer, error)

	// ExistsByEmail 只執行 COUNT
	ExistsByEmail(ctx shared.TransactionContext, email Email) (bool, error)
}
