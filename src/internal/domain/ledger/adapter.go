package ledger

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
)

// SourceAdapter 交易來源轉接器
//
// 每個來源系統一個實作（原生帳本、電商平台、POS 終端），
// 把各自的資料正規化成 Transaction。實作可以回傳非 completed 的交易，
// 聚合時會再過濾一次。
type SourceAdapter interface {
	// Name 來源名稱（用於錯誤訊息與日誌）
	Name() string

	// ListCompletedTransactions 讀取顧客的交易，網路或資料庫錯誤直接回傳，不重試
	ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*Transaction, error)
}
