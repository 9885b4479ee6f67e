package shared

import "context"

// TransactionContext 事務上下文介面（標記介面）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行
// - ctx == nil: auto-commit（僅適用於讀操作）
//
// 寫操作（Save / Update）必須在 TransactionManager.InTransaction 中執行；
// 讀操作可選擇是否參與事務。
//
//	txManager.InTransaction(ctx, func(tx TransactionContext) error {
//	    card, _ := cardRepo.FindByID(tx, cardID)
//	    if err := card.Deactivate(now); err != nil {
//	        return err
//	    }
//	    return cardRepo.Update(tx, card)
//	})
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 返回錯誤或 panic 時回滾；context.Context 用於取消與日誌關聯
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error
}
