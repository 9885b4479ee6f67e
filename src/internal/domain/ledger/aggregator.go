package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// ===========================
// SpendAggregator 領域服務
// ===========================

// SpendAggregator 跨來源計算顧客累積消費
//
// 規則：
// - 只計入 status = completed 的交易
// - 以 referenceID 去重，同一筆外部銷售被多個來源回報時只算一次（先註冊的來源優先）
// - 純讀取，不寫回顧客；持久化由呼叫端負責
type SpendAggregator struct {
	adapters []SourceAdapter
}

// NewSpendAggregator 建構函數（adapters 的順序即去重時的優先順序）
func NewSpendAggregator(adapters ...SourceAdapter) *SpendAggregator {
	return &SpendAggregator{adapters: adapters}
}

// Sources 已註冊的來源名稱
func (a *SpendAggregator) Sources() []string {
	names := make([]string, 0, len(a.adapters))
	for _, adapter := range a.adapters {
		names = append(names, adapter.Name())
	}
	return names
}

// CalculateTotalSpend 並行讀取所有來源後加總
//
// 任一來源失敗即回傳該錯誤（附上來源名稱），其餘請求透過 ctx 取消。
func (a *SpendAggregator) CalculateTotalSpend(ctx context.Context, customerID customer.CustomerID) (shared.Money, error) {
	results := make([][]*Transaction, len(a.adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range a.adapters {
		g.Go(func() error {
			txs, err := adapter.ListCompletedTransactions(gctx, customerID)
			if err != nil {
				return fmt.Errorf("ledger source %s: %w", adapter.Name(), err)
			}
			results[i] = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return shared.ZeroMoney(), err
	}

	var all []*Transaction
	for _, txs := range results {
		all = append(all, txs...)
	}
	return SumCompleted(all), nil
}

// SumCompleted 加總已完成且 referenceID 不重複的交易金額
func SumCompleted(txs []*Transaction) shared.Money {
	total := shared.ZeroMoney()
	seen := make(map[string]struct{}, len(txs))

	for _, tx := range txs {
		if tx == nil || !tx.Status().CountsTowardSpend() {
			continue
		}
		if _, dup := seen[tx.ReferenceID()]; dup {
			continue
		}
		seen[tx.ReferenceID()] = struct{}{}
		total = total.Add(tx.Amount())
	}
	return total
}
