// Package adapters 各交易來源的 ledger.SourceAdapter 實作
package adapters

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
)

// NativeLedgerAdapter 讀取本系統帳本（POST /transactions 入帳的交易）
type NativeLedgerAdapter struct {
	repo ledger.Repository
}

// NewNativeLedgerAdapter 建構函數
func NewNativeLedgerAdapter(repo ledger.Repository) *NativeLedgerAdapter {
	return &NativeLedgerAdapter{repo: repo}
}

func (a *NativeLedgerAdapter) Name() string { return "native" }

// ListCompletedTransactions 顧客在原生帳本中的所有交易（狀態由聚合器過濾）
func (a *NativeLedgerAdapter) ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.repo.ListByCustomer(nil, customerID)
}
