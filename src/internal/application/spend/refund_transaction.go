package spend

import (
	"context"
	"fmt"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// statusChange 變更原生交易狀態後重新計算累積消費
//
// 重新計算失敗時把交易狀態還原，整筆請求視為失敗，客戶端可以直接重試。
type statusChange struct {
	transactions ledger.Repository
	recalculator *Recalculator
	txManager    shared.TransactionManager
}

func (s statusChange) apply(ctx context.Context, transactionID string, change func(*ledger.Transaction) error) (*TransactionResult, error) {
	id, err := ledger.TransactionIDFromString(transactionID)
	if err != nil {
		return nil, err
	}

	var (
		txn    *ledger.Transaction
		before ledger.Transaction
	)
	err = s.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		found, err := s.transactions.FindByID(tx, id)
		if err != nil {
			return err
		}
		before = *found
		if err := change(found); err != nil {
			return err
		}
		txn = found
		return s.transactions.Update(tx, found)
	})
	if err != nil {
		return nil, err
	}

	recalculated, err := s.recalculator.Recalculate(ctx, txn.CustomerID())
	if err != nil {
		return nil, s.restore(ctx, &before, err)
	}
	return newTransactionResult(txn, recalculated), nil
}

func (s statusChange) restore(ctx context.Context, before *ledger.Transaction, cause error) error {
	err := s.txManager.InTransaction(context.WithoutCancel(ctx), func(tx shared.TransactionContext) error {
		return s.transactions.Update(tx, before)
	})
	if err != nil {
		return fmt.Errorf("%w (restore transaction %s to %s: %v)", cause, before.ID().String(), before.Status(), err)
	}
	return cause
}

// RefundTransactionUseCase 退款：交易改為 refunded 後重新計算累積消費
type RefundTransactionUseCase struct {
	statusChange
}

func NewRefundTransactionUseCase(
	transactions ledger.Repository,
	recalculator *Recalculator,
	txManager shared.TransactionManager,
) *RefundTransactionUseCase {
	return &RefundTransactionUseCase{statusChange{
		transactions: transactions,
		recalculator: recalculator,
		txManager:    txManager,
	}}
}

// Execute 只有 completed 或 partially_refunded 的交易可以退款，否則返回 ErrInvalidTransition
func (uc *RefundTransactionUseCase) Execute(ctx context.Context, transactionID string) (*TransactionResult, error) {
	return uc.apply(ctx, transactionID, (*ledger.Transaction).Refund)
}

// CompleteTransactionUseCase 待處理交易完成付款，開始計入累積消費
type CompleteTransactionUseCase struct {
	statusChange
}

func NewCompleteTransactionUseCase(
	transactions ledger.Repository,
	recalculator *Recalculator,
	txManager shared.TransactionManager,
) *CompleteTransactionUseCase {
	return &CompleteTransactionUseCase{statusChange{
		transactions: transactions,
		recalculator: recalculator,
		txManager:    txManager,
	}}
}

// Execute 只有 pending 的交易可以完成
func (uc *CompleteTransactionUseCase) Execute(ctx context.Context, transactionID string) (*TransactionResult, error) {
	return uc.apply(ctx, transactionID, (*ledger.Transaction).Complete)
}

// CancelTransactionUseCase 取消待處理交易
type CancelTransactionUseCase struct {
	statusChange
}

func NewCancelTransactionUseCase(
	transactions ledger.Repository,
	recalculator *Recalculator,
	txManager shared.TransactionManager,
) *CancelTransactionUseCase {
	return &CancelTransactionUseCase{statusChange{
		transactions: transactions,
		recalculator: recalculator,
		txManager:    txManager,
	}}
}

// Execute 只有 pending 的交易可以取消
func (uc *CancelTransactionUseCase) Execute(ctx context.Context, transactionID string) (*TransactionResult, error) {
	return uc.apply(ctx, transactionID, (*ledger.Transaction).Cancel)
}
