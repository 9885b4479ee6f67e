package spend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// ProcessTransaction Use Case
// ===========================

// ProcessTransactionCommand 入帳指令（Input DTO）
type ProcessTransactionCommand struct {
	CustomerID  string
	Amount      string    // 十進位字串，例如 "750.00"
	Source      string    // storefront / pos-terminal / manual，空值為 manual
	ReferenceID string    // 外部銷售編號，跨來源唯一
	Status      string    // 空值為 completed
	OccurredAt  time.Time // 零值為現在
}

// TransactionResult 入帳或退款後的結果（Output DTO）
type TransactionResult struct {
	TransactionID string
	CustomerID    string
	Status        string
	TotalSpend    string
	TierID        string
	TierName      string
	TierChanged   bool
}

// ProcessTransactionUseCase 記錄一筆銷售並重新計算累積消費
//
// 業務規則：
// 1. 顧客必須存在且為啟用狀態
// 2. 相同 referenceID 已入帳時拒絕（ErrDuplicateReference），累積消費不變
// 3. 入帳成功後立即重新計算等級；重新計算失敗時撤銷入帳，整筆請求視為失敗
type ProcessTransactionUseCase struct {
	customers    customer.Repository
	transactions ledger.Repository
	recalculator *Recalculator
	txManager    shared.TransactionManager
}

// NewProcessTransactionUseCase 創建 ProcessTransactionUseCase
func NewProcessTransactionUseCase(
	customers customer.Repository,
	transactions ledger.Repository,
	recalculator *Recalculator,
	txManager shared.TransactionManager,
) *ProcessTransactionUseCase {
	return &ProcessTransactionUseCase{
		customers:    customers,
		transactions: transactions,
		recalculator: recalculator,
		txManager:    txManager,
	}
}

// Execute 執行入帳
func (uc *ProcessTransactionUseCase) Execute(ctx context.Context, cmd ProcessTransactionCommand) (*TransactionResult, error) {
	// Step 1: 驗證輸入
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(cmd.Amount))
	if err != nil {
		return nil, ledger.ErrInvalidAmount.WithContext("amount", cmd.Amount)
	}
	source, err := ledger.ParseSource(defaultString(cmd.Source, ledger.SourceManual.String()))
	if err != nil {
		return nil, err
	}
	status, err := ledger.ParseStatus(defaultString(cmd.Status, ledger.StatusCompleted.String()))
	if err != nil {
		return nil, err
	}

	// Step 2: 顧客必須為啟用狀態
	c, err := uc.customers.FindByID(nil, customerID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, customer.ErrCustomerInactive.WithContext("customer_id", cmd.CustomerID)
	}

	// Step 3: 建立交易
	txn, err := ledger.NewTransaction(customerID, amount, source, cmd.ReferenceID, status, cmd.OccurredAt)
	if err != nil {
		return nil, err
	}

	// Step 4: 在事務中檢查參考編號並保存
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		existing, err := uc.transactions.FindByReferenceID(tx, txn.ReferenceID())
		if err == nil {
			return ledger.ErrDuplicateReference.WithContext(
				"reference_id", txn.ReferenceID(),
				"source", existing.Source().String(),
			)
		}
		if !errors.Is(err, ledger.ErrTransactionNotFound) {
			return err
		}
		return uc.transactions.Save(tx, txn)
	})
	if err != nil {
		return nil, err
	}

	// Step 5: 重新計算累積消費
	recalculated, err := uc.recalculator.Recalculate(ctx, customerID)
	if err != nil {
		return nil, uc.revert(ctx, txn, err)
	}
	return newTransactionResult(txn, recalculated), nil
}

// revert 刪除剛入帳的交易，客戶端可以用相同參考編號重送
func (uc *ProcessTransactionUseCase) revert(ctx context.Context, txn *ledger.Transaction, cause error) error {
	err := uc.txManager.InTransaction(context.WithoutCancel(ctx), func(tx shared.TransactionContext) error {
		return uc.transactions.Delete(tx, txn.ID())
	})
	if err != nil {
		return fmt.Errorf("%w (revert transaction %s: %v)", cause, txn.ID().String(), err)
	}
	return cause
}

func newTransactionResult(txn *ledger.Transaction, r *RecalculateResult) *TransactionResult {
	return &TransactionResult{
		TransactionID: txn.ID().String(),
		CustomerID:    r.CustomerID,
		Status:        txn.Status().String(),
		TotalSpend:    r.TotalSpend,
		TierID:        r.TierID,
		TierName:      r.TierName,
		TierChanged:   r.TierChanged,
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
