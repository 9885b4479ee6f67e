package ledger

import (
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Transaction 實體
// ===========================

// Transaction 一筆銷售交易（原生帳本或外部來源正規化後的結果）
//
// 不變量：
// - amount > 0（入帳時拒絕 0 與負數，不在加總時默默略過）
// - referenceID 非空，同一來源內唯一
type Transaction struct {
	id          TransactionID
	customerID  customer.CustomerID
	amount      shared.Money
	source      Source
	referenceID string
	status      Status
	occurredAt  time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewTransaction 入帳（Checked Constructor）
func NewTransaction(
	customerID customer.CustomerID,
	amount decimal.Decimal,
	source Source,
	referenceID string,
	status Status,
	occurredAt time.Time,
) (*Transaction, error) {
	if customerID.IsEmpty() {
		return nil, customer.ErrInvalidCustomerID.WithContext("reason", "customer id is required")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount.WithContext("amount", amount.String(), "reference_id", referenceID)
	}
	// 欄位為 decimal(14,2)，超過兩位小數會被資料庫四捨五入
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return nil, ErrInvalidAmount.WithContext("amount", amount.String(), "reference_id", referenceID, "reason", "more than 2 decimal places")
	}
	referenceID = strings.TrimSpace(referenceID)
	if referenceID == "" {
		return nil, ErrInvalidReference
	}
	source, err := ParseSource(string(source))
	if err != nil {
		return nil, err
	}
	status, err = ParseStatus(string(status))
	if err != nil {
		return nil, err
	}

	money, err := shared.NewMoney(amount)
	if err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	now := time.Now()
	return &Transaction{
		id:          NewTransactionID(),
		customerID:  customerID,
		amount:      money,
		source:      source,
		referenceID: referenceID,
		status:      status,
		occurredAt:  occurredAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTransaction 從資料庫重建
func ReconstructTransaction(
	id TransactionID,
	customerID customer.CustomerID,
	amount shared.Money,
	source Source,
	referenceID string,
	status Status,
	occurredAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Transaction, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidTransactionID.WithContext("reason", "transaction id cannot be empty")
	}
	return &Transaction{
		id:          id,
		customerID:  customerID,
		amount:      amount,
		source:      source,
		referenceID: referenceID,
		status:      status,
		occurredAt:  occurredAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// Refund 全額退款（只有已完成的交易可以退款）
func (t *Transaction) Refund() error {
	if t.status != StatusCompleted && t.status != StatusPartiallyRefunded {
		return ErrInvalidTransition.WithContext("from", t.status, "to", StatusRefunded)
	}
	t.transition(StatusRefunded)
	return nil
}

// Cancel 取消尚未完成的交易
func (t *Transaction) Cancel() error {
	if t.status != StatusPending {
		return ErrInvalidTransition.WithContext("from", t.status, "to", StatusCancelled)
	}
	t.transition(StatusCancelled)
	return nil
}

// Complete 待處理交易完成付款
func (t *Transaction) Complete() error {
	if t.status != StatusPending {
		return ErrInvalidTransition.WithContext("from", t.status, "to", StatusCompleted)
	}
	t.transition(StatusCompleted)
	return nil
}

func (t *Transaction) transition(to Status) {
	t.status = to
	t.updatedAt = time.Now()
}

func (t *Transaction) ID() TransactionID               { return t.id }
func (t *Transaction) CustomerID() customer.CustomerID { return t.customerID }
func (t *Transaction) Amount() shared.Money            { return t.amount }
func (t *Transaction) Source() Source                  { return t.source }
func (t *Transaction) ReferenceID() string             { return t.referenceID }
func (t *Transaction) Status() Status                  { return t.status }
func (t *Transaction) OccurredAt() time.Time           { return t.occurredAt }
func (t *Transaction) CreatedAt() time.Time            { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time            { return t.updatedAt }
