package ledger

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionGORM 原生交易帳本資料表模型
//
// 資料庫約束：
// - (source, reference_id): 複合唯一索引（同一來源同一筆銷售只入帳一次）
// - customer_id: 索引（加總消費時依顧客查詢）
type TransactionGORM struct {
	ID          string          `gorm:"column:id;type:varchar(36);primaryKey"`
	CustomerID  string          `gorm:"column:customer_id;type:varchar(36);not null;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
	Source      string          `gorm:"column:source;type:varchar(32);not null;uniqueIndex:idx_ledger_source_reference"`
	ReferenceID string          `gorm:"column:reference_id;type:varchar(128);not null;uniqueIndex:idx_ledger_source_reference;index"`
	Status      string          `gorm:"column:status;type:varchar(32);not null"`
	OccurredAt  time.Time       `gorm:"column:occurred_at;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (TransactionGORM) TableName() string {
	return "ledger_transactions"
}

func (m *TransactionGORM) toDomain() (*ledger.Transaction, error) {
	id, err := ledger.TransactionIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := customer.CustomerIDFromString(m.CustomerID)
	if err != nil {
		return nil, err
	}
	amount, err := shared.NewMoney(m.Amount)
	if err != nil {
		return nil, err
	}
	source, err := ledger.ParseSource(m.Source)
	if err != nil {
		return nil, err
	}
	status, err := ledger.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return ledger.ReconstructTransaction(
		id,
		customerID,
		amount,
		source,
		m.ReferenceID,
		status,
		m.OccurredAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toGORM(t *ledger.Transaction) *TransactionGORM {
	return &TransactionGORM{
		ID:          t.ID().String(),
		CustomerID:  t.CustomerID().String(),
		Amount:      t.Amount().Decimal(),
		Source:      t.Source().String(),
		ReferenceID: t.ReferenceID(),
		Status:      t.Status().String(),
		OccurredAt:  t.OccurredAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
