package adapters

import (
	"errors"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 略過原因（同時作為指標 label）
const (
	ReasonUnknownStatus    = "unknown_status"
	ReasonInvalidAmount    = "invalid_amount"
	ReasonInvalidTimestamp = "invalid_timestamp"
	ReasonInvalidRecord    = "invalid_record"
)

// SkipObserver 記錄被略過或修正的外部紀錄
type SkipObserver interface {
	RecordSkipped(source, reason string)
}

// externalRecord 一筆外部紀錄解析後的欄位
type externalRecord struct {
	reference  string
	status     string // 來源原始狀態
	mapped     ledger.Status
	known      bool // status 是否對應得到
	amount     string
	occurredAt string
}

// recordNormalizer 逐筆把外部紀錄轉成 Transaction
//
// 單筆紀錄無法入帳時記錄警告後略過，同批其他紀錄照常計算；
// 對應不到的狀態視為 failed（不計入累積消費）。
type recordNormalizer struct {
	source ledger.Source
	log    *zap.Logger
	skips  SkipObserver
}

func newRecordNormalizer(source ledger.Source, log *zap.Logger, skips SkipObserver) recordNormalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return recordNormalizer{source: source, log: log.With(zap.String("source", source.String())), skips: skips}
}

// normalize ok = false 表示該筆已略過
func (n recordNormalizer) normalize(customerID customer.CustomerID, index int, r externalRecord) (*ledger.Transaction, bool) {
	status := r.mapped
	if !r.known {
		n.warn(ReasonUnknownStatus, "unmapped status counted as failed",
			zap.Int("index", index), zap.String("reference_id", r.reference), zap.String("status", r.status))
		status = ledger.StatusFailed
	}

	amount, err := decimal.NewFromString(r.amount)
	if err != nil {
		n.warn(ReasonInvalidAmount, "record skipped",
			zap.Int("index", index), zap.String("reference_id", r.reference), zap.String("amount", r.amount))
		return nil, false
	}

	var occurredAt time.Time
	if r.occurredAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, r.occurredAt)
		if err != nil {
			n.warn(ReasonInvalidTimestamp, "record timestamp ignored",
				zap.Int("index", index), zap.String("reference_id", r.reference), zap.String("occurred_at", r.occurredAt))
		}
	}

	tx, err := ledger.NewTransaction(customerID, amount, n.source, r.reference, status, occurredAt)
	if err != nil {
		reason := ReasonInvalidRecord
		if errors.Is(err, ledger.ErrInvalidAmount) {
			reason = ReasonInvalidAmount
		}
		n.warn(reason, "record skipped",
			zap.Int("index", index), zap.String("reference_id", r.reference), zap.String("amount", r.amount), zap.Error(err))
		return nil, false
	}
	return tx, true
}

func (n recordNormalizer) warn(reason, msg string, fields ...zap.Field) {
	n.log.Warn(msg, append(fields, zap.String("reason", reason))...)
	if n.skips != nil {
		n.skips.RecordSkipped(n.source.String(), reason)
	}
}
