package ledger

import "strings"

// ===========================
// Source 交易來源
// ===========================

// Source 交易來源系統
type Source string

const (
	SourceStorefront  Source = "storefront"
	SourcePOSTerminal Source = "pos-terminal"
	SourceManual      Source = "manual"
)

// ParseSource 解析交易來源（不分大小寫）
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceStorefront, SourcePOSTerminal, SourceManual:
		return src, nil
	default:
		return "", ErrInvalidSource.WithContext("source", s)
	}
}

func (s Source) String() string {
	return string(s)
}

// ===========================
// Status 交易狀態
// ===========================

// Status 交易狀態，只有 StatusCompleted 計入累積消費
type Status string

const (
	StatusCompleted         Status = "completed"
	StatusPending           Status = "pending"
	StatusRefunded          Status = "refunded"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusCancelled         Status = "cancelled"
	StatusFailed            Status = "failed"
)

// ParseStatus 解析交易狀態
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusCompleted, StatusPending, StatusRefunded, StatusPartiallyRefunded, StatusCancelled, StatusFailed:
		return st, nil
	default:
		return "", ErrInvalidStatus.WithContext("status", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// CountsTowardSpend 是否計入累積消費
func (s Status) CountsTowardSpend() bool {
	return s == StatusCompleted
}
