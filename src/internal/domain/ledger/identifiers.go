package ledger

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// TransactionMarker 是 TransactionID 的標記類型
type TransactionMarker struct{}

// TransactionID 交易的唯一標識符
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易 ID
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易 ID（失敗返回 ErrInvalidTransactionID）
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}
