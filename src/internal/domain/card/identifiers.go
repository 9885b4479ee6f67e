package card

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// CardMarker 是 CardID 的標記類型
type CardMarker struct{}

// CardID 會員卡的唯一標識符
type CardID = shared.EntityID[CardMarker]

// NewCardID 生成新的會員卡 ID
func NewCardID() CardID {
	return shared.NewEntityID[CardMarker]()
}

// CardIDFromString 從字串解析會員卡 ID（失敗返回 ErrInvalidCardID）
func CardIDFromString(s string) (CardID, error) {
	return shared.EntityIDFromString[CardMarker](s, ErrInvalidCardID)
}
