package tier

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// TierMarker 是 TierID 的標記類型
type TierMarker struct{}

// TierID 會員等級的唯一標識符
type TierID = shared.EntityID[TierMarker]

// NewTierID 生成新的等級 ID
func NewTierID() TierID {
	return shared.NewEntityID[TierMarker]()
}

// TierIDFromString 從字串解析等級 ID（失敗返回 ErrInvalidTierID）
func TierIDFromString(s string) (TierID, error) {
	return shared.EntityIDFromString[TierMarker](s, ErrInvalidTierID)
}
