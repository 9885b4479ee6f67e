package card

import (
	"regexp"
	"strings"
)

// ===========================
// CardNumber Value Object
// ===========================

// CardNumber 會員卡號（印在實體卡上、POS 掃描用）
//
// 業務規則：
// 1. 4 到 32 個字元，只允許英數字與連字號
// 2. 不分大小寫，統一轉為大寫儲存
type CardNumber struct {
	value string
}

var cardNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,30}[A-Z0-9]$`)

// NewCardNumber 創建卡號值對象（Checked Constructor）
func NewCardNumber(value string) (CardNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !cardNumberPattern.MatchString(normalized) {
		return CardNumber{}, ErrInvalidCardNumber.WithContext(
			"card_number", value,
			"reason", "must be 4-32 alphanumeric characters",
		)
	}
	return CardNumber{value: normalized}, nil
}

func (c CardNumber) String() string               { return c.value }
func (c CardNumber) Equals(other CardNumber) bool { return c.value == other.value }
func (c CardNumber) IsZero() bool                 { return c.value == "" }
