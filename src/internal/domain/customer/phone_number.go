package customer

import (
	"regexp"
	"strings"
)

// ===========================
// PhoneNumber Value Object
// ===========================

// PhoneNumber 手機號碼值對象
//
// 業務規則：
// 1. 可選的國碼前綴 "+"
// 2. 8 到 15 位數字（E.164 上限）
// 3. 輸入中的空白、連字號與括號會被移除
//
// 使用範例：
//
//	phone, err := NewPhoneNumber("0912-345-678")
//	phone.String() // "0912345678"
type PhoneNumber struct {
	value string
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NewPhoneNumber 創建手機號碼值對象（Checked Constructor）
func NewPhoneNumber(value string) (PhoneNumber, error) {
	normalized := phoneSeparators.Replace(strings.TrimSpace(value))
	if !phonePattern.MatchString(normalized) {
		return PhoneNumber{}, ErrInvalidPhoneNumber.WithContext(
			"phone", value,
			"reason", "must be 8-15 digits with optional leading +",
		)
	}
	return PhoneNumber{value: normalized}, nil
}

// String 返回正規化後的號碼
func (p PhoneNumber) String() string {
	return p.value
}

// Equals 值相等
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}

// IsZero 未提供手機號碼
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}
