package customer

import (
	"net/mail"
	"strings"
)

// Email 電子郵件值對象（小寫儲存，作為顧客唯一鍵）
type Email struct {
	value string
}

// NewEmail 驗證並正規化電子郵件
func NewEmail(value string) (Email, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return Email{}, ErrInvalidEmail.WithContext("email", value, "reason", "cannot be empty")
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return Email{}, ErrInvalidEmail.WithContext("email", value, "reason", "malformed address")
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string          { return e.value }
func (e Email) Equals(other Email) bool { return e.value == other.value }
func (e Email) IsZero() bool            { return e.value == "" }
