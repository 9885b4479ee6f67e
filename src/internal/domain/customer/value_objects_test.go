package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"台灣手機", "0912345678", "0912345678", false},
		{"含連字號", "0912-345-678", "0912345678", false},
		{"國際格式", "+1 (415) 555-0100", "+14155550100", false},
		{"太短", "1234567", "", true},
		{"含字母", "0912abc678", "", true},
		{"空字串", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := NewPhoneNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
				assert.True(t, phone.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, phone.String())
		})
	}
}

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Grace.Hopper@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "grace.hopper@example.com", email.String())

	other, _ := NewEmail("grace.hopper@example.com")
	assert.True(t, email.Equals(other))

	for _, input := range []string{"", "not-an-email", "Grace <grace@example.com>"} {
		_, err := NewEmail(input)
		assert.ErrorIs(t, err, ErrInvalidEmail, input)
	}
}

func TestCustomerIDFromString(t *testing.T) {
	id := NewCustomerID()

	parsed, err := CustomerIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equals(id))

	_, err = CustomerIDFromString("nope")
	assert.ErrorIs(t, err, ErrInvalidCustomerID)
}
