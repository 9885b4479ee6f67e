package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 非負金額值對象（消費金額、門檻、累積消費）
//
// 不變條件：value >= 0
type Money struct {
	value decimal.Decimal
}

// ZeroMoney 零元
func ZeroMoney() Money {
	return Money{value: decimal.Zero}
}

// NewMoney 建構函數（checked 版本）
func NewMoney(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, fmt.Errorf(
			"%w: attempted to create Money with value %s",
			ErrNegativeMoney,
			value.String(),
		)
	}
	return Money{value: value}, nil
}

// NewMoneyFromString 從十進位字串解析（API、設定檔、外部系統）
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidMoney.WithContext("input", s, "parse_error", err.Error())
	}
	return NewMoney(d)
}

// MustMoney 僅用於常數與測試
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal 原始數值
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// String 固定兩位小數
func (m Money) String() string {
	return m.value.StringFixed(2)
}

// Add 相加（兩個非負數相加必然非負）
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// SubFloorZero 相減，結果小於 0 時回傳 0
func (m Money) SubFloorZero(other Money) Money {
	diff := m.value.Sub(other.value)
	if diff.IsNegative() {
		return ZeroMoney()
	}
	return Money{value: diff}
}

func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

func (m Money) GreaterThan(other Money) bool {
	return m.value.GreaterThan(other.value)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.value.GreaterThanOrEqual(other.value)
}

func (m Money) LessThan(other Money) bool {
	return m.value.LessThan(other.value)
}

func (m Money) LessThanOrEqual(other Money) bool {
	return m.value.LessThanOrEqual(other.value)
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}
