package reward

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Benefit 標記聯集（tagged union）
// ===========================

// Type 獎勵類型，決定 Benefit 的具體型別
type Type string

const (
	TypePercentOff       Type = "percent_off"
	TypeAmountOff        Type = "amount_off"
	TypeFreeItem         Type = "free_item"
	TypePointsMultiplier Type = "points_multiplier"
)

// Benefit 獎勵內容；只能是本 package 定義的四種變體之一
type Benefit interface {
	Type() Type
	Fields() BenefitFields
	Describe() string
	sealed()
}

// BenefitFields 扁平化欄位（API 請求與 JSON 欄位共用），只有對應類型的欄位有值
type BenefitFields struct {
	Percent  decimal.Decimal
	Amount   decimal.Decimal
	SKU      string
	Quantity int
	Factor   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// PercentOff 折扣百分比（0 < percent <= 100）
type PercentOff struct {
	percent decimal.Decimal
}

func NewPercentOff(percent decimal.Decimal) (PercentOff, error) {
	if !percent.IsPositive() || percent.GreaterThan(hundred) {
		return PercentOff{}, ErrInvalidBenefit.WithContext("type", TypePercentOff, "percent", percent.String())
	}
	return PercentOff{percent: percent}, nil
}

func (b PercentOff) Type() Type               { return TypePercentOff }
func (b PercentOff) Percent() decimal.Decimal { return b.percent }
func (b PercentOff) Fields() BenefitFields    { return BenefitFields{Percent: b.percent} }
func (b PercentOff) Describe() string         { return b.percent.String() + "% off" }
func (PercentOff) sealed()                    {}

// AmountOff 折抵固定金額（> 0）
type AmountOff struct {
	amount shared.Money
}

func NewAmountOff(amount decimal.Decimal) (AmountOff, error) {
	if !amount.IsPositive() {
		return AmountOff{}, ErrInvalidBenefit.WithContext("type", TypeAmountOff, "amount", amount.String())
	}
	m, err := shared.NewMoney(amount)
	if err != nil {
		return AmountOff{}, err
	}
	return AmountOff{amount: m}, nil
}

func (b AmountOff) Type() Type            { return TypeAmountOff }
func (b AmountOff) Amount() shared.Money  { return b.amount }
func (b AmountOff) Fields() BenefitFields { return BenefitFields{Amount: b.amount.Decimal()} }
func (b AmountOff) Describe() string      { return b.amount.String() + " off" }
func (AmountOff) sealed()                 {}

// FreeItem 贈品（SKU 與數量）
type FreeItem struct {
	sku      string
	quantity int
}

func NewFreeItem(sku string, quantity int) (FreeItem, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" || quantity < 1 {
		return FreeItem{}, ErrInvalidBenefit.WithContext("type", TypeFreeItem, "sku", sku, "quantity", quantity)
	}
	return FreeItem{sku: sku, quantity: quantity}, nil
}

func (b FreeItem) Type() Type            { return TypeFreeItem }
func (b FreeItem) SKU() string           { return b.sku }
func (b FreeItem) Quantity() int         { return b.quantity }
func (b FreeItem) Fields() BenefitFields { return BenefitFields{SKU: b.sku, Quantity: b.quantity} }
func (b FreeItem) Describe() string      { return fmt.Sprintf("%d x %s free", b.quantity, b.sku) }
func (FreeItem) sealed()                 {}

// PointsMultiplier 點數加倍（factor > 1）
type PointsMultiplier struct {
	factor decimal.Decimal
}

func NewPointsMultiplier(factor decimal.Decimal) (PointsMultiplier, error) {
	if !factor.GreaterThan(decimal.NewFromInt(1)) {
		return PointsMultiplier{}, ErrInvalidBenefit.WithContext("type", TypePointsMultiplier, "factor", factor.String())
	}
	return PointsMultiplier{factor: factor}, nil
}

func (b PointsMultiplier) Type() Type              { return TypePointsMultiplier }
func (b PointsMultiplier) Factor() decimal.Decimal { return b.factor }
func (b PointsMultiplier) Fields() BenefitFields   { return BenefitFields{Factor: b.factor} }
func (b PointsMultiplier) Describe() string        { return b.factor.String() + "x points" }
func (PointsMultiplier) sealed()                   {}

// NewBenefit 依類型建立對應變體，並檢查該變體的必要欄位
func NewBenefit(t Type, f BenefitFields) (Benefit, error) {
	var (
		b   Benefit
		err error
	)
	switch t {
	case TypePercentOff:
		b, err = NewPercentOff(f.Percent)
	case TypeAmountOff:
		b, err = NewAmountOff(f.Amount)
	case TypeFreeItem:
		b, err = NewFreeItem(f.SKU, f.Quantity)
	case TypePointsMultiplier:
		b, err = NewPointsMultiplier(f.Factor)
	default:
		err = ErrInvalidBenefit.WithContext("type", t, "reason", "unknown reward type")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
