package reward

import (
	"encoding/json"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

// benefitJSON benefit 欄位的 JSON 格式，只輸出該類型用到的欄位
//
//	{"percent":"15"}
//	{"sku":"LATTE","quantity":2}
type benefitJSON struct {
	Percent  *decimal.Decimal `json:"percent,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	SKU      string           `json:"sku,omitempty"`
	Quantity int              `json:"quantity,omitempty"`
	Factor   *decimal.Decimal `json:"factor,omitempty"`
}

func encodeBenefit(b reward.Benefit) (datatypes.JSON, error) {
	f := b.Fields()
	var payload benefitJSON

	switch b.Type() {
	case reward.TypePercentOff:
		payload.Percent = &f.Percent
	case reward.TypeAmountOff:
		payload.Amount = &f.Amount
	case reward.TypeFreeItem:
		payload.SKU = f.SKU
		payload.Quantity = f.Quantity
	case reward.TypePointsMultiplier:
		payload.Factor = &f.Factor
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// decodeBenefit 依 type 欄位讀取對應的 JSON 欄位，再交給 NewBenefit 驗證
func decodeBenefit(t string, raw datatypes.JSON) (reward.Benefit, error) {
	doc := gjson.ParseBytes(raw)

	f := reward.BenefitFields{
		SKU:      doc.Get("sku").String(),
		Quantity: int(doc.Get("quantity").Int()),
	}
	var err error
	if f.Percent, err = decimalField(doc, "percent"); err != nil {
		return nil, err
	}
	if f.Amount, err = decimalField(doc, "amount"); err != nil {
		return nil, err
	}
	if f.Factor, err = decimalField(doc, "factor"); err != nil {
		return nil, err
	}

	return reward.NewBenefit(reward.Type(t), f)
}

func decimalField(doc gjson.Result, path string) (decimal.Decimal, error) {
	v := doc.Get(path)
	if !v.Exists() {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, reward.ErrInvalidBenefit.WithContext("field", path, "value", v.String())
	}
	return d, nil
}
