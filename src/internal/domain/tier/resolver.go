package tier

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Resolver 領域服務
// ===========================

// Resolver 依累積消費決定等級並計算升級進度（無狀態）
type Resolver struct{}

// NewResolver 建構函數
func NewResolver() *Resolver {
	return &Resolver{}
}

var hundred = decimal.NewFromInt(100)

// Progress 升級進度
type Progress struct {
	CurrentTier       *Tier
	NextTier          *Tier // nil 表示已達最高等級
	TotalSpend        shared.Money
	SpendToNextTier   shared.Money
	PercentToNextTier decimal.Decimal // 0–100，兩位小數
	MaxTierReached    bool
}

// ResolveTier 選出門檻 <= 消費金額的最高自動等級
//
// 邀請制等級永遠不會被選中。
func (r *Resolver) ResolveTier(totalSpend shared.Money, catalog Catalog) (*Tier, error) {
	if catalog.IsEmpty() {
		return nil, ErrEmptyCatalog
	}

	var selected *Tier
	for _, t := range catalog.automatic {
		if t.SpendThreshold().LessThanOrEqual(totalSpend) {
			selected = t
			continue
		}
		break
	}

	if selected == nil {
		return nil, ErrNoTierAvailable.WithContext("total_spend", totalSpend.String())
	}
	return selected, nil
}

// ComputeProgress 計算距離下一等級的進度
//
// assigned 為手動指定的等級（可為 nil）；非 nil 時以它作為目前等級，
// 否則以 ResolveTier 的結果為準。
func (r *Resolver) ComputeProgress(totalSpend shared.Money, assigned *Tier, catalog Catalog) (Progress, error) {
	current := assigned
	if current == nil {
		resolved, err := r.ResolveTier(totalSpend, catalog)
		if err != nil {
			return Progress{}, err
		}
		current = resolved
	}

	next := r.nextTier(current, catalog)
	if next == nil {
		return Progress{
			CurrentTier:       current,
			TotalSpend:        totalSpend,
			SpendToNextTier:   shared.ZeroMoney(),
			PercentToNextTier: hundred,
			MaxTierReached:    true,
		}, nil
	}

	span := next.SpendThreshold().Decimal().Sub(current.SpendThreshold().Decimal())
	gained := totalSpend.Decimal().Sub(current.SpendThreshold().Decimal())
	percent := gained.Div(span).Mul(hundred)
	percent = clamp(percent, decimal.Zero, hundred).Round(2)

	return Progress{
		CurrentTier:       current,
		NextTier:          next,
		TotalSpend:        totalSpend,
		SpendToNextTier:   next.SpendThreshold().SubFloorZero(totalSpend),
		PercentToNextTier: percent,
	}, nil
}

// nextTier 門檻嚴格大於目前等級的最小自動等級
func (r *Resolver) nextTier(current *Tier, catalog Catalog) *Tier {
	if current.IsInviteOnly() {
		return nil
	}
	for _, t := range catalog.automatic {
		if t.SpendThreshold().GreaterThan(current.SpendThreshold()) {
			return t
		}
	}
	return nil
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
