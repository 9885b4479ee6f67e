package tier

import (
	"context"
	"sort"
)

// ===========================
// Catalog 等級目錄
// ===========================

// Catalog 已驗證的啟用中等級集合（不可變）
//
// 不變條件（NewCatalog 保證）：
// - 至少一個啟用中的自動等級
// - 自動等級依 sortOrder 排序後門檻嚴格遞增
// - 最低自動等級門檻為 0
type Catalog struct {
	tiers     []*Tier // 啟用中，依 sortOrder 排序
	automatic []*Tier // tiers 中的非邀請制等級
}

// NewCatalog 從等級列表建立目錄（停用中的等級會被忽略）
func NewCatalog(tiers []*Tier) (Catalog, error) {
	active := make([]*Tier, 0, len(tiers))
	for _, t := range tiers {
		if t != nil && t.IsActive() {
			active = append(active, t)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].SortOrder() != active[j].SortOrder() {
			return active[i].SortOrder() < active[j].SortOrder()
		}
		return active[i].SpendThreshold().LessThan(active[j].SpendThreshold())
	})

	automatic := make([]*Tier, 0, len(active))
	for _, t := range active {
		if !t.IsInviteOnly() {
			automatic = append(automatic, t)
		}
	}

	if len(automatic) == 0 {
		return Catalog{}, ErrEmptyCatalog.WithContext("tiers", len(tiers), "active", len(active))
	}

	if !automatic[0].SpendThreshold().IsZero() {
		return Catalog{}, ErrInvalidCatalog.WithContext(
			"reason", "lowest tier must have a zero threshold",
			"tier", automatic[0].Code(),
			"threshold", automatic[0].SpendThreshold().String(),
		)
	}

	for i := 1; i < len(automatic); i++ {
		prev, cur := automatic[i-1], automatic[i]
		if !cur.SpendThreshold().GreaterThan(prev.SpendThreshold()) {
			return Catalog{}, ErrInvalidCatalog.WithContext(
				"reason", "thresholds must be strictly increasing by sort order",
				"tier", cur.Code(),
				"previous", prev.Code(),
			)
		}
	}

	return Catalog{tiers: active, automatic: automatic}, nil
}

// Tiers 所有啟用中的等級（含邀請制）
func (c Catalog) Tiers() []*Tier {
	out := make([]*Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Automatic 可由消費金額自動取得的等級，門檻遞增
func (c Catalog) Automatic() []*Tier {
	out := make([]*Tier, len(c.automatic))
	copy(out, c.automatic)
	return out
}

// FindByID 在目錄中尋找等級
func (c Catalog) FindByID(id TierID) (*Tier, bool) {
	for _, t := range c.tiers {
		if t.ID().Equals(id) {
			return t, true
		}
	}
	return nil, false
}

// IsEmpty 是否為零值目錄
func (c Catalog) IsEmpty() bool {
	return len(c.automatic) == 0
}

// CatalogProvider 等級目錄來源
//
// 每種儲存後端一個實作（資料表、靜態設定檔），業務邏輯只依賴此介面。
type CatalogProvider interface {
	// ListActiveTiers 返回啟用中的等級，依門檻遞增排序
	ListActiveTiers(ctx context.Context) ([]*Tier, error)
}

// LoadCatalog 從 provider 讀取並驗證目錄
func LoadCatalog(ctx context.Context, provider CatalogProvider) (Catalog, error) {
	tiers, err := provider.ListActiveTiers(ctx)
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(tiers)
}
