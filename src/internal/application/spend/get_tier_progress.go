package spend

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// TierSummary 等級摘要（Output DTO）
type TierSummary struct {
	ID             string
	Name           string
	Code           string
	SpendThreshold string
	InviteOnly     bool
}

// TierProgressResult 升級進度（Output DTO）
type TierProgressResult struct {
	CustomerID        string
	CurrentTier       TierSummary
	NextTier          *TierSummary
	TotalSpend        string
	SpendToNextTier   string
	PercentToNextTier string
	MaxTierReached    bool
	TierOverridden    bool
}

// GetTierProgressUseCase 查詢顧客距離下一等級的進度
//
// 以顧客已保存的累積消費計算，不呼叫外部來源；需要最新數字時先 Recalculate。
type GetTierProgressUseCase struct {
	customers customer.Repository
	catalog   tier.CatalogProvider
	resolver  *tier.Resolver
}

func NewGetTierProgressUseCase(customers customer.Repository, catalog tier.CatalogProvider) *GetTierProgressUseCase {
	return &GetTierProgressUseCase{
		customers: customers,
		catalog:   catalog,
		resolver:  tier.NewResolver(),
	}
}

func (uc *GetTierProgressUseCase) Execute(ctx context.Context, customerID string) (*TierProgressResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}

	c, err := uc.customers.FindByID(nil, id)
	if err != nil {
		return nil, err
	}

	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}

	// 手動指定的等級必須仍在目錄中
	var assigned *tier.Tier
	if c.IsTierOverridden() {
		t, ok := catalog.FindByID(c.TierID())
		if !ok {
			return nil, tier.ErrTierNotFound.WithContext("tier_id", c.TierID().String())
		}
		assigned = t
	}

	progress, err := uc.resolver.ComputeProgress(c.TotalSpend(), assigned, catalog)
	if err != nil {
		return nil, err
	}

	result := &TierProgressResult{
		CustomerID:        id.String(),
		CurrentTier:       NewTierSummary(progress.CurrentTier),
		TotalSpend:        progress.TotalSpend.String(),
		SpendToNextTier:   progress.SpendToNextTier.String(),
		PercentToNextTier: progress.PercentToNextTier.StringFixed(2),
		MaxTierReached:    progress.MaxTierReached,
		TierOverridden:    c.IsTierOverridden(),
	}
	if progress.NextTier != nil {
		next := NewTierSummary(progress.NextTier)
		result.NextTier = &next
	}
	return result, nil
}

// NewTierSummary 轉換為 DTO
func NewTierSummary(t *tier.Tier) TierSummary {
	return TierSummary{
		ID:             t.ID().String(),
		Name:           t.Name(),
		Code:           t.Code(),
		SpendThreshold: t.SpendThreshold().String(),
		InviteOnly:     t.IsInviteOnly(),
	}
}
