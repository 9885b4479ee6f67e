package tiers

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"go.uber.org/zap"
)

// TierResult 等級資料（Output DTO）
type TierResult struct {
	TierID         string
	Name           string
	Code           string
	SpendThreshold string
	SortOrder      int
	InviteOnly     bool
	Active         bool
}

func newTierResult(t *tier.Tier) TierResult {
	return TierResult{
		TierID:         t.ID().String(),
		Name:           t.Name(),
		Code:           t.Code(),
		SpendThreshold: t.SpendThreshold().String(),
		SortOrder:      t.SortOrder(),
		InviteOnly:     t.IsInviteOnly(),
		Active:         t.IsActive(),
	}
}

// ===========================
// ListTiers
// ===========================

// ListTiersUseCase 列出目前的等級目錄（依 sortOrder）
type ListTiersUseCase struct {
	catalog tier.CatalogProvider
}

func NewListTiersUseCase(catalog tier.CatalogProvider) *ListTiersUseCase {
	return &ListTiersUseCase{catalog: catalog}
}

func (uc *ListTiersUseCase) Execute(ctx context.Context) ([]TierResult, error) {
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	list := catalog.Tiers()
	results := make([]TierResult, 0, len(list))
	for _, t := range list {
		results = append(results, newTierResult(t))
	}
	return results, nil
}

// ===========================
// SeedTiers
// ===========================

// SeedTiersUseCase 把等級定義（通常來自設定檔）寫入資料表
//
// 寫入前先以 tier.NewCatalog 驗證整份目錄；任一筆失敗時全部回滾。
// 以 ID upsert，重複執行不會產生重複資料。
type SeedTiersUseCase struct {
	repo      tier.Repository
	txManager shared.TransactionManager
	log       *zap.Logger
}

func NewSeedTiersUseCase(repo tier.Repository, txManager shared.TransactionManager, log *zap.Logger) *SeedTiersUseCase {
	return &SeedTiersUseCase{repo: repo, txManager: txManager, log: log}
}

func (uc *SeedTiersUseCase) Execute(ctx context.Context, definitions []*tier.Tier) ([]TierResult, error) {
	if _, err := tier.NewCatalog(definitions); err != nil {
		return nil, err
	}

	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		for _, t := range definitions {
			if err := uc.repo.Save(tx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]TierResult, 0, len(definitions))
	for _, t := range definitions {
		uc.log.Info("tier seeded",
			zap.String("code", t.Code()),
			zap.String("threshold", t.SpendThreshold().String()),
			zap.Bool("invite_only", t.IsInviteOnly()),
		)
		results = append(results, newTierResult(t))
	}
	return results, nil
}
