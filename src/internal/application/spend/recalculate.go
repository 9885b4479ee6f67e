package spend

import (
	"context"
	"fmt"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/events"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"go.uber.org/zap"
)

// ===========================
// RecalculateSpend Use Case
// ===========================

// SpendCalculator 跨來源計算累積消費（由 ledger.SpendAggregator 實作）
type SpendCalculator interface {
	CalculateTotalSpend(ctx context.Context, customerID customer.CustomerID) (shared.Money, error)
}

// RecalculateResult 重新計算結果（Output DTO）
type RecalculateResult struct {
	CustomerID  string
	TotalSpend  string
	TierID      string
	TierName    string
	TierChanged bool
}

// Recalculator 重新計算顧客累積消費並套用等級
//
// 業務規則：
// 1. 累積消費由所有交易來源聚合而來，不做增量加總
// 2. 手動指定等級的顧客只更新消費金額，等級不變
// 3. 等級變動時，顧客的啟用卡片同步跟隨
type Recalculator struct {
	customers  customer.Repository
	cards      card.Repository
	catalog    tier.CatalogProvider
	calculator SpendCalculator
	resolver   *tier.Resolver
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
	log        *zap.Logger
}

// NewRecalculator 創建 Recalculator
func NewRecalculator(
	customers customer.Repository,
	cards card.Repository,
	catalog tier.CatalogProvider,
	calculator SpendCalculator,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *Recalculator {
	return &Recalculator{
		customers:  customers,
		cards:      cards,
		catalog:    catalog,
		calculator: calculator,
		resolver:   tier.NewResolver(),
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
	}
}

// Execute 以顧客 ID 字串重新計算
func (uc *Recalculator) Execute(ctx context.Context, customerID string) (*RecalculateResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}
	return uc.Recalculate(ctx, id)
}

// Recalculate 業務流程：
// 1. 確認顧客存在（避免對不存在的顧客呼叫外部來源）
// 2. 聚合所有來源的消費（事務外，外部 HTTP 不佔用資料庫連線）
// 3. 讀取等級目錄並解析等級
// 4. 在事務中重新讀取顧客、寫入消費與等級、同步卡片
// 5. 事務提交後發布事件
func (uc *Recalculator) Recalculate(ctx context.Context, id customer.CustomerID) (*RecalculateResult, error) {
	// Step 1: 確認顧客存在
	if _, err := uc.customers.FindByID(nil, id); err != nil {
		return nil, err
	}

	// Step 2: 聚合消費
	total, err := uc.calculator.CalculateTotalSpend(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("calculate total spend: %w", err)
	}

	// Step 3: 解析等級
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	resolved, err := uc.resolver.ResolveTier(total, catalog)
	if err != nil {
		return nil, err
	}

	// Step 4: 寫回顧客並同步卡片
	var (
		updated *customer.Customer
		changed bool
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := uc.customers.FindByID(tx, id)
		if err != nil {
			return err
		}

		changed = c.ApplySpend(total, resolved)
		if err := uc.customers.Update(tx, c); err != nil {
			return err
		}
		if changed {
			if _, err := card.SyncCustomerTier(tx, uc.cards, id, c.TierID()); err != nil {
				return err
			}
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step 5: 發布事件
	events.Dispatch(ctx, uc.log, uc.publisher, updated)

	result := &RecalculateResult{
		CustomerID:  id.String(),
		TotalSpend:  updated.TotalSpend().String(),
		TierID:      updated.TierID().String(),
		TierChanged: changed,
	}
	if t, ok := catalog.FindByID(updated.TierID()); ok {
		result.TierName = t.Name()
	}
	return result, nil
}
