package customer

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/events"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"go.uber.org/zap"
)

// ===========================
// Tier Override Use Cases
// ===========================

// TierOverrideUseCase 手動指定或取消指定顧客等級
//
// 邀請制等級只能透過手動指定取得；指定後累積消費變動不再影響等級，
// 取消後回到依消費解析的等級。兩者都會同步啟用卡片的等級。
type TierOverrideUseCase struct {
	customers customer.Repository
	cards     card.Repository
	catalog   tier.CatalogProvider
	resolver  *tier.Resolver
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewTierOverrideUseCase(
	customers customer.Repository,
	cards card.Repository,
	catalog tier.CatalogProvider,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *TierOverrideUseCase {
	return &TierOverrideUseCase{
		customers: customers,
		cards:     cards,
		catalog:   catalog,
		resolver:  tier.NewResolver(),
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

// Override 指定等級；等級必須存在於目前的目錄中
func (uc *TierOverrideUseCase) Override(ctx context.Context, customerID, tierID string) (*CustomerResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}
	tid, err := tier.TierIDFromString(tierID)
	if err != nil {
		return nil, err
	}

	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	target, ok := catalog.FindByID(tid)
	if !ok {
		return nil, tier.ErrTierNotFound.WithContext("tier_id", tierID)
	}

	return uc.apply(ctx, id, catalog, func(c *customer.Customer) (bool, error) {
		before := c.TierID()
		if err := c.OverrideTier(target); err != nil {
			return false, err
		}
		return !before.Equals(c.TierID()), nil
	})
}

// Clear 取消手動指定（ErrTierNotOverridden 表示原本就未指定）
func (uc *TierOverrideUseCase) Clear(ctx context.Context, customerID string) (*CustomerResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}

	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}

	return uc.apply(ctx, id, catalog, func(c *customer.Customer) (bool, error) {
		resolved, err := uc.resolver.ResolveTier(c.TotalSpend(), catalog)
		if err != nil {
			return false, err
		}
		return c.ClearOverride(resolved)
	})
}

// apply 在事務中讀取顧客、套用變更、寫回並同步卡片
func (uc *TierOverrideUseCase) apply(
	ctx context.Context,
	id customer.CustomerID,
	catalog tier.Catalog,
	change func(c *customer.Customer) (bool, error),
) (*CustomerResult, error) {
	var updated *customer.Customer
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := uc.customers.FindByID(tx, id)
		if err != nil {
			return err
		}
		changed, err := change(c)
		if err != nil {
			return err
		}
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

	events.Dispatch(ctx, uc.log, uc.publisher, updated)
	return newCustomerResult(updated, catalog), nil
}
