package customer

import (
	"context"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// CustomerResult 顧客資料（Output DTO）
type CustomerResult struct {
	CustomerID     string
	Name           string
	Email          string
	Phone          string
	TotalSpend     string
	TierID         string
	TierName       string
	TierOverridden bool
	Active         bool
	CreatedAt      time.Time
}

func newCustomerResult(c *customer.Customer, catalog tier.Catalog) *CustomerResult {
	result := &CustomerResult{
		CustomerID:     c.ID().String(),
		Name:           c.Name(),
		Email:          c.Email().String(),
		Phone:          c.Phone().String(),
		TotalSpend:     c.TotalSpend().String(),
		TierOverridden: c.IsTierOverridden(),
		Active:         c.IsActive(),
		CreatedAt:      c.CreatedAt(),
	}
	if c.HasTier() {
		result.TierID = c.TierID().String()
		if t, ok := catalog.FindByID(c.TierID()); ok {
			result.TierName = t.Name()
		}
	}
	return result
}

// GetCustomerUseCase 查詢顧客
type GetCustomerUseCase struct {
	customers customer.Repository
	catalog   tier.CatalogProvider
}

func NewGetCustomerUseCase(customers customer.Repository, catalog tier.CatalogProvider) *GetCustomerUseCase {
	return &GetCustomerUseCase{customers: customers, catalog: catalog}
}

// Execute 目錄讀取失敗時仍返回顧客資料，只是沒有等級名稱
func (uc *GetCustomerUseCase) Execute(ctx context.Context, customerID string) (*CustomerResult, error) {
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
		catalog = tier.Catalog{}
	}
	return newCustomerResult(c, catalog), nil
}
