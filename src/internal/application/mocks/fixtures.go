package mocks

import (
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/require"
)

// StandardTiers 門檻 [0, 1500, 5000, 25000] 與邀請制 Champion，以 code 為 key
func StandardTiers(t testing.TB) map[string]*tier.Tier {
	t.Helper()
	specs := []struct {
		name       string
		threshold  string
		inviteOnly bool
	}{
		{"Member", "0", false},
		{"Silver", "1500", false},
		{"Gold", "5000", false},
		{"Platinum", "25000", false},
		{"Champion", "1000000", true},
	}

	tiers := make(map[string]*tier.Tier, len(specs))
	for i, s := range specs {
		tr, err := tier.NewTier(s.name, shared.MustMoney(s.threshold), i+1, s.inviteOnly)
		require.NoError(t, err)
		tiers[tr.Code()] = tr
	}
	return tiers
}

// Catalog 以 StandardTiers 建立 CatalogProvider
func Catalog(tiers map[string]*tier.Tier) *CatalogProvider {
	list := make([]*tier.Tier, 0, len(tiers))
	for _, tr := range tiers {
		list = append(list, tr)
	}
	return &CatalogProvider{Tiers: list}
}

// NewCustomer 建立已清空事件的新顧客
func NewCustomer(t testing.TB, email string) *customer.Customer {
	t.Helper()
	e, err := customer.NewEmail(email)
	require.NoError(t, err)
	c, err := customer.NewCustomer("Test Customer", e, customer.PhoneNumber{})
	require.NoError(t, err)
	c.PullEvents()
	return c
}
