package tier_test

import (
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/require"
)

func mustTier(t *testing.T, name, threshold string, sortOrder int, inviteOnly bool) *tier.Tier {
	t.Helper()
	tr, err := tier.NewTier(name, shared.MustMoney(threshold), sortOrder, inviteOnly)
	require.NoError(t, err)
	return tr
}

// standardCatalog 門檻 [0, 1500, 5000, 25000] 加上邀請制 Champion
func standardCatalog(t *testing.T) (tier.Catalog, map[string]*tier.Tier) {
	t.Helper()
	tiers := map[string]*tier.Tier{
		"member":   mustTier(t, "Member", "0", 1, false),
		"silver":   mustTier(t, "Silver", "1500", 2, false),
		"gold":     mustTier(t, "Gold", "5000", 3, false),
		"platinum": mustTier(t, "Platinum", "25000", 4, false),
		"champion": mustTier(t, "Champion", "1000000", 5, true),
	}
	catalog, err := tier.NewCatalog([]*tier.Tier{
		tiers["platinum"], tiers["member"], tiers["champion"], tiers["gold"], tiers["silver"],
	})
	require.NoError(t, err)
	return catalog, tiers
}
