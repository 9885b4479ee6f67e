package tier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewCatalog_SortsBySortOrder(t *testing.T) {
	catalog, tiers := standardCatalog(t)

	automatic := catalog.Automatic()
	require.Len(t, automatic, 4)
	assert.Equal(t, "member", automatic[0].Code())
	assert.Equal(t, "platinum", automatic[3].Code())
	assert.Len(t, catalog.Tiers(), 5)

	found, ok := catalog.FindByID(tiers["champion"].ID())
	assert.True(t, ok)
	assert.Equal(t, "champion", found.Code())
}

func TestNewCatalog_ConfigurationErrors(t *testing.T) {
	inactive := mustTier(t, "Old", "0", 1, false)
	inactive.Deactivate()

	tests := []struct {
		name  string
		tiers []*tier.Tier
		want  error
	}{
		{"空目錄", nil, tier.ErrEmptyCatalog},
		{"只有停用等級", []*tier.Tier{inactive}, tier.ErrEmptyCatalog},
		{"只有邀請制等級", []*tier.Tier{mustTier(t, "Champion", "0", 1, true)}, tier.ErrEmptyCatalog},
		{"最低門檻不是 0", []*tier.Tier{mustTier(t, "Silver", "1500", 1, false)}, tier.ErrInvalidCatalog},
		{"門檻未嚴格遞增", []*tier.Tier{
			mustTier(t, "Member", "0", 1, false),
			mustTier(t, "Silver", "1500", 2, false),
			mustTier(t, "Gold", "1500", 3, false),
		}, tier.ErrInvalidCatalog},
		{"排序與門檻相反", []*tier.Tier{
			mustTier(t, "Member", "0", 1, false),
			mustTier(t, "Gold", "5000", 2, false),
			mustTier(t, "Silver", "1500", 3, false),
		}, tier.ErrInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tier.NewCatalog(tt.tiers)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type stubProvider struct {
	tiers []*tier.Tier
	err   error
}

func (s stubProvider) ListActiveTiers(ctx context.Context) ([]*tier.Tier, error) {
	return s.tiers, s.err
}

func TestLoadCatalog(t *testing.T) {
	t.Run("propagates provider error", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := tier.LoadCatalog(context.Background(), stubProvider{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("validates tiers", func(t *testing.T) {
		catalog, err := tier.LoadCatalog(context.Background(), stubProvider{tiers: []*tier.Tier{
			mustTier(t, "Member", "0", 1, false),
		}})
		require.NoError(t, err)
		assert.Len(t, catalog.Automatic(), 1)
	})
}
