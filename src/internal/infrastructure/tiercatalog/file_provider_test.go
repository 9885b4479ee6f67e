package tiercatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validCatalog = `
tiers:
  - name: Member
    threshold: 0
    sort_order: 0
  - name: Silver
    threshold: 1500
    sort_order: 1
  - name: Gold
    threshold: "5000"
    sort_order: 2
  - name: Platinum
    threshold: 25000
    sort_order: 3
  - name: Champion
    threshold: 1000000
    sort_order: 9
    invite_only: true
  - name: Legacy
    threshold: 100
    sort_order: 8
    active: false
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newProvider(t *testing.T, content string) (*FileProvider, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiers.yml")
	writeFile(t, path, content)
	p, err := NewFileProvider(path, zap.NewNop())
	return p, path, err
}

func codes(tiers []*tier.Tier) []string {
	out := make([]string, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, t.Code())
	}
	return out
}

func TestFileProvider_ListActiveTiers(t *testing.T) {
	p, _, err := newProvider(t, validCatalog)
	require.NoError(t, err)

	active, err := p.ListActiveTiers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"member", "silver", "gold", "platinum", "champion"}, codes(active))
	assert.Len(t, p.All(), 6, "All includes inactive tiers")
}

func TestFileProvider_StableIDs(t *testing.T) {
	first, _, err := newProvider(t, validCatalog)
	require.NoError(t, err)
	second, _, err := newProvider(t, validCatalog)
	require.NoError(t, err)

	for i, tr := range first.All() {
		assert.True(t, tr.ID().Equals(second.All()[i].ID()), tr.Code())
	}
}

func TestFileProvider_ResolvesWithCatalog(t *testing.T) {
	p, _, err := newProvider(t, validCatalog)
	require.NoError(t, err)

	catalog, err := tier.LoadCatalog(context.Background(), p)
	require.NoError(t, err)

	resolved, err := tier.NewResolver().ResolveTier(shared.MustMoney("3500"), catalog)
	require.NoError(t, err)
	assert.Equal(t, "silver", resolved.Code())
}

func TestNewFileProvider_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"沒有等級", "tiers: []\n"},
		{"最低門檻不是 0", "tiers:\n  - name: Silver\n    threshold: 1500\n"},
		{"門檻不遞增", "tiers:\n  - name: Member\n    threshold: 0\n    sort_order: 0\n  - name: Gold\n    threshold: 0\n    sort_order: 1\n"},
		{"門檻格式錯誤", "tiers:\n  - name: Member\n    threshold: lots\n"},
		{"code 重複", "tiers:\n  - name: Member\n    threshold: 0\n  - name: member\n    threshold: 10\n    sort_order: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newProvider(t, tt.content)
			require.Error(t, err)
			assert.Equal(t, shared.KindConfiguration, shared.KindOf(err))
		})
	}
}

func TestFileProvider_Reload(t *testing.T) {
	p, path, err := newProvider(t, validCatalog)
	require.NoError(t, err)

	t.Run("無效內容被忽略", func(t *testing.T) {
		writeFile(t, path, "tiers:\n  - name: Silver\n    threshold: 1500\n")

		require.Error(t, p.reload())

		active, err := p.ListActiveTiers(context.Background())
		require.NoError(t, err)
		assert.Len(t, active, 5, "previous catalog is kept")
	})

	t.Run("有效內容套用", func(t *testing.T) {
		writeFile(t, path, "tiers:\n  - name: Member\n    threshold: 0\n  - name: VIP\n    threshold: 800\n    sort_order: 1\n")

		require.NoError(t, p.reload())

		active, err := p.ListActiveTiers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"member", "vip"}, codes(active))
	})
}
