// Package tiercatalog 從靜態 YAML 檔讀取等級目錄，並在檔案變更時熱更新
package tiercatalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// tierNamespace 未指定 id 時，以 code 產生固定的 UUID（顧客與卡片以 tier_id 引用等級）
var tierNamespace = uuid.MustParse("6f1c2a7e-3d0b-4c5e-9a41-2b8f0d6e7c11")

// entry 設定檔中的一個等級
//
//	tiers:
//	  - name: Gold
//	    threshold: 5000
//	    sort_order: 2
type entry struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Code       string `mapstructure:"code"`
	Threshold  string `mapstructure:"threshold"`
	SortOrder  int    `mapstructure:"sort_order"`
	InviteOnly bool   `mapstructure:"invite_only"`
	Active     *bool  `mapstructure:"active"`
}

// FileProvider 以 YAML 檔為來源的 CatalogProvider
//
// 目前的等級列表放在 atomic.Pointer 中；熱更新失敗時保留上一份有效目錄。
type FileProvider struct {
	v       *viper.Viper
	log     *zap.Logger
	current atomic.Pointer[[]*tier.Tier]
}

var _ tier.CatalogProvider = (*FileProvider)(nil)

// NewFileProvider 讀取並驗證 path；初次載入失敗直接返回錯誤
func NewFileProvider(path string, log *zap.Logger) (*FileProvider, error) {
	v := viper.New()
	v.SetConfigFile(path)

	p := &FileProvider{v: v, log: log}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Watch 監聽檔案變更（fsnotify）並熱更新
func (p *FileProvider) Watch() {
	p.v.OnConfigChange(func(e fsnotify.Event) {
		if err := p.reload(); err != nil {
			p.log.Warn("tier catalog reload ignored",
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}
		p.log.Info("tier catalog reloaded", zap.String("file", e.Name))
	})
	p.v.WatchConfig()
}

// ListActiveTiers 啟用中的等級，依門檻遞增
func (p *FileProvider) ListActiveTiers(ctx context.Context) ([]*tier.Tier, error) {
	tiers := *p.current.Load()

	active := make([]*tier.Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SpendThreshold().LessThan(active[j].SpendThreshold())
	})
	return active, nil
}

// All 檔案中所有等級（含停用），供 seed-tiers 寫入資料庫
func (p *FileProvider) All() []*tier.Tier {
	tiers := *p.current.Load()
	out := make([]*tier.Tier, len(tiers))
	copy(out, tiers)
	return out
}

func (p *FileProvider) reload() error {
	if err := p.v.ReadInConfig(); err != nil {
		return tier.ErrInvalidCatalog.WithContext("file", p.v.ConfigFileUsed(), "reason", err.Error())
	}

	var entries []entry
	if err := p.v.UnmarshalKey("tiers", &entries); err != nil {
		return tier.ErrInvalidCatalog.WithContext("file", p.v.ConfigFileUsed(), "reason", err.Error())
	}

	tiers, err := buildTiers(entries)
	if err != nil {
		return err
	}
	if _, err := tier.NewCatalog(tiers); err != nil {
		return err
	}

	p.current.Store(&tiers)
	return nil
}

func buildTiers(entries []entry) ([]*tier.Tier, error) {
	now := time.Now()
	tiers := make([]*tier.Tier, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		threshold, err := shared.NewMoneyFromString(strings.TrimSpace(e.Threshold))
		if err != nil {
			return nil, tier.ErrInvalidCatalog.WithContext("index", i, "name", e.Name, "reason", err.Error())
		}

		t, err := tier.NewTier(e.Name, threshold, e.SortOrder, e.InviteOnly)
		if err != nil {
			return nil, fmt.Errorf("tier #%d: %w", i, err)
		}
		code := t.Code()
		if e.Code != "" {
			code = e.Code
		}
		if seen[code] {
			return nil, tier.ErrInvalidCatalog.WithContext("code", code, "reason", "duplicate tier code")
		}
		seen[code] = true

		id, err := entryID(e.ID, code)
		if err != nil {
			return nil, err
		}

		active := true
		if e.Active != nil {
			active = *e.Active
		}

		t, err = tier.ReconstructTier(id, t.Name(), code, threshold, e.SortOrder, active, e.InviteOnly, now, now)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

func entryID(raw, code string) (tier.TierID, error) {
	if raw != "" {
		return tier.TierIDFromString(raw)
	}
	return tier.TierIDFromString(uuid.NewSHA1(tierNamespace, []byte(code)).String())
}
