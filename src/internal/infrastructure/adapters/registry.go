package adapters

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"go.uber.org/zap"
)

// FromConfig 組合啟用中的來源；原生帳本排第一，去重時以它為準
func FromConfig(cfg config.AdaptersConfig, native *NativeLedgerAdapter, log *zap.Logger, skips SkipObserver) []ledger.SourceAdapter {
	sources := []ledger.SourceAdapter{native}
	if cfg.Storefront.Enabled() {
		sources = append(sources, NewStorefrontAdapter(cfg.Storefront, cfg.Timeout, log, skips))
	}
	if cfg.POS.Enabled() {
		sources = append(sources, NewPOSAdapter(cfg.POS, cfg.Timeout, log, skips))
	}
	return sources
}
