// Package app 以 fx 組合設定、基礎設施、倉儲、use cases 與 HTTP 服務
package app

import (
	cardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/card"
	customerapp "github.com/jackyeh168/loyalty_crm/src/internal/application/customer"
	rewardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/spend"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/tiers"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/adapters"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/cardnumber"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/logging"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	cardpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/card"
	customerpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/customer"
	ledgerpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/ledger"
	rewardpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/reward"
	tierpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/tier"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/tiercatalog"
	"github.com/jackyeh168/loyalty_crm/src/internal/interfaces/rest"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// InfrastructureModule logger、metrics、資料庫與事務、事件發布、卡號產生器
var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		logging.New,
		metrics.New,
		fx.Annotate(logging.NewGormLogger, fx.As(new(gormlogger.Interface))),
		persistence.Open,
		fx.Annotate(persistence.NewGORMTransactionManager, fx.As(new(shared.TransactionManager))),
		newEventPublisher,
		newCardNumberGenerator,
	),
)

// RepositoryModule GORM 倉儲與等級目錄
var RepositoryModule = fx.Module("repositories",
	fx.Provide(
		customerpersistence.NewCustomerRepository,
		ledgerpersistence.NewTransactionRepository,
		cardpersistence.NewCardRepository,
		rewardpersistence.NewRewardRepository,
		rewardpersistence.NewCustomerRewardRepository,
		tierpersistence.NewTierRepository,
		func(r *tierpersistence.TierRepositoryImpl) tier.Repository { return r },
		newCatalogProvider,
	),
)

// SpendModule 交易來源與累積消費聚合
var SpendModule = fx.Module("spend",
	fx.Provide(
		adapters.NewNativeLedgerAdapter,
		newSpendCalculator,
	),
)

// UseCaseModule 應用層 use cases
var UseCaseModule = fx.Module("usecases",
	fx.Provide(
		customerapp.NewRegisterCustomerUseCase,
		customerapp.NewGetCustomerUseCase,
		customerapp.NewDeactivateCustomerUseCase,
		customerapp.NewTierOverrideUseCase,

		spend.NewRecalculator,
		spend.NewProcessTransactionUseCase,
		spend.NewRefundTransactionUseCase,
		spend.NewCompleteTransactionUseCase,
		spend.NewCancelTransactionUseCase,
		spend.NewGetTierProgressUseCase,

		cardapp.NewIssueCardUseCase,
		cardapp.NewCardStatusUseCase,
		cardapp.NewReplaceCardUseCase,
		cardapp.NewGetCardUseCase,

		tiers.NewListTiersUseCase,
		tiers.NewSeedTiersUseCase,

		rewardapp.NewCreateRewardUseCase,
		rewardapp.NewIssueRewardUseCase,
		rewardapp.NewRedeemRewardUseCase,
		rewardapp.NewListRewardsUseCase,
	),
)

// HTTPModule gin engine 與 /api/v1 路由
var HTTPModule = fx.Module("http",
	fx.Provide(
		rest.NewEngine,
		rest.NewServer,
	),
)

// Options 完整的應用程式圖；cfg 由呼叫端載入
func Options(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		InfrastructureModule,
		RepositoryModule,
		SpendModule,
		UseCaseModule,
		HTTPModule,
	)
}

func newEventPublisher(m *metrics.Metrics, log *zap.Logger) shared.EventPublisher {
	return metrics.NewCountingPublisher(m, logging.NewEventPublisher(log.Named("events")))
}

func newCardNumberGenerator(cfg config.Config) (card.NumberGenerator, error) {
	return cardnumber.NewHashIDGenerator(cfg.Cards)
}

// newCatalogProvider tiers.source = file 時讀取 YAML 並監聽變更，否則讀資料庫
func newCatalogProvider(cfg config.Config, repo *tierpersistence.TierRepositoryImpl, log *zap.Logger) (tier.CatalogProvider, error) {
	if cfg.Tiers.Source != config.TierSourceFile {
		return repo, nil
	}

	provider, err := tiercatalog.NewFileProvider(cfg.Tiers.File, log.Named("tiercatalog"))
	if err != nil {
		return nil, err
	}
	provider.Watch()
	return provider, nil
}

func newSpendCalculator(cfg config.Config, native *adapters.NativeLedgerAdapter, m *metrics.Metrics, log *zap.Logger) spend.SpendCalculator {
	sources := m.InstrumentSources(adapters.FromConfig(cfg.Adapters, native, log, m))
	aggregator := ledger.NewSpendAggregator(sources...)
	log.Info("spend sources configured", zap.Strings("sources", aggregator.Sources()))
	return aggregator
}
