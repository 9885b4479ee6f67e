package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/loyalty_crm/src/internal/app"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/tiers"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/schema"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/tiercatalog"
	"github.com/jackyeh168/loyalty_crm/src/internal/interfaces/rest"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startTimeout = 15 * time.Second

func main() {
	cliApp := &cli.App{
		Name:  "loyalty",
		Usage: "retail loyalty core: spend, tiers, membership cards and rewards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to loyalty.yml (optional)",
				EnvVars: []string{"LOYALTY_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start http server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update database tables",
				Action: migrate,
			},
			{
				Name:  "seed-tiers",
				Usage: "write the tier catalog from a YAML file into the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "tier catalog file (defaults to tiers.file)",
					},
				},
				Action: seedTiers,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// start 建立並啟動 fx 應用；呼叫端負責 Stop
func start(ctx context.Context, opts ...fx.Option) (*fx.App, error) {
	fxApp := fx.New(opts...)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return nil, err
	}
	return fxApp, nil
}

func stop(fxApp *fx.App) {
	stopCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	_ = fxApp.Stop(stopCtx)
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		server *rest.Server
		log    *zap.Logger
	)
	fxApp, err := start(c.Context, app.Options(cfg), fx.Populate(&server, &log))
	if err != nil {
		return err
	}
	defer stop(fxApp)

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	return rest.Run(ctx, cfg.HTTP, server.Engine(), log)
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var (
		db  *gorm.DB
		log *zap.Logger
	)
	fxApp, err := start(c.Context, app.Options(cfg), fx.Populate(&db, &log))
	if err != nil {
		return err
	}
	defer stop(fxApp)

	if err := schema.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("database migrated", zap.String("type", cfg.Database.Type))
	return nil
}

func seedTiers(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	if path == "" {
		path = cfg.Tiers.File
	}

	var (
		seed *tiers.SeedTiersUseCase
		log  *zap.Logger
	)
	fxApp, err := start(c.Context, app.Options(cfg), fx.Populate(&seed, &log))
	if err != nil {
		return err
	}
	defer stop(fxApp)

	provider, err := tiercatalog.NewFileProvider(path, log)
	if err != nil {
		return fmt.Errorf("read tier catalog %s: %w", path, err)
	}

	seeded, err := seed.Execute(c.Context, provider.All())
	if err != nil {
		return err
	}
	log.Info("tier catalog seeded", zap.String("file", path), zap.Int("tiers", len(seeded)))
	return nil
}
