package persistence

import (
	"context"
	"fmt"

	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"go.uber.org/fx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialect 依 database.type 選擇 GORM driver
func Dialect(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.SSLMode,
		)), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, config.ErrInvalidConfig.WithContext("key", "database.type", "value", cfg.Type)
	}
}

// Open 建立連線池；lc 非 nil 時在 fx 停止時關閉
func Open(lc fx.Lifecycle, cfg config.Config, log gormlogger.Interface) (*gorm.DB, error) {
	dialector, err := Dialect(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConn)
	}
	if cfg.Database.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConn)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return sqlDB.Close()
			},
		})
	}
	return db, nil
}
