package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 環境變數前綴：LOYALTY_DATABASE_TYPE 對應 database.type
const envPrefix = "LOYALTY"

// 等級目錄來源
const (
	TierSourceDatabase = "database"
	TierSourceFile     = "file"
)

var ErrInvalidConfig = shared.NewDomainError(shared.KindConfiguration, "CONFIG_INVALID", "設定不合法")

// Config 應用程式設定
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Tiers    TiersConfig    `mapstructure:"tiers"`
	Adapters AdaptersConfig `mapstructure:"adapters"`
	Cards    CardsConfig    `mapstructure:"cards"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig 資料庫連線（type: mysql | postgres | sqlite）
type DatabaseConfig struct {
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"` // sqlite 檔案路徑

	MaxIdleConn     int           `mapstructure:"max_idle_conn"`
	MaxOpenConn     int           `mapstructure:"max_open_conn"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// TiersConfig 等級目錄來源；source = file 時從 File 讀取並監聽變更
type TiersConfig struct {
	Source string `mapstructure:"source"`
	File   string `mapstructure:"file"`
}

type AdaptersConfig struct {
	Storefront EndpointConfig `mapstructure:"storefront"`
	POS        EndpointConfig `mapstructure:"pos"`
	Timeout    time.Duration  `mapstructure:"timeout"`
}

// EndpointConfig 外部交易來源；BaseURL 為空表示不啟用
type EndpointConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

func (e EndpointConfig) Enabled() bool {
	return strings.TrimSpace(e.BaseURL) != ""
}

type CardsConfig struct {
	Salt      string `mapstructure:"salt"`
	MinLength int    `mapstructure:"min_length"`
}

// Load 讀取 .env、設定檔（可選）與 LOYALTY_* 環境變數
//
// path 為空時依序搜尋 ./loyalty.yml、/etc/loyalty/loyalty.yml；找不到設定檔時使用預設值。
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("loyalty")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/loyalty")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "loyalty")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.shutdown_timeout", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "loyalty")
	v.SetDefault("database.user", "loyalty")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "loyalty.db")
	v.SetDefault("database.max_idle_conn", 5)
	v.SetDefault("database.max_open_conn", 20)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("tiers.source", TierSourceDatabase)
	v.SetDefault("tiers.file", "tiers.yml")

	v.SetDefault("adapters.storefront.base_url", "")
	v.SetDefault("adapters.storefront.token", "")
	v.SetDefault("adapters.pos.base_url", "")
	v.SetDefault("adapters.pos.token", "")
	v.SetDefault("adapters.timeout", "5s")

	v.SetDefault("cards.salt", "loyalty-cards")
	v.SetDefault("cards.min_length", 10)
}

// Validate 啟動時檢查設定；錯誤屬於 configuration 類別
func (c Config) Validate() error {
	switch c.Database.Type {
	case "mysql", "postgres", "sqlite":
	default:
		return ErrInvalidConfig.WithContext("key", "database.type", "value", c.Database.Type)
	}

	switch c.Tiers.Source {
	case TierSourceDatabase:
	case TierSourceFile:
		if strings.TrimSpace(c.Tiers.File) == "" {
			return ErrInvalidConfig.WithContext("key", "tiers.file", "reason", "required when tiers.source=file")
		}
	default:
		return ErrInvalidConfig.WithContext("key", "tiers.source", "value", c.Tiers.Source)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return ErrInvalidConfig.WithContext("key", "http.port", "value", c.HTTP.Port)
	}
	if c.Adapters.Timeout <= 0 {
		return ErrInvalidConfig.WithContext("key", "adapters.timeout", "value", c.Adapters.Timeout.String())
	}
	if strings.TrimSpace(c.Cards.Salt) == "" {
		return ErrInvalidConfig.WithContext("key", "cards.salt", "reason", "cannot be empty")
	}
	return nil
}
