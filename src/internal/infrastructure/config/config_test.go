package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, TierSourceDatabase, cfg.Tiers.Source)
	assert.Equal(t, 5*time.Second, cfg.Adapters.Timeout)
	assert.False(t, cfg.Adapters.Storefront.Enabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loyalty.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9000
database:
  type: postgres
  host: db.internal
adapters:
  storefront:
    base_url: https://shop.example.com/admin/api
  timeout: 2s
`), 0o600))

	t.Setenv("LOYALTY_HTTP_PORT", "9100")
	t.Setenv("LOYALTY_LOG_LEVEL", "debug")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Adapters.Storefront.Enabled())
	assert.Equal(t, 2*time.Second, cfg.Adapters.Timeout)
}

func TestLoad_MissingExplicitFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTP:     HTTPConfig{Port: 8080},
			Database: DatabaseConfig{Type: "sqlite"},
			Tiers:    TiersConfig{Source: TierSourceDatabase},
			Adapters: AdaptersConfig{Timeout: time.Second},
			Cards:    CardsConfig{Salt: "s"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"未知資料庫", func(c *Config) { c.Database.Type = "oracle" }},
		{"未知等級來源", func(c *Config) { c.Tiers.Source = "redis" }},
		{"檔案來源缺路徑", func(c *Config) { c.Tiers.Source = TierSourceFile; c.Tiers.File = "" }},
		{"port 超出範圍", func(c *Config) { c.HTTP.Port = 70000 }},
		{"timeout 為 0", func(c *Config) { c.Adapters.Timeout = 0 }},
		{"salt 為空", func(c *Config) { c.Cards.Salt = " " }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, shared.KindConfiguration, shared.KindOf(err))
		})
	}
}
