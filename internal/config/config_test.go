package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdmin  = "0x00000000000000000000000000000000000a11ce"
	testSecret = "0123456789abcdef0123"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":9000"},
		Store:  StoreConfig{Backend: BackendMemory, Prefix: "redeemer:"},
		Admin:  AdminConfig{Address: testAdmin, Secret: testSecret, TokenTTL: time.Minute},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("REDEEMER_ADMIN_ADDRESS", testAdmin)
	t.Setenv("REDEEMER_ADMIN_SECRET", testSecret)
	t.Setenv("REDEEMER_STORE_BACKEND", "redis")
	t.Setenv("REDEEMER_ADMIN_MINTERS", "0x7803fd1ba8063ca54ad5bf90d2be75e21a887c21,0x703c4b2bd70c169f5717101caee543299fc946c7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.Admin.TokenTTL)
	assert.Len(t, cfg.Admin.Minters, 2)
	assert.Empty(t, cfg.Voucher.Domain)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redeemer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":8080"
admin:
  address: "`+testAdmin+`"
  secret: "`+testSecret+`"
  token_ttl: 1h
voucher:
  domain: "koi-mainnet"
log:
  level: debug
  format: json
`), 0o600))

	t.Setenv("REDEEMER_SERVER_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, "koi-mainnet", cfg.Voucher.Domain)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }},
		{"redis without url", func(c *Config) { c.Store.Backend = BackendRedis; c.Store.RedisURL = "" }},
		{"events without redis", func(c *Config) { c.Events.Enabled = true }},
		{"missing admin", func(c *Config) { c.Admin.Address = "" }},
		{"short secret", func(c *Config) { c.Admin.Secret = "short" }},
		{"zero ttl", func(c *Config) { c.Admin.TokenTTL = 0 }},
		{"bad minter", func(c *Config) { c.Admin.Minters = []string{"nope"} }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	require.NoError(t, Validate(validConfig()))

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
		})
	}
}
