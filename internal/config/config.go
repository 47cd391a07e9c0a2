// Package config loads redeemer settings from defaults, an optional YAML
// file and REDEEMER_* environment variables.
package config

import "time"

// Store backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the complete service configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Events  EventsConfig  `mapstructure:"events"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Voucher VoucherConfig `mapstructure:"voucher"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StoreConfig selects where ownership records and roles live
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`
	Prefix   string `mapstructure:"prefix"`
}

// EventsConfig controls transfer notifications
type EventsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// AdminConfig establishes the role administrator
type AdminConfig struct {
	Address  string        `mapstructure:"address"`
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// Minters are granted at startup, on behalf of the administrator
	Minters []string `mapstructure:"minters"`
}

// VoucherConfig controls voucher hashing and, optionally, issuing
type VoucherConfig struct {
	// Domain is folded into every digest when set. Issuers and this
	// service must agree on it.
	Domain    string `mapstructure:"domain"`
	IssuerKey string `mapstructure:"issuer_key"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}
