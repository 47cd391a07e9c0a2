package config

import (
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":9000")

	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.prefix", "redeemer:")

	v.SetDefault("events.enabled", false)

	v.SetDefault("admin.address", "")
	v.SetDefault("admin.secret", "")
	v.SetDefault("admin.token_ttl", 15*time.Minute)
	v.SetDefault("admin.minters", []string{})

	v.SetDefault("voucher.domain", "")
	v.SetDefault("voucher.issuer_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
}
