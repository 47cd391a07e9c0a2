package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Validate checks cfg for values the service cannot start with
func Validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.Store.RedisURL == "" {
			return fmt.Errorf("%w: store.redis_url is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalidConfig, cfg.Store.Backend)
	}

	if cfg.Events.Enabled && cfg.Store.RedisURL == "" {
		return fmt.Errorf("%w: events require store.redis_url", ErrInvalidConfig)
	}

	if !common.IsHexAddress(cfg.Admin.Address) {
		return fmt.Errorf("%w: admin.address must be a hex address", ErrInvalidConfig)
	}
	if len(cfg.Admin.Secret) < 16 {
		return fmt.Errorf("%w: admin.secret must be at least 16 characters", ErrInvalidConfig)
	}
	if cfg.Admin.TokenTTL <= 0 {
		return fmt.Errorf("%w: admin.token_ttl must be positive", ErrInvalidConfig)
	}
	for _, m := range cfg.Admin.Minters {
		if !common.IsHexAddress(m) {
			return fmt.Errorf("%w: admin.minters entry %q is not a hex address", ErrInvalidConfig, m)
		}
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be console or json", ErrInvalidConfig)
	}

	return nil
}
