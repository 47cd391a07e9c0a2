package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/ports"
	"github.com/rs/zerolog"
)

// RoleRegistry tracks which addresses may sign vouchers.
// Membership changes are restricted to the administrator fixed at construction.
type RoleRegistry struct {
	admin  common.Address
	store  ports.MinterStore
	logger zerolog.Logger
}

// NewRoleRegistry creates a registry administered by admin
func NewRoleRegistry(admin common.Address, store ports.MinterStore, logger zerolog.Logger) *RoleRegistry {
	return &RoleRegistry{
		admin:  admin,
		store:  store,
		logger: logger.With().Str("component", "roles").Logger(),
	}
}

// Admin returns the administrator address
func (r *RoleRegistry) Admin() common.Address {
	return r.admin
}

// IsAuthorized reports whether addr currently holds the minter role
func (r *RoleRegistry) IsAuthorized(ctx context.Context, addr common.Address) (bool, error) {
	ok, err := r.store.IsMinter(ctx, addr)
	if err != nil {
		return false, fmt.Errorf("failed to check minter role: %w", err)
	}
	return ok, nil
}

// Grant gives addr the minter role
func (r *RoleRegistry) Grant(ctx context.Context, caller, addr common.Address) error {
	if caller != r.admin {
		r.logger.Warn().Str("caller", caller.Hex()).Str("minter", addr.Hex()).Msg("rejected grant from non-admin")
		return core.ErrUnauthorized
	}
	if err := r.store.AddMinter(ctx, addr); err != nil {
		return fmt.Errorf("failed to grant minter role: %w", err)
	}
	r.logger.Info().Str("minter", addr.Hex()).Msg("minter role granted")
	return nil
}

// Revoke removes the minter role from addr. Tokens already issued on its
// vouchers are unaffected; only later redemptions are refused.
func (r *RoleRegistry) Revoke(ctx context.Context, caller, addr common.Address) error {
	if caller != r.admin {
		r.logger.Warn().Str("caller", caller.Hex()).Str("minter", addr.Hex()).Msg("rejected revoke from non-admin")
		return core.ErrUnauthorized
	}
	if err := r.store.RemoveMinter(ctx, addr); err != nil {
		return fmt.Errorf("failed to revoke minter role: %w", err)
	}
	r.logger.Info().Str("minter", addr.Hex()).Msg("minter role revoked")
	return nil
}

// Bootstrap installs the initial minter set. It only takes effect on a store
// that was never seeded, so revocations survive restarts.
func (r *RoleRegistry) Bootstrap(ctx context.Context, addrs []common.Address) error {
	seeded, err := r.store.Seed(ctx, addrs)
	if err != nil {
		return fmt.Errorf("failed to bootstrap minters: %w", err)
	}
	if !seeded {
		r.logger.Debug().Msg("minter set already bootstrapped")
		return nil
	}
	r.logger.Info().Int("count", len(addrs)).Msg("minter set bootstrapped")
	return nil
}

// Minters lists the current role members
func (r *RoleRegistry) Minters(ctx context.Context) ([]common.Address, error) {
	return r.store.Minters(ctx)
}
