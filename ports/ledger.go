package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger holds issued token ids and their owners
type Ledger interface {
	// Issue records owner for tokenID. It fails with core.ErrAlreadyIssued if the
	// id is present; the check and the insert are a single atomic step.
	Issue(ctx context.Context, tokenID *big.Int, owner common.Address) error
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error)
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)
}

// MinterStore persists the set of addresses holding the minter role
type MinterStore interface {
	AddMinter(ctx context.Context, addr common.Address) error
	RemoveMinter(ctx context.Context, addr common.Address) error
	IsMinter(ctx context.Context, addr common.Address) (bool, error)
	Minters(ctx context.Context) ([]common.Address, error)
	// Seed adds addrs only the first time the store is seeded and reports
	// whether it did. Later calls leave membership untouched.
	Seed(ctx context.Context, addrs []common.Address) (bool, error)
}
