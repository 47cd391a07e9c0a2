package redeemer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Client represents the public interface for interacting with the redemption service
type Client interface {
	// Redeem submits a signed voucher minting tokenID to recipient
	Redeem(ctx context.Context, recipient common.Address, tokenID *big.Int, signature []byte) error

	// OwnerOf returns the owner of tokenID, if it was minted
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error)

	// BalanceOf returns the number of tokens minted to owner
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)

	// GrantMinter gives addr the minter role; requires an admin token
	GrantMinter(ctx context.Context, addr common.Address) error

	// RevokeMinter removes the minter role from addr; requires an admin token
	RevokeMinter(ctx context.Context, addr common.Address) error
}
