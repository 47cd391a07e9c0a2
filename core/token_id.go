package core

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/google/uuid"
)

// ValidateTokenID reports whether id fits in an unsigned 256-bit integer
func ValidateTokenID(id *big.Int) error {
	if id == nil || id.Sign() < 0 || id.BitLen() > 256 {
		return ErrInvalidTokenID
	}
	return nil
}

// ParseTokenID parses a decimal or 0x-prefixed hex token id
func ParseTokenID(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty token id: %w", ErrInvalidTokenID)
	}
	id, ok := math.ParseBig256(trimmed)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidTokenID)
	}
	return id, nil
}

// TokenIDFromUUID interprets the 128 bits of a UUID as a big-endian token id
func TokenIDFromUUID(id uuid.UUID) *big.Int {
	return new(big.Int).SetBytes(id[:])
}

// UUIDFromTokenID is the inverse of TokenIDFromUUID.
// Token ids wider than 128 bits have no UUID form.
func UUIDFromTokenID(id *big.Int) (uuid.UUID, error) {
	if err := ValidateTokenID(id); err != nil {
		return uuid.Nil, err
	}
	if id.BitLen() > 128 {
		return uuid.Nil, fmt.Errorf("token id exceeds 128 bits: %w", ErrInvalidTokenID)
	}
	var u uuid.UUID
	id.FillBytes(u[:])
	return u, nil
}

// ParseAddress parses a hex address, rejecting malformed input
// instead of silently truncating it like common.HexToAddress.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}
	return common.HexToAddress(s), nil
}
