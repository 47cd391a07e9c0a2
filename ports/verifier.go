package ports

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Verifier builds voucher digests and recovers their signers
type Verifier interface {
	Digest(tokenID *big.Int, recipient common.Address) common.Hash
	Recover(digest common.Hash, signature []byte) (common.Address, error)
}
