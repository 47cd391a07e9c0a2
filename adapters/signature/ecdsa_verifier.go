package signature

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/internal/eth"
	"github.com/layer-3/redeemer/ports"
)

// ECDSAVerifier implements the Verifier interface with secp256k1 recovery
type ECDSAVerifier struct {
	hasher eth.VoucherHasher
}

// NewECDSAVerifier creates a verifier for vouchers hashed under domain
func NewECDSAVerifier(domain string) ports.Verifier {
	return &ECDSAVerifier{hasher: eth.NewVoucherHasher(domain)}
}

// Digest returns the signed payload for a voucher
func (v *ECDSAVerifier) Digest(tokenID *big.Int, recipient common.Address) common.Hash {
	return v.hasher.Digest(tokenID, recipient)
}

// Recover returns the signer of digest
func (v *ECDSAVerifier) Recover(digest common.Hash, signature []byte) (common.Address, error) {
	return eth.RecoverSigner(digest, signature)
}
