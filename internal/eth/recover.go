package eth

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/redeemer/core"
)

// RecoverSigner returns the address whose key produced sig over digest.
// It accepts recovery ids in either the raw {0,1} or the wallet {27,28} form
// and rejects malleable (high-s) signatures.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != core.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes: %w", core.SignatureLength, core.ErrInvalidSignature)
	}

	normalized := make([]byte, core.SignatureLength)
	copy(normalized, sig)

	v := normalized[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d: %w", sig[64], core.ErrInvalidSignature)
	}
	normalized[64] = v

	r := new(big.Int).SetBytes(normalized[:32])
	s := new(big.Int).SetBytes(normalized[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, true) {
		return common.Address{}, fmt.Errorf("signature values out of range: %w", core.ErrInvalidSignature)
	}

	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", core.ErrInvalidSignature)
	}

	return crypto.PubkeyToAddress(*pub), nil
}
