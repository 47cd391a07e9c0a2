package signature

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/internal/eth"
)

// Issuer signs vouchers with a minter key
type Issuer struct {
	key    *ecdsa.PrivateKey
	hasher eth.VoucherHasher
}

// NewIssuer creates an issuer from a hex private key
func NewIssuer(hexKey string, domain string) (*Issuer, error) {
	key, err := eth.ParsePrivateKey(hexKey)
	if err != nil {
		return nil, err
	}
	return &Issuer{key: key, hasher: eth.NewVoucherHasher(domain)}, nil
}

// Address returns the issuer identity that must hold the minter role
func (i *Issuer) Address() common.Address {
	return eth.AddressOf(i.key)
}

// SignVoucher produces a redeemable voucher for (tokenID, recipient)
func (i *Issuer) SignVoucher(tokenID *big.Int, recipient common.Address) (*core.SignedVoucher, error) {
	if err := core.ValidateTokenID(tokenID); err != nil {
		return nil, err
	}

	digest := i.hasher.Digest(tokenID, recipient)
	sig, err := eth.SignDigest(digest, i.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign voucher: %w", err)
	}

	return &core.SignedVoucher{
		Voucher: core.Voucher{
			TokenID:   new(big.Int).Set(tokenID),
			Recipient: recipient,
		},
		Digest:    digest,
		Signature: sig,
	}, nil
}
