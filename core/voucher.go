package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SignatureLength is the size of an r || s || v signature
const SignatureLength = 65

// Voucher is an unsigned authorization to mint TokenID to Recipient.
// It is never stored; only its digest and signature travel.
type Voucher struct {
	TokenID   *big.Int       // Token identifier, 0 <= id < 2^256
	Recipient common.Address // Address the token is bound to
}

// SignedVoucher is a voucher together with the issuer's signature
type SignedVoucher struct {
	Voucher
	Digest    common.Hash // Final signed payload
	Signature []byte      // 65-byte r || s || v
}

// TransferEvent is emitted once per successful redemption.
// From is always the zero address for an issuance.
type TransferEvent struct {
	From    common.Address
	To      common.Address
	TokenID *big.Int
}

// NewIssuanceEvent returns the transfer notification for a fresh mint
func NewIssuanceEvent(to common.Address, tokenID *big.Int) *TransferEvent {
	return &TransferEvent{
		From:    common.Address{},
		To:      to,
		TokenID: new(big.Int).Set(tokenID),
	}
}
