// Package eth implements the Ethereum-compatible voucher encoding, signing and
// signer recovery used by the redemption service.
package eth

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// VoucherHasher encodes (tokenId, recipient) the way Solidity's
// abi.encodePacked(uint256, address) does and hashes it with keccak256.
//
// An optional domain tag folds keccak256(tag) in front of the packed
// encoding so that vouchers for one deployment cannot be replayed against
// another. The zero value uses no tag.
type VoucherHasher struct {
	domain []byte
}

// NewVoucherHasher returns a hasher bound to the given domain tag.
// An empty tag selects the untagged encoding.
func NewVoucherHasher(domain string) VoucherHasher {
	if domain == "" {
		return VoucherHasher{}
	}
	return VoucherHasher{domain: crypto.Keccak256([]byte(domain))}
}

// Hash returns keccak256 of the packed voucher encoding
func (h VoucherHasher) Hash(tokenID *big.Int, recipient common.Address) common.Hash {
	return crypto.Keccak256Hash(h.domain, PackUint256(tokenID), recipient.Bytes())
}

// Digest returns the EIP-191 personal-message hash of the voucher hash.
// This is the payload the issuer signs and the verifier recovers from.
func (h VoucherHasher) Digest(tokenID *big.Int, recipient common.Address) common.Hash {
	return common.BytesToHash(accounts.TextHash(h.Hash(tokenID, recipient).Bytes()))
}

// PackUint256 encodes x as a 32-byte big-endian word. Values wider than
// 256 bits are a caller error and keep only their low 32 bytes.
func PackUint256(x *big.Int) []byte {
	word := make([]byte, 32)
	b := x.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(word[32-len(b):], b)
	return word
}
