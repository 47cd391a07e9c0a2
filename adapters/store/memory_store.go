package store

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/internal/eth"
	"github.com/layer-3/redeemer/ports"
)

// MemoryLedger is an in-memory implementation of the Ledger interface
type MemoryLedger struct {
	owners   map[common.Hash]common.Address
	balances map[common.Address]uint64
	mu       sync.RWMutex
}

// NewMemoryLedger creates a new in-memory ledger
func NewMemoryLedger() ports.Ledger {
	return &MemoryLedger{
		owners:   make(map[common.Hash]common.Address),
		balances: make(map[common.Address]uint64),
	}
}

func tokenKey(tokenID *big.Int) common.Hash {
	return common.BytesToHash(eth.PackUint256(tokenID))
}

// Issue records owner for tokenID if it was never issued
func (l *MemoryLedger) Issue(ctx context.Context, tokenID *big.Int, owner common.Address) error {
	key := tokenKey(tokenID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.owners[key]; exists {
		return core.ErrAlreadyIssued
	}
	l.owners[key] = owner
	l.balances[owner]++

	return nil
}

// OwnerOf returns the owner of tokenID
func (l *MemoryLedger) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, exists := l.owners[tokenKey(tokenID)]
	return owner, exists, nil
}

// BalanceOf returns how many tokens owner holds
func (l *MemoryLedger) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[owner], nil
}

// MemoryMinterStore is an in-memory implementation of the MinterStore interface
type MemoryMinterStore struct {
	minters map[common.Address]struct{}
	seeded  bool
	mu      sync.RWMutex
}

// NewMemoryMinterStore creates a new in-memory minter store
func NewMemoryMinterStore() ports.MinterStore {
	return &MemoryMinterStore{
		minters: make(map[common.Address]struct{}),
	}
}

// AddMinter grants the minter role to addr
func (s *MemoryMinterStore) AddMinter(ctx context.Context, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.minters[addr] = struct{}{}
	return nil
}

// RemoveMinter revokes the minter role from addr
func (s *MemoryMinterStore) RemoveMinter(ctx context.Context, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.minters, addr)
	return nil
}

// IsMinter checks if addr holds the minter role
func (s *MemoryMinterStore) IsMinter(ctx context.Context, addr common.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.minters[addr]
	return ok, nil
}

// Minters lists the current role members in address order
func (s *MemoryMinterStore) Minters(ctx context.Context) ([]common.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.Address, 0, len(s.minters))
	for addr := range s.minters {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

// Seed adds addrs on the first call only
func (s *MemoryMinterStore) Seed(ctx context.Context, addrs []common.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return false, nil
	}
	s.seeded = true
	for _, addr := range addrs {
		s.minters[addr] = struct{}{}
	}
	return true, nil
}
