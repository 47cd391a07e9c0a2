package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by the Redis adapters
const DefaultRedisPrefix = "redeemer:"

// issueScript sets the owner only if absent and bumps the balance in the
// same script, so Redis executes the check and the insert as one unit.
var issueScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("INCR", KEYS[2])
return 1
`)

// RedisLedger is a Redis implementation of the Ledger interface
type RedisLedger struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLedger creates a new Redis ledger
func NewRedisLedger(client redis.UniversalClient, prefix string) ports.Ledger {
	return &RedisLedger{
		client: client,
		prefix: prefix,
	}
}

func (l *RedisLedger) ownerKey(tokenID *big.Int) string {
	return l.prefix + "owner:" + tokenID.String()
}

func (l *RedisLedger) balanceKey(owner common.Address) string {
	return l.prefix + "balance:" + owner.Hex()
}

// Issue records owner for tokenID if it was never issued
func (l *RedisLedger) Issue(ctx context.Context, tokenID *big.Int, owner common.Address) error {
	keys := []string{l.ownerKey(tokenID), l.balanceKey(owner)}

	inserted, err := issueScript.Run(ctx, l.client, keys, owner.Hex()).Int()
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	if inserted == 0 {
		return core.ErrAlreadyIssued
	}

	return nil
}

// OwnerOf returns the owner of tokenID
func (l *RedisLedger) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error) {
	val, err := l.client.Get(ctx, l.ownerKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return common.Address{}, false, nil
	}
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to read owner: %w", err)
	}

	return common.HexToAddress(val), true, nil
}

// BalanceOf returns how many tokens owner holds
func (l *RedisLedger) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	n, err := l.client.Get(ctx, l.balanceKey(owner)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	return n, nil
}

// seedScript claims the seed marker and fills the set in one step, so a
// revoked member is never re-added by a later seed.
var seedScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], "1") == 0 then
	return 0
end
if #ARGV > 0 then
	redis.call("SADD", KEYS[2], unpack(ARGV))
end
return 1
`)

// RedisMinterStore keeps role members in a Redis set
type RedisMinterStore struct {
	client  redis.UniversalClient
	key     string
	seedKey string
}

// NewRedisMinterStore creates a new Redis minter store
func NewRedisMinterStore(client redis.UniversalClient, prefix string) ports.MinterStore {
	return &RedisMinterStore{
		client:  client,
		key:     prefix + "minters",
		seedKey: prefix + "minters:seeded",
	}
}

// AddMinter grants the minter role to addr
func (s *RedisMinterStore) AddMinter(ctx context.Context, addr common.Address) error {
	if err := s.client.SAdd(ctx, s.key, addr.Hex()).Err(); err != nil {
		return fmt.Errorf("failed to add minter: %w", err)
	}
	return nil
}

// RemoveMinter revokes the minter role from addr
func (s *RedisMinterStore) RemoveMinter(ctx context.Context, addr common.Address) error {
	if err := s.client.SRem(ctx, s.key, addr.Hex()).Err(); err != nil {
		return fmt.Errorf("failed to remove minter: %w", err)
	}
	return nil
}

// IsMinter checks if addr holds the minter role
func (s *RedisMinterStore) IsMinter(ctx context.Context, addr common.Address) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key, addr.Hex()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check minter: %w", err)
	}
	return ok, nil
}

// Minters lists the current role members in address order
func (s *RedisMinterStore) Minters(ctx context.Context) ([]common.Address, error) {
	members, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list minters: %w", err)
	}

	out := make([]common.Address, 0, len(members))
	for _, m := range members {
		out = append(out, common.HexToAddress(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

// Seed adds addrs unless the store was seeded before
func (s *RedisMinterStore) Seed(ctx context.Context, addrs []common.Address) (bool, error) {
	args := make([]interface{}, 0, len(addrs))
	for _, addr := range addrs {
		args = append(args, addr.Hex())
	}

	seeded, err := seedScript.Run(ctx, s.client, []string{s.seedKey, s.key}, args...).Int()
	if err != nil {
		return false, fmt.Errorf("failed to seed minters: %w", err)
	}
	return seeded == 1, nil
}
