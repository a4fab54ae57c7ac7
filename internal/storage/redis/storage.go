package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Ledger records never expire: an account is never deleted and the
// registry only grows, so no TTLs are set anywhere.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

// Apply persists the account record, its registry listing, and any
// treasury credit in one MULTI/EXEC transaction, so either every key
// is written or none is. The membership check runs before the
// transaction; that is safe because the ledger service is the only
// writer and serializes mutations.
func (s *Storage) Apply(ctx context.Context, m storage.Mutation) error {
	data, err := json.Marshal(m.Account)
	if err != nil {
		return err
	}
	addr := string(m.Account.Address)

	list := false
	if m.ListAccount {
		known, err := s.client.SIsMember(ctx, registryMembersKey(), addr).Result()
		if err != nil {
			return err
		}
		list = !known
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accountKey(m.Account.Address), data, 0)
		if list {
			pipe.RPush(ctx, registryKey(), addr)
			pipe.SAdd(ctx, registryMembersKey(), addr)
		}
		if m.CreditBalance > 0 {
			pipe.IncrBy(ctx, balanceKey(), int64(m.CreditBalance))
		}
		return nil
	})
	return err
}

func (s *Storage) GetAccount(ctx context.Context, addr model.Address) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(addr)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Registry operations

func (s *Storage) GetRegistry(ctx context.Context) ([]model.Address, error) {
	entries, err := s.client.LRange(ctx, registryKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	registry := make([]model.Address, len(entries))
	for i, entry := range entries {
		registry[i] = model.Address(entry)
	}
	return registry, nil
}

func (s *Storage) RegistrySize(ctx context.Context) (int, error) {
	size, err := s.client.LLen(ctx, registryKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(size), nil
}

// Owner operations

func (s *Storage) GetOwner(ctx context.Context) (model.Address, error) {
	owner, err := s.client.Get(ctx, ownerKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.Address(owner), nil
}

func (s *Storage) SetOwner(ctx context.Context, addr model.Address) error {
	return s.client.Set(ctx, ownerKey(), string(addr), 0).Err()
}

// Balance operations

func (s *Storage) GetBalance(ctx context.Context) (model.Amount, error) {
	raw, err := s.client.Get(ctx, balanceKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}

	balance, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return model.Amount(balance), nil
}

func (s *Storage) SetBalance(ctx context.Context, balance model.Amount) error {
	return s.client.Set(ctx, balanceKey(), strconv.FormatUint(uint64(balance), 10), 0).Err()
}
