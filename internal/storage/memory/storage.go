package memory

import (
	"context"
	"sync"

	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts map[model.Address]*model.Account
	registry []model.Address
	listed   map[model.Address]bool
	owner    model.Address
	balance  model.Amount
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[model.Address]*model.Account),
		listed:   make(map[model.Address]bool),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

// Apply persists the account record, its registry listing, and any
// treasury credit under a single lock, so the mutation is atomic.
func (s *Storage) Apply(ctx context.Context, m storage.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *m.Account
	s.accounts[stored.Address] = &stored

	if m.ListAccount && !s.listed[stored.Address] {
		s.registry = append(s.registry, stored.Address)
		s.listed[stored.Address] = true
	}

	s.balance += m.CreditBalance
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, addr model.Address) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[addr]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	result := *account
	return &result, nil
}

// Registry operations

func (s *Storage) GetRegistry(ctx context.Context) ([]model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Address, len(s.registry))
	copy(result, s.registry)
	return result, nil
}

func (s *Storage) RegistrySize(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry), nil
}

// Owner operations

func (s *Storage) GetOwner(ctx context.Context) (model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, nil
}

func (s *Storage) SetOwner(ctx context.Context, addr model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = addr
	return nil
}

// Balance operations

func (s *Storage) GetBalance(ctx context.Context) (model.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance, nil
}

func (s *Storage) SetBalance(ctx context.Context, balance model.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	return nil
}
