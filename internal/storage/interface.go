package storage

import (
	"context"

	"github.com/plinkolabs/plinko/internal/model"
)

// Mutation is one account-level ledger write: the updated account
// record, the account's registry listing (a no-op when the address is
// already listed), and an optional treasury credit.
type Mutation struct {
	Account       *model.Account
	ListAccount   bool
	CreditBalance model.Amount
}

// Storage defines the interface for ledger persistence. Implementations
// are dumb key-value stores: invariants (balance arithmetic, cooldown
// checks) belong to the ledger service, which serializes all mutating
// access. The one hard requirement on implementations is that Apply is
// all-or-nothing, so a storage failure can never leave a half-written
// account behind.
type Storage interface {
	// Apply atomically persists every part of the mutation, or none of
	// it on error.
	Apply(ctx context.Context, m Mutation) error
	GetAccount(ctx context.Context, addr model.Address) (*model.Account, error)

	// Registry queries. The registry is the append-only ordered list of
	// every address that has ever interacted, one entry per address.
	GetRegistry(ctx context.Context) ([]model.Address, error)
	RegistrySize(ctx context.Context) (int, error)

	// Owner operations. GetOwner returns an empty address when no owner
	// has been set yet.
	GetOwner(ctx context.Context) (model.Address, error)
	SetOwner(ctx context.Context, addr model.Address) error

	// Balance operations for the contract-style treasury.
	GetBalance(ctx context.Context) (model.Amount, error)
	SetBalance(ctx context.Context, balance model.Amount) error
}
