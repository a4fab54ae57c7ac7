package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) apply(account *model.Account) {
	s.T().Helper()
	s.Require().NoError(s.storage.Apply(s.ctx, storage.Mutation{Account: account, ListAccount: true}))
}

// Account tests

func (s *StorageSuite) TestApplyAndGetAccount() {
	account := &model.Account{
		Address:         "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		LastCheckInUnix: 1700000000,
		AvailableTurns:  6,
		GamesPlayed:     2,
		Score: model.ScoreCiphertext{
			C1: []byte{0x01, 0x02},
			C2: []byte{0x03, 0x04},
		},
	}

	s.apply(account)

	retrieved, err := s.storage.GetAccount(s.ctx, account.Address)
	s.Require().NoError(err)
	s.Equal(account.Address, retrieved.Address)
	s.Equal(account.LastCheckInUnix, retrieved.LastCheckInUnix)
	s.Equal(account.AvailableTurns, retrieved.AvailableTurns)
	s.Equal(account.GamesPlayed, retrieved.GamesPlayed)
	s.Equal(account.Score, retrieved.Score)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestAccountHasNoTTL() {
	account := &model.Account{Address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"}
	s.apply(account)

	ttl := s.mini.TTL(accountKey(account.Address))
	s.Zero(ttl)
}

// Registry tests

func (s *StorageSuite) TestApplyListsInOrder() {
	addrs := []model.Address{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	}
	for _, addr := range addrs {
		s.apply(&model.Account{Address: addr})
	}

	registry, err := s.storage.GetRegistry(s.ctx)
	s.Require().NoError(err)
	s.Equal(addrs, registry)

	size, err := s.storage.RegistrySize(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, size)
}

func (s *StorageSuite) TestApplyListsAddressOnlyOnce() {
	account := &model.Account{Address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}
	s.apply(account)
	account.GamesPlayed = 3
	s.apply(account)

	size, err := s.storage.RegistrySize(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, size)
}

func (s *StorageSuite) TestApplyCreditsBalance() {
	account := &model.Account{Address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}
	err := s.storage.Apply(s.ctx, storage.Mutation{
		Account:       account,
		ListAccount:   true,
		CreditBalance: 4 * model.TurnPrice,
	})
	s.Require().NoError(err)
	err = s.storage.Apply(s.ctx, storage.Mutation{
		Account:       account,
		ListAccount:   true,
		CreditBalance: model.TurnPrice,
	})
	s.Require().NoError(err)

	balance, err := s.storage.GetBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(5*model.TurnPrice, balance)
}

func (s *StorageSuite) TestRegistryEmptyByDefault() {
	registry, err := s.storage.GetRegistry(s.ctx)
	s.Require().NoError(err)
	s.Empty(registry)
}

// Owner tests

func (s *StorageSuite) TestOwnerUnsetByDefault() {
	owner, err := s.storage.GetOwner(s.ctx)
	s.Require().NoError(err)
	s.True(owner.IsZero())
}

func (s *StorageSuite) TestOwnerRoundTrip() {
	err := s.storage.SetOwner(s.ctx, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	s.Require().NoError(err)

	owner, err := s.storage.GetOwner(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Address("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), owner)
}

// Balance tests

func (s *StorageSuite) TestBalanceZeroByDefault() {
	balance, err := s.storage.GetBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Amount(0), balance)
}

func (s *StorageSuite) TestBalanceRoundTrip() {
	err := s.storage.SetBalance(s.ctx, 7*model.TurnPrice)
	s.Require().NoError(err)

	balance, err := s.storage.GetBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(7*model.TurnPrice, balance)
}
