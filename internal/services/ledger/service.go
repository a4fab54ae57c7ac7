// Package ledger implements the authoritative game ledger: per-account
// turns, check-in cooldowns, play counts, the confidential score
// accumulator, the registry-backed leaderboard, and the owner-only
// treasury operations.
package ledger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/plinkolabs/plinko/internal/confidential"
	"github.com/plinkolabs/plinko/internal/dependencies/clock"
	"github.com/plinkolabs/plinko/internal/events"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/drop"
	"github.com/plinkolabs/plinko/internal/storage"
)

// Service is the ledger. Every mutating entry point either applies its
// full state transition or rejects with no change and no event; mu
// serializes mutations, standing in for the global total ordering the
// original execution environment provided.
type Service struct {
	storage storage.Storage
	drops   *drop.Service
	clock   clock.Clock
	bus     *events.Bus
	logger  *slog.Logger

	mu sync.Mutex
}

// New creates a new ledger service
func New(
	storage storage.Storage,
	drops *drop.Service,
	clock clock.Clock,
	bus *events.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		drops:   drops,
		clock:   clock,
		bus:     bus,
		logger:  logger,
	}
}

// PlayResult is the outcome of the plain play variant.
type PlayResult struct {
	Drop           drop.Result
	TurnsRemaining uint64
	GamesPlayed    uint64
}

// ScorePlayResult is the outcome of the confidential play variant.
type ScorePlayResult struct {
	TurnsRemaining uint64
	GamesPlayed    uint64

	// Score is the updated accumulator ciphertext.
	Score model.ScoreCiphertext
}

// EnsureOwner persists the owner address on first boot. An owner already
// in storage wins over the configured one, since ownership may have been
// transferred since deployment.
func (s *Service) EnsureOwner(ctx context.Context, owner model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.storage.GetOwner(ctx)
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return nil
	}
	if owner.IsZero() {
		return nil
	}

	if err := s.storage.SetOwner(ctx, owner); err != nil {
		return err
	}
	s.logger.Info("owner initialized", slog.String("owner", string(owner)))
	return nil
}

// CheckIn grants the caller the free turn allowance, at most once per
// cooldown interval. The caller's first-ever interaction also registers
// it for the leaderboard.
func (s *Service) CheckIn(ctx context.Context, caller model.Address) (*model.PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, caller)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().Unix()
	if now < account.LastCheckInUnix+model.CheckInCooldownSeconds {
		return nil, model.ErrCooldownActive
	}

	first := !account.HasInteracted()
	account.AvailableTurns += model.CheckInGrant
	account.LastCheckInUnix = now

	if err := s.persist(ctx, account, 0); err != nil {
		return nil, err
	}

	s.logger.Info("check-in",
		slog.String("address", string(caller)),
		slog.Uint64("turns", account.AvailableTurns),
		slog.Bool("first_interaction", first),
	)
	s.emit(model.EventCheckIn, caller, model.CheckInPayload{
		TurnsGranted: model.CheckInGrant,
		CheckInUnix:  now,
	})

	return infoFromAccount(account), nil
}

// BuyTurns credits count purchased turns against an exact payment of
// count times the turn price. Overpayment is not refunded and
// underpayment is not tolerated, so both reject.
func (s *Service) BuyTurns(ctx context.Context, caller model.Address, count uint64, payment model.Amount) (*model.PlayerInfo, error) {
	if count == 0 {
		return nil, model.ErrInvalidTurnCount
	}
	if count > math.MaxUint64/uint64(model.TurnPrice) {
		return nil, model.ErrInvalidTurnCount
	}
	if payment != model.Amount(count)*model.TurnPrice {
		return nil, model.ErrWrongPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, caller)
	if err != nil {
		return nil, err
	}

	if !account.HasInteracted() {
		// Mark the account registered without unlocking the free
		// check-in grant.
		account.LastCheckInUnix = model.PurchasedOnly
	}
	account.AvailableTurns += count

	if err := s.persist(ctx, account, payment); err != nil {
		return nil, err
	}

	s.logger.Info("turns purchased",
		slog.String("address", string(caller)),
		slog.Uint64("count", count),
		slog.String("payment", payment.String()),
	)
	s.emit(model.EventTurnsPurchased, caller, model.TurnsPurchasedPayload{
		TurnsBought: count,
		AmountPaid:  payment,
	})

	return infoFromAccount(account), nil
}

// Play consumes one turn and runs a drop simulation. The payout is
// reported to the caller but not accumulated; accumulation is the
// confidential variant's job.
func (s *Service) Play(ctx context.Context, caller model.Address) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, caller)
	if err != nil {
		return nil, err
	}
	if account.AvailableTurns == 0 {
		return nil, model.ErrNoTurnsRemaining
	}

	result := s.drops.Drop()
	account.AvailableTurns--
	account.GamesPlayed++

	if err := s.persist(ctx, account, 0); err != nil {
		return nil, err
	}

	s.logger.Info("played",
		slog.String("address", string(caller)),
		slog.Int("slot", result.Slot),
		slog.Uint64("payout", result.Payout),
		slog.Uint64("turns_remaining", account.AvailableTurns),
	)
	s.emit(model.EventPlayed, caller, model.PlayedPayload{
		TurnsRemaining: account.AvailableTurns,
		Slot:           result.Slot,
		Payout:         result.Payout,
	})

	return &PlayResult{
		Drop:           result,
		TurnsRemaining: account.AvailableTurns,
		GamesPlayed:    account.GamesPlayed,
	}, nil
}

// PlayWithScore consumes one turn and folds an externally encrypted score
// into the caller's confidential accumulator. The submission must verify
// under the account's score public key; the first confidential play pins
// that key.
func (s *Service) PlayWithScore(
	ctx context.Context,
	caller model.Address,
	publicKey []byte,
	score model.ScoreCiphertext,
	proofData []byte,
) (*ScorePlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx, caller)
	if err != nil {
		return nil, err
	}
	if account.AvailableTurns == 0 {
		return nil, model.ErrNoTurnsRemaining
	}

	if account.ScorePublicKey != nil && !bytes.Equal(account.ScorePublicKey, publicKey) {
		return nil, model.ErrScoreKeyMismatch
	}

	public, err := confidential.ParsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	submitted, err := confidential.Unmarshal(score)
	if err != nil {
		return nil, err
	}
	if err := confidential.Verify(public, submitted, proofData); err != nil {
		return nil, err
	}

	total := submitted
	if !account.Score.IsZero() {
		current, err := confidential.Unmarshal(account.Score)
		if err != nil {
			return nil, err
		}
		total = confidential.Add(current, submitted)
	}
	updated, err := total.Marshal()
	if err != nil {
		return nil, err
	}

	account.Score = updated
	account.ScorePublicKey = publicKey
	account.AvailableTurns--
	account.GamesPlayed++

	if err := s.persist(ctx, account, 0); err != nil {
		return nil, err
	}

	s.logger.Info("confidential play",
		slog.String("address", string(caller)),
		slog.Uint64("games_played", account.GamesPlayed),
		slog.Uint64("turns_remaining", account.AvailableTurns),
	)
	s.emit(model.EventPlayed, caller, model.PlayedPayload{
		TurnsRemaining: account.AvailableTurns,
	})
	s.emit(model.EventScoreUpdated, caller, model.ScoreUpdatedPayload{
		GamesPlayed: account.GamesPlayed,
	})

	return &ScorePlayResult{
		TurnsRemaining: account.AvailableTurns,
		GamesPlayed:    account.GamesPlayed,
		Score:          updated,
	}, nil
}

// PlayerInfo returns the public projection of an account. Unseen
// addresses report the implicit zero record.
func (s *Service) PlayerInfo(ctx context.Context, addr model.Address) (*model.PlayerInfo, error) {
	account, err := s.account(ctx, addr)
	if err != nil {
		return nil, err
	}
	return infoFromAccount(account), nil
}

// Score returns the opaque accumulator for an address. The ledger cannot
// decrypt it; only the account holder can, out of band.
func (s *Service) Score(ctx context.Context, addr model.Address) (model.ScoreCiphertext, error) {
	account, err := s.account(ctx, addr)
	if err != nil {
		return model.ScoreCiphertext{}, err
	}
	return account.Score, nil
}

// CanCheckIn reports whether the cooldown has elapsed for an address.
func (s *Service) CanCheckIn(ctx context.Context, addr model.Address) (bool, error) {
	account, err := s.account(ctx, addr)
	if err != nil {
		return false, err
	}
	now := s.clock.Now().Unix()
	return now >= account.LastCheckInUnix+model.CheckInCooldownSeconds, nil
}

// Leaderboard returns every registered account ordered by games played,
// descending. The sort is stable, so ties keep their registry insertion
// order.
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	registry, err := s.storage.GetRegistry(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(registry))
	for _, addr := range registry {
		account, err := s.account(ctx, addr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.LeaderboardEntry{
			Address:     addr,
			GamesPlayed: account.GamesPlayed,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GamesPlayed > entries[j].GamesPlayed
	})
	return entries, nil
}

// TotalPlayers returns the registry size.
func (s *Service) TotalPlayers(ctx context.Context) (int, error) {
	return s.storage.RegistrySize(ctx)
}

// Balance returns the treasury balance.
func (s *Service) Balance(ctx context.Context) (model.Amount, error) {
	return s.storage.GetBalance(ctx)
}

// Owner returns the current owner address.
func (s *Service) Owner(ctx context.Context) (model.Address, error) {
	return s.storage.GetOwner(ctx)
}

// Withdraw transfers the entire treasury balance to the owner. Only the
// owner may call it, and only while the balance is positive.
func (s *Service) Withdraw(ctx context.Context, caller model.Address) (model.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.storage.GetOwner(ctx)
	if err != nil {
		return 0, err
	}
	if owner.IsZero() || caller != owner {
		return 0, model.ErrNotOwner
	}

	balance, err := s.storage.GetBalance(ctx)
	if err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, model.ErrEmptyBalance
	}

	if err := s.storage.SetBalance(ctx, 0); err != nil {
		return 0, err
	}

	s.logger.Info("withdrawal",
		slog.String("owner", string(owner)),
		slog.String("amount", balance.String()),
	)
	s.emit(model.EventWithdrawal, owner, model.WithdrawalPayload{
		Owner:  owner,
		Amount: balance,
	})

	return balance, nil
}

// TransferOwnership reassigns the owner pointer. The zero address is
// never a valid target.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.storage.GetOwner(ctx)
	if err != nil {
		return err
	}
	if owner.IsZero() || caller != owner {
		return model.ErrNotOwner
	}
	if newOwner.IsZero() {
		return model.ErrZeroAddress
	}

	if err := s.storage.SetOwner(ctx, newOwner); err != nil {
		return err
	}

	s.logger.Info("ownership transferred",
		slog.String("old_owner", string(owner)),
		slog.String("new_owner", string(newOwner)),
	)
	s.emit(model.EventOwnershipTransferred, newOwner, model.OwnershipTransferredPayload{
		OldOwner: owner,
		NewOwner: newOwner,
	})

	return nil
}

// account loads the record for an address, falling back to the implicit
// zero record for addresses that have never been persisted.
func (s *Service) account(ctx context.Context, addr model.Address) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, addr)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return model.NewAccount(addr), nil
		}
		return nil, err
	}
	return account, nil
}

// persist writes the account mutation atomically: the record, its
// registry listing, and any treasury credit land together or not at
// all, so a storage failure rejects the operation as a clean no-op.
// The listing is requested on every write; storage deduplicates, and
// an interacted account is always registry-listed afterwards.
func (s *Service) persist(ctx context.Context, account *model.Account, credit model.Amount) error {
	return s.storage.Apply(ctx, storage.Mutation{
		Account:       account,
		ListAccount:   true,
		CreditBalance: credit,
	})
}

func (s *Service) emit(eventType model.EventType, player model.Address, payload any) {
	s.bus.Publish(model.Event{
		Type:      eventType,
		Timestamp: s.clock.Now(),
		Player:    player,
		Payload:   payload,
	})
}

func infoFromAccount(account *model.Account) *model.PlayerInfo {
	return &model.PlayerInfo{
		Address:         account.Address,
		LastCheckInUnix: account.LastCheckInUnix,
		AvailableTurns:  account.AvailableTurns,
		GamesPlayed:     account.GamesPlayed,
	}
}
