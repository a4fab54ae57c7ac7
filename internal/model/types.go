package model

import "fmt"

// Ledger constants. Amounts are denominated in nano-units of the native
// currency: 1_000_000_000 nano = 1 native unit.
const (
	NanoPerUnit = 1_000_000_000

	// TurnPrice is the cost of a single purchased turn: 0.001 native units.
	TurnPrice Amount = 1_000_000

	// CheckInGrant is the number of free turns granted per check-in.
	CheckInGrant = 3

	// CheckInCooldownSeconds is the minimum interval between check-ins.
	CheckInCooldownSeconds = 86400
)

// LastCheckIn sentinel values.
const (
	// NeverSeen marks an account that has never interacted.
	NeverSeen int64 = 0
	// PurchasedOnly marks an account registered via purchase that has
	// never checked in. It does not delay the first check-in.
	PurchasedOnly int64 = 1
)

// Amount is a quantity of native currency in nano-units.
type Amount uint64

// String renders the amount in native units, e.g. "0.005".
func (a Amount) String() string {
	whole := uint64(a) / NanoPerUnit
	frac := uint64(a) % NanoPerUnit
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := fmt.Sprintf("%d.%09d", whole, frac)
	// Trim trailing zeros from the fractional part
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

// ScoreCiphertext is the opaque confidential accumulator: the serialized
// points of an ElGamal ciphertext. Zero-length fields mean no score has
// ever been accumulated for the account.
type ScoreCiphertext struct {
	C1 []byte `json:"c1,omitempty"`
	C2 []byte `json:"c2,omitempty"`
}

// IsZero reports whether the accumulator has never been written.
func (s ScoreCiphertext) IsZero() bool {
	return len(s.C1) == 0 && len(s.C2) == 0
}

// Account is the per-participant ledger record. Accounts are implicitly
// zero-valued until their first mutation is persisted; they are never
// deleted.
type Account struct {
	Address Address `json:"address"`

	// LastCheckInUnix is the unix time of the last successful check-in,
	// or one of the NeverSeen / PurchasedOnly sentinels.
	LastCheckInUnix int64 `json:"last_check_in_unix"`

	AvailableTurns uint64 `json:"available_turns"`
	GamesPlayed    uint64 `json:"games_played"`

	// Score is the confidential accumulator; ScorePublicKey pins the key
	// all of the account's submissions must encrypt under, registered on
	// the first confidential play.
	Score          ScoreCiphertext `json:"score"`
	ScorePublicKey []byte          `json:"score_public_key,omitempty"`
}

// NewAccount returns the implicit zero-valued record for an address.
func NewAccount(addr Address) *Account {
	return &Account{Address: addr}
}

// HasInteracted reports whether the account has ever checked in or
// purchased turns, i.e. whether it is registry-listed.
func (a *Account) HasInteracted() bool {
	return a.LastCheckInUnix != NeverSeen
}

// LeaderboardEntry is one row of the leaderboard query result.
type LeaderboardEntry struct {
	Address     Address `json:"address"`
	GamesPlayed uint64  `json:"games_played"`
}

// PlayerInfo is the read-only projection returned by the player info query.
type PlayerInfo struct {
	Address         Address `json:"address"`
	LastCheckInUnix int64   `json:"last_check_in_unix"`
	AvailableTurns  uint64  `json:"available_turns"`
	GamesPlayed     uint64  `json:"games_played"`
}
