package response

import (
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/ledger"
	"github.com/plinkolabs/plinko/internal/services/wallet"
)

// Session is the response for wallet connection
type Session struct {
	SessionToken string `json:"session_token"`
	Address      string `json:"address"`
}

// SessionFromModel converts a wallet.Session to a response Session
func SessionFromModel(s *wallet.Session) Session {
	return Session{
		SessionToken: s.Token,
		Address:      string(s.Address),
	}
}

// PlayerInfo is the player info query response
type PlayerInfo struct {
	Address         string `json:"address"`
	LastCheckInUnix int64  `json:"last_check_in_unix"`
	AvailableTurns  uint64 `json:"available_turns"`
	GamesPlayed     uint64 `json:"games_played"`
}

// PlayerInfoFromModel converts model.PlayerInfo
func PlayerInfoFromModel(info *model.PlayerInfo) PlayerInfo {
	return PlayerInfo{
		Address:         string(info.Address),
		LastCheckInUnix: info.LastCheckInUnix,
		AvailableTurns:  info.AvailableTurns,
		GamesPlayed:     info.GamesPlayed,
	}
}

// CanCheckIn is the check-in eligibility query response
type CanCheckIn struct {
	Address    string `json:"address"`
	CanCheckIn bool   `json:"can_check_in"`
}

// Play is the response for the plain play variant
type Play struct {
	Path           []int  `json:"path"`
	Slot           int    `json:"slot"`
	Payout         uint64 `json:"payout"`
	TurnsRemaining uint64 `json:"turns_remaining"`
	GamesPlayed    uint64 `json:"games_played"`
}

// PlayFromResult converts a ledger.PlayResult
func PlayFromResult(r *ledger.PlayResult) Play {
	return Play{
		Path:           r.Drop.Path,
		Slot:           r.Drop.Slot,
		Payout:         r.Drop.Payout,
		TurnsRemaining: r.TurnsRemaining,
		GamesPlayed:    r.GamesPlayed,
	}
}

// Score is the opaque accumulator handle. C1/C2 are empty when no score
// has ever been accumulated.
type Score struct {
	Address string `json:"address"`
	C1      []byte `json:"c1,omitempty"`
	C2      []byte `json:"c2,omitempty"`
}

// ScoreFromModel converts a stored ciphertext
func ScoreFromModel(addr model.Address, s model.ScoreCiphertext) Score {
	return Score{
		Address: string(addr),
		C1:      s.C1,
		C2:      s.C2,
	}
}

// ScorePlay is the response for the confidential play variant
type ScorePlay struct {
	TurnsRemaining uint64 `json:"turns_remaining"`
	GamesPlayed    uint64 `json:"games_played"`
	ScoreC1        []byte `json:"score_c1"`
	ScoreC2        []byte `json:"score_c2"`
}

// ScorePlayFromResult converts a ledger.ScorePlayResult
func ScorePlayFromResult(r *ledger.ScorePlayResult) ScorePlay {
	return ScorePlay{
		TurnsRemaining: r.TurnsRemaining,
		GamesPlayed:    r.GamesPlayed,
		ScoreC1:        r.Score.C1,
		ScoreC2:        r.Score.C2,
	}
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Address     string `json:"address"`
	GamesPlayed uint64 `json:"games_played"`
}

// Leaderboard is the leaderboard query response
type Leaderboard struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalPlayers int                `json:"total_players"`
}

// LeaderboardFromModel converts leaderboard entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	rows := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardEntry{
			Address:     string(e.Address),
			GamesPlayed: e.GamesPlayed,
		}
	}
	return Leaderboard{
		Entries:      rows,
		TotalPlayers: len(rows),
	}
}

// TotalPlayers is the player count query response
type TotalPlayers struct {
	TotalPlayers int `json:"total_players"`
}

// Balance is the treasury balance query response
type Balance struct {
	BalanceNano uint64 `json:"balance_nano"`
	Balance     string `json:"balance"`
}

// BalanceFromModel converts an amount
func BalanceFromModel(amount model.Amount) Balance {
	return Balance{
		BalanceNano: uint64(amount),
		Balance:     amount.String(),
	}
}

// Withdrawal is the withdraw response
type Withdrawal struct {
	AmountNano uint64 `json:"amount_nano"`
	Amount     string `json:"amount"`
}

// Owner is the owner query response
type Owner struct {
	Owner string `json:"owner"`
}
