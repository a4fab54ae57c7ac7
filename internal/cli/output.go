package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case PlayerInfo:
		o.printPlayerInfo(v)
	case CanCheckIn:
		o.printCanCheckIn(v)
	case PlayResult:
		o.printPlayResult(v)
	case ScorePlayResult:
		fmt.Printf("Score submitted. Turns Remaining: %d, Games Played: %d\n", v.TurnsRemaining, v.GamesPlayed)
	case ScoreResult:
		o.printScoreResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case TotalPlayers:
		fmt.Printf("Total players: %d\n", v.TotalPlayers)
	case Balance:
		fmt.Printf("Balance: %s (%d nano)\n", v.Balance, v.BalanceNano)
	case Withdrawal:
		fmt.Printf("Withdrew: %s (%d nano)\n", v.Amount, v.AmountNano)
	case Owner:
		fmt.Printf("Owner: %s\n", v.Owner)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	SessionToken string `json:"session_token"`
	Address      string `json:"address"`
}

// PlayerInfo response type
type PlayerInfo struct {
	Address         string `json:"address"`
	LastCheckInUnix int64  `json:"last_check_in_unix"`
	AvailableTurns  uint64 `json:"available_turns"`
	GamesPlayed     uint64 `json:"games_played"`
}

// CanCheckIn response type
type CanCheckIn struct {
	Address    string `json:"address"`
	CanCheckIn bool   `json:"can_check_in"`
}

// PlayResult response type
type PlayResult struct {
	Path           []int  `json:"path"`
	Slot           int    `json:"slot"`
	Payout         uint64 `json:"payout"`
	TurnsRemaining uint64 `json:"turns_remaining"`
	GamesPlayed    uint64 `json:"games_played"`
}

// ScorePlayResult response type
type ScorePlayResult struct {
	TurnsRemaining uint64 `json:"turns_remaining"`
	GamesPlayed    uint64 `json:"games_played"`
	ScoreC1        []byte `json:"score_c1"`
	ScoreC2        []byte `json:"score_c2"`
}

// ScoreQueryResult response type
type ScoreQueryResult struct {
	Address string `json:"address"`
	C1      []byte `json:"c1"`
	C2      []byte `json:"c2"`
}

// ScoreResult is the decrypted score shown to the key holder
type ScoreResult struct {
	Address string `json:"address"`
	Score   uint64 `json:"score"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Address     string `json:"address"`
	GamesPlayed uint64 `json:"games_played"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalPlayers int                `json:"total_players"`
}

// TotalPlayers response type
type TotalPlayers struct {
	TotalPlayers int `json:"total_players"`
}

// Balance response type
type Balance struct {
	BalanceNano uint64 `json:"balance_nano"`
	Balance     string `json:"balance"`
}

// Withdrawal response type
type Withdrawal struct {
	AmountNano uint64 `json:"amount_nano"`
	Amount     string `json:"amount"`
}

// Owner response type
type Owner struct {
	Owner string `json:"owner"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Connected: %s\n", s.Address)
	fmt.Printf("Token: %s\n", s.SessionToken)
}

func (o *Output) printPlayerInfo(p PlayerInfo) {
	fmt.Printf("Player: %s\n", p.Address)
	fmt.Printf("Available Turns: %d\n", p.AvailableTurns)
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
	if p.LastCheckInUnix > 1 {
		fmt.Printf("Last Check-In: %d\n", p.LastCheckInUnix)
	}
}

func (o *Output) printCanCheckIn(c CanCheckIn) {
	if c.CanCheckIn {
		fmt.Printf("%s can check in\n", c.Address)
	} else {
		fmt.Printf("%s is still in the cooldown window\n", c.Address)
	}
}

func (o *Output) printPlayResult(p PlayResult) {
	fmt.Printf("Landed in slot %d for %d points\n", p.Slot, p.Payout)
	fmt.Printf("Turns Remaining: %d\n", p.TurnsRemaining)
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
}

func (o *Output) printScoreResult(s ScoreResult) {
	fmt.Printf("Player: %s\n", s.Address)
	fmt.Printf("Score: %d\n", s.Score)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%d players):\n", l.TotalPlayers)
	for i, e := range l.Entries {
		fmt.Printf("  %d. %s - %d games\n", i+1, e.Address, e.GamesPlayed)
	}
}
