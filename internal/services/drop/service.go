// Package drop simulates the plinko board for the plain play variant.
// The ball enters above the middle slot and bounces left or right once
// per peg row; the slot it lands in determines the payout. The browser
// only animates the path the service already decided, so the outcome is
// authoritative here rather than in the client.
package drop

import (
	"github.com/plinkolabs/plinko/internal/dependencies/random"
)

// Rows is the number of peg rows on the board.
const Rows = 12

// payouts maps the landing slot (0..Rows) to a score. Edge slots are the
// hardest to reach and pay the most; the distribution is symmetric.
var payouts = [Rows + 1]uint64{
	1000, 500, 200, 100, 50, 20, 10, 20, 50, 100, 200, 500, 1000,
}

// Result describes a single simulated drop.
type Result struct {
	// Path records each bounce: 0 for left, 1 for right.
	Path []int `json:"path"`

	// Slot is the landing position, i.e. the number of right bounces.
	Slot int `json:"slot"`

	// Payout is the score for the landing slot.
	Payout uint64 `json:"payout"`
}

// Service runs drop simulations.
type Service struct {
	random random.Random
}

// New creates a new drop service
func New(random random.Random) *Service {
	return &Service{random: random}
}

// Drop simulates one ball falling through the board.
func (s *Service) Drop() Result {
	path := make([]int, Rows)
	slot := 0
	for i := range path {
		bounce := s.random.Intn(2)
		path[i] = bounce
		slot += bounce
	}

	return Result{
		Path:   path,
		Slot:   slot,
		Payout: payouts[slot],
	}
}

// MaxPayout returns the highest score a single drop can produce.
func MaxPayout() uint64 {
	return payouts[0]
}
