package model

import "time"

// EventType identifies the type of ledger event
type EventType string

const (
	EventCheckIn              EventType = "check_in"
	EventTurnsPurchased       EventType = "turns_purchased"
	EventPlayed               EventType = "played"
	EventScoreUpdated         EventType = "score_updated"
	EventWithdrawal           EventType = "withdrawal"
	EventOwnershipTransferred EventType = "ownership_transferred"
)

// Event is emitted by the ledger after every successful mutation.
// Rejected calls emit nothing.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Player    Address   `json:"player,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// CheckInPayload contains data for check-in events
type CheckInPayload struct {
	TurnsGranted uint64 `json:"turns_granted"`
	CheckInUnix  int64  `json:"check_in_unix"`
}

// TurnsPurchasedPayload contains data for purchase events
type TurnsPurchasedPayload struct {
	TurnsBought uint64 `json:"turns_bought"`
	AmountPaid  Amount `json:"amount_paid"`
}

// PlayedPayload contains data for played events
type PlayedPayload struct {
	TurnsRemaining uint64 `json:"turns_remaining"`
	Slot           int    `json:"slot,omitempty"`
	Payout         uint64 `json:"payout,omitempty"`
}

// ScoreUpdatedPayload contains data for score-updated events
type ScoreUpdatedPayload struct {
	GamesPlayed uint64 `json:"games_played"`
}

// WithdrawalPayload contains data for withdrawal events
type WithdrawalPayload struct {
	Owner  Address `json:"owner"`
	Amount Amount  `json:"amount"`
}

// OwnershipTransferredPayload contains data for ownership transfer events
type OwnershipTransferredPayload struct {
	OldOwner Address `json:"old_owner"`
	NewOwner Address `json:"new_owner"`
}
