package model

import "errors"

// Common errors used across the application. Every rejection is a clean
// no-op: no state is persisted and no event is emitted on the failing path.
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidAddress  = errors.New("invalid account address")
	ErrZeroAddress     = errors.New("zero address is not a valid target")

	// Check-in errors
	ErrCooldownActive = errors.New("check-in cooldown has not elapsed")

	// Purchase errors
	ErrInvalidTurnCount = errors.New("turn count must be positive")
	ErrWrongPayment     = errors.New("payment must exactly match turn price")

	// Play errors
	ErrNoTurnsRemaining = errors.New("no turns remaining")
	ErrScoreKeyMismatch = errors.New("score public key does not match account")

	// Admin errors
	ErrNotOwner     = errors.New("caller is not the owner")
	ErrEmptyBalance = errors.New("balance is zero")
)
