// Package clock abstracts the time source so cooldown windows and
// session expiry can be driven by a mock in tests.
package clock

import "time"

// Clock is the time source the ledger and wallet services read from.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// New returns the system clock.
func New() *RealClock {
	return &RealClock{}
}

// Now reports the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}
