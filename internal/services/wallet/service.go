// Package wallet provides session identity for the API. A client
// "connects" an address and receives a bearer token that later requests
// present; middleware resolves the token back to the caller address.
//
// This stands in for the wallet signatures of the original deployment
// target and is NOT a security boundary: the authoritative checks are
// the ledger's own preconditions (turns remaining, cooldown elapsed,
// exact payment, owner identity).
package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/plinkolabs/plinko/internal/dependencies/clock"
	"github.com/plinkolabs/plinko/internal/dependencies/random"
	"github.com/plinkolabs/plinko/internal/model"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

const (
	tokenLength   = 22
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Session represents a connected wallet
type Session struct {
	Token     string
	Address   model.Address
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the wallet service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default wallet configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles wallet sessions
type Service struct {
	clock  clock.Clock
	random random.Random

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a new wallet service
func New(clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		clock:           clock,
		random:          random,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Connect validates the address and creates a session for it. The address
// is returned in checksummed form so the same account always maps to the
// same ledger record.
func (s *Service) Connect(rawAddress string) (*Session, error) {
	addr, err := model.ParseAddress(rawAddress)
	if err != nil {
		return nil, err
	}

	token := "sess_" + s.random.String(tokenLength, tokenAlphabet)
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Address:   addr,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Disconnect removes a session
func (s *Service) Disconnect(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// RunCleaner removes expired sessions on the given interval until ctx is
// cancelled. Expired sessions are also dropped lazily on validation; the
// cleaner reclaims the ones no request ever presents again.
func (s *Service) RunCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.CleanExpiredSessions()
		case <-ctx.Done():
			return
		}
	}
}
