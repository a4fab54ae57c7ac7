package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/plinkolabs/plinko/internal/dependencies/mocks"
	"github.com/plinkolabs/plinko/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.clock, s.random, DefaultConfig())
}

func (s *ServiceSuite) TestConnectChecksumsAddress() {
	s.random.QueueString("tok1")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.Equal(model.Address("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), session.Address)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestConnectMintsTokenFromInjectedRandom() {
	s.random.QueueString("a1b2c3")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.Equal("sess_a1b2c3", session.Token)
}

func (s *ServiceSuite) TestConnectRejectsInvalidAddress() {
	_, err := s.service.Connect("not-an-address")
	s.ErrorIs(err, model.ErrInvalidAddress)
}

func (s *ServiceSuite) TestValidateSessionRoundTrip() {
	s.random.QueueString("tok1")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Address, validated.Address)
}

func (s *ServiceSuite) TestValidateSessionRejectsUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionRejectsExpired() {
	s.random.QueueString("tok1")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestDisconnectInvalidatesSession() {
	s.random.QueueString("tok1")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.service.Disconnect(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	s.random.QueueString("tok1", "tok2")
	session, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	fresh, err := s.service.Connect("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestRunCleanerReclaimsExpiredSessions() {
	s.random.QueueString("tok1")
	_, err := s.service.Connect("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.service.RunCleaner(ctx, time.Millisecond)

	s.Require().Eventually(func() bool {
		s.service.mu.RLock()
		defer s.service.mu.RUnlock()
		return len(s.service.sessions) == 0
	}, time.Second, 5*time.Millisecond)
}
