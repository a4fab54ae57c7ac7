package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinkolabs/plinko/internal/api"
	"github.com/plinkolabs/plinko/internal/api/request"
	"github.com/plinkolabs/plinko/internal/api/response"
	"github.com/plinkolabs/plinko/internal/confidential"
	"github.com/plinkolabs/plinko/internal/factory"
	"github.com/plinkolabs/plinko/internal/model"
)

const (
	playerAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	ownerAddress  = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
	otherAddress  = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{OwnerAddress: ownerAddress})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		WalletService: app.WalletService,
		LedgerService: app.LedgerService,
		EventBus:      app.EventBus,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// connect establishes a wallet session and returns its token
func (ts *testServer) connect(t *testing.T, address string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/wallet/connect", request.ConnectRequest{Address: address}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionToken)
	return resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestConnectWallet(t *testing.T) {
	ts := newTestServer(t)

	// Lowercase input comes back checksummed
	rr := ts.request(http.MethodPost, "/api/v1/wallet/connect",
		request.ConnectRequest{Address: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, playerAddress, resp.Address)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestConnectWalletRejectsBadChecksum(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/wallet/connect",
		request.ConnectRequest{Address: "0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_ADDRESS")
}

func TestMutationRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/checkin", nil, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCheckIn(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, uint64(model.CheckInGrant), resp.AvailableTurns)

	// Immediate retry is within the cooldown
	rr = ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "COOLDOWN_ACTIVE")
}

func TestBuyTurns(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/turns/purchase",
		request.BuyTurnsRequest{Count: 2, PaymentNano: 2 * uint64(model.TurnPrice)}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.AvailableTurns)
}

func TestBuyTurnsWrongPayment(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/turns/purchase",
		request.BuyTurnsRequest{Count: 2, PaymentNano: uint64(model.TurnPrice)}, token)
	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_PAYMENT")
}

func TestPlay(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/plays", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Play
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, uint64(model.CheckInGrant-1), resp.TurnsRemaining)
	assert.Equal(t, uint64(1), resp.GamesPlayed)
	assert.NotEmpty(t, resp.Path)
}

func TestPlayWithoutTurns(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/plays", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_TURNS_REMAINING")
}

func TestPlayWithScore(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	keys := confidential.NewKeyPair()
	pub, err := confidential.MarshalPublicKey(keys.Public)
	require.NoError(t, err)
	ct, proofData, err := confidential.Encrypt(keys.Public, 250)
	require.NoError(t, err)
	wire, err := ct.Marshal()
	require.NoError(t, err)

	rr = ts.request(http.MethodPost, "/api/v1/plays/confidential", request.PlayWithScoreRequest{
		PublicKey: pub,
		ScoreC1:   wire.C1,
		ScoreC2:   wire.C2,
		Proof:     proofData,
	}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ScorePlay
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.GamesPlayed)

	// The stored accumulator decrypts to the submitted value
	stored, err := confidential.Unmarshal(model.ScoreCiphertext{C1: resp.ScoreC1, C2: resp.ScoreC2})
	require.NoError(t, err)
	plaintext, err := confidential.Decrypt(keys.Private, stored)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), plaintext)
}

func TestPlayWithScoreRejectsBadProof(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	keys := confidential.NewKeyPair()
	pub, err := confidential.MarshalPublicKey(keys.Public)
	require.NoError(t, err)
	ct, _, err := confidential.Encrypt(keys.Public, 250)
	require.NoError(t, err)
	wire, err := ct.Marshal()
	require.NoError(t, err)

	rr = ts.request(http.MethodPost, "/api/v1/plays/confidential", request.PlayWithScoreRequest{
		PublicKey: pub,
		ScoreC1:   wire.C1,
		ScoreC2:   wire.C2,
		Proof:     []byte("not a proof"),
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_PROOF")
}

func TestPlayerQueries(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/plays", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// Player info is public, no session needed
	rr = ts.request(http.MethodGet, "/api/v1/players/"+playerAddress, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var info response.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, playerAddress, info.Address)
	assert.Equal(t, uint64(1), info.GamesPlayed)

	// Eligibility query
	rr = ts.request(http.MethodGet, "/api/v1/players/"+playerAddress+"/can-checkin", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var eligibility response.CanCheckIn
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &eligibility))
	assert.False(t, eligibility.CanCheckIn)

	// A never-seen account is a zero record, not an error
	rr = ts.request(http.MethodGet, "/api/v1/players/"+otherAddress, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, uint64(0), info.GamesPlayed)
}

func TestLeaderboardAndStats(t *testing.T) {
	ts := newTestServer(t)

	playerToken := ts.connect(t, playerAddress)
	otherToken := ts.connect(t, otherAddress)

	for _, token := range []string{playerToken, otherToken} {
		rr := ts.request(http.MethodPost, "/api/v1/checkin", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	// Only one of the two actually plays
	rr := ts.request(http.MethodPost, "/api/v1/plays", nil, otherToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Entries, 2)
	assert.Equal(t, otherAddress, board.Entries[0].Address)
	assert.Equal(t, uint64(1), board.Entries[0].GamesPlayed)

	rr = ts.request(http.MethodGet, "/api/v1/stats/players", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var stats response.TotalPlayers
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalPlayers)
}

func TestAdminWithdraw(t *testing.T) {
	ts := newTestServer(t)

	playerToken := ts.connect(t, playerAddress)
	ownerToken := ts.connect(t, ownerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/turns/purchase",
		request.BuyTurnsRequest{Count: 5, PaymentNano: 5 * uint64(model.TurnPrice)}, playerToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Non-owner is refused
	rr = ts.request(http.MethodPost, "/api/v1/admin/withdraw", nil, playerToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_OWNER")

	// Owner drains the balance
	rr = ts.request(http.MethodPost, "/api/v1/admin/withdraw", nil, ownerToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	var withdrawal response.Withdrawal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &withdrawal))
	assert.Equal(t, 5*uint64(model.TurnPrice), withdrawal.AmountNano)

	// A second withdraw finds nothing
	rr = ts.request(http.MethodPost, "/api/v1/admin/withdraw", nil, ownerToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMPTY_BALANCE")
}

func TestAdminTransferOwnership(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.connect(t, ownerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/admin/transfer-ownership",
		request.TransferOwnershipRequest{NewOwner: otherAddress}, ownerToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/admin/owner", nil, ownerToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	var owner response.Owner
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &owner))
	assert.Equal(t, otherAddress, owner.Owner)
}

func TestBalanceQuery(t *testing.T) {
	ts := newTestServer(t)
	token := ts.connect(t, playerAddress)

	rr := ts.request(http.MethodPost, "/api/v1/turns/purchase",
		request.BuyTurnsRequest{Count: 1, PaymentNano: uint64(model.TurnPrice)}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/balance", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var balance response.Balance
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
	assert.Equal(t, uint64(model.TurnPrice), balance.BalanceNano)
	assert.Equal(t, "0.001", balance.Balance)
}

func TestThrottleRejectsBursts(t *testing.T) {
	ts := newTestServer(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ts.handler = api.NewRouter(api.RouterConfig{
		Logger:            logger,
		WalletService:     ts.app.WalletService,
		LedgerService:     ts.app.LedgerService,
		EventBus:          ts.app.EventBus,
		ThrottlePerMinute: 3,
	})

	var last int
	for i := 0; i < 5; i++ {
		rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
		last = rr.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
