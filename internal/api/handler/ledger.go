package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plinkolabs/plinko/internal/api/apierr"
	"github.com/plinkolabs/plinko/internal/api/middleware"
	"github.com/plinkolabs/plinko/internal/api/request"
	"github.com/plinkolabs/plinko/internal/api/response"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/ledger"
)

// LedgerHandler handles ledger mutation and query endpoints
type LedgerHandler struct {
	ledgerService *ledger.Service
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// CheckIn handles POST /api/v1/checkin
func (h *LedgerHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	info, err := h.ledgerService.CheckIn(r.Context(), caller)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerInfoFromModel(info))
}

// BuyTurns handles POST /api/v1/turns/purchase
func (h *LedgerHandler) BuyTurns(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.BuyTurnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	info, err := h.ledgerService.BuyTurns(r.Context(), caller, req.Count, model.Amount(req.PaymentNano))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerInfoFromModel(info))
}

// Play handles POST /api/v1/plays
func (h *LedgerHandler) Play(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	result, err := h.ledgerService.Play(r.Context(), caller)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayFromResult(result))
}

// PlayWithScore handles POST /api/v1/plays/confidential
func (h *LedgerHandler) PlayWithScore(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.PlayWithScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.PublicKey) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("public_key is required"))
		return
	}
	if len(req.ScoreC1) == 0 || len(req.ScoreC2) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("score ciphertext is required"))
		return
	}
	if len(req.Proof) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("proof is required"))
		return
	}

	score := model.ScoreCiphertext{C1: req.ScoreC1, C2: req.ScoreC2}
	result, err := h.ledgerService.PlayWithScore(r.Context(), caller, req.PublicKey, score, req.Proof)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScorePlayFromResult(result))
}

// PlayerInfo handles GET /api/v1/players/{address}
func (h *LedgerHandler) PlayerInfo(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	info, err := h.ledgerService.PlayerInfo(r.Context(), addr)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerInfoFromModel(info))
}

// Score handles GET /api/v1/players/{address}/score
func (h *LedgerHandler) Score(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	score, err := h.ledgerService.Score(r.Context(), addr)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreFromModel(addr, score))
}

// CanCheckIn handles GET /api/v1/players/{address}/can-checkin
func (h *LedgerHandler) CanCheckIn(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	ok, err := h.ledgerService.CanCheckIn(r.Context(), addr)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CanCheckIn{
		Address:    string(addr),
		CanCheckIn: ok,
	})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *LedgerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerService.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// TotalPlayers handles GET /api/v1/stats/players
func (h *LedgerHandler) TotalPlayers(w http.ResponseWriter, r *http.Request) {
	total, err := h.ledgerService.TotalPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TotalPlayers{TotalPlayers: total})
}

// Balance handles GET /api/v1/balance
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgerService.Balance(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BalanceFromModel(balance))
}

// pathAddress parses and checksums the {address} path variable
func pathAddress(r *http.Request) (model.Address, error) {
	raw := mux.Vars(r)["address"]
	addr, err := model.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return addr, nil
}
