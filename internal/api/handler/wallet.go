package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plinkolabs/plinko/internal/api/apierr"
	"github.com/plinkolabs/plinko/internal/api/middleware"
	"github.com/plinkolabs/plinko/internal/api/request"
	"github.com/plinkolabs/plinko/internal/api/response"
	"github.com/plinkolabs/plinko/internal/services/wallet"
)

// WalletHandler handles wallet session endpoints
type WalletHandler struct {
	walletService *wallet.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Connect handles POST /api/v1/wallet/connect
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req request.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Address == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("address is required"))
		return
	}

	session, err := h.walletService.Connect(req.Address)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Disconnect handles POST /api/v1/wallet/disconnect
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.walletService.Disconnect(session.Token)
	}
	response.NoContent(w)
}
