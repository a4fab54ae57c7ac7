package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plinkolabs/plinko/internal/api/apierr"
	"github.com/plinkolabs/plinko/internal/api/middleware"
	"github.com/plinkolabs/plinko/internal/api/request"
	"github.com/plinkolabs/plinko/internal/api/response"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/ledger"
)

// AdminHandler handles owner-only endpoints. Ownership itself is checked
// by the ledger, not here: a non-owner caller gets the ledger's rejection.
type AdminHandler struct {
	ledgerService *ledger.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ledgerService *ledger.Service) *AdminHandler {
	return &AdminHandler{
		ledgerService: ledgerService,
	}
}

// Withdraw handles POST /api/v1/admin/withdraw
func (h *AdminHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	amount, err := h.ledgerService.Withdraw(r.Context(), caller)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Withdrawal{
		AmountNano: uint64(amount),
		Amount:     amount.String(),
	})
}

// TransferOwnership handles POST /api/v1/admin/transfer-ownership
func (h *AdminHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	newOwner, err := model.ParseAddress(req.NewOwner)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.ledgerService.TransferOwnership(r.Context(), caller, newOwner); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Owner{Owner: string(newOwner)})
}

// Owner handles GET /api/v1/admin/owner
func (h *AdminHandler) Owner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ledgerService.Owner(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Owner{Owner: string(owner)})
}
