package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plinkolabs/plinko/internal/confidential"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/wallet"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidAddress    = "INVALID_ADDRESS"
	CodeZeroAddress       = "ZERO_ADDRESS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeCooldownActive    = "COOLDOWN_ACTIVE"
	CodeNoTurnsRemaining  = "NO_TURNS_REMAINING"
	CodeInvalidTurnCount  = "INVALID_TURN_COUNT"
	CodeWrongPayment      = "WRONG_PAYMENT"
	CodeNotOwner          = "NOT_OWNER"
	CodeEmptyBalance      = "EMPTY_BALANCE"
	CodeScoreKeyMismatch  = "SCORE_KEY_MISMATCH"
	CodeInvalidProof      = "INVALID_PROOF"
	CodeInvalidCiphertext = "INVALID_CIPHERTEXT"
	CodeInvalidPublicKey  = "INVALID_PUBLIC_KEY"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map ledger errors
	switch {
	case errors.Is(err, model.ErrInvalidAddress):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAddress, "Invalid account address"}}
	case errors.Is(err, model.ErrZeroAddress):
		return &httpError{http.StatusBadRequest, APIError{CodeZeroAddress, "Zero address is not a valid target"}}
	case errors.Is(err, model.ErrCooldownActive):
		return &httpError{http.StatusConflict, APIError{CodeCooldownActive, "Check-in cooldown has not elapsed"}}
	case errors.Is(err, model.ErrInvalidTurnCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTurnCount, "Turn count must be positive"}}
	case errors.Is(err, model.ErrWrongPayment):
		return &httpError{http.StatusPaymentRequired, APIError{CodeWrongPayment, "Payment must exactly match the turn price"}}
	case errors.Is(err, model.ErrNoTurnsRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoTurnsRemaining, "No turns remaining"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the owner can perform this action"}}
	case errors.Is(err, model.ErrEmptyBalance):
		return &httpError{http.StatusConflict, APIError{CodeEmptyBalance, "Balance is zero"}}
	case errors.Is(err, model.ErrScoreKeyMismatch):
		return &httpError{http.StatusConflict, APIError{CodeScoreKeyMismatch, "Score public key does not match account"}}

	// Map confidential layer errors
	case errors.Is(err, confidential.ErrInvalidProof):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidProof, "Score proof verification failed"}}
	case errors.Is(err, confidential.ErrInvalidCiphertext):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCiphertext, "Malformed score ciphertext"}}
	case errors.Is(err, confidential.ErrInvalidPublicKey):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPublicKey, "Malformed score public key"}}

	// Map wallet errors
	case errors.Is(err, wallet.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewRateLimitedError creates a throttle rejection
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests, slow down"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
