package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plinkolabs/plinko/internal/api/handler"
	"github.com/plinkolabs/plinko/internal/api/middleware"
	"github.com/plinkolabs/plinko/internal/events"
	"github.com/plinkolabs/plinko/internal/services/ledger"
	"github.com/plinkolabs/plinko/internal/services/wallet"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	WalletService *wallet.Service
	LedgerService *ledger.Service
	EventBus      *events.Bus

	// ThrottlePerMinute caps requests per session (advisory, not a
	// security boundary). Zero disables the throttle.
	ThrottlePerMinute int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	walletHandler := handler.NewWalletHandler(cfg.WalletService)
	ledgerHandler := handler.NewLedgerHandler(cfg.LedgerService)
	adminHandler := handler.NewAdminHandler(cfg.LedgerService)
	eventsHandler := handler.NewEventsHandler(cfg.EventBus)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.WalletService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	if cfg.ThrottlePerMinute > 0 {
		api.Use(middleware.Throttle(cfg.ThrottlePerMinute))
	}

	// Wallet routes
	api.HandleFunc("/wallet/connect", walletHandler.Connect).Methods(http.MethodPost)

	walletProtected := api.PathPrefix("/wallet").Subrouter()
	walletProtected.Use(authMiddleware)
	walletProtected.HandleFunc("/disconnect", walletHandler.Disconnect).Methods(http.MethodPost)

	// Mutating ledger routes (all require a connected wallet)
	mutations := api.NewRoute().Subrouter()
	mutations.Use(authMiddleware)
	mutations.HandleFunc("/checkin", ledgerHandler.CheckIn).Methods(http.MethodPost)
	mutations.HandleFunc("/turns/purchase", ledgerHandler.BuyTurns).Methods(http.MethodPost)
	mutations.HandleFunc("/plays", ledgerHandler.Play).Methods(http.MethodPost)
	mutations.HandleFunc("/plays/confidential", ledgerHandler.PlayWithScore).Methods(http.MethodPost)

	// Admin routes (owner check happens in the ledger)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.HandleFunc("/withdraw", adminHandler.Withdraw).Methods(http.MethodPost)
	admin.HandleFunc("/transfer-ownership", adminHandler.TransferOwnership).Methods(http.MethodPost)
	admin.HandleFunc("/owner", adminHandler.Owner).Methods(http.MethodGet)

	// Read-only queries (no auth: ledger state is public)
	api.HandleFunc("/players/{address}", ledgerHandler.PlayerInfo).Methods(http.MethodGet)
	api.HandleFunc("/players/{address}/score", ledgerHandler.Score).Methods(http.MethodGet)
	api.HandleFunc("/players/{address}/can-checkin", ledgerHandler.CanCheckIn).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", ledgerHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats/players", ledgerHandler.TotalPlayers).Methods(http.MethodGet)
	api.HandleFunc("/balance", ledgerHandler.Balance).Methods(http.MethodGet)

	// Event stream
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
