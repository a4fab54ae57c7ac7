package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/plinkolabs/plinko/internal/dependencies/clock"
	"github.com/plinkolabs/plinko/internal/dependencies/random"
	"github.com/plinkolabs/plinko/internal/events"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/drop"
	"github.com/plinkolabs/plinko/internal/services/ledger"
	"github.com/plinkolabs/plinko/internal/services/wallet"
	"github.com/plinkolabs/plinko/internal/storage"
	"github.com/plinkolabs/plinko/internal/storage/memory"
	redisstorage "github.com/plinkolabs/plinko/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	EventBus      *events.Bus
	DropService   *drop.Service
	LedgerService *ledger.Service
	WalletService *wallet.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// WalletConfig holds configuration for the wallet service (optional)
	// If zero value, defaults to wallet.DefaultConfig()
	WalletConfig wallet.Config
	// OwnerAddress is persisted as the treasury owner on first boot
	// (optional). An owner already in storage takes precedence.
	OwnerAddress string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default wallet config if not provided
	walletCfg := cfg.WalletConfig
	if walletCfg.SessionDuration == 0 {
		walletCfg = wallet.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, walletCfg, logger)

	if cfg.OwnerAddress != "" {
		owner, err := model.ParseAddress(cfg.OwnerAddress)
		if err != nil {
			return nil, err
		}
		if err := app.LedgerService.EnsureOwner(context.Background(), owner); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, walletCfg wallet.Config, logger *slog.Logger) *App {
	// Create services
	bus := events.NewBus(logger)
	dropService := drop.New(rnd)
	ledgerService := ledger.New(store, dropService, clk, bus, logger)
	walletService := wallet.New(clk, rnd, walletCfg)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		EventBus:      bus,
		DropService:   dropService,
		LedgerService: ledgerService,
		WalletService: walletService,
	}
}
