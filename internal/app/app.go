// Package app wires configuration, storage, notifications and the ledger
// into a ready-to-use application. Embedders call LoadEnvFile, SetupLogger
// and Open, then drive the Presenter.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"pocketledger/internal/adapters"
	"pocketledger/internal/amqp"
	"pocketledger/internal/backend"
	"pocketledger/internal/cache"
	"pocketledger/internal/config"
	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	applog "pocketledger/internal/log"
)

// App holds the wired ledger and its presentation contract.
type App struct {
	Ledger    *ledger.Store
	Presenter *adapters.Presenter

	backend   *backend.BackendResult
	publisher *amqp.Client
	logger    *slog.Logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger. Unknown levels fall back to info.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	lvl, err := applog.ParseLevel(level)
	cfg.Level = lvl
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	if err != nil {
		logger.Warn("Falling back to info level", applog.FieldError, err)
	}
	return logger
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Open builds the storage backend, the optional AMQP publisher and totals
// cache, and loads the ledger. An unreachable broker only disables change
// events.
func Open(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	startup := logger.WithFields(applog.NewFields().WithOperation(applog.OpStartup))

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Slog()).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", backendCfg.Type, err)
	}

	a := &App{backend: result, logger: logger.Slog()}

	opts := []ledger.Option{
		ledger.WithKey(cfg.StorageKey),
		ledger.WithLocation(loc),
		ledger.WithLogger(logger.WithComponent(applog.ComponentLedger).Slog()),
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPQueue)
		if err != nil {
			startup.Warn("AMQP unavailable, change events disabled", applog.FieldError, err)
		} else {
			a.publisher = client
			opts = append(opts, ledger.WithNotifier(client))
			startup.Info("AMQP change events enabled", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
		}
	}

	if cfg.TotalsCacheSize > 0 {
		opts = append(opts, ledger.WithTotalsCache(cache.NewLRUCache[string, core.Totals](cfg.TotalsCacheSize, cfg.TotalsCacheTTL)))
	}

	a.Ledger = ledger.New(ctx, result.Slot, opts...)
	a.Presenter = adapters.NewPresenter(a.Ledger,
		adapters.WithLogger(logger.WithComponent(applog.ComponentPresenter).Slog()))

	startup.Info("Ledger ready",
		applog.FieldBackend, string(backendCfg.Type),
		applog.FieldStorageKey, a.Ledger.Key(),
		applog.FieldRecordCount, a.Ledger.Len(),
		"timezone", loc.String())

	return a, nil
}

// Close releases the publisher and the storage backend.
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close AMQP client: %w", err))
		}
	}
	if err := a.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close backend: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Error("Shutdown incomplete", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		return err
	}
	a.logger.Info("Shutdown complete", applog.FieldOperation, applog.OpShutdown)
	return nil
}

// MustOpen loads the environment, configures logging and opens the app. It
// exits the process on failure.
func MustOpen(ctx context.Context) *App {
	LoadEnvFile()
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	a, err := Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", applog.FieldError, err)
		os.Exit(1)
	}
	return a
}
