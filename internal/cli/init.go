// Package cli provides the initialization shared by cmd/extraque,
// cmd/extraque-worker, and cmd/recurring-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"extraque/internal/config"
	"extraque/internal/log"
	"extraque/internal/store"
	"extraque/internal/store/memory"
	"extraque/internal/store/sqlite"
)

// SetupLogger initializes structured logging and installs it as the process
// default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend opens the record store named by the configuration. The memory
// backend starts seeded so a demo install has data to show. Exits the
// process on failure.
func InitBackend(logger *log.Logger, cfg *config.Config) store.Backend {
	switch cfg.DataBackend {
	case config.BackendMemory:
		s := memory.New(nil)
		s.Seed()
		logger.Info("Using in-memory backend with seed data")
		return s
	default:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath, nil)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository",
				log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		return repo
	}
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}

		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
