package main

import (
	"context"
	"errors"
	"os"
	"time"

	"extraque/internal/amqp"
	"extraque/internal/cli"
	"extraque/internal/export/google"
	"extraque/internal/log"
	"extraque/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting extraque-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the sync worker")
		os.Exit(1)
	}

	backend := cli.InitBackend(logger, cfg)

	ledger, err := google.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(backend, ledger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := amqpClient.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
			return syncWorker.HandleChange(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Change consumption failed", log.FieldError, err)
		}
		cancel()
	}()

	_, done := cli.GracefulShutdown(logger, 30*time.Second, cancel)

	// Exit on shutdown signal or when the consumer gives up.
	select {
	case <-done:
	case <-ctx.Done():
	}
	logger.Info("Worker stopped gracefully")
}
