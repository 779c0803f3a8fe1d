package main

import (
	"context"
	"time"

	"extraque/internal/amqp"
	"extraque/internal/cli"
	"extraque/internal/core"
	"extraque/internal/log"
	"extraque/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentRecurring)
	logger.Info("Starting recurring-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	backend := cli.InitBackend(logger, cfg)

	// Changes made here publish like any other write so the sync worker
	// picks up materialized transactions too.
	var events services.ChangePublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change events",
				log.FieldError, err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
		}
	}

	// Materialized occurrences inherit their template's owner, so no
	// identity resolver is needed here.
	finance := services.NewFinanceService(backend, events, nil)
	processor := services.NewRecurringProcessor(backend, finance, core.Period(cfg.RecurringFrequency))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Recurring processor configured",
		"interval", cfg.RecurringInterval,
		"frequency", cfg.RecurringFrequency)

	ticker := time.NewTicker(cfg.RecurringInterval)
	defer ticker.Stop()

	if count, err := processor.ProcessDue(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", log.FieldError, err)
	} else {
		logger.Info("Initial processing complete", "transactions_created", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				count, err := processor.ProcessDue(ctx, now)
				if err != nil {
					logger.Error("Periodic processing failed", log.FieldError, err)
					continue
				}
				logger.Info("Periodic processing complete",
					"transactions_created", count,
					"next_check", now.Add(cfg.RecurringInterval).Format("15:04:05"))
			}
		}
	}()

	_, done := cli.GracefulShutdown(logger, 30*time.Second, cancel)
	cli.WaitForShutdown(ctx, done)
	logger.Info("Recurring-worker stopped gracefully")
}
