package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"extraque/internal/amqp"
	"extraque/internal/auth"
	"extraque/internal/cache"
	"extraque/internal/cli"
	"extraque/internal/currency"
	apphttp "extraque/internal/http"
	"extraque/internal/insights"
	"extraque/internal/log"
	"extraque/internal/registry"
	"extraque/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backend := cli.InitBackend(logger, cfg)

	// AMQP is optional; without it writes simply stay local.
	var events services.ChangePublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change events",
				log.FieldError, err)
		} else {
			events = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
		}
	} else {
		logger.Info("AMQP disabled - record changes stay local")
	}

	authService := auth.New(backend)
	finance := services.NewFinanceService(backend, events, authService)
	categories := registry.New(backend, nil)

	if err := authService.SeedDemoUser(context.Background()); err != nil {
		logger.Warn("Failed to seed demo user", log.FieldError, err)
	}

	var advisor insights.Advisor = insights.StaticAdvisor{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := insights.NewGeminiAdvisor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("Failed to initialize Gemini advisor, using static fallback",
				log.FieldError, err)
		} else {
			advisor = gemini
			logger.Info("Gemini advisor initialized")
		}
	}
	insightsService := insights.NewService(advisor, cache.NewLRUCache[string](50, 10*time.Minute))

	defaultCurrency, _ := currency.ByCode(cfg.DefaultCurrency)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:            ":" + cfg.Port,
		Backend:         backend,
		Finance:         finance,
		Categories:      categories,
		Auth:            authService,
		Insights:        insightsService,
		DefaultCurrency: defaultCurrency,
	})

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", log.FieldError, err)
			}
		}
	})

	logger.Info("Starting extraque server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"currency", defaultCurrency.Code)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
