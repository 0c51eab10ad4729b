package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysa-labs/lysa/internal/advisor"
	"github.com/lysa-labs/lysa/internal/api"
	"github.com/lysa-labs/lysa/internal/completion"
	"github.com/lysa-labs/lysa/internal/config"
	"github.com/lysa-labs/lysa/internal/logging"
	"github.com/lysa-labs/lysa/internal/metrics"
	"github.com/lysa-labs/lysa/internal/server"
	"log/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting lysa wealth advisor")

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Without an API key the service still runs, backed by the canned mock
	// completer, so local development does not require OpenRouter credentials.
	var completer completion.Completer
	if cfg.OpenRouter.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY not set, using mock completion service")
		completer = completion.NewMockCompleter()
	} else {
		completer = completion.NewClient(completion.Config{
			APIKey:       cfg.OpenRouter.APIKey,
			BaseURL:      cfg.OpenRouter.BaseURL,
			Model:        cfg.OpenRouter.Model,
			Temperature:  cfg.OpenRouter.Temperature,
			MaxTokens:    cfg.OpenRouter.MaxTokens,
			MaxAttempts:  cfg.OpenRouter.RetryAttempts,
			RetryMinWait: cfg.OpenRouter.RetryMinWait,
			RetryMaxWait: cfg.OpenRouter.RetryMaxWait,
		}, logger, collector)
		logger.Info("completion service configured",
			"base_url", cfg.OpenRouter.BaseURL,
			"model", cfg.OpenRouter.Model)
	}

	adv := advisor.New(completer, cfg.OpenRouter.Model, logger)

	handler := api.NewHandler(adv, completer, logger)
	router := api.NewRouter(handler, collector.Handler(), logger)

	srv := server.New(cfg.Server, logger, collector.InstrumentHandler(router))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("lysa started", "port", cfg.Server.Port)

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
