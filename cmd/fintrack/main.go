package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/assistant"
	aiopenai "fintrack/internal/assistant/openai"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/ledger"
	"fintrack/internal/ledger/filekv"
	"fintrack/internal/ledger/memkv"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "fintrack"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Select the ledger persistence backend
	var (
		kv      ledger.KV
		cleanup func() error
	)
	switch cfg.LedgerBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		kv = repo
		cleanup = repo.Close
	case "file":
		fkv, err := filekv.New(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to initialize file backend", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		kv = fkv
	default:
		kv = memkv.New()
	}
	if cleanup != nil {
		defer cleanup()
	}
	logger.Info("Initialized ledger backend", "backend", cfg.LedgerBackend)

	store := ledger.New(kv, ledger.WithKey(cfg.LedgerKey))

	// Optional AMQP change-event publisher, fed by a store subscription
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
		} else {
			defer amqpClient.Close()
			store.Subscribe(func(ev ledger.Event) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := amqpClient.PublishLedgerChange(ctx, string(ev.Op), ev.ID); err != nil {
					logger.Error("Failed to publish change event", "op", ev.Op, "id", ev.ID, "error", err)
				}
			})
			logger.Info("Publishing ledger change events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	// Optional assistant gateway
	var gateway assistant.Gateway
	if cfg.AssistantAPIKey != "" {
		gw, err := aiopenai.New(cfg.AssistantAPIKey, cfg.AssistantBaseURL, cfg.AssistantModel)
		if err != nil {
			logger.Error("Failed to initialize assistant gateway", "error", err)
			os.Exit(1)
		}
		gateway = gw
		logger.Info("Assistant gateway configured", "model", cfg.AssistantModel)
	} else {
		logger.Info("Assistant gateway disabled - no ASSISTANT_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, gateway)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // chat calls wait on the gateway
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
