package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	gexport "fintrack/internal/export/google"
	"fintrack/internal/ledger"
	"fintrack/internal/ledger/filekv"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "fintrack-worker"})
	applog.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Export worker requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	// Open the same durable backend the server writes; the worker only
	// ever reads snapshots from it.
	var kv ledger.KV
	switch cfg.LedgerBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		kv = repo
	case "file":
		fkv, err := filekv.New(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to open file backend", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		kv = fkv
	default:
		logger.Error("Export worker needs a durable ledger backend", "backend", cfg.LedgerBackend)
		os.Exit(1)
	}

	store := ledger.New(kv, ledger.WithKey(cfg.LedgerKey))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := gexport.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	exportWorker := worker.NewExportWorker(store, sheetsClient)

	// One export up front so the mirror is fresh even if no change arrives
	if err := exportWorker.Export(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
		// Don't exit - the periodic loop will retry
	}

	// Consume change events when AMQP is configured
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			if err := amqpClient.ConsumeLedgerChanges(ctx, exportWorker.HandleChangeMessage); err != nil && err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
		}()
	} else {
		logger.Info("AMQP disabled - relying on periodic export only")
	}

	go exportWorker.RunPeriodic(ctx, cfg.ExportInterval)

	<-ctx.Done()
	logger.Info("Worker stopped")
}
