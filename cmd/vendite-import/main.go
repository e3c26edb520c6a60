package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"vendite/internal/amqp"
	"vendite/internal/config"
	"vendite/internal/dataset"
	applog "vendite/internal/log"
	"vendite/internal/source/csvfile"
	"vendite/internal/storage"
)

// vendite-import loads a CSV export into the sqlite backend and notifies
// running servers over AMQP so they reload without a restart.
func main() {
	_ = godotenv.Load()

	logCfg := applog.DefaultConfig()
	logCfg.Component = applog.ComponentImport
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	cfg := config.Load()

	csvPath := flag.String("csv", cfg.DatasetPath, "path to the orders CSV file")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "path to the sqlite database")
	notify := flag.Bool("notify", true, "publish a reload message when AMQP_URL is set")
	flag.Parse()

	ctx := context.Background()

	raw, err := csvfile.New(*csvPath, cfg.Delimiter()).Read(ctx)
	if err != nil {
		logger.Error("Failed to read CSV", "error", err, "path", *csvPath)
		os.Exit(1)
	}

	// Reject files the server would refuse to load. Rows are stored as read;
	// the normalizer owns coercion on the way out.
	if _, err := dataset.Normalize(raw); err != nil {
		logger.Error("CSV failed schema validation", "error", err, "path", *csvPath)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(*dbPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", *dbPath)
		os.Exit(1)
	}
	defer repo.Close()

	rows, err := repo.ReplaceOrders(ctx, raw)
	if err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Import complete", "rows", rows, "db", *dbPath)

	if *notify && cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, skipping reload notification", "error", err)
			return
		}
		defer client.Close()

		msg := amqp.NewDatasetReloadMessage("sqlite", rows)
		if err := client.PublishDatasetReload(ctx, msg); err != nil {
			logger.Warn("Failed to publish reload notification", "error", err)
		}
	}
}
