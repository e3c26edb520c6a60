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

	"vendite/internal/amqp"
	"vendite/internal/config"
	"vendite/internal/dataset"
	apphttp "vendite/internal/http"
	applog "vendite/internal/log"
	"vendite/internal/source/csvfile"
	gsheets "vendite/internal/source/google"
	"vendite/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if closeSource != nil {
		defer closeSource()
	}
	logger.Info("Initialized data backend", "backend", cfg.DataBackend)

	// Initial load. A schema error here is fatal: the dashboard cannot run
	// without a canonical dataset.
	store := dataset.NewStore(src)
	if err := store.Load(ctx); err != nil {
		logger.Error("Failed to load dataset", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, cfg.CacheSize)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting vendite server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Optional out-of-band reload via AMQP: the importer publishes after
	// replacing the orders table.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, reload is HTTP-only", "error", err)
		} else {
			defer client.Close()
			g.Go(func() error {
				err := client.ConsumeDatasetReload(gctx, func(msg *amqp.DatasetReloadMessage) error {
					if err := store.Load(gctx); err != nil {
						return err
					}
					srv.PurgeSnapshots()
					return nil
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		}
	}

	g.Go(func() error {
		<-gctx.Done()
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

// newSource selects the dataset backend. The returned close function is nil
// when the source holds no resources.
func newSource(ctx context.Context, cfg *config.Config) (dataset.RowSource, func() error, error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "sheets":
		src, err := gsheets.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	default:
		return csvfile.New(cfg.DatasetPath, cfg.Delimiter()), nil, nil
	}
}
