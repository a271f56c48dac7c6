package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/farooq9092/Sajid-medical-store/internal/backend"
	"github.com/farooq9092/Sajid-medical-store/internal/config"
	"github.com/farooq9092/Sajid-medical-store/internal/events"
	applog "github.com/farooq9092/Sajid-medical-store/internal/log"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular/gsheet"
	"github.com/farooq9092/Sajid-medical-store/internal/worker"
)

const resyncInterval = 15 * time.Minute

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting ledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize table store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", "error", err)
			}
		}()
	}

	mirror, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets mirror", "error", err)
		os.Exit(1)
	}

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewMirrorWorker(res.Store, mirror, map[string][]string{
		cfg.LedgerKey: tabular.LedgerSchema,
		cfg.StockKey:  tabular.StockSchema,
	})

	// Catch up on anything missed while the worker was down.
	logger.Info("Performing startup resync")
	if err := w.SyncAll(ctx); err != nil {
		logger.Error("Startup resync failed", "error", err)
		// Keep running: the event stream and the periodic resync recover.
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeTableChanged(gctx, func(msg *events.TableChangedMessage) error {
			return w.HandleTableChanged(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(resyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := w.SyncAll(gctx); err != nil {
					logger.Error("Periodic resync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
