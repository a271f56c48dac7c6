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

	"github.com/farooq9092/Sajid-medical-store/internal/backend"
	"github.com/farooq9092/Sajid-medical-store/internal/config"
	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/events"
	apphttp "github.com/farooq9092/Sajid-medical-store/internal/http"
	"github.com/farooq9092/Sajid-medical-store/internal/inventory"
	"github.com/farooq9092/Sajid-medical-store/internal/ledger"
	applog "github.com/farooq9092/Sajid-medical-store/internal/log"
	"github.com/farooq9092/Sajid-medical-store/internal/stock"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting medstore server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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

	// AMQP is optional: without it mutations still persist, only the
	// spreadsheet mirror stops being notified.
	var ev *events.Client
	if cfg.AMQPURL != "" {
		ev, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	book := ledger.Open(ctx, res.Store, cfg.LedgerKey, ev)
	tracker := stock.Open(ctx, res.Store, cfg.StockKey, ev)
	catalog := inventory.NewSeeded(core.Today())

	srv := apphttp.NewServer(":"+cfg.Port, book, tracker, catalog)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening", "port", cfg.Port, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
