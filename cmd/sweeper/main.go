package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/datafair/df-marketplace/internal/adapter"
	"github.com/datafair/df-marketplace/internal/config"
	"github.com/datafair/df-marketplace/internal/ledger"
	"github.com/datafair/df-marketplace/internal/logger"
	"github.com/datafair/df-marketplace/internal/sweeper"
	"github.com/datafair/df-marketplace/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Content Health Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := ledger.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// The sweeper only reads the catalog and writes probe results; no payment
	// channel is wired in.
	marketLedger := ledger.NewPGLedger(db, nil)

	// Initialize content resolver
	httpClient := adapter.NewHTTPClient(cfg.ContentHealthSweeper.URI.HTTPTimeout)
	resolver := uri.NewResolver(httpClient, &uri.Config{
		IPFSGateways: cfg.ContentHealthSweeper.URI.IPFSGateways,
	})

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize content health sweeper
	sweeperConfig := &sweeper.ContentHealthSweeperConfig{
		BatchSize:      cfg.ContentHealthSweeper.BatchSize,
		WorkerPoolSize: cfg.ContentHealthSweeper.Worker.WorkerPoolSize,
		RecheckAfter:   cfg.ContentHealthSweeper.RecheckAfter,
	}
	healthSweeper := sweeper.NewContentHealthSweeper(sweeperConfig, marketLedger, resolver, clock)

	logger.InfoCtx(ctx, "Initialized content health sweeper",
		zap.Int("batch_size", cfg.ContentHealthSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.ContentHealthSweeper.Worker.WorkerPoolSize),
		zap.Duration("recheck_after", cfg.ContentHealthSweeper.RecheckAfter),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := healthSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := healthSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
