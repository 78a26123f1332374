package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/datafair/df-marketplace/internal/adapter"
	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
	"github.com/datafair/df-marketplace/internal/logger"
	"github.com/datafair/df-marketplace/internal/uri"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between sweep cycles
)

// ContentHealthSweeperConfig holds configuration for the content health sweeper
type ContentHealthSweeperConfig struct {
	BatchSize      int           // Assets to probe per cycle
	WorkerPoolSize int           // Concurrent workers
	RecheckAfter   time.Duration // Only probe assets last checked before this
}

// contentHealthSweeper probes the content pointers of active assets and
// records whether any configured gateway still serves them. Results are
// observational and never change ledger accounting.
type contentHealthSweeper struct {
	config    *ContentHealthSweeperConfig
	ledger    ledger.Ledger
	resolver  uri.Resolver
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewContentHealthSweeper creates a new content health sweeper
func NewContentHealthSweeper(
	config *ContentHealthSweeperConfig,
	l ledger.Ledger,
	resolver uri.Resolver,
	clock adapter.Clock,
) Sweeper {
	return &contentHealthSweeper{
		config:    config,
		ledger:    l,
		resolver:  resolver,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *contentHealthSweeper) Name() string {
	return "content-health-sweeper"
}

// Start begins the sweeper's main loop
func (s *contentHealthSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting content health sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("recheck_after", s.config.RecheckAfter),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Content health sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Content health sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *contentHealthSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *contentHealthSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping content health sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Content health sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Content health sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *contentHealthSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	staleBefore := s.clock.Now().Add(-s.config.RecheckAfter)
	assets, err := s.ledger.GetAssetsForHealthCheck(ctx, staleBefore, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get assets for health check: %w", err)
	}

	if len(assets) == 0 {
		logger.InfoCtx(ctx, "No assets need probing, waiting...")
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found assets to probe", zap.Int("count", len(assets)))

	var healthyCount, brokenCount atomic.Int32

	for _, asset := range assets {
		s.pool.Submit(func() {
			s.probeAsset(ctx, &asset, &healthyCount, &brokenCount)
		})
	}

	// Wait for all probes to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total_probed", len(assets)),
		zap.Int32("healthy", healthyCount.Load()),
		zap.Int32("broken", brokenCount.Load()),
	)

	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns false when interrupted.
func (s *contentHealthSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

// probeAsset resolves an asset's content pointer and records the outcome
func (s *contentHealthSweeper) probeAsset(ctx context.Context, asset *schema.Asset, healthyCount, brokenCount *atomic.Int32) {
	logger.DebugCtx(ctx, "Probing asset content", zap.Uint64("asset_id", asset.ID))

	input := ledger.ContentHealthInput{
		AssetID:   domain.AssetID(asset.ID),
		CheckedAt: s.clock.Now(),
	}

	resolved, err := s.resolver.Resolve(ctx, asset.ContentPointer)
	if err != nil {
		brokenCount.Add(1)
		errMsg := err.Error()
		input.Status = schema.HealthStatusBroken
		input.Error = &errMsg

		logger.WarnCtx(ctx, "Asset content is unreachable",
			zap.Uint64("asset_id", asset.ID),
			zap.Error(err),
		)
	} else {
		healthyCount.Add(1)
		input.Status = schema.HealthStatusHealthy
		input.WorkingURL = &resolved.DataURL
	}

	if err := s.ledger.UpsertContentHealth(ctx, input); err != nil {
		logger.ErrorCtx(ctx, err, zap.Uint64("asset_id", asset.ID))
	}
}
