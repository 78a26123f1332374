package sweeper_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
	"github.com/datafair/df-marketplace/internal/logger"
	"github.com/datafair/df-marketplace/internal/mocks"
	"github.com/datafair/df-marketplace/internal/sweeper"
	"github.com/datafair/df-marketplace/internal/uri"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testSweeperConfig() *sweeper.ContentHealthSweeperConfig {
	return &sweeper.ContentHealthSweeperConfig{
		BatchSize:      10,
		WorkerPoolSize: 2,
		RecheckAfter:   24 * time.Hour,
	}
}

// setupClock wires a clock that reports a fixed time and never fires the
// inter-cycle timer, so the sweeper parks after its first cycle
func setupClock(clock *mocks.MockClock, now time.Time) {
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()
}

func TestContentHealthSweeper_Name(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sweeper.NewContentHealthSweeper(testSweeperConfig(), mocks.NewMockLedger(ctrl), mocks.NewMockResolver(ctrl), mocks.NewMockClock(ctrl))
	assert.Equal(t, "content-health-sweeper", s.Name())
}

func TestContentHealthSweeper_ProbesAssets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedger(ctrl)
	resolver := mocks.NewMockResolver(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	setupClock(clock, now)

	assets := []schema.Asset{
		{ID: 1, ContentPointer: "QmHealthy", Active: true},
		{ID: 2, ContentPointer: "QmBroken", Active: true},
	}
	mockLedger.EXPECT().
		GetAssetsForHealthCheck(gomock.Any(), now.Add(-24*time.Hour), 10).
		Return(assets, nil)

	resolver.EXPECT().
		Resolve(gomock.Any(), "QmHealthy").
		Return(&uri.Resolved{DataURL: "https://ipfs.io/ipfs/QmHealthy"}, nil)
	resolver.EXPECT().
		Resolve(gomock.Any(), "QmBroken").
		Return(nil, fmt.Errorf("no working IPFS gateway found"))

	var wg sync.WaitGroup
	wg.Add(2)
	mockLedger.EXPECT().
		UpsertContentHealth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input ledger.ContentHealthInput) error {
			defer wg.Done()
			switch input.AssetID {
			case domain.AssetID(1):
				assert.Equal(t, schema.HealthStatusHealthy, input.Status)
				require.NotNil(t, input.WorkingURL)
				assert.Equal(t, "https://ipfs.io/ipfs/QmHealthy", *input.WorkingURL)
				assert.Nil(t, input.Error)
			case domain.AssetID(2):
				assert.Equal(t, schema.HealthStatusBroken, input.Status)
				assert.Nil(t, input.WorkingURL)
				require.NotNil(t, input.Error)
				assert.Contains(t, *input.Error, "no working IPFS gateway")
			default:
				t.Errorf("unexpected asset id %d", input.AssetID)
			}
			assert.Equal(t, now, input.CheckedAt)
			return nil
		}).
		Times(2)

	s := sweeper.NewContentHealthSweeper(testSweeperConfig(), mockLedger, resolver, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	// Wait for both probe results to land, then stop the sweeper
	wg.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop in time")
	}
}

func TestContentHealthSweeper_EmptyBatchWaits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedger(ctrl)
	resolver := mocks.NewMockResolver(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	setupClock(clock, now)

	fetched := make(chan struct{})
	mockLedger.EXPECT().
		GetAssetsForHealthCheck(gomock.Any(), gomock.Any(), 10).
		DoAndReturn(func(_ context.Context, _ time.Time, _ int) ([]schema.Asset, error) {
			close(fetched)
			return nil, nil
		})

	s := sweeper.NewContentHealthSweeper(testSweeperConfig(), mockLedger, resolver, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	<-fetched

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop in time")
	}
}

func TestContentHealthSweeper_StopBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sweeper.NewContentHealthSweeper(testSweeperConfig(), mocks.NewMockLedger(ctrl), mocks.NewMockResolver(ctrl), mocks.NewMockClock(ctrl))

	// Stopping a sweeper that never ran is a no-op
	assert.NoError(t, s.Stop(context.Background()))
}
