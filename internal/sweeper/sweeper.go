package sweeper

import (
	"context"
)

// Sweeper is a long-running maintenance loop run by cmd/sweeper. The content
// health sweeper is the only implementation today; the interface keeps the
// binary's lifecycle wiring independent of what each loop does.
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the loop until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop requests a graceful shutdown and waits for in-flight work,
	// bounded by the given context
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
