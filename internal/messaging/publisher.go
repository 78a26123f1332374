package messaging

import (
	"context"

	"github.com/datafair/df-marketplace/internal/domain"
)

// Publisher defines the interface for publishing market events to the
// message broker. Publishing happens after the ledger mutation has
// committed; failures are logged by callers, never surfaced to the ledger
// caller.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a market event
	PublishEvent(ctx context.Context, event *domain.MarketEvent) error
	// Close closes the connection
	Close()
}
