package payout

import (
	"context"
	"math/big"

	"github.com/datafair/df-marketplace/internal/domain"
)

// PaymentChannel transfers native currency out of the marketplace escrow to
// an account's external address. A transfer either completes and returns a
// transaction hash, or fails without moving funds; the ledger relies on this
// to keep balances and payouts consistent.
//
//go:generate mockgen -source=channel.go -destination=../mocks/payout.go -package=mocks -mock_names=PaymentChannel=MockPaymentChannel
type PaymentChannel interface {
	// Transfer sends amount (in base units) to the given address and returns
	// the hash of the settlement transaction
	Transfer(ctx context.Context, to domain.Address, amount *big.Int) (string, error)

	// Close releases the underlying connection
	Close()
}
