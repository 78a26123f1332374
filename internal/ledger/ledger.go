package ledger

import (
	"context"
	"math/big"
	"time"

	"gorm.io/datatypes"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
)

// ListAssetInput carries the fields for listing a new data asset
type ListAssetInput struct {
	Owner          domain.Address
	Name           string
	Description    string
	Category       domain.Category
	ContentPointer string
	Price          *big.Int
	Metadata       datatypes.JSON
}

// BuyAssetInput carries the fields for purchasing a data asset
type BuyAssetInput struct {
	Buyer   domain.Address
	AssetID domain.AssetID
	// Payment is the full amount attached by the buyer. It must cover the
	// listed price; any excess is retained by the marketplace.
	Payment *big.Int
}

// ActiveAssetFilter narrows the active asset catalog query
type ActiveAssetFilter struct {
	Category *domain.Category
	Limit    int
	Offset   uint64
}

// ContentHealthInput carries a probe result for an asset's content pointer
type ContentHealthInput struct {
	AssetID    domain.AssetID
	Status     schema.HealthStatus
	WorkingURL *string
	Error      *string
	CheckedAt  time.Time
}

// Ledger defines the interface for marketplace ledger operations. Every
// mutating operation is atomic: it either fully applies or leaves no trace.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Register assigns a role to an unregistered address. The role is
	// permanent; registering twice returns domain.ErrAlreadyRegistered.
	Register(ctx context.Context, address domain.Address, role domain.Role) (*schema.Account, error)

	// GetAccount retrieves an account by address, nil if never registered
	GetAccount(ctx context.Context, address domain.Address) (*schema.Account, error)

	// GetBalance returns the withdrawable balance for an address
	GetBalance(ctx context.Context, address domain.Address) (*big.Int, error)

	// ListAsset creates a new asset listing owned by a registered user
	ListAsset(ctx context.Context, input ListAssetInput) (*schema.Asset, error)

	// UpdateAssetPrice changes the listed price of an asset. Owner only.
	UpdateAssetPrice(ctx context.Context, caller domain.Address, assetID domain.AssetID, price *big.Int) (*schema.Asset, error)

	// ToggleAssetAvailability flips the active flag of an asset. Owner only.
	ToggleAssetAvailability(ctx context.Context, caller domain.Address, assetID domain.AssetID) (*schema.Asset, error)

	// BuyAsset purchases an active asset on behalf of a registered company.
	// The seller is credited exactly the listed price.
	BuyAsset(ctx context.Context, input BuyAssetInput) (*schema.Purchase, error)

	// Withdraw drains the caller's full balance through the payment channel
	// and returns the receipt. The balance is untouched if the transfer fails.
	Withdraw(ctx context.Context, caller domain.Address) (*schema.Withdrawal, error)

	// GetAsset retrieves an asset by id, nil if it does not exist
	GetAsset(ctx context.Context, assetID domain.AssetID) (*schema.Asset, error)

	// GetActiveAssets retrieves the purchasable catalog with total count
	GetActiveAssets(ctx context.Context, filter ActiveAssetFilter) ([]schema.Asset, uint64, error)

	// GetAssetsOwnedBy retrieves every asset listed by an address
	GetAssetsOwnedBy(ctx context.Context, owner domain.Address) ([]schema.Asset, error)

	// GetAssetsPurchasedBy retrieves every asset an address has purchased
	GetAssetsPurchasedBy(ctx context.Context, buyer domain.Address) ([]schema.Asset, error)

	// GetWithdrawals retrieves the payout receipts for an address
	GetWithdrawals(ctx context.Context, address domain.Address) ([]schema.Withdrawal, error)

	// HasAccess reports whether an address may read an asset's content
	// pointer (the owner or a past purchaser)
	HasAccess(ctx context.Context, address domain.Address, assetID domain.AssetID) (bool, error)

	// GetAssetsForHealthCheck retrieves active assets whose content has not
	// been probed since staleBefore
	GetAssetsForHealthCheck(ctx context.Context, staleBefore time.Time, limit int) ([]schema.Asset, error)

	// UpsertContentHealth records the latest probe result for an asset
	UpsertContentHealth(ctx context.Context, input ContentHealthInput) error

	// GetContentHealth retrieves the latest probe result, nil if never probed
	GetContentHealth(ctx context.Context, assetID domain.AssetID) (*schema.ContentHealth, error)
}
