package domain

import "time"

// EventType identifies a market event emitted after a successful mutation.
type EventType string

const (
	EventAssetListed       EventType = "asset.listed"
	EventAssetPriceUpdated EventType = "asset.price_updated"
	EventAssetToggled      EventType = "asset.toggled"
	EventAssetPurchased    EventType = "asset.purchased"
	EventFundsWithdrawn    EventType = "funds.withdrawn"
)

// MarketEvent is the message published to the event stream after a mutating
// ledger operation commits. Publishing is best effort; the ledger state is
// already durable when the event is emitted.
type MarketEvent struct {
	// ID is a ULID assigned at emit time.
	ID string `json:"id"`
	// Type is the event type.
	Type EventType `json:"type"`
	// Actor is the account that performed the operation.
	Actor Address `json:"actor"`
	// AssetID references the affected asset, when applicable.
	AssetID AssetID `json:"asset_id,omitempty"`
	// Amount is the native-currency amount involved, in base units.
	Amount string `json:"amount,omitempty"`
	// TxHash is the payout transaction hash for withdrawal events.
	TxHash string `json:"tx_hash,omitempty"`
	// Timestamp records when the operation committed.
	Timestamp time.Time `json:"timestamp"`
}
