package schema

import (
	"time"
)

// Purchase represents the purchases table - one row per successful purchase.
// The unique (asset_id, buyer_address) index is the at-most-once guard for
// repeat purchases; rows are never removed.
type Purchase struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the purchased asset
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex:idx_purchases_asset_buyer,priority:1"`
	// BuyerAddress is the purchasing company account
	BuyerAddress string `gorm:"column:buyer_address;not null;type:text;uniqueIndex:idx_purchases_asset_buyer,priority:2;index:idx_purchases_buyer"`
	// PriceCredited is the listed price at purchase time, the exact amount
	// credited to the seller balance
	PriceCredited string `gorm:"column:price_credited;not null;type:numeric(78,0)"`
	// PaymentAmount is the full payment attached by the buyer. Any excess
	// over the listed price is retained as protocol surplus, not credited.
	PaymentAmount string `gorm:"column:payment_amount;not null;type:numeric(78,0)"`
	// CreatedAt is the purchase timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset   `gorm:"foreignKey:AssetID"`
	Buyer Account `gorm:"foreignKey:BuyerAddress;references:Address"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
