package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/datafair/df-marketplace/internal/domain"
)

// Asset represents the assets table - one row per listed data asset. Asset
// ids are sequential and never reused; rows are never deleted (deactivation
// is the only removal mechanism).
type Asset struct {
	// ID is the sequential asset id assigned at listing time
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OwnerAddress is the listing account. Immutable after creation.
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index:idx_assets_owner"`
	// Name is the display name of the data asset
	Name string `gorm:"column:name;not null;type:text"`
	// Description describes the data asset
	Description string `gorm:"column:description;not null;type:text"`
	// Category is the enumerated asset category
	Category domain.Category `gorm:"column:category;not null;type:text;index:idx_assets_category"`
	// ContentPointer is the opaque reference to the externally stored
	// content. The ledger never interprets its structure.
	ContentPointer string `gorm:"column:content_pointer;not null;type:text"`
	// Price is the listed price in native-currency base units
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// Active indicates whether the asset is currently purchasable
	Active bool `gorm:"column:active;not null;default:true;index:idx_assets_active"`
	// Metadata carries free-form listing metadata supplied by the seller
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is the listing timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last price or availability change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Owner     Account    `gorm:"foreignKey:OwnerAddress;references:Address"`
	Purchases []Purchase `gorm:"foreignKey:AssetID"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
