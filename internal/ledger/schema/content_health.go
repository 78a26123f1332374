package schema

import (
	"time"
)

// HealthStatus is the recorded outcome of a content pointer probe.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the resolved content URL is accessible
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusBroken indicates no configured gateway could serve the content
	HealthStatusBroken HealthStatus = "broken"
)

// ContentHealth represents the content_health table - the latest probe result
// for an asset's content pointer, maintained by the sweeper. Observational
// only; it never feeds back into ledger accounting.
type ContentHealth struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the probed asset
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex"`
	// Status is the probe outcome
	Status HealthStatus `gorm:"column:status;not null;type:text"`
	// WorkingURL is the gateway URL that served the content, when healthy
	WorkingURL *string `gorm:"column:working_url;type:text"`
	// Error is the failure detail, when broken
	Error *string `gorm:"column:error;type:text"`
	// LastCheckedAt is the time of the most recent probe
	LastCheckedAt time.Time `gorm:"column:last_checked_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID"`
}

// TableName specifies the table name for the ContentHealth model
func (ContentHealth) TableName() string {
	return "content_health"
}
