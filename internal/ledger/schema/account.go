package schema

import (
	"time"

	"github.com/datafair/df-marketplace/internal/domain"
)

// Account represents the accounts table. A row is created implicitly on first
// registration and never deleted; the role column is written exactly once.
type Account struct {
	// Address is the normalized caller address, the primary key.
	Address string `gorm:"column:address;primaryKey;type:text"`
	// Role is the registered role (user or company). Immutable once set.
	Role domain.Role `gorm:"column:role;not null;type:text"`
	// Balance holds accrued, unwithdrawn proceeds in native-currency base
	// units (stored as a decimal string to support up to 78 digits).
	Balance string `gorm:"column:balance;not null;default:0;type:numeric(78,0)"`
	// CreatedAt is the registration timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last balance change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
