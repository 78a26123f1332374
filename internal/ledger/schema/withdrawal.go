package schema

import (
	"time"
)

// Withdrawal represents the withdrawals table - a receipt for every
// successful balance payout through the external payment channel.
type Withdrawal struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Reference is a UUID identifying this payout
	Reference string `gorm:"column:reference;not null;uniqueIndex;type:text"`
	// AccountAddress is the account whose balance was drained
	AccountAddress string `gorm:"column:account_address;not null;type:text;index:idx_withdrawals_account"`
	// Amount is the amount transferred, in native-currency base units
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// TxHash is the payment channel transaction hash
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// CreatedAt is the payout timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Account Account `gorm:"foreignKey:AccountAddress;references:Address"`
}

// TableName specifies the table name for the Withdrawal model
func (Withdrawal) TableName() string {
	return "withdrawals"
}
