package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is the opaque caller identity: a hex-encoded account address
// supplied by the authenticated transport.
type Address string

// Valid reports whether the address is a well-formed hex account address.
func (a Address) Valid() bool {
	return common.IsHexAddress(string(a))
}

// Normalized returns the canonical lowercase form used as the ledger key.
func (a Address) Normalized() Address {
	return Address(strings.ToLower(common.HexToAddress(string(a)).Hex()))
}

func (a Address) String() string {
	return string(a)
}

// Role is the registration state of an account. It is assigned at most once
// and never changes afterward.
type Role string

const (
	RoleUnregistered Role = "unregistered"
	RoleUser         Role = "user"
	RoleCompany      Role = "company"
)

// Valid reports whether the role is one a caller may register as.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleCompany
}

// Category is the closed set of data asset categories.
type Category string

const (
	CategoryFinance     Category = "finance"
	CategoryHealthcare  Category = "healthcare"
	CategoryTechnology  Category = "technology"
	CategorySocial      Category = "social"
	CategoryEnvironment Category = "environment"
	CategoryOther       Category = "other"
)

// Categories lists every valid asset category.
var Categories = []Category{
	CategoryFinance,
	CategoryHealthcare,
	CategoryTechnology,
	CategorySocial,
	CategoryEnvironment,
	CategoryOther,
}

// Valid reports whether the category is part of the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AssetID identifies a listed asset. IDs are sequential, assigned at listing
// time, and never reused.
type AssetID uint64

// ParseAmount parses a non-negative native-currency amount in base units.
// Amounts are arbitrary precision; they are stored as numeric(78,0) strings.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %s", s)
	}

	return amount, nil
}

// FormatAmount renders an amount as its canonical decimal string. A nil
// amount formats as zero.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}
