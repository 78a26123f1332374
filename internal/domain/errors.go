package domain

import "errors"

// Ledger error taxonomy. Every mutating operation fails with exactly one of
// these; none is swallowed or retried by the ledger itself.
var (
	// ErrAlreadyRegistered is returned when an account attempts to register a
	// second time, regardless of which role was requested first.
	ErrAlreadyRegistered = errors.New("account already registered")

	// ErrUnauthorized is returned when a role or ownership check fails.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPrice is returned when a listing or price update carries a
	// non-positive price.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidArgument is returned for malformed input such as an empty
	// name, description, or content pointer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInactive is returned when buying an asset that has been deactivated.
	ErrInactive = errors.New("asset inactive")

	// ErrSelfPurchase is returned when an owner attempts to buy its own asset.
	ErrSelfPurchase = errors.New("cannot purchase own asset")

	// ErrAlreadyPurchased is returned when a buyer attempts to purchase the
	// same asset twice.
	ErrAlreadyPurchased = errors.New("asset already purchased")

	// ErrInsufficientPayment is returned when the attached payment is below
	// the listed price.
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrNothingToWithdraw is returned when withdrawing a zero balance.
	ErrNothingToWithdraw = errors.New("nothing to withdraw")

	// ErrExternalTransferFailed is returned when the outbound payment channel
	// rejects or fails a withdrawal transfer. The ledger balance is left
	// untouched in that case.
	ErrExternalTransferFailed = errors.New("external transfer failed")
)
