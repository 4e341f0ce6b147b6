package ledger

import "errors"

// Error kinds. Every failed operation wraps exactly one of these and leaves
// the board unchanged.
var (
	// ErrInvalidInput covers empty names, non-positive amounts, already paid
	// debts and splits over a group with no members.
	ErrInvalidInput = errors.New("ledger: invalid input")

	// ErrInvalidIndex covers any out-of-range position or unknown ID.
	ErrInvalidIndex = errors.New("ledger: invalid index")

	// ErrUnauthorized means the caller is not the group's current admin.
	ErrUnauthorized = errors.New("ledger: unauthorized")

	// ErrInsufficientFunds means the payment is below the debt amount.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrPayoutFailed means the external payout collaborator rejected a
	// withdrawal. The balance is left untouched.
	ErrPayoutFailed = errors.New("ledger: payout failed")
)
