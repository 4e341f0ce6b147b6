package models

import "github.com/mmynk/splitledger/internal/id"

// Debt is a single obligation of Borrower to Lender.
// Amount is fixed at creation; only Paid ever changes, and only from false to
// true.
type Debt struct {
	ID       id.ID
	Lender   Address
	Borrower Address
	Name     string
	Amount   int64
	Paid     bool
}
