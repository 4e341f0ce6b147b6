package models

import "github.com/mmynk/splitledger/internal/id"

// Case is one recorded expense event.
type Case struct {
	// ID is the stable identifier of the case (prefix "case").
	ID id.ID

	// Amount is the expense in indivisible minimal currency units.
	Amount int64

	// Name describes the expense. Copied onto every debt it produces.
	Name string

	// Owner is the identity who fronted the expense.
	Owner Address

	// Contributors are identities that did not receive a debt for this case.
	// Holds only the owner, and only when the owner is a group member.
	Contributors []Address
}

// Clone returns a copy of c with its own Contributors slice.
func (c Case) Clone() Case {
	c.Contributors = append([]Address(nil), c.Contributors...)
	return c
}
