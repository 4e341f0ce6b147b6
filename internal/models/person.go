package models

import "github.com/mmynk/splitledger/internal/id"

// Person is a group member's record.
type Person struct {
	// ID is the stable identifier of the person (prefix "prs").
	ID id.ID

	// Address is the caller identity this record represents.
	Address Address

	// Name is the display name of the member.
	Name string

	// Debts are the obligations owed BY this person, in creation order.
	Debts []Debt

	// Balance is escrowed value collected on this person's behalf.
	// It grows by settlement and drops to zero only on withdrawal.
	Balance int64
}

// Clone returns a copy of p with its own Debts slice.
func (p Person) Clone() Person {
	p.Debts = append([]Debt(nil), p.Debts...)
	return p
}
