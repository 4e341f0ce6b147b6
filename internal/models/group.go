package models

import "github.com/mmynk/splitledger/internal/id"

// Group is an admin-owned collection of persons and cases that share one set
// of expenses.
type Group struct {
	// ID is the stable identifier of the group (prefix "grp").
	ID id.ID

	// Name is the display name. Never empty.
	Name string

	// Finished marks the group as done. Informational only: no operation
	// consults it.
	Finished bool

	// Admin is the single identity allowed to mutate the group.
	Admin Address

	// Cases holds the expenses in insertion order.
	Cases []Case

	// Persons holds the members in insertion order.
	Persons []Person
}

// Clone returns a deep copy of g, safe to hand out while the original keeps
// changing.
func (g *Group) Clone() *Group {
	out := *g
	out.Cases = make([]Case, len(g.Cases))
	for i := range g.Cases {
		out.Cases[i] = g.Cases[i].Clone()
	}
	out.Persons = make([]Person, len(g.Persons))
	for i := range g.Persons {
		out.Persons[i] = g.Persons[i].Clone()
	}
	return &out
}
