// Package ledger implements the shared-expense ledger state machine.
//
// A Board holds groups; groups hold persons and cases; persons hold the
// debts they owe. Every exported operation takes the caller's identity
// explicitly, validates everything before touching state, applies its
// mutation, and emits its events. A failed operation changes nothing.
//
// Operations are serialized by a single writer lock on the Board.
package ledger

import (
	"fmt"
	"sync"

	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/models"
)

// At locates an element of an ordered collection, either by position or by
// stable ID. Positions shift when earlier elements are removed; IDs do not.
type At struct {
	index int
	id    id.ID
}

// Index addresses the element currently at position i.
func Index(i int) At {
	return At{index: i}
}

// ByID addresses the element carrying the given stable ID.
func ByID(x id.ID) At {
	return At{id: x}
}

func (a At) String() string {
	if !a.id.IsNil() {
		return a.id.String()
	}
	return fmt.Sprintf("#%d", a.index)
}

// Ref reports where a newly created element landed.
type Ref struct {
	Index int
	ID    id.ID
}

// Board is the top-level registry of groups.
type Board struct {
	mu       sync.RWMutex
	groups   []*models.Group
	notifier Notifier
	payout   Payout
}

// Option configures a Board.
type Option func(*Board)

// WithNotifier sets the event sink. Defaults to discarding events.
func WithNotifier(n Notifier) Option {
	return func(b *Board) { b.notifier = n }
}

// WithPayout sets the withdrawal collaborator. Defaults to a no-op.
func WithPayout(p Payout) Option {
	return func(b *Board) { b.payout = p }
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		notifier: discardNotifier,
		payout:   discardPayout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// group resolves at to a group. Caller must hold b.mu.
func (b *Board) group(at At) (int, *models.Group, error) {
	if !at.id.IsNil() {
		for i, g := range b.groups {
			if g.ID.String() == at.id.String() {
				return i, g, nil
			}
		}
		return 0, nil, fmt.Errorf("%w: unknown group %s", ErrInvalidIndex, at.id)
	}
	if at.index < 0 || at.index >= len(b.groups) {
		return 0, nil, fmt.Errorf("%w: group index %d out of range [0,%d)", ErrInvalidIndex, at.index, len(b.groups))
	}
	return at.index, b.groups[at.index], nil
}

// requireAdmin returns ErrUnauthorized unless caller administers g.
func requireAdmin(g *models.Group, caller models.Address) error {
	if caller != g.Admin {
		return fmt.Errorf("%w: %s is not the admin of group %s", ErrUnauthorized, caller, g.ID)
	}
	return nil
}

// personIndex resolves at to a position in g.Persons.
func personIndex(g *models.Group, at At) (int, error) {
	if !at.id.IsNil() {
		for i := range g.Persons {
			if g.Persons[i].ID.String() == at.id.String() {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: unknown person %s", ErrInvalidIndex, at.id)
	}
	if at.index < 0 || at.index >= len(g.Persons) {
		return 0, fmt.Errorf("%w: person index %d out of range [0,%d)", ErrInvalidIndex, at.index, len(g.Persons))
	}
	return at.index, nil
}

// debtIndex resolves at to a position in p.Debts.
func debtIndex(p *models.Person, at At) (int, error) {
	if !at.id.IsNil() {
		for i := range p.Debts {
			if p.Debts[i].ID.String() == at.id.String() {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: unknown debt %s", ErrInvalidIndex, at.id)
	}
	if at.index < 0 || at.index >= len(p.Debts) {
		return 0, fmt.Errorf("%w: debt index %d out of range [0,%d)", ErrInvalidIndex, at.index, len(p.Debts))
	}
	return at.index, nil
}

// findPerson returns the first person in g whose address is addr, or nil.
func findPerson(g *models.Group, addr models.Address) *models.Person {
	for i := range g.Persons {
		if g.Persons[i].Address == addr {
			return &g.Persons[i]
		}
	}
	return nil
}
