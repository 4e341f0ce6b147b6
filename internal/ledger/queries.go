package ledger

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/models"
)

// GroupSummary is a board listing row.
type GroupSummary struct {
	Index       int
	ID          id.ID
	Name        string
	Admin       models.Address
	Finished    bool
	PersonCount int
	CaseCount   int
}

// Groups lists all groups in board order.
func (b *Board) Groups() []GroupSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]GroupSummary, len(b.groups))
	for i, g := range b.groups {
		out[i] = GroupSummary{
			Index:       i,
			ID:          g.ID,
			Name:        g.Name,
			Admin:       g.Admin,
			Finished:    g.Finished,
			PersonCount: len(g.Persons),
			CaseCount:   len(g.Cases),
		}
	}
	return out
}

// Group returns a deep copy of the addressed group and its current index.
func (b *Board) Group(at At) (int, *models.Group, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, g, err := b.group(at)
	if err != nil {
		return 0, nil, err
	}
	return i, g.Clone(), nil
}

// Balances summarizes every member of the addressed group.
func (b *Board) Balances(at At) ([]calculator.MemberBalance, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, g, err := b.group(at)
	if err != nil {
		return nil, err
	}
	return calculator.Summarize(g), nil
}
