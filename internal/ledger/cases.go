package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/models"
)

// CaseResult describes the outcome of AddCase.
type CaseResult struct {
	Case  Ref
	Share int64   // amount / member count, floored
	Debts []id.ID // one per debtor, in member order
}

// AddCase records an expense fronted by caller and splits it eagerly: every
// member other than caller receives a debt of amount/members (floored), and
// caller, if a member, is listed as a contributor instead. The division
// remainder is not recorded anywhere. An amount that would give every member
// a zero share is rejected.
func (b *Board) AddCase(ctx context.Context, caller models.Address, group At, name string, amount int64) (CaseResult, error) {
	if name == "" {
		return CaseResult{}, fmt.Errorf("%w: case name is empty", ErrInvalidInput)
	}
	if amount <= 0 {
		return CaseResult{}, fmt.Errorf("%w: case amount %d must be positive", ErrInvalidInput, amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return CaseResult{}, err
	}
	if err := requireAdmin(g, caller); err != nil {
		return CaseResult{}, err
	}
	share, err := calculator.EqualShare(amount, len(g.Persons))
	if err != nil {
		return CaseResult{}, fmt.Errorf("%w: cannot split case %q: %v", ErrInvalidInput, name, err)
	}
	if share == 0 {
		return CaseResult{}, fmt.Errorf("%w: case amount %d is less than one unit for each of %d members", ErrInvalidInput, amount, len(g.Persons))
	}

	c := models.Case{
		ID:           id.NewCaseID(),
		Amount:       amount,
		Name:         name,
		Owner:        caller,
		Contributors: []models.Address{},
	}

	var created []DebtCreated
	for i := range g.Persons {
		p := &g.Persons[i]
		if p.Address == caller {
			c.Contributors = append(c.Contributors, caller)
			continue
		}
		d := models.Debt{
			ID:       id.NewDebtID(),
			Lender:   caller,
			Borrower: p.Address,
			Name:     name,
			Amount:   share,
		}
		p.Debts = append(p.Debts, d)
		created = append(created, DebtCreated{
			GroupID:  g.ID,
			DebtID:   d.ID,
			Lender:   d.Lender,
			Borrower: d.Borrower,
			Name:     d.Name,
			Amount:   d.Amount,
		})
	}
	g.Cases = append(g.Cases, c)

	res := CaseResult{
		Case:  Ref{Index: len(g.Cases) - 1, ID: c.ID},
		Share: share,
		Debts: make([]id.ID, 0, len(created)),
	}
	for _, ev := range created {
		b.notifier.Publish(ctx, ev)
		res.Debts = append(res.Debts, ev.DebtID)
	}
	b.notifier.Publish(ctx, CaseAdded{GroupID: g.ID, CaseID: c.ID, Name: c.Name, Amount: c.Amount, Owner: c.Owner})
	return res, nil
}
