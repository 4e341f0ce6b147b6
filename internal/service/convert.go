package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIGroup(index int, g *models.Group) api.Group {
	out := api.Group{
		Index:    index,
		ID:       g.ID.String(),
		Name:     g.Name,
		Admin:    string(g.Admin),
		Finished: g.Finished,
		Persons:  make([]api.Person, len(g.Persons)),
		Cases:    make([]api.Case, len(g.Cases)),
	}
	for i, p := range g.Persons {
		debts := make([]api.Debt, len(p.Debts))
		for j, d := range p.Debts {
			debts[j] = api.Debt{
				ID:       d.ID.String(),
				Lender:   string(d.Lender),
				Borrower: string(d.Borrower),
				Name:     d.Name,
				Amount:   d.Amount,
				Paid:     d.Paid,
			}
		}
		out.Persons[i] = api.Person{
			ID:      p.ID.String(),
			Address: string(p.Address),
			Name:    p.Name,
			Balance: p.Balance,
			Debts:   debts,
		}
	}
	for i, c := range g.Cases {
		contributors := make([]string, len(c.Contributors))
		for j, a := range c.Contributors {
			contributors[j] = string(a)
		}
		out.Cases[i] = api.Case{
			ID:           c.ID.String(),
			Name:         c.Name,
			Amount:       c.Amount,
			Owner:        string(c.Owner),
			Contributors: contributors,
		}
	}
	return out
}

func toAPISummaries(groups []ledger.GroupSummary) []api.GroupSummary {
	out := make([]api.GroupSummary, len(groups))
	for i, g := range groups {
		out[i] = api.GroupSummary{
			Index:       g.Index,
			ID:          g.ID.String(),
			Name:        g.Name,
			Admin:       string(g.Admin),
			Finished:    g.Finished,
			PersonCount: g.PersonCount,
			CaseCount:   g.CaseCount,
		}
	}
	return out
}

func toAPIBalances(balances []calculator.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = api.MemberBalance{
			PersonIndex: b.PersonIndex,
			Address:     string(b.Address),
			Name:        b.Name,
			Balance:     b.Balance,
			OwedUnpaid:  b.OwedUnpaid,
			LentUnpaid:  b.LentUnpaid,
			DebtCount:   b.DebtCount,
			PaidCount:   b.PaidCount,
		}
	}
	return out
}

// toAPIEvent decodes a journal record into its wire form.
func toAPIEvent(rec *storage.EventRecord) (api.Event, error) {
	ev, err := notify.DecodeEvent(rec)
	if err != nil {
		return api.Event{}, err
	}

	out := api.Event{
		Seq:       rec.Seq,
		EventID:   rec.EventID,
		Kind:      rec.Kind,
		GroupID:   rec.GroupID,
		CreatedAt: rec.CreatedAt,
	}
	switch e := ev.(type) {
	case ledger.GroupCreated:
		out.Name = e.Name
		out.Admin = string(e.Admin)
	case ledger.PersonAdded:
		out.PersonID = e.PersonID.String()
		out.Name = e.Name
		out.Address = string(e.Address)
	case ledger.CaseAdded:
		out.CaseID = e.CaseID.String()
		out.Name = e.Name
		out.Amount = e.Amount
		out.Owner = string(e.Owner)
	case ledger.DebtCreated:
		out.DebtID = e.DebtID.String()
		out.Lender = string(e.Lender)
		out.Borrower = string(e.Borrower)
		out.Name = e.Name
		out.Amount = e.Amount
	}
	return out, nil
}
