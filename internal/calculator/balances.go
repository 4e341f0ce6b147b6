package calculator

import "github.com/mmynk/splitledger/internal/models"

// MemberBalance summarizes one member's position in a group.
type MemberBalance struct {
	PersonIndex int
	Address     models.Address
	Name        string
	Balance     int64 // Escrowed and withdrawable
	OwedUnpaid  int64 // Sum of this member's own unpaid debts
	LentUnpaid  int64 // Sum of unpaid debts in the group where this member is lender
	DebtCount   int
	PaidCount   int
}

// Summarize computes a MemberBalance for every person in group, in group
// order. Debts whose lender is no longer a member only count toward the
// borrower's OwedUnpaid.
func Summarize(group *models.Group) []MemberBalance {
	out := make([]MemberBalance, len(group.Persons))
	lent := make(map[models.Address]int64)

	for i, p := range group.Persons {
		mb := MemberBalance{
			PersonIndex: i,
			Address:     p.Address,
			Name:        p.Name,
			Balance:     p.Balance,
			DebtCount:   len(p.Debts),
		}
		for _, d := range p.Debts {
			if d.Paid {
				mb.PaidCount++
				continue
			}
			mb.OwedUnpaid += d.Amount
			lent[d.Lender] += d.Amount
		}
		out[i] = mb
	}

	for i := range out {
		out[i].LentUnpaid = lent[out[i].Address]
	}
	return out
}
