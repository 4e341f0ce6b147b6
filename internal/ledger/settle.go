package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// PayDebt settles one of the caller's own debts. debt addresses the caller's
// personal debt list, not a group-wide one.
//
// Exactly the debt amount is deducted from payment and credited to the
// lender's escrow balance; any surplus stays on payment. If the caller has
// no member record in the group the call does nothing and reports
// applied=false with a nil error.
func (b *Board) PayDebt(_ context.Context, caller models.Address, group, debt At, payment *Payment) (applied bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return false, err
	}
	borrower := findPerson(g, caller)
	if borrower == nil {
		return false, nil
	}
	i, err := debtIndex(borrower, debt)
	if err != nil {
		return false, err
	}
	d := &borrower.Debts[i]
	if d.Paid {
		return false, fmt.Errorf("%w: debt %s already paid", ErrInvalidInput, d.ID)
	}
	if payment == nil || payment.Value < d.Amount {
		var offered int64
		if payment != nil {
			offered = payment.Value
		}
		return false, fmt.Errorf("%w: payment %d below debt amount %d", ErrInsufficientFunds, offered, d.Amount)
	}
	lender := findPerson(g, d.Lender)
	if lender == nil {
		return false, fmt.Errorf("%w: lender %s is not a member of group %s", ErrInvalidInput, d.Lender, g.ID)
	}

	payment.Value -= d.Amount
	lender.Balance += d.Amount
	d.Paid = true
	return true, nil
}

// CollectMoney withdraws the caller's entire escrow balance through the
// payout collaborator and resets it to zero. A caller without a member
// record gets 0 and nil. A zero balance is not paid out.
func (b *Board) CollectMoney(ctx context.Context, caller models.Address, group At) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return 0, err
	}
	p := findPerson(g, caller)
	if p == nil || p.Balance == 0 {
		return 0, nil
	}

	amount := p.Balance
	if err := b.payout.Pay(ctx, caller, amount); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}
	p.Balance = 0
	return amount, nil
}
