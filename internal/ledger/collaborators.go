package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Notifier receives events as operations succeed. Publish is called while
// the board lock is held, so events arrive in the order the board changed.
// Delivery failures are the notifier's own concern.
type Notifier interface {
	Publish(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }

// Payout moves withdrawn escrow value to the caller's external account.
type Payout interface {
	Pay(ctx context.Context, to models.Address, amount int64) error
}

// PayoutFunc adapts a function to Payout.
type PayoutFunc func(ctx context.Context, to models.Address, amount int64) error

func (f PayoutFunc) Pay(ctx context.Context, to models.Address, amount int64) error {
	return f(ctx, to, amount)
}

var (
	discardNotifier = NotifierFunc(func(context.Context, Event) {})
	discardPayout   = PayoutFunc(func(context.Context, models.Address, int64) error { return nil })
)

// Payment is the value instrument attached to PayDebt. PayDebt deducts the
// debt amount from Value in place; whatever remains stays with the caller.
type Payment struct {
	Value int64
}
