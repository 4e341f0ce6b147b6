package calculator

import (
	"errors"
)

var (
	ErrNoParticipants = errors.New("must have at least one participant")
	ErrNonPositive    = errors.New("amount must be positive")
)

// EqualShare returns amount / participants using integer floor division.
// The remainder is not returned and is not tracked anywhere.
func EqualShare(amount int64, participants int) (int64, error) {
	if participants <= 0 {
		return 0, ErrNoParticipants
	}
	if amount <= 0 {
		return 0, ErrNonPositive
	}
	return amount / int64(participants), nil
}

// Remainder returns the part of amount lost when share is owed by debtors
// people: amount - share*debtors.
func Remainder(amount, share int64, debtors int) int64 {
	return amount - share*int64(debtors)
}
