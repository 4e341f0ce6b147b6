package calculator

import (
	"errors"
	"testing"
)

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		participants int
		want         int64
		wantErr      error
	}{
		{name: "even split", amount: 30, participants: 3, want: 10},
		{name: "floor division drops remainder", amount: 100, participants: 3, want: 33},
		{name: "amount smaller than participants", amount: 2, participants: 5, want: 0},
		{name: "single participant", amount: 7, participants: 1, want: 7},
		{name: "no participants", amount: 10, participants: 0, wantErr: ErrNoParticipants},
		{name: "zero amount", amount: 0, participants: 2, wantErr: ErrNonPositive},
		{name: "negative amount", amount: -5, participants: 2, wantErr: ErrNonPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EqualShare(tt.amount, tt.participants)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("EqualShare() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("EqualShare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemainder(t *testing.T) {
	// 100 over 3 people where the owner is a member: 2 debtors of 33.
	if got := Remainder(100, 33, 2); got != 34 {
		t.Errorf("Remainder(100, 33, 2) = %d, want 34", got)
	}
	// Owner outside the group: 3 debtors of 33.
	if got := Remainder(100, 33, 3); got != 1 {
		t.Errorf("Remainder(100, 33, 3) = %d, want 1", got)
	}
}
