package id_test

import (
	"strings"
	"testing"

	"github.com/mmynk/splitledger/internal/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"GroupID", id.NewGroupID, "grp_"},
		{"PersonID", id.NewPersonID, "prs_"},
		{"CaseID", id.NewCaseID, "case_"},
		{"DebtID", id.NewDebtID, "debt_"},
		{"EventID", id.NewEventID, "evt_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestParseWithPrefix(t *testing.T) {
	groupID := id.NewGroupID()

	parsed, err := id.ParseWithPrefix(groupID.String(), id.PrefixGroup)
	if err != nil {
		t.Fatalf("ParseWithPrefix failed: %v", err)
	}
	if parsed.String() != groupID.String() {
		t.Errorf("expected %s, got %s", groupID, parsed)
	}

	if _, err := id.ParseWithPrefix(groupID.String(), id.PrefixDebt); err == nil {
		t.Error("expected prefix mismatch error")
	}
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNil(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero value should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}

	if err := i.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !i.IsNil() {
		t.Error("expected nil after empty UnmarshalText")
	}
}

func TestScan(t *testing.T) {
	want := id.NewCaseID()

	var got id.ID
	if err := got.Scan(want.String()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("expected %s, got %s", want, got)
	}

	if err := got.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
