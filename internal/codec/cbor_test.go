package codec

import (
	"bytes"
	"testing"

	"github.com/mmynk/splitledger/internal/id"
)

type sample struct {
	ID     id.ID  `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

func TestMarshalIsDeterministic(t *testing.T) {
	v := map[string]int64{"b": 2, "a": 1, "c": 3}

	first, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding differs between calls")
		}
	}
}

func TestIDsEncodeAsText(t *testing.T) {
	in := sample{ID: id.NewDebtID(), Name: "Dinner", Amount: 10}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Contains(data, []byte(in.ID.String())) {
		t.Errorf("expected encoded bytes to contain the ID text %q", in.ID)
	}

	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out.ID.String() != in.ID.String() || out.Name != in.Name || out.Amount != in.Amount {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}
