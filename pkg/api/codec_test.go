package api

import (
	"encoding/json"
	"testing"
)

func TestJSONCodecFlattensGroupRef(t *testing.T) {
	data, err := JSONCodec{}.Marshal(&PayDebtRequest{
		GroupRef:  GroupRef{GroupIndex: 2},
		DebtIndex: 1,
		Payment:   150,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fields["group_index"] != float64(2) {
		t.Errorf("group_index = %v, want 2", fields["group_index"])
	}
	if _, ok := fields["group_id"]; ok {
		t.Error("empty group_id should be omitted")
	}
	if _, ok := fields["GroupRef"]; ok {
		t.Error("GroupRef should be embedded, not nested")
	}
}
