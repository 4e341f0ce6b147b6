package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/codec"
	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/storage"
)

var _ ledger.Notifier = (*Journal)(nil)

// Journal persists every event to a storage.Journal as CBOR. Append failures
// are logged and do not affect the ledger operation.
//
// The append ignores cancellation of the publishing context. The board has
// already changed when an event arrives.
type Journal struct {
	store storage.Journal
}

// NewJournal creates a Journal notifier backed by store.
func NewJournal(store storage.Journal) *Journal {
	return &Journal{store: store}
}

func (j *Journal) Publish(ctx context.Context, ev ledger.Event) {
	rec, err := EncodeEvent(ev)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode event", "kind", ev.Kind(), "error", err)
		return
	}
	if err := j.store.AppendEvent(context.WithoutCancel(ctx), rec); err != nil {
		slog.ErrorContext(ctx, "Failed to journal event",
			"kind", rec.Kind,
			"group_id", rec.GroupID,
			"error", err,
		)
	}
}

// EncodeEvent turns ev into an unsaved journal record.
func EncodeEvent(ev ledger.Event) (*storage.EventRecord, error) {
	payload, err := codec.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Kind(), err)
	}
	return &storage.EventRecord{
		EventID: id.NewEventID().String(),
		GroupID: ev.Group().String(),
		Kind:    string(ev.Kind()),
		Payload: payload,
	}, nil
}

// DecodeEvent restores the typed event stored in rec.
func DecodeEvent(rec *storage.EventRecord) (ledger.Event, error) {
	var (
		ev  ledger.Event
		err error
	)
	switch ledger.EventKind(rec.Kind) {
	case ledger.KindGroupCreated:
		var e ledger.GroupCreated
		err = codec.Unmarshal(rec.Payload, &e)
		ev = e
	case ledger.KindPersonAdded:
		var e ledger.PersonAdded
		err = codec.Unmarshal(rec.Payload, &e)
		ev = e
	case ledger.KindCaseAdded:
		var e ledger.CaseAdded
		err = codec.Unmarshal(rec.Payload, &e)
		ev = e
	case ledger.KindDebtCreated:
		var e ledger.DebtCreated
		err = codec.Unmarshal(rec.Payload, &e)
		ev = e
	default:
		return nil, fmt.Errorf("decode event %s: unknown kind %q", rec.ID, rec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rec.Kind, err)
	}
	return ev, nil
}
