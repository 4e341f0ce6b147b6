// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// EventRecord is one journaled ledger event.
type EventRecord struct {
	// ID is the unique identifier of the record (UUID format).
	ID string

	// Seq orders records across the whole journal. Assigned by the store.
	Seq int64

	// EventID is the ledger-level identifier of the event (prefix "evt").
	EventID string

	// GroupID is the group the event belongs to.
	GroupID string

	// Kind is the ledger event kind, e.g. "debt_created".
	Kind string

	// Payload is the CBOR-encoded event body.
	Payload []byte

	// CreatedAt is the Unix timestamp when the record was appended.
	CreatedAt int64
}

// Journal defines the append-only event log.
// This abstraction allows swapping storage backends without changing the
// notifier that feeds it.
type Journal interface {
	// AppendEvent persists rec. ID, Seq and CreatedAt are populated by the
	// store when unset.
	AppendEvent(ctx context.Context, rec *EventRecord) error

	// GetEvent retrieves a record by its ID.
	// Returns ErrNotFound if no such record exists.
	GetEvent(ctx context.Context, recordID string) (*EventRecord, error)

	// ListEvents returns the records of one group, oldest first. A limit of
	// zero or less returns all of them.
	ListEvents(ctx context.Context, groupID string, limit int) ([]*EventRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
