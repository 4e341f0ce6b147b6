// Package notify provides ledger.Notifier implementations.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/splitledger/internal/ledger"
)

var (
	_ ledger.Notifier = (*Recorder)(nil)
	_ ledger.Notifier = Fanout(nil)
	_ ledger.Notifier = (*Logger)(nil)
)

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []ledger.Event
}

// Publish appends ev.
func (r *Recorder) Publish(_ context.Context, ev ledger.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events in publish order.
func (r *Recorder) Events() []ledger.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in publish order.
func (r *Recorder) Kinds() []ledger.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]ledger.EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind()
	}
	return kinds
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Fanout publishes every event to each notifier in order.
type Fanout []ledger.Notifier

func (f Fanout) Publish(ctx context.Context, ev ledger.Event) {
	for _, n := range f {
		n.Publish(ctx, ev)
	}
}

// Logger writes each event as a structured log record.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Logger writing to l, or to slog.Default() if l is nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l}
}

func (l *Logger) Publish(ctx context.Context, ev ledger.Event) {
	l.log.InfoContext(ctx, "Ledger event",
		"kind", ev.Kind(),
		"group_id", ev.Group().String(),
		"event", ev,
	)
}
