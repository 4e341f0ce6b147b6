// Package sqlite provides a SQLite-backed implementation of storage.Journal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Journal
var _ storage.Journal = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Journal using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendEvent inserts rec and fills in its generated fields.
func (s *SQLiteStore) AppendEvent(ctx context.Context, rec *storage.EventRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, event_id, group_id, kind, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EventID, rec.GroupID, rec.Kind, rec.Payload, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event sequence: %w", err)
	}
	rec.Seq = seq

	return nil
}

// GetEvent retrieves a record by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, recordID string) (*storage.EventRecord, error) {
	rec := &storage.EventRecord{}
	err := s.db.QueryRowContext(ctx,
		`SELECT seq, id, event_id, group_id, kind, payload, created_at
		 FROM events WHERE id = ?`,
		recordID,
	).Scan(&rec.Seq, &rec.ID, &rec.EventID, &rec.GroupID, &rec.Kind, &rec.Payload, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", recordID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return rec, nil
}

// ListEvents retrieves the records of a group in append order.
func (s *SQLiteStore) ListEvents(ctx context.Context, groupID string, limit int) ([]*storage.EventRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, event_id, group_id, kind, payload, created_at
		 FROM events WHERE group_id = ? ORDER BY seq ASC LIMIT ?`,
		groupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var records []*storage.EventRecord
	for rows.Next() {
		rec := &storage.EventRecord{}
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.EventID, &rec.GroupID, &rec.Kind, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return records, nil
}
