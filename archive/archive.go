// Package archive provides durable storage for serialized dump payloads.
// It is a thin SQLite layer: payloads go in and come out as opaque bytes,
// keyed by a caller-chosen name and tagged with the schema variant they
// were compiled under.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/edgetrace/etdump"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one archived dump.
type Entry struct {
	ID        int64
	Name      string
	Variant   etdump.Variant
	CreatedAt time.Time
	Payload   []byte // nil for List results
}

// Archive is a SQLite-backed dump store.
type Archive struct {
	db *sql.DB
}

// Open creates or opens an archive database at the given path. WAL mode and
// a single-writer pool keep concurrent readers safe without SQLITE_BUSY
// churn.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Put stores a serialized payload and returns its row id.
func (a *Archive) Put(ctx context.Context, name string, variant etdump.Variant, payload []byte) (int64, error) {
	if _, err := etdump.ParseVariant(string(variant)); err != nil {
		return 0, err
	}
	res, err := a.db.ExecContext(ctx,
		"INSERT INTO dumps (name, variant, payload) VALUES (?, ?, ?)",
		name, string(variant), payload)
	if err != nil {
		return 0, fmt.Errorf("archive put %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("archive put %q: %w", name, err)
	}
	return id, nil
}

// Get retrieves an archived dump by id, payload included.
func (a *Archive) Get(ctx context.Context, id int64) (Entry, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, name, variant, created_at, payload FROM dumps WHERE id = ?", id)
	e, err := scanEntry(row, true)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("archive get: no dump with id %d", id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("archive get %d: %w", id, err)
	}
	return e, nil
}

// List returns all archived dumps, newest first, without payloads.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT id, name, variant, created_at FROM dumps ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("archive list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows, false)
		if err != nil {
			return nil, fmt.Errorf("archive list: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive list: %w", err)
	}
	return entries, nil
}

// scanner abstracts sql.Row and sql.Rows for scanEntry.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, withPayload bool) (Entry, error) {
	var e Entry
	var variant, created string
	dest := []any{&e.ID, &e.Name, &variant, &created}
	if withPayload {
		dest = append(dest, &e.Payload)
	}
	if err := s.Scan(dest...); err != nil {
		return Entry{}, err
	}
	e.Variant = etdump.Variant(variant)
	ts, err := time.Parse("2006-01-02T15:04:05.999Z", created)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	e.CreatedAt = ts
	return e, nil
}
