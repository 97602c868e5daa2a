// Package postgres implements store.Store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"gdys/internal/store"
)

// Store provides the PostgreSQL-backed implementation of every repository.
type Store struct {
	db *sql.DB
}

// New opens a connection pool and verifies it.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFromDB wraps an existing handle. Used by tests with sqlmock.
func NewFromDB(db *sql.DB) *Store { return &Store{db: db} }

var _ store.Store = (*Store)(nil)

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *sql.DB { return s.db }

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// notFound maps sql.ErrNoRows onto the store sentinel, keeping handler error
// mapping backend-independent.
func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.NotFound(entity)
	}
	return err
}

// affected converts an Exec result into ErrNotFound when no row matched.
func affected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.NotFound(entity)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// nullStr maps the model's empty-string foreign keys onto SQL NULL.
func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func strOf(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func now() time.Time { return time.Now().UTC() }
