package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner runs fn in a transaction, committing on nil and rolling back
// otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx DBTX) error) error
}

// Store owns the connection pool. Open it on startup and Close it on
// shutdown.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) WithTx(ctx context.Context, fn func(tx DBTX) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// columns that may be probed by Exists
var existsColumns = map[string]map[string]bool{
	"users":      {"name": true, "email": true},
	"todo_tasks": {"name": true},
}

// Exists reports whether any row of table has column = value.
func (s *Store) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	if !existsColumns[table][column] {
		return false, fmt.Errorf("exists: column %s.%s is not searchable", table, column)
	}
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column))
	var found bool
	if err := s.DB.QueryRowContext(ctx, q, value).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// IsUniqueViolation reports a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
