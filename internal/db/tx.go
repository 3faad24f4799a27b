package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs a function inside a single database transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// Conn returns the transaction bound to ctx by WithinTx, or fallback when there is none.
func Conn(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(*serialTx); ok {
		return tx
	}
	return fallback
}

// InTx reports whether ctx carries a transaction.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*serialTx)
	return ok
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager backed by the pool.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
// Nested calls join the outer transaction.
func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// No-op after a successful commit. The rollback must run even if ctx is already cancelled.
	defer tx.Rollback(context.WithoutCancel(ctx))

	if err := fn(context.WithValue(ctx, txKey{}, &serialTx{tx: tx})); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// serialTx lets several goroutines share one transaction.
// A pgx connection handles one statement at a time, so each statement holds the
// lock until its result has been read.
type serialTx struct {
	mu sync.Mutex
	tx pgx.Tx
}

func (s *serialTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx.Exec(ctx, sql, args...)
}

func (s *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.mu.Lock()
	rows, err := s.tx.Query(ctx, sql, args...)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &serialRows{Rows: rows, unlock: s.mu.Unlock}, nil
}

func (s *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.mu.Lock()
	return &serialRow{row: s.tx.QueryRow(ctx, sql, args...), unlock: s.mu.Unlock}
}

type serialRows struct {
	pgx.Rows
	once   sync.Once
	unlock func()
}

// Next releases the lock once the result set is exhausted, so callers that
// read to the end without Close do not hold the transaction.
func (r *serialRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.once.Do(r.unlock)
	return false
}

func (r *serialRows) Close() {
	r.Rows.Close()
	r.once.Do(r.unlock)
}

type serialRow struct {
	row    pgx.Row
	unlock func()
}

func (r *serialRow) Scan(dest ...any) error {
	defer r.unlock()
	return r.row.Scan(dest...)
}
