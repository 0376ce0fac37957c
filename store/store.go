// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/caregivers/db"
)

// Store is the data layer over one database. Every exported operation runs
// in its own transaction.
type Store struct {
	db      *sql.DB
	dialect db.Dialect
}

// New wraps an open connection pool.
func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

// Dialect reports the SQL dialect of the underlying connection.
func (s *Store) Dialect() db.Dialect {
	return s.dialect
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// inTx runs fn in a transaction. The transaction is committed when fn
// returns nil and rolled back on any error or panic.
func (s *Store) inTx(ctx context.Context, fn func(sc *scope) error) (err error) {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", classify(cerr))
		}
	}()

	return fn(&scope{tx: tx, dialect: s.dialect})
}

// withTx runs fn in a transaction and returns its result.
func withTx[T any](ctx context.Context, s *Store, fn func(sc *scope) (T, error)) (T, error) {
	var out T
	err := s.inTx(ctx, func(sc *scope) error {
		var err error
		out, err = fn(sc)
		return err
	})
	return out, err
}

// scope is one open transaction. Queries use ? placeholders and driver
// errors come back classified.
type scope struct {
	tx      *sql.Tx
	dialect db.Dialect
}

func (sc *scope) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := sc.tx.ExecContext(ctx, sc.dialect.Rebind(query), args...)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// execCount runs a statement and returns the number of affected rows.
func (sc *scope) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := sc.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// execOne runs a statement that must touch a row; zero rows is ErrNotFound.
func (sc *scope) execOne(ctx context.Context, query string, args ...any) error {
	n, err := sc.execCount(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (sc *scope) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := sc.tx.QueryContext(ctx, sc.dialect.Rebind(query), args...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (sc *scope) row(ctx context.Context, query string, args ...any) *sql.Row {
	return sc.tx.QueryRowContext(ctx, sc.dialect.Rebind(query), args...)
}

// queryRow scans a single row into dest. sql.ErrNoRows becomes ErrNotFound.
func (sc *scope) queryRow(ctx context.Context, dest []any, query string, args ...any) error {
	return classify(sc.row(ctx, query, args...).Scan(dest...))
}

type rowScanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}
