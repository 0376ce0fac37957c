// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrValidation indicates input rejected before any statement ran.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a key that does not resolve to a row.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a duplicate primary key or unique value.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrReferentialIntegrity indicates a write that would break a foreign key.
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	// ErrTransientConnection indicates the database could not be reached.
	ErrTransientConnection = errors.New("database unreachable")
)

var kinds = []error{
	ErrValidation,
	ErrNotFound,
	ErrAlreadyExists,
	ErrReferentialIntegrity,
	ErrTransientConnection,
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classify maps driver errors onto the store's error kinds. The driver
// error stays in the chain so its message is preserved.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	if kind := sqliteKind(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}
	if kind := postgresKind(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrTransientConnection, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrTransientConnection, err)
	}

	return err
}

func sqliteKind(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrReferentialIntegrity
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return ErrAlreadyExists
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK, sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return ErrValidation
	}

	// Primary result code lives in the low byte.
	switch sqliteErr.Code() & 0xff {
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_CANTOPEN, sqlite3lib.SQLITE_IOERR:
		return ErrTransientConnection
	}
	return nil
}

func postgresKind(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case "23503": // foreign_key_violation
		return ErrReferentialIntegrity
	case "23505": // unique_violation
		return ErrAlreadyExists
	case "23502", "23514", "22P02", "22003", "22007", "22008":
		return ErrValidation
	}

	switch pqErr.Code.Class() {
	case "08", "57":
		return ErrTransientConnection
	}
	return nil
}
