// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dump

import (
	"bufio"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot. Unknown fields are rejected so a file for a
// different schema fails loudly.
func ReadJSON(r io.Reader) (models.Snapshot, error) {
	var snap models.Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// WriteSQL writes an insert script for snap: the tables are emptied
// children first, then refilled parents first. With no tables given the
// script covers all of them.
func WriteSQL(w io.Writer, snap models.Snapshot, tables ...store.Table) error {
	var order []store.Table
	for _, t := range store.Tables {
		if len(tables) == 0 || slices.Contains(tables, t) {
			order = append(order, t)
		}
	}

	bw := bufio.NewWriter(w)

	for _, t := range slices.Backward(order) {
		fmt.Fprintf(bw, "DELETE FROM %s;\n", t)
	}

	for _, t := range order {
		columns, rows, err := store.TableRows(t, snap)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(bw, "\n-- %s\n", t)
		cols := strings.Join(columns, ", ")
		for _, row := range rows {
			values := make([]string, len(row))
			for i, v := range row {
				lit, err := Literal(v)
				if err != nil {
					return fmt.Errorf("%s.%s: %w", t, columns[i], err)
				}
				values[i] = lit
			}
			fmt.Fprintf(bw, "INSERT INTO %s (%s) VALUES (%s);\n", t, cols, strings.Join(values, ", "))
		}
	}

	return bw.Flush()
}

// Literal renders v as a SQL literal. Nil pointers are NULL and strings are
// single-quoted with embedded quotes doubled.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return "", err
		}
		return Literal(dv)
	case *string:
		if x == nil {
			return "NULL", nil
		}
		return quote(*x), nil
	case string:
		return quote(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	}
	return "", fmt.Errorf("no SQL literal for %T", v)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
