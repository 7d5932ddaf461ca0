package database

import (
	"fmt"
	"strings"
)

// UpsertResult distinguishes the two outcomes of UpsertNative: a newly
// created row (with its generated id) or an update to an existing one
// (with the affected-row count).
type UpsertResult struct {
	Created  bool
	ID       int64
	Affected int64
}

// conflictConditions intersects the caller-declared unique key columns
// with the data map.
func conflictConditions(data Row, keys []string) Conditions {
	cond := make(Conditions)
	for _, k := range keys {
		if v, ok := data[k]; ok {
			cond[k] = v
		}
	}
	return cond
}

// Upsert inserts the row, or updates it when a row already matches the
// unique key columns. Returns the row id in either case; after an update
// the id is re-queried since UPDATE does not return one. Tables are
// assumed to carry an integer `id` column.
func (r runner) Upsert(table string, data Row, uniqueKeys []string) (int64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}
	cond := conflictConditions(data, uniqueKeys)
	if len(cond) == 0 {
		return 0, ErrEmptyConditions
	}

	exists, err := r.Exists(table, cond)
	if err != nil {
		return 0, err
	}
	if !exists {
		return r.Insert(table, data)
	}

	if _, err := r.Update(table, data, cond); err != nil {
		return 0, err
	}
	row, err := r.SelectOne(table, []string{"id"}, cond)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return toInt64(row["id"]), nil
}

// UpsertNative performs an insert-with-conflict-update in a single
// statement: ON DUPLICATE KEY UPDATE on MySQL, ON CONFLICT ... DO UPDATE
// on PostgreSQL and SQLite. The conflict key columns must be covered by
// a unique index on the table.
func (r runner) UpsertNative(table string, data Row, conflictKeys []string) (UpsertResult, error) {
	if len(data) == 0 {
		return UpsertResult{}, ErrEmptyData
	}
	cond := conflictConditions(data, conflictKeys)
	if len(cond) == 0 {
		return UpsertResult{}, ErrEmptyConditions
	}

	// The conflict clause alone cannot distinguish created from updated
	// on every backend, so resolve the outcome up front.
	exists, err := r.Exists(table, cond)
	if err != nil {
		return UpsertResult{}, err
	}

	p := newParams()
	cols := sortedKeys(data)
	placeholders := make([]string, 0, len(cols))
	for _, col := range cols {
		placeholders = append(placeholders, r.binder.bindvar(p, scopeNone, col, data[col]))
	}

	updateCols := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, isKey := cond[col]; !isKey {
			updateCols = append(updateCols, col)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
		r.conflictClause(conflictKeys, updateCols))

	res, err := r.binder.exec(r.ext, query, p)
	if err != nil {
		return UpsertResult{}, queryErr("upsert", query, err)
	}

	if exists {
		n, err := res.RowsAffected()
		if err != nil {
			return UpsertResult{}, queryErr("upsert", query, err)
		}
		// MySQL reports 2 affected rows for an in-place conflict update.
		if r.backend == MySQL && n == 2 {
			n = 1
		}
		return UpsertResult{Affected: n}, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		id = 0
	}
	return UpsertResult{Created: true, ID: id}, nil
}

func (r runner) conflictClause(conflictKeys, updateCols []string) string {
	if r.backend == MySQL {
		if len(updateCols) == 0 {
			k := conflictKeys[0]
			return fmt.Sprintf("ON DUPLICATE KEY UPDATE %s = %s", k, k)
		}
		frags := make([]string, 0, len(updateCols))
		for _, col := range updateCols {
			frags = append(frags, fmt.Sprintf("%s = VALUES(%s)", col, col))
		}
		return "ON DUPLICATE KEY UPDATE " + strings.Join(frags, ", ")
	}

	target := strings.Join(conflictKeys, ", ")
	if len(updateCols) == 0 {
		return fmt.Sprintf("ON CONFLICT(%s) DO NOTHING", target)
	}
	frags := make([]string, 0, len(updateCols))
	for _, col := range updateCols {
		frags = append(frags, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	return fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", target, strings.Join(frags, ", "))
}

// toInt64 converts the scalar kinds drivers hand back for integer
// columns.
func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		var n int64
		fmt.Sscanf(string(t), "%d", &n)
		return n
	case string:
		var n int64
		fmt.Sscanf(t, "%d", &n)
		return n
	}
	return 0
}
