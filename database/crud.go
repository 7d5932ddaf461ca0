package database

import (
	"fmt"
	"strings"
)

// Insert adds one row and returns the generated identifier. Drivers
// without LastInsertId support (lib/pq) yield 0.
func (r runner) Insert(table string, data Row) (int64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}

	p := newParams()
	cols := sortedKeys(data)
	placeholders := make([]string, 0, len(cols))
	for _, col := range cols {
		placeholders = append(placeholders, r.binder.bindvar(p, scopeNone, col, data[col]))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	res, err := r.binder.exec(r.ext, query, p)
	if err != nil {
		return 0, queryErr("insert", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// Select returns the rows matching the AND-combined equality conditions.
// A nil or empty columns slice selects *. The orderBy string is spliced
// into the statement verbatim; it must never contain untrusted input.
func (r runner) Select(table string, columns []string, where Conditions, orderBy string) ([]Row, error) {
	return r.selectLimit(table, columns, where, orderBy, "")
}

// SelectOne returns the first matching row, or nil when nothing matches.
func (r runner) SelectOne(table string, columns []string, where Conditions) (Row, error) {
	rows, err := r.selectLimit(table, columns, where, "", "LIMIT 1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r runner) selectLimit(table string, columns []string, where Conditions, orderBy, limit string) ([]Row, error) {
	proj, err := projection(columns)
	if err != nil {
		return nil, err
	}

	p := newParams()
	query := fmt.Sprintf("SELECT %s FROM %s", proj, table)
	if len(where) > 0 {
		query += " WHERE " + buildWhere(r.binder, p, scopeNone, where, "AND")
	}
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	if limit != "" {
		query += " " + limit
	}

	rows, err := r.binder.query(r.ext, query, p)
	if err != nil {
		return nil, queryErr("select", query, err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, queryErr("select", query, err)
	}
	return out, nil
}

// Update modifies the rows matching the condition map and returns the
// affected-row count. Both maps must be non-empty; use UpdateAll to
// update every row deliberately.
func (r runner) Update(table string, data Row, where Conditions) (int64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}
	if len(where) == 0 {
		return 0, ErrEmptyConditions
	}
	return r.update(table, data, where)
}

// UpdateAll modifies every row in the table.
func (r runner) UpdateAll(table string, data Row) (int64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}
	return r.update(table, data, nil)
}

func (r runner) update(table string, data Row, where Conditions) (int64, error) {
	p := newParams()
	query := fmt.Sprintf("UPDATE %s SET %s", table, buildAssignments(r.binder, p, scopeSet, data))
	if len(where) > 0 {
		query += " WHERE " + buildWhere(r.binder, p, scopeWhere, where, "AND")
	}

	res, err := r.binder.exec(r.ext, query, p)
	if err != nil {
		return 0, queryErr("update", query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, queryErr("update", query, err)
	}
	return n, nil
}

// Delete removes the rows matching the condition map and returns the
// affected-row count. The condition map must be non-empty; use DeleteAll
// to clear a table deliberately.
func (r runner) Delete(table string, where Conditions) (int64, error) {
	if len(where) == 0 {
		return 0, ErrEmptyConditions
	}

	p := newParams()
	query := fmt.Sprintf("DELETE FROM %s WHERE %s",
		table, buildWhere(r.binder, p, scopeNone, where, "AND"))

	res, err := r.binder.exec(r.ext, query, p)
	if err != nil {
		return 0, queryErr("delete", query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, queryErr("delete", query, err)
	}
	return n, nil
}

// DeleteAll removes every row in the table and returns the prior row
// count. The confirm flag guards against accidental mass deletion.
func (r runner) DeleteAll(table string, confirm bool) (int64, error) {
	if !confirm {
		return 0, ErrConfirmRequired
	}

	count, err := r.Count(table, nil)
	if err != nil {
		return 0, err
	}

	query := "DELETE FROM " + table
	if _, err := r.binder.exec(r.ext, query, newParams()); err != nil {
		return 0, queryErr("delete", query, err)
	}
	return count, nil
}

// Exists reports whether any row matches the condition map.
func (r runner) Exists(table string, where Conditions) (bool, error) {
	if len(where) == 0 {
		return false, ErrEmptyConditions
	}

	p := newParams()
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1",
		table, buildWhere(r.binder, p, scopeNone, where, "AND"))

	rows, err := r.binder.query(r.ext, query, p)
	if err != nil {
		return false, queryErr("exists", query, err)
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}

// Count returns the number of rows matching the condition map, or the
// table's total row count when the map is empty.
func (r runner) Count(table string, where Conditions) (int64, error) {
	p := newParams()
	query := "SELECT COUNT(*) FROM " + table
	if len(where) > 0 {
		query += " WHERE " + buildWhere(r.binder, p, scopeNone, where, "AND")
	}

	rows, err := r.binder.query(r.ext, query, p)
	if err != nil {
		return 0, queryErr("count", query, err)
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, queryErr("count", query, err)
		}
	}
	return n, rows.Err()
}

// SearchLike returns the rows where each listed column contains its
// value as a substring (LIKE %value%), combined with the given operator
// ("AND" or "OR"; empty defaults to AND). Wildcard metacharacters in
// values are not escaped.
func (r runner) SearchLike(table string, columns []string, likes Conditions, operator string) ([]Row, error) {
	if len(likes) == 0 {
		return nil, ErrEmptyConditions
	}
	op, err := joiner(operator)
	if err != nil {
		return nil, err
	}
	proj, err := projection(columns)
	if err != nil {
		return nil, err
	}

	p := newParams()
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		proj, table, buildLike(r.binder, p, likes, op))

	rows, err := r.binder.query(r.ext, query, p)
	if err != nil {
		return nil, queryErr("search", query, err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, queryErr("search", query, err)
	}
	return out, nil
}
