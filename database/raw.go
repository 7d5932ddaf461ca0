package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Result is the uniform envelope for statements that do not return rows.
// LastInsertID is 0 on drivers without insert-id support (lib/pq).
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// namedArg reports whether the argument list is a single name→value map,
// which selects named :param binding for raw statements.
func namedArg(args []any) (map[string]any, bool) {
	if len(args) != 1 {
		return nil, false
	}
	m, ok := args[0].(map[string]any)
	return m, ok
}

// RawQuery runs a caller-written statement that returns rows. Pass a
// single map[string]any to bind named :param placeholders; any other
// argument shape binds positionally (? placeholders, rebound for the
// backend as needed).
func (r runner) RawQuery(query string, args ...any) ([]Row, error) {
	var (
		rows *sqlx.Rows
		err  error
	)
	if named, ok := namedArg(args); ok {
		rows, err = sqlx.NamedQuery(r.ext, query, named)
	} else {
		rows, err = r.ext.Queryx(r.ext.Rebind(query), args...)
	}
	if err != nil {
		return nil, queryErr("query", query, err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, queryErr("query", query, err)
	}
	return out, nil
}

// RawExec runs a caller-written statement that does not return rows,
// with the same binding convention as RawQuery.
func (r runner) RawExec(query string, args ...any) (Result, error) {
	var (
		res sql.Result
		err error
	)
	if named, ok := namedArg(args); ok {
		res, err = sqlx.NamedExec(r.ext, query, named)
	} else {
		res, err = r.ext.Exec(r.ext.Rebind(query), args...)
	}
	if err != nil {
		return Result{}, queryErr("exec", query, err)
	}

	out := Result{}
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	return out, nil
}
