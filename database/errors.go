package database

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBackend is returned for a backend-kind string that is not
	// one of "mysql", "postgres" or "sqlite".
	ErrUnknownBackend = errors.New("stand: unknown backend kind")

	// ErrEmptyData is returned when an insert or update is attempted with
	// an empty column map.
	ErrEmptyData = errors.New("stand: empty data map")

	// ErrEmptyConditions is returned when an operation that requires a
	// condition map receives an empty one. Update and Delete require
	// conditions; use UpdateAll/DeleteAll to mutate every row on purpose.
	ErrEmptyConditions = errors.New("stand: empty condition map")

	// ErrInvalidOperator is returned when a boolean joiner other than
	// "AND" or "OR" is supplied.
	ErrInvalidOperator = errors.New("stand: invalid boolean operator")

	// ErrConfirmRequired is returned by DeleteAll when the confirm flag
	// is false.
	ErrConfirmRequired = errors.New("stand: confirm flag required to delete all rows")

	// ErrInvalidColumns is returned when a column projection contains an
	// empty column name.
	ErrInvalidColumns = errors.New("stand: invalid column projection")
)

// QueryError wraps a driver failure with the operation name and the SQL
// text that produced it. Use errors.Unwrap (or errors.Is/As) to reach the
// underlying driver error.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("stand: %s %q: %v", e.Op, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryErr(op, query string, err error) error {
	return &QueryError{Op: op, Query: query, Err: err}
}
