package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// params accumulates bound values for one statement. The positional
// strategy fills args in placeholder order; the named strategy fills the
// named map.
type params struct {
	args  []any
	named map[string]any
}

func newParams() *params {
	return &params{named: make(map[string]any)}
}

// binder is the parameter-binding strategy, fixed per connection.
// bindvar records a value and returns the placeholder text to splice
// into the SQL fragment; query and exec run the finished statement with
// whichever argument shape the strategy produced.
type binder interface {
	bindvar(p *params, scope, col string, v any) string
	query(ext sqlx.Ext, query string, p *params) (*sqlx.Rows, error)
	exec(ext sqlx.Ext, query string, p *params) (sql.Result, error)
}

func binderFor(backend Backend) binder {
	if backend == SQLite {
		return namedBinder{}
	}
	return positionalBinder{}
}

// positionalBinder emits ? placeholders with an ordered argument list.
// Statements are passed through sqlx.Rebind before execution so the $n
// form is produced for PostgreSQL.
type positionalBinder struct{}

func (positionalBinder) bindvar(p *params, scope, col string, v any) string {
	p.args = append(p.args, normalizeValue(v))
	return "?"
}

func (positionalBinder) query(ext sqlx.Ext, query string, p *params) (*sqlx.Rows, error) {
	return ext.Queryx(ext.Rebind(query), p.args...)
}

func (positionalBinder) exec(ext sqlx.Ext, query string, p *params) (sql.Result, error) {
	return ext.Exec(ext.Rebind(query), p.args...)
}

// namedBinder emits :column placeholders with a name→value map. When a
// statement carries both a SET and a WHERE clause the clause scope is
// prefixed onto the name (set_col / where_col) so the same column can
// appear in both.
type namedBinder struct{}

func (namedBinder) bindvar(p *params, scope, col string, v any) string {
	name := col
	if scope != "" {
		name = scope + "_" + col
	}
	p.named[name] = normalizeValue(v)
	return ":" + name
}

func (namedBinder) query(ext sqlx.Ext, query string, p *params) (*sqlx.Rows, error) {
	return sqlx.NamedQuery(ext, query, p.named)
}

func (namedBinder) exec(ext sqlx.Ext, query string, p *params) (sql.Result, error) {
	return sqlx.NamedExec(ext, query, p.named)
}

// normalizeValue reduces bound values to the scalar kinds the drivers
// accept uniformly: int64, float64, string, []byte, time.Time or nil.
// Booleans and anything else coerce to string.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	case string:
		return t
	case []byte:
		return t
	case time.Time:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(t)
	}
}
