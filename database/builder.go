package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Clause scopes used to disambiguate named parameters when one statement
// carries both a SET and a WHERE clause.
const (
	scopeNone  = ""
	scopeSet   = "set"
	scopeWhere = "where"
)

// joiner validates the boolean operator used to combine conditions.
// The empty string defaults to AND.
func joiner(op string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(op)) {
	case "", "AND":
		return "AND", nil
	case "OR":
		return "OR", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOperator, op)
}

// sortedKeys returns the map's keys in ascending order. Go maps have no
// iteration order; sorting keeps generated SQL and parameter order
// deterministic.
func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildAssignments renders a SET fragment ("a = ?, b = ?" or
// "a = :set_a, b = :set_b") and records the values into p.
func buildAssignments(b binder, p *params, scope string, data Row) string {
	frags := make([]string, 0, len(data))
	for _, col := range sortedKeys(data) {
		frags = append(frags, col+" = "+b.bindvar(p, scope, col, data[col]))
	}
	return strings.Join(frags, ", ")
}

// buildWhere renders an equality WHERE fragment joined with op.
func buildWhere(b binder, p *params, scope string, where Conditions, op string) string {
	frags := make([]string, 0, len(where))
	for _, col := range sortedKeys(where) {
		frags = append(frags, col+" = "+b.bindvar(p, scope, col, where[col]))
	}
	return strings.Join(frags, " "+op+" ")
}

// buildLike renders a LIKE fragment joined with op. Each value is
// wrapped in %...%; % and _ inside caller values are not escaped and act
// as wildcards.
func buildLike(b binder, p *params, likes Conditions, op string) string {
	frags := make([]string, 0, len(likes))
	for _, col := range sortedKeys(likes) {
		v := fmt.Sprintf("%%%v%%", likes[col])
		frags = append(frags, col+" LIKE "+b.bindvar(p, scopeNone, col, v))
	}
	return strings.Join(frags, " "+op+" ")
}

// projection renders a column list, or * when none is given.
func projection(columns []string) (string, error) {
	if len(columns) == 0 {
		return "*", nil
	}
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return "", ErrInvalidColumns
		}
	}
	return strings.Join(columns, ", "), nil
}

// scanRows drains a result set into Row maps. []byte column values are
// converted to string so results are comparable regardless of driver.
func scanRows(rows *sqlx.Rows) ([]Row, error) {
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row := make(Row)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
