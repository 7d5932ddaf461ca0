package database

import (
	"errors"
	"testing"
)

func TestJoiner(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"", "AND"},
		{"AND", "AND"},
		{"and", "AND"},
		{" or ", "OR"},
		{"OR", "OR"},
	} {
		got, err := joiner(tc.in)
		if err != nil {
			t.Fatalf("joiner(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("joiner(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := joiner("XOR"); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("joiner(XOR) error = %v, want ErrInvalidOperator", err)
	}
}

func TestBuildWherePositional(t *testing.T) {
	p := newParams()
	frag := buildWhere(positionalBinder{}, p, scopeNone, Conditions{"name": "bob", "age": 30}, "AND")

	if frag != "age = ? AND name = ?" {
		t.Errorf("fragment = %q", frag)
	}
	if len(p.args) != 2 || p.args[0] != int64(30) || p.args[1] != "bob" {
		t.Errorf("args = %#v", p.args)
	}
}

func TestBuildWhereNamed(t *testing.T) {
	p := newParams()
	frag := buildWhere(namedBinder{}, p, scopeWhere, Conditions{"id": 7}, "AND")

	if frag != "id = :where_id" {
		t.Errorf("fragment = %q", frag)
	}
	if p.named["where_id"] != int64(7) {
		t.Errorf("named = %#v", p.named)
	}
}

// The same column in SET and WHERE must not collide in named style.
func TestAssignAndWhereDisambiguation(t *testing.T) {
	p := newParams()
	set := buildAssignments(namedBinder{}, p, scopeSet, Row{"status": "new"})
	where := buildWhere(namedBinder{}, p, scopeWhere, Conditions{"status": "old"}, "AND")

	if set != "status = :set_status" {
		t.Errorf("set fragment = %q", set)
	}
	if where != "status = :where_status" {
		t.Errorf("where fragment = %q", where)
	}
	if p.named["set_status"] != "new" || p.named["where_status"] != "old" {
		t.Errorf("named = %#v", p.named)
	}
}

func TestBuildLikeWrapsValues(t *testing.T) {
	p := newParams()
	frag := buildLike(positionalBinder{}, p, Conditions{"a": "x", "b": "y"}, "OR")

	if frag != "a LIKE ? OR b LIKE ?" {
		t.Errorf("fragment = %q", frag)
	}
	if p.args[0] != "%x%" || p.args[1] != "%y%" {
		t.Errorf("args = %#v", p.args)
	}
}

func TestProjection(t *testing.T) {
	if got, _ := projection(nil); got != "*" {
		t.Errorf("projection(nil) = %q", got)
	}
	if got, _ := projection([]string{"id", "name"}); got != "id, name" {
		t.Errorf("projection = %q", got)
	}
	if _, err := projection([]string{"id", " "}); !errors.Is(err, ErrInvalidColumns) {
		t.Errorf("error = %v, want ErrInvalidColumns", err)
	}
}

func TestNormalizeValue(t *testing.T) {
	if got := normalizeValue(int8(3)); got != int64(3) {
		t.Errorf("int8 → %#v", got)
	}
	if got := normalizeValue(uint32(9)); got != int64(9) {
		t.Errorf("uint32 → %#v", got)
	}
	if got := normalizeValue(float32(1.5)); got != float64(1.5) {
		t.Errorf("float32 → %#v", got)
	}
	if got := normalizeValue(true); got != "1" {
		t.Errorf("true → %#v", got)
	}
	if got := normalizeValue(false); got != "0" {
		t.Errorf("false → %#v", got)
	}
	if got := normalizeValue(nil); got != nil {
		t.Errorf("nil → %#v", got)
	}
}
