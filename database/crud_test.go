package database

import (
	"errors"
	"testing"
)

func TestInsertSelectOneRoundTrip(t *testing.T) {
	db := setupDB(t, SQLite)

	id, err := db.Insert("users", Row{"name": "bob", "email": "bob@example.com", "age": 44})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 1 {
		t.Errorf("insert id = %d, want 1", id)
	}

	row, err := db.SelectOne("users", nil, Conditions{"email": "bob@example.com"})
	if err != nil {
		t.Fatalf("SelectOne: %v", err)
	}
	if row == nil {
		t.Fatal("SelectOne returned nil row")
	}
	if row["name"] != "bob" || row["email"] != "bob@example.com" || row["age"] != int64(44) {
		t.Errorf("row = %#v", row)
	}
}

func TestInsertEmptyData(t *testing.T) {
	db := setupDB(t, SQLite)
	if _, err := db.Insert("users", Row{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("error = %v, want ErrEmptyData", err)
	}
}

func TestSelectProjectionAndOrder(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "carol", "carol@example.com", 31)
	seedUser(t, db, "alice", "alice@example.com", 28)

	rows, err := db.Select("users", []string{"name"}, nil, "name ASC")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0]["name"] != "alice" || rows[1]["name"] != "carol" {
		t.Errorf("order wrong: %#v", rows)
	}
	if _, ok := rows[0]["email"]; ok {
		t.Error("projection leaked email column")
	}
}

func TestSelectOneMissingReturnsNil(t *testing.T) {
	db := setupDB(t, SQLite)
	row, err := db.SelectOne("users", nil, Conditions{"email": "nobody@example.com"})
	if err != nil {
		t.Fatalf("SelectOne: %v", err)
	}
	if row != nil {
		t.Errorf("row = %#v, want nil", row)
	}
}

func TestUpdateRequiresConditions(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "dan", "dan@example.com", 50)

	if _, err := db.Update("users", Row{"age": 51}, Conditions{}); !errors.Is(err, ErrEmptyConditions) {
		t.Errorf("error = %v, want ErrEmptyConditions", err)
	}
	if _, err := db.Update("users", Row{}, Conditions{"email": "dan@example.com"}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("error = %v, want ErrEmptyData", err)
	}

	n, err := db.Update("users", Row{"age": 51}, Conditions{"email": "dan@example.com"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}

	row, _ := db.SelectOne("users", []string{"age"}, Conditions{"email": "dan@example.com"})
	if row["age"] != int64(51) {
		t.Errorf("age = %#v, want 51", row["age"])
	}
}

func TestUpdateAllBypassesConditionRequirement(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "a", "a@example.com", 1)
	seedUser(t, db, "b", "b@example.com", 2)

	n, err := db.UpdateAll("users", Row{"active": 0})
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if n != 2 {
		t.Errorf("affected = %d, want 2", n)
	}
}

// The same column in SET and WHERE within one UPDATE must bind both
// values, whichever strategy is active.
func TestUpdateSameColumnInSetAndWhere(t *testing.T) {
	for _, backend := range []Backend{SQLite, MySQL} {
		db := setupDB(t, backend)
		seedUser(t, db, "old", "x@example.com", 1)

		n, err := db.Update("users", Row{"name": "new"}, Conditions{"name": "old"})
		if err != nil {
			t.Fatalf("[%s] Update: %v", backend, err)
		}
		if n != 1 {
			t.Errorf("[%s] affected = %d, want 1", backend, n)
		}

		row, _ := db.SelectOne("users", []string{"name"}, Conditions{"email": "x@example.com"})
		if row["name"] != "new" {
			t.Errorf("[%s] name = %#v", backend, row["name"])
		}
	}
}

func TestDeleteRequiresConditions(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "gone", "gone@example.com", 9)

	if _, err := db.Delete("users", nil); !errors.Is(err, ErrEmptyConditions) {
		t.Errorf("error = %v, want ErrEmptyConditions", err)
	}

	n, err := db.Delete("users", Conditions{"email": "gone@example.com"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}
}

func TestDeleteAllConfirmFlag(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "a", "a@example.com", 1)
	seedUser(t, db, "b", "b@example.com", 2)

	if _, err := db.DeleteAll("users", false); !errors.Is(err, ErrConfirmRequired) {
		t.Errorf("error = %v, want ErrConfirmRequired", err)
	}

	prior, err := db.DeleteAll("users", true)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if prior != 2 {
		t.Errorf("prior count = %d, want 2", prior)
	}

	count, _ := db.Count("users", nil)
	if count != 0 {
		t.Errorf("count after DeleteAll = %d, want 0", count)
	}
}

func TestExistsAgreesWithCount(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "eve", "eve@example.com", 27)

	for _, cond := range []Conditions{
		{"email": "eve@example.com"},
		{"email": "nobody@example.com"},
		{"name": "eve", "age": 27},
		{"name": "eve", "age": 99},
	} {
		exists, err := db.Exists("users", cond)
		if err != nil {
			t.Fatalf("Exists(%v): %v", cond, err)
		}
		count, err := db.Count("users", cond)
		if err != nil {
			t.Fatalf("Count(%v): %v", cond, err)
		}
		if exists != (count > 0) {
			t.Errorf("Exists=%v but Count=%d for %v", exists, count, cond)
		}
	}

	if _, err := db.Exists("users", nil); !errors.Is(err, ErrEmptyConditions) {
		t.Errorf("Exists(nil) error = %v, want ErrEmptyConditions", err)
	}
}

func TestSearchLikeOperators(t *testing.T) {
	db := setupDB(t, SQLite)
	seedUser(t, db, "xavier", "xavier@example.com", 1)
	seedUser(t, db, "yvonne", "y@other.org", 2)
	seedUser(t, db, "zed", "zed@other.org", 3)

	// OR: name contains "x" OR email contains "y".
	rows, err := db.SearchLike("users", nil, Conditions{"name": "x", "email": "y"}, "OR")
	if err != nil {
		t.Fatalf("SearchLike OR: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("OR matched %d rows, want 2 (xavier, yvonne)", len(rows))
	}

	// AND: both must match.
	rows, err = db.SearchLike("users", nil, Conditions{"name": "x", "email": "x"}, "AND")
	if err != nil {
		t.Fatalf("SearchLike AND: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "xavier" {
		t.Errorf("AND rows = %#v", rows)
	}

	if _, err := db.SearchLike("users", nil, Conditions{"name": "x"}, "NOR"); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("error = %v, want ErrInvalidOperator", err)
	}
	if _, err := db.SearchLike("users", nil, Conditions{}, "AND"); !errors.Is(err, ErrEmptyConditions) {
		t.Errorf("error = %v, want ErrEmptyConditions", err)
	}
}

// Run the basic CRUD cycle through the positional strategy as well.
func TestCRUDPositionalStrategy(t *testing.T) {
	db := setupDB(t, MySQL)

	id, err := db.Insert("users", Row{"name": "pat", "email": "pat@example.com", "age": 33})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 1 {
		t.Errorf("insert id = %d, want 1", id)
	}

	row, err := db.SelectOne("users", nil, Conditions{"name": "pat", "age": 33})
	if err != nil {
		t.Fatalf("SelectOne: %v", err)
	}
	if row == nil || row["email"] != "pat@example.com" {
		t.Fatalf("row = %#v", row)
	}

	if _, err := db.Update("users", Row{"age": 34}, Conditions{"email": "pat@example.com"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	n, err := db.Delete("users", Conditions{"age": 34})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}
}

func TestQueryErrorWrapsDriverError(t *testing.T) {
	db := setupDB(t, SQLite)

	_, err := db.Select("no_such_table", nil, nil, "")
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("error %T does not wrap QueryError", err)
	}
	if qe.Op != "select" || qe.Query == "" || qe.Err == nil {
		t.Errorf("QueryError = %+v", qe)
	}
}
