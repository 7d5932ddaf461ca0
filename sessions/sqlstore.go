package sessions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore persists sessions in a stand_sessions table. Values are
// JSON-encoded; expiry deadlines are stored as unix timestamps so the
// same schema works across MySQL, PostgreSQL and SQLite.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore initializes the session table (if missing) and returns a
// store over the given connection. The caller keeps ownership of the
// connection.
func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS stand_sessions (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("stand: sessions: init table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

type sessionRow struct {
	ID        string `db:"id"`
	Data      string `db:"data"`
	CreatedAt int64  `db:"created_at"`
	ExpiresAt int64  `db:"expires_at"`
}

func (s *SQLStore) Load(id string) (Values, bool, error) {
	var row sessionRow
	err := s.db.Get(&row, s.db.Rebind("SELECT id, data, created_at, expires_at FROM stand_sessions WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stand: sessions: load: %w", err)
	}

	if time.Now().Unix() > row.ExpiresAt {
		_ = s.Delete(id)
		return nil, false, nil
	}

	values := make(Values)
	if err := json.Unmarshal([]byte(row.Data), &values); err != nil {
		return nil, false, fmt.Errorf("stand: sessions: decode %s: %w", id, err)
	}
	return values, true, nil
}

func (s *SQLStore) Save(id string, values Values, expiresAt time.Time) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("stand: sessions: encode %s: %w", id, err)
	}

	// Update-then-insert instead of a conflict clause so the same
	// statements run on MySQL as well as PostgreSQL and SQLite.
	res, err := s.db.Exec(s.db.Rebind("UPDATE stand_sessions SET data = ?, expires_at = ? WHERE id = ?"),
		string(data), expiresAt.Unix(), id)
	if err != nil {
		return fmt.Errorf("stand: sessions: save %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = s.db.Exec(s.db.Rebind("INSERT INTO stand_sessions (id, data, created_at, expires_at) VALUES (?, ?, ?, ?)"),
		id, string(data), time.Now().Unix(), expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("stand: sessions: save %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Delete(id string) error {
	_, err := s.db.Exec(s.db.Rebind("DELETE FROM stand_sessions WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("stand: sessions: delete %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Sweep(now time.Time) error {
	_, err := s.db.Exec(s.db.Rebind("DELETE FROM stand_sessions WHERE expires_at < ?"), now.Unix())
	if err != nil {
		return fmt.Errorf("stand: sessions: sweep: %w", err)
	}
	return nil
}
