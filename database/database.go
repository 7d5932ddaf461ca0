package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Row is a single result record or an insert/update column map: column
// name to scalar value.
type Row map[string]any

// Conditions is an equality (or LIKE) filter: column name to value,
// combined with a boolean joiner.
type Conditions map[string]any

// runner carries the pieces shared by DB and Tx: something that can run
// statements (a *sqlx.DB or *sqlx.Tx), the backend tag, and the binder
// strategy selected at Open time.
type runner struct {
	ext     sqlx.Ext
	backend Backend
	binder  binder
}

// DB wraps an open sqlx connection together with its backend kind and
// binding convention. All CRUD helpers hang off DB (and off Tx with
// identical semantics inside a transaction).
type DB struct {
	runner
	conn *sqlx.DB
}

// Open connects to the configured backend and selects the parameter
// binding strategy for the connection's lifetime.
func Open(cfg Config) (*DB, error) {
	backend, err := ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, err
	}
	cfg.Backend = backend

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Connect(backend.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("stand: connect %s: %w", backend, err)
	}
	return OpenDB(conn, backend), nil
}

// OpenDB wraps an existing sqlx connection. The caller keeps ownership
// of the handle; Close only closes connections created by Open.
func OpenDB(conn *sqlx.DB, backend Backend) *DB {
	return &DB{
		runner: runner{ext: conn, backend: backend, binder: binderFor(backend)},
		conn:   conn,
	}
}

// Unwrap returns the underlying sqlx connection.
func (db *DB) Unwrap() *sqlx.DB { return db.conn }

// Close closes the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

// Tx is an open transaction exposing the same CRUD surface as DB.
// Transactions do not nest and are not rolled back automatically; the
// caller must Commit or Rollback.
type Tx struct {
	runner
	tx *sqlx.Tx
}

// Begin starts a transaction.
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return nil, fmt.Errorf("stand: begin: %w", err)
	}
	return &Tx{
		runner: runner{ext: tx, backend: db.backend, binder: db.binder},
		tx:     tx,
	}, nil
}

// Commit commits the transaction.
func (tx *Tx) Commit() error { return tx.tx.Commit() }

// Rollback aborts the transaction.
func (tx *Tx) Rollback() error { return tx.tx.Rollback() }
