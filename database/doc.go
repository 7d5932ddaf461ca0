package database

// Package database provides CRUD helpers, pagination, upserts and raw
// statement execution over a sqlx connection to MySQL, PostgreSQL or SQLite.
// The parameter-binding convention (positional placeholders vs named
// :column placeholders) is chosen once when the connection is opened;
// every helper builds its SQL through that strategy. The package is
// stateless between calls and never closes a connection handle supplied
// by the caller.
