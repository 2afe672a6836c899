// Package db opens the nutra database file and manages its schema.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open returns a handle to the nutra database at path, creating the file on
// first use. The pool is pinned to one connection; every command opens,
// migrates, and closes, so a busy timeout covers the rare overlap with
// another nutra process on the same file.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open nutra database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("reach nutra database %s: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("set connection pragmas: %w", err)
	}
	return db, nil
}
