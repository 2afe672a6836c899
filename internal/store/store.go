// Package store is the persistence layer: a SQLite-backed implementation of
// everything the insight and achievement engines consume, plus the mutation
// operations the CLI drives.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// Store wraps the opened database. One Store per database file; the file is
// the user scope.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func (s *Store) mealIDByName(meal string) (int64, error) {
	name := normalizeName(meal)
	if name == "" {
		return 0, fmt.Errorf("meal name is required")
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM meals WHERE name = ?`, name).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("meal %q does not exist", name)
		}
		return 0, fmt.Errorf("lookup meal %q: %w", name, err)
	}
	return id, nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func parseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dayFormat, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// storeTime renders a timestamp for storage. Everything is normalized to
// UTC so the RFC 3339 strings order lexicographically even when entries
// were written across a DST offset change.
func storeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseStoredTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", raw, err)
	}
	return t.Local(), nil
}
