package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AddWater adds ounces to the day's running total (upsert) and returns the
// new total for the day.
func (s *Store) AddWater(ctx context.Context, day time.Time, ounces float64) (float64, error) {
	if ounces <= 0 {
		return 0, fmt.Errorf("ounces must be > 0")
	}
	key := beginningOfDay(day).Format(dayFormat)
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO water_logs(day, ounces, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(day) DO UPDATE SET
  ounces = ounces + excluded.ounces,
  updated_at = CURRENT_TIMESTAMP
`, key, ounces); err != nil {
		return 0, fmt.Errorf("add water: %w", err)
	}

	var total float64
	if err := s.db.QueryRowContext(ctx, `SELECT ounces FROM water_logs WHERE day = ?`, key).Scan(&total); err != nil {
		return 0, fmt.Errorf("read water total: %w", err)
	}
	return total, nil
}

// WaterForDay returns the day's total ounces, or 0 when nothing is tracked.
func (s *Store) WaterForDay(ctx context.Context, day time.Time) (float64, error) {
	key := beginningOfDay(day).Format(dayFormat)
	var total float64
	err := s.db.QueryRowContext(ctx, `SELECT ounces FROM water_logs WHERE day = ?`, key).Scan(&total)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("read water total: %w", err)
	}
	return total, nil
}
