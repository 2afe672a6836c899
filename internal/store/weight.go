package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

const lbPerKg = 2.2046226218

type WeightInput struct {
	Weight     float64
	Unit       string
	RecordedAt time.Time
}

func convertWeightToLb(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "lb", "lbs":
		return value, nil
	case "kg":
		return value * lbPerKg, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use lb or kg)", unit)
	}
}

func (s *Store) AddWeightEntry(ctx context.Context, in WeightInput) (int64, error) {
	weightLb, err := convertWeightToLb(in.Weight, in.Unit)
	if err != nil {
		return 0, err
	}
	if in.RecordedAt.IsZero() {
		in.RecordedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO weight_entries(recorded_at, weight_lb)
VALUES(?, ?)
`, storeTime(in.RecordedAt), weightLb)
	if err != nil {
		return 0, fmt.Errorf("insert weight entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted weight entry id: %w", err)
	}
	return id, nil
}

// WeightHistory returns every entry ascending by recorded time.
func (s *Store) WeightHistory(ctx context.Context) ([]model.WeightEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, recorded_at, weight_lb
FROM weight_entries
ORDER BY recorded_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query weight history: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightEntry, 0)
	for rows.Next() {
		var e model.WeightEntry
		var recordedAtRaw string
		if err := rows.Scan(&e.ID, &recordedAtRaw, &e.WeightLb); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		if e.RecordedAt, err = parseStoredTime(recordedAtRaw); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight history: %w", err)
	}
	return items, nil
}
