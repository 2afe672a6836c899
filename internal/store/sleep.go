package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

type SleepSampleInput struct {
	Start time.Time
	End   time.Time
	State string
}

func (s *Store) AddSleepSample(ctx context.Context, in SleepSampleInput) (int64, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return 0, fmt.Errorf("sleep start and end are required")
	}
	if !in.End.After(in.Start) {
		return 0, fmt.Errorf("sleep end must be after start")
	}
	switch in.State {
	case model.SleepStateInBed, model.SleepStateAsleep:
	default:
		return 0, fmt.Errorf("invalid sleep state %q (use in_bed or asleep)", in.State)
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO sleep_samples(started_at, ended_at, state)
VALUES(?, ?, ?)
`, storeTime(in.Start), storeTime(in.End), in.State)
	if err != nil {
		return 0, fmt.Errorf("insert sleep sample: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted sleep sample id: %w", err)
	}
	return id, nil
}

// FetchSleepSamples returns samples overlapping [from, to], ascending by
// start time.
func (s *Store) FetchSleepSamples(ctx context.Context, from, to time.Time) ([]model.SleepSample, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, ended_at, state
FROM sleep_samples
WHERE ended_at >= ? AND started_at < ?
ORDER BY started_at ASC
`, storeTime(from), storeTime(to))
	if err != nil {
		return nil, fmt.Errorf("query sleep samples: %w", err)
	}
	defer rows.Close()

	items := make([]model.SleepSample, 0)
	for rows.Next() {
		var sample model.SleepSample
		var startRaw, endRaw string
		if err := rows.Scan(&sample.ID, &startRaw, &endRaw, &sample.State); err != nil {
			return nil, fmt.Errorf("scan sleep sample: %w", err)
		}
		if sample.Start, err = parseStoredTime(startRaw); err != nil {
			return nil, err
		}
		if sample.End, err = parseStoredTime(endRaw); err != nil {
			return nil, err
		}
		items = append(items, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sleep samples: %w", err)
	}
	return items, nil
}
