package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

type LogExerciseInput struct {
	Name           string
	DurationMin    int
	CaloriesBurned int
	Source         string
	PerformedAt    time.Time
}

func (s *Store) LogExercise(ctx context.Context, in LogExerciseInput) (int64, error) {
	in.Name = normalizeName(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("exercise name is required")
	}
	if err := validateNonNegativeInt("duration", in.DurationMin); err != nil {
		return 0, err
	}
	if err := validateNonNegativeInt("calories burned", in.CaloriesBurned); err != nil {
		return 0, err
	}
	switch strings.TrimSpace(in.Source) {
	case "":
		in.Source = model.ExerciseSourceManual
	case model.ExerciseSourceManual, model.ExerciseSourceSynced:
		in.Source = strings.TrimSpace(in.Source)
	default:
		return 0, fmt.Errorf("invalid source %q (use manual or synced)", in.Source)
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO exercise_logs(name, duration_min, calories_burned, source, performed_at)
VALUES(?, ?, ?, ?, ?)
`, in.Name, in.DurationMin, in.CaloriesBurned, in.Source, storeTime(in.PerformedAt))
	if err != nil {
		return 0, fmt.Errorf("insert exercise log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted exercise log id: %w", err)
	}
	return id, nil
}
