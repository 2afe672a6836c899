package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/model"
)

// Status loads one achievement's persisted state. A missing row - and a row
// that fails to decode - both come back as the zero value, which the engine
// treats as locked with no progress.
func (s *Store) Status(ctx context.Context, achievementID string) (model.UserAchievementStatus, error) {
	var st model.UserAchievementStatus
	var unlockedAt sql.NullString
	var updatedAtRaw string
	err := s.db.QueryRowContext(ctx, `
SELECT id, achievement_id, unlocked, unlocked_at, progress, last_credited_day, updated_at
FROM achievement_status
WHERE achievement_id = ?
`, achievementID).Scan(&st.ID, &st.AchievementID, &st.Unlocked, &unlockedAt, &st.Progress, &st.LastCreditedDay, &updatedAtRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.UserAchievementStatus{}, nil
		}
		return model.UserAchievementStatus{}, fmt.Errorf("load achievement status %s: %w", achievementID, err)
	}

	updatedAt, err := parseStoredTime(updatedAtRaw)
	if err != nil {
		// Corrupt row: fall back to the default locked state rather than
		// failing the whole status fetch.
		return model.UserAchievementStatus{}, nil
	}
	st.UpdatedAt = updatedAt
	if unlockedAt.Valid && unlockedAt.String != "" {
		t, err := parseStoredTime(unlockedAt.String)
		if err != nil {
			return model.UserAchievementStatus{}, nil
		}
		st.UnlockedAt = &t
	}
	return st, nil
}

// AllStatuses returns the persisted state keyed by achievement ID.
func (s *Store) AllStatuses(ctx context.Context) (map[string]model.UserAchievementStatus, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT achievement_id FROM achievement_status
`)
	if err != nil {
		return nil, fmt.Errorf("query achievement statuses: %w", err)
	}
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan achievement id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate achievement ids: %w", err)
	}
	rows.Close()

	out := map[string]model.UserAchievementStatus{}
	for _, id := range ids {
		st, err := s.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		if st.ID != "" {
			out[id] = st
		}
	}
	return out, nil
}

// SaveStatus upserts one achievement's state.
func (s *Store) SaveStatus(ctx context.Context, st model.UserAchievementStatus) error {
	var unlockedAt any
	if st.UnlockedAt != nil {
		unlockedAt = storeTime(*st.UnlockedAt)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO achievement_status(id, achievement_id, unlocked, unlocked_at, progress, last_credited_day, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(achievement_id) DO UPDATE SET
  unlocked=excluded.unlocked,
  unlocked_at=excluded.unlocked_at,
  progress=excluded.progress,
  last_credited_day=excluded.last_credited_day,
  updated_at=excluded.updated_at
`, st.ID, st.AchievementID, st.Unlocked, unlockedAt, st.Progress, st.LastCreditedDay, storeTime(st.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save achievement status %s: %w", st.AchievementID, err)
	}
	return nil
}

// AddPoints applies a points delta with a read-modify-write inside one
// transaction: read the total, add, derive the level, write both together.
// This is what keeps concurrent unlocks from losing updates.
func (s *Store) AddPoints(ctx context.Context, delta int) (total, level int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin points tx: %w", err)
	}

	var current int
	if err := tx.QueryRowContext(ctx, `SELECT points FROM user_stats WHERE id = 1`).Scan(&current); err != nil {
		_ = tx.Rollback()
		return 0, 0, fmt.Errorf("read points total: %w", err)
	}
	total = current + delta
	if total < 0 {
		total = 0
	}
	level = achievement.LevelForPoints(total)
	if _, err := tx.ExecContext(ctx, `UPDATE user_stats SET points = ?, level = ? WHERE id = 1`, total, level); err != nil {
		_ = tx.Rollback()
		return 0, 0, fmt.Errorf("write points total: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit points tx: %w", err)
	}
	return total, level, nil
}

// Stats returns the current points total and level.
func (s *Store) Stats(ctx context.Context) (points, level int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT points, level FROM user_stats WHERE id = 1`).Scan(&points, &level); err != nil {
		return 0, 0, fmt.Errorf("read user stats: %w", err)
	}
	return points, level, nil
}

// Challenges returns every stored challenge, newest batch first.
func (s *Store) Challenges(ctx context.Context) ([]model.Challenge, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, type, title, goal, progress, points, completed, created_at, expires_at
FROM challenges
ORDER BY created_at DESC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	items := make([]model.Challenge, 0)
	for rows.Next() {
		var ch model.Challenge
		var typ, createdRaw, expiresRaw string
		if err := rows.Scan(&ch.ID, &typ, &ch.Title, &ch.Goal, &ch.Progress, &ch.Points, &ch.Completed, &createdRaw, &expiresRaw); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		ch.Type = model.ChallengeType(typ)
		if ch.CreatedAt, err = parseStoredTime(createdRaw); err != nil {
			return nil, err
		}
		if ch.ExpiresAt, err = parseStoredTime(expiresRaw); err != nil {
			return nil, err
		}
		items = append(items, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenges: %w", err)
	}
	return items, nil
}

// SaveChallenges persists a generated batch in a single transaction.
func (s *Store) SaveChallenges(ctx context.Context, batch []model.Challenge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin challenge batch tx: %w", err)
	}
	for _, ch := range batch {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO challenges(id, type, title, goal, progress, points, completed, created_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, ch.ID, string(ch.Type), ch.Title, ch.Goal, ch.Progress, ch.Points, ch.Completed,
			storeTime(ch.CreatedAt), storeTime(ch.ExpiresAt)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert challenge %s: %w", ch.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit challenge batch: %w", err)
	}
	return nil
}

// UpdateChallenge writes back one challenge's progress and completion.
func (s *Store) UpdateChallenge(ctx context.Context, ch model.Challenge) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE challenges SET progress = ?, completed = ? WHERE id = ?
`, ch.Progress, ch.Completed, ch.ID)
	if err != nil {
		return fmt.Errorf("update challenge %s: %w", ch.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("challenge %s does not exist", ch.ID)
	}
	return nil
}
