package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

func TestStatusMissingRowIsZeroValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	status, err := st.Status(ctx, "first_log")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.ID != "" || status.Unlocked || status.Progress != 0 {
		t.Fatalf("expected the zero value for a missing row, got %+v", status)
	}
}

func TestSaveStatusUpserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.Local)

	first := model.UserAchievementStatus{
		ID:              "row-1",
		AchievementID:   "streak_7",
		Progress:        3,
		LastCreditedDay: "2026-05-04",
		UpdatedAt:       now,
	}
	if err := st.SaveStatus(ctx, first); err != nil {
		t.Fatalf("save status: %v", err)
	}

	unlockedAt := now.AddDate(0, 0, 4)
	first.Unlocked = true
	first.UnlockedAt = &unlockedAt
	first.Progress = 7
	first.LastCreditedDay = "2026-05-08"
	first.UpdatedAt = unlockedAt
	if err := st.SaveStatus(ctx, first); err != nil {
		t.Fatalf("save status again: %v", err)
	}

	got, err := st.Status(ctx, "streak_7")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !got.Unlocked || got.Progress != 7 {
		t.Fatalf("expected the upserted state, got %+v", got)
	}
	if got.UnlockedAt == nil || !got.UnlockedAt.Equal(unlockedAt) {
		t.Fatalf("expected unlock time round trip, got %v", got.UnlockedAt)
	}
	if got.LastCreditedDay != "2026-05-08" {
		t.Fatalf("expected the credited day to round trip, got %q", got.LastCreditedDay)
	}

	all, err := st.AllStatuses(ctx)
	if err != nil {
		t.Fatalf("all statuses: %v", err)
	}
	if len(all) != 1 || all["streak_7"].Progress != 7 {
		t.Fatalf("unexpected statuses %+v", all)
	}
}

func TestAddPointsDerivesLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	total, level, err := st.AddPoints(ctx, 60)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if total != 60 || level != 1 {
		t.Fatalf("expected 60 points at level 1, got %d at %d", total, level)
	}

	total, level, err = st.AddPoints(ctx, 50)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if total != 110 || level != 2 {
		t.Fatalf("expected 110 points at level 2, got %d at %d", total, level)
	}

	// The floor is zero even for a large negative adjustment.
	total, level, err = st.AddPoints(ctx, -500)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if total != 0 || level != 1 {
		t.Fatalf("expected the floor at 0 points, got %d at %d", total, level)
	}

	points, statsLevel, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if points != 0 || statsLevel != 1 {
		t.Fatalf("stats should match the last write, got %d at %d", points, statsLevel)
	}
}

func TestChallengePersistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local)

	batch := []model.Challenge{
		{
			ID:        "c1",
			Type:      model.ChallengeLoggingStreak,
			Title:     "Log food 3 days this week",
			Goal:      3,
			Points:    30,
			CreatedAt: now,
			ExpiresAt: now.Add(7 * 24 * time.Hour),
		},
		{
			ID:        "c2",
			Type:      model.ChallengeWorkoutLogged,
			Title:     "Log 3 workouts",
			Goal:      3,
			Points:    45,
			CreatedAt: now,
			ExpiresAt: now.Add(7 * 24 * time.Hour),
		},
	}
	if err := st.SaveChallenges(ctx, batch); err != nil {
		t.Fatalf("save challenges: %v", err)
	}

	loaded, err := st.Challenges(ctx)
	if err != nil {
		t.Fatalf("load challenges: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected two challenges, got %d", len(loaded))
	}
	if loaded[0].ID != "c1" || loaded[0].Type != model.ChallengeLoggingStreak {
		t.Fatalf("unexpected first challenge %+v", loaded[0])
	}
	if !loaded[0].ExpiresAt.Equal(now.Add(7 * 24 * time.Hour)) {
		t.Fatalf("expected expiry round trip, got %v", loaded[0].ExpiresAt)
	}

	loaded[1].Progress = 2
	loaded[1].Completed = false
	if err := st.UpdateChallenge(ctx, loaded[1]); err != nil {
		t.Fatalf("update challenge: %v", err)
	}
	reloaded, err := st.Challenges(ctx)
	if err != nil {
		t.Fatalf("reload challenges: %v", err)
	}
	if reloaded[1].Progress != 2 {
		t.Fatalf("expected progress 2 after update, got %d", reloaded[1].Progress)
	}

	if err := st.UpdateChallenge(ctx, model.Challenge{ID: "ghost"}); err == nil {
		t.Fatal("expected error updating a missing challenge")
	}
}
