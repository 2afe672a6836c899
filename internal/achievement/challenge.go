package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oms2304/nutra-cli/internal/model"
)

const (
	challengeBatchSize = 5
	challengeDuration  = 7 * 24 * time.Hour
)

type challengeTemplate struct {
	typ    model.ChallengeType
	title  string
	goal   int
	points int
}

// The fixed pool weekly batches are sampled from.
var challengeTemplates = []challengeTemplate{
	{model.ChallengeLoggingStreak, "Log food 3 days this week", 3, 30},
	{model.ChallengeLoggingStreak, "Log food every day this week", 7, 70},
	{model.ChallengeProteinGoalHit, "Hit your protein goal 3 times", 3, 35},
	{model.ChallengeProteinGoalHit, "Hit your protein goal 5 times", 5, 60},
	{model.ChallengeWorkoutLogged, "Log 3 workouts", 3, 45},
	{model.ChallengeWorkoutLogged, "Log 5 workouts", 5, 75},
	{model.ChallengeCalorieRange, "Stay in your calorie range 3 days", 3, 40},
	{model.ChallengeCalorieRange, "Stay in your calorie range 5 days", 5, 80},
}

// GenerateWeeklyChallenges creates a fresh batch of challenges, but only
// when the user has zero unexpired ones; otherwise it is a no-op returning
// nil. The batch samples challengeBatchSize templates uniformly without
// replacement and persists them in one write.
func (e *Engine) GenerateWeeklyChallenges(ctx context.Context) ([]model.Challenge, error) {
	existing, err := e.store.Challenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	now := e.now()
	for _, ch := range existing {
		if now.Before(ch.ExpiresAt) {
			return nil, nil
		}
	}

	perm := e.rng.Perm(len(challengeTemplates))
	batch := make([]model.Challenge, 0, challengeBatchSize)
	for _, idx := range perm[:challengeBatchSize] {
		tpl := challengeTemplates[idx]
		batch = append(batch, model.Challenge{
			ID:        uuid.NewString(),
			Type:      tpl.typ,
			Title:     tpl.title,
			Goal:      tpl.goal,
			Points:    tpl.points,
			CreatedAt: now,
			ExpiresAt: now.Add(challengeDuration),
		})
	}
	if err := e.store.SaveChallenges(ctx, batch); err != nil {
		return nil, fmt.Errorf("save challenge batch: %w", err)
	}
	return batch, nil
}

// UpdateChallengeProgress credits amount to every active challenge of the
// given type - each one independently, not just the first match. Crossing
// the goal completes the challenge (one-way) and awards its points through
// the transactional counter. Completed challenges are returned so the
// caller can announce them.
func (e *Engine) UpdateChallengeProgress(ctx context.Context, typ model.ChallengeType, amount int) ([]model.Challenge, error) {
	if amount <= 0 {
		return nil, nil
	}
	all, err := e.store.Challenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	now := e.now()

	var completed []model.Challenge
	for _, ch := range all {
		if ch.Type != typ || !ch.Active(now) {
			continue
		}
		ch.Progress += amount
		if ch.Progress >= ch.Goal {
			ch.Progress = ch.Goal
			ch.Completed = true
		}
		if err := e.store.UpdateChallenge(ctx, ch); err != nil {
			return completed, fmt.Errorf("update challenge %s: %w", ch.ID, err)
		}
		if ch.Completed {
			if _, _, err := e.store.AddPoints(ctx, ch.Points); err != nil {
				return completed, fmt.Errorf("award challenge points %s: %w", ch.ID, err)
			}
			completed = append(completed, ch)
		}
	}
	return completed, nil
}
