// Package achievement tracks unlockable milestones, time-boxed challenges,
// and the points/level progression they share.
//
// Each achievement moves through locked-no-progress, locked-with-progress,
// and unlocked; unlocked is terminal. Progress is monotonic and clamped to
// [0, criteria value]. Every points award goes through the store's
// transactional counter so concurrent unlocks can't lose updates.
package achievement

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
)

const dayFormat = "2006-01-02"

// Goal-hit tolerance bands.
const (
	calorieHitTolerance  = 100
	proteinHitToleranceG = 10.0
	carbsHitToleranceG   = 20.0
	fatHitToleranceG     = 5.0
	targetWeightBandLb   = 0.5
	streakLookbackDays   = 60
)

// Store is the persistence collaborator the engine needs. AddPoints must be
// a transactional read-modify-write: read the current total, add the delta,
// derive the new level, and write both in the same transaction.
type Store interface {
	Status(ctx context.Context, achievementID string) (model.UserAchievementStatus, error)
	SaveStatus(ctx context.Context, st model.UserAchievementStatus) error
	AddPoints(ctx context.Context, delta int) (total, level int, err error)

	DayLog(ctx context.Context, day time.Time) (model.DailyLog, error)
	LoggedDays(ctx context.Context, from, to time.Time) (map[string]bool, error)
	GoalSnapshot(ctx context.Context, day string) (model.GoalSettings, error)
	WeightHistory(ctx context.Context) ([]model.WeightEntry, error)

	Challenges(ctx context.Context) ([]model.Challenge, error)
	SaveChallenges(ctx context.Context, batch []model.Challenge) error
	UpdateChallenge(ctx context.Context, ch model.Challenge) error
}

// Engine evaluates unlock conditions in response to log mutation events.
// Collaborators arrive through the constructor; the engine holds no global
// state.
type Engine struct {
	store Store
	defs  []model.AchievementDefinition
	rng   *rand.Rand
	now   func() time.Time
}

// NewEngine builds an engine over the static catalog. rng drives challenge
// sampling; pass a seeded source for deterministic behavior, or nil for a
// time-seeded one.
func NewEngine(store Store, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		store: store,
		defs:  Definitions(),
		rng:   rng,
		now:   time.Now,
	}
}

// OnLogMutated re-derives the day's totals and advances every log-driven
// achievement: first log, calorie/macro/water goal hits, and the logging
// streak. Safe to call on every mutation; already-unlocked achievements and
// already-credited days are no-ops.
func (e *Engine) OnLogMutated(ctx context.Context, day time.Time) error {
	log, err := e.store.DayLog(ctx, day)
	if err != nil {
		return fmt.Errorf("load day log: %w", err)
	}
	dayKey := day.Format(dayFormat)

	goals, err := e.store.GoalSnapshot(ctx, dayKey)
	if err != nil {
		return fmt.Errorf("load goal snapshot: %w", err)
	}

	if goals.WaterOz > 0 && log.Water != nil && log.Water.Ounces >= goals.WaterOz {
		if err := e.creditDailyHit(ctx, model.CriteriaWaterGoalHits, dayKey); err != nil {
			return err
		}
	}
	if !log.HasFood() {
		return nil
	}

	totals := nutrition.LogTotals(log)
	if goals.Calories != nil && math.Abs(float64(totals.Calories-*goals.Calories)) <= calorieHitTolerance {
		if err := e.creditDailyHit(ctx, model.CriteriaCalorieGoalHits, dayKey); err != nil {
			return err
		}
	}
	if macroGoalHit(totals, goals) {
		if err := e.creditDailyHit(ctx, model.CriteriaMacroGoalHits, dayKey); err != nil {
			return err
		}
	}

	streak, err := e.loggingStreak(ctx, day)
	if err != nil {
		return err
	}
	for _, def := range e.defs {
		if def.CriteriaType != model.CriteriaLoggingStreak {
			continue
		}
		if err := e.advance(ctx, def, streak); err != nil {
			return err
		}
	}
	return nil
}

func macroGoalHit(totals nutrition.Totals, goals model.GoalSettings) bool {
	if goals.ProteinG <= 0 || goals.CarbsG <= 0 || goals.FatG <= 0 {
		return false
	}
	return math.Abs(totals.ProteinG-goals.ProteinG) <= proteinHitToleranceG &&
		math.Abs(totals.CarbsG-goals.CarbsG) <= carbsHitToleranceG &&
		math.Abs(totals.FatG-goals.FatG) <= fatHitToleranceG
}

// loggingStreak counts consecutive calendar days ending at day that have at
// least one food item logged.
func (e *Engine) loggingStreak(ctx context.Context, day time.Time) (int, error) {
	from := day.AddDate(0, 0, -(streakLookbackDays - 1))
	logged, err := e.store.LoggedDays(ctx, from, day)
	if err != nil {
		return 0, fmt.Errorf("load logged days: %w", err)
	}
	streak := 0
	for d := day; logged[d.Format(dayFormat)]; d = d.AddDate(0, 0, -1) {
		streak++
		if streak >= streakLookbackDays {
			break
		}
	}
	return streak, nil
}

// OnWeightUpdated checks the first weigh-in, cumulative weight change from
// the first historical entry, and target-weight-reached.
func (e *Engine) OnWeightUpdated(ctx context.Context) error {
	history, err := e.store.WeightHistory(ctx)
	if err != nil {
		return fmt.Errorf("load weight history: %w", err)
	}
	if len(history) == 0 {
		return nil
	}
	first := history[0]
	latest := history[len(history)-1]
	change := math.Abs(latest.WeightLb - first.WeightLb)

	for _, def := range e.defs {
		if def.CriteriaType != model.CriteriaWeightChange {
			continue
		}
		if err := e.advance(ctx, def, int(change)); err != nil {
			return err
		}
	}

	goals, err := e.store.GoalSnapshot(ctx, e.now().Format(dayFormat))
	if err != nil {
		return fmt.Errorf("load goal snapshot: %w", err)
	}
	if goals.TargetWeightLb != nil && math.Abs(latest.WeightLb-*goals.TargetWeightLb) <= targetWeightBandLb {
		for _, def := range e.defs {
			if def.CriteriaType == model.CriteriaTargetWeight {
				if err := e.unlock(ctx, def); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// OnFeatureUsed instantly unlocks the definition whose criteria type
// matches the feature: goal-setting, barcode scan, image scan, AI recipe.
// Idempotent once unlocked.
func (e *Engine) OnFeatureUsed(ctx context.Context, criteria model.CriteriaType) error {
	for _, def := range e.defs {
		if def.CriteriaType != criteria {
			continue
		}
		if err := e.unlock(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// creditDailyHit bumps progress on every locked hit-count achievement of
// the given criteria, at most once per calendar day. The credited day key
// is recorded on the status itself, so crediting a backdated day never
// blocks the credit for the day the user is actually on.
func (e *Engine) creditDailyHit(ctx context.Context, criteria model.CriteriaType, dayKey string) error {
	for _, def := range e.defs {
		if def.CriteriaType != criteria {
			continue
		}
		st, err := e.status(ctx, def)
		if err != nil {
			return err
		}
		if st.Unlocked {
			continue
		}
		if st.LastCreditedDay == dayKey {
			// Already credited for this day; later mutations don't double-count.
			continue
		}
		st.LastCreditedDay = dayKey
		if st.Progress+1 >= def.CriteriaValue {
			if err := e.unlockStatus(ctx, def, st); err != nil {
				return err
			}
			continue
		}
		st.Progress++
		st.UpdatedAt = e.now()
		if err := e.store.SaveStatus(ctx, st); err != nil {
			return fmt.Errorf("save achievement progress %s: %w", def.ID, err)
		}
	}
	return nil
}

// advance moves a status toward unlock. Progress never decreases and is
// clamped to the criteria value; reaching it unlocks.
func (e *Engine) advance(ctx context.Context, def model.AchievementDefinition, progress int) error {
	st, err := e.status(ctx, def)
	if err != nil {
		return err
	}
	if st.Unlocked {
		return nil
	}
	next := progress
	if next > def.CriteriaValue {
		next = def.CriteriaValue
	}
	if next < st.Progress {
		next = st.Progress
	}
	if next >= def.CriteriaValue {
		return e.unlockStatus(ctx, def, st)
	}
	if next == st.Progress {
		return nil
	}
	st.Progress = next
	st.UpdatedAt = e.now()
	if err := e.store.SaveStatus(ctx, st); err != nil {
		return fmt.Errorf("save achievement progress %s: %w", def.ID, err)
	}
	return nil
}

// unlock transitions a definition straight to unlocked, awarding points.
// A no-op when already unlocked.
func (e *Engine) unlock(ctx context.Context, def model.AchievementDefinition) error {
	st, err := e.status(ctx, def)
	if err != nil {
		return err
	}
	if st.Unlocked {
		return nil
	}
	return e.unlockStatus(ctx, def, st)
}

func (e *Engine) unlockStatus(ctx context.Context, def model.AchievementDefinition, st model.UserAchievementStatus) error {
	now := e.now()
	st.Unlocked = true
	st.UnlockedAt = &now
	st.Progress = def.CriteriaValue
	st.UpdatedAt = now
	if err := e.store.SaveStatus(ctx, st); err != nil {
		return fmt.Errorf("save achievement unlock %s: %w", def.ID, err)
	}
	if _, _, err := e.store.AddPoints(ctx, def.Points); err != nil {
		return fmt.Errorf("award points for %s: %w", def.ID, err)
	}
	return nil
}

// status loads the persisted record, lazily creating the default
// locked-with-zero-progress state for definitions the user has no row for.
func (e *Engine) status(ctx context.Context, def model.AchievementDefinition) (model.UserAchievementStatus, error) {
	st, err := e.store.Status(ctx, def.ID)
	if err != nil {
		return model.UserAchievementStatus{}, fmt.Errorf("load achievement status %s: %w", def.ID, err)
	}
	if st.ID == "" {
		st = model.UserAchievementStatus{
			ID:            uuid.NewString(),
			AchievementID: def.ID,
		}
	}
	return st, nil
}
