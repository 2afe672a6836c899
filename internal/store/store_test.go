package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oms2304/nutra-cli/internal/db"
	"github.com/oms2304/nutra-cli/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutra.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb)
}

func TestLogFoodAndDayLog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	day := time.Date(2026, 5, 4, 8, 30, 0, 0, time.Local)

	if _, err := st.LogFood(ctx, store.LogFoodInput{
		Name:     "oatmeal",
		Meal:     "breakfast",
		Calories: 300,
		ProteinG: 10,
		CarbsG:   55,
		FatG:     5,
		FiberG:   8,
		LoggedAt: day,
	}); err != nil {
		t.Fatalf("log oatmeal: %v", err)
	}
	if _, err := st.LogFood(ctx, store.LogFoodInput{
		Name:     "chicken salad",
		Meal:     "Lunch",
		Calories: 550,
		ProteinG: 40,
		CarbsG:   20,
		FatG:     30,
		LoggedAt: day.Add(5 * time.Hour),
	}); err != nil {
		t.Fatalf("log lunch: %v", err)
	}
	if _, err := st.LogExercise(ctx, store.LogExerciseInput{
		Name:           "Morning Run",
		DurationMin:    30,
		CaloriesBurned: 280,
		PerformedAt:    day.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("log exercise: %v", err)
	}
	if _, err := st.AddWater(ctx, day, 20); err != nil {
		t.Fatalf("add water: %v", err)
	}

	log, err := st.DayLog(ctx, day)
	if err != nil {
		t.Fatalf("day log: %v", err)
	}
	if len(log.Meals) != 2 {
		t.Fatalf("expected 2 meals with items, got %d", len(log.Meals))
	}
	breakfast := log.Meal("breakfast")
	if breakfast == nil || len(breakfast.Items) != 1 {
		t.Fatalf("expected one breakfast item, got %+v", breakfast)
	}
	item := breakfast.Items[0]
	if item.Calories != 300 || item.FiberG != 8 {
		t.Fatalf("unexpected breakfast item %+v", item)
	}
	if item.LoggedAt == nil || !item.LoggedAt.Equal(day) {
		t.Fatalf("expected logged-at round trip, got %v", item.LoggedAt)
	}
	if len(log.Exercises) != 1 || log.Exercises[0].Name != "morning run" {
		t.Fatalf("unexpected exercises %+v", log.Exercises)
	}
	if log.Water == nil || log.Water.Ounces != 20 {
		t.Fatalf("expected 20oz of water, got %+v", log.Water)
	}
}

func TestLogFoodValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	if _, err := st.LogFood(ctx, store.LogFoodInput{Meal: "snack", Calories: 100}); err == nil {
		t.Fatal("expected error for a missing name")
	}
	if _, err := st.LogFood(ctx, store.LogFoodInput{Name: "mystery", Meal: "snack", Calories: -5}); err == nil {
		t.Fatal("expected error for negative calories")
	}
	if _, err := st.LogFood(ctx, store.LogFoodInput{Name: "toast", Meal: "brunch", Calories: 200}); err == nil {
		t.Fatal("expected error for an unknown meal")
	}
}

func TestDeleteFood(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	id, err := st.LogFood(ctx, store.LogFoodInput{Name: "apple", Meal: "snack", Calories: 80})
	if err != nil {
		t.Fatalf("log food: %v", err)
	}
	if err := st.DeleteFood(ctx, id); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	if err := st.DeleteFood(ctx, id); err == nil {
		t.Fatal("expected error deleting a missing item")
	}
}

func TestFetchLogsSkipsEmptyDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	d1 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)
	d3 := d1.AddDate(0, 0, 2)

	if _, err := st.LogFood(ctx, store.LogFoodInput{Name: "sandwich", Meal: "lunch", Calories: 450, LoggedAt: d1}); err != nil {
		t.Fatalf("log food: %v", err)
	}
	if _, err := st.AddWater(ctx, d3, 32); err != nil {
		t.Fatalf("add water: %v", err)
	}

	logs, err := st.FetchLogs(ctx, d1, d1.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("fetch logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 non-empty days, got %d", len(logs))
	}
	if !logs[0].Date.Before(logs[1].Date) {
		t.Fatal("expected ascending date order")
	}
	if !logs[0].HasFood() {
		t.Fatal("first day should carry the sandwich")
	}
	if logs[1].HasFood() || logs[1].Water == nil {
		t.Fatalf("second day should be water only, got %+v", logs[1])
	}
}

func TestLoggedDaysRequireFood(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	d1 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local)
	d2 := d1.AddDate(0, 0, 1)

	if _, err := st.LogFood(ctx, store.LogFoodInput{Name: "eggs", Meal: "breakfast", Calories: 220, LoggedAt: d1}); err != nil {
		t.Fatalf("log food: %v", err)
	}
	if _, err := st.AddWater(ctx, d2, 16); err != nil {
		t.Fatalf("add water: %v", err)
	}

	days, err := st.LoggedDays(ctx, d1, d2)
	if err != nil {
		t.Fatalf("logged days: %v", err)
	}
	if !days[d1.Format("2006-01-02")] {
		t.Fatal("day with food should count as logged")
	}
	if days[d2.Format("2006-01-02")] {
		t.Fatal("a water-only day is not a logged food day")
	}
}

func TestAddWaterAccumulates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	day := time.Date(2026, 5, 2, 10, 0, 0, 0, time.Local)

	if total, err := st.AddWater(ctx, day, 16); err != nil || total != 16 {
		t.Fatalf("first add: total %v err %v", total, err)
	}
	if total, err := st.AddWater(ctx, day.Add(6*time.Hour), 24); err != nil || total != 40 {
		t.Fatalf("second add: total %v err %v", total, err)
	}
	if total, err := st.WaterForDay(ctx, day.AddDate(0, 0, 1)); err != nil || total != 0 {
		t.Fatalf("untracked day: total %v err %v", total, err)
	}
}

func TestGoalSnapshotEffectiveDates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	if err := st.SetGoals(ctx, store.SetGoalsInput{
		Calories:      intPtr(2200),
		ProteinG:      140,
		Primary:       "maintain",
		EffectiveDate: "2026-05-01",
	}); err != nil {
		t.Fatalf("set first goals: %v", err)
	}
	if err := st.SetGoals(ctx, store.SetGoalsInput{
		Calories:      intPtr(2000),
		ProteinG:      150,
		Primary:       "lose",
		EffectiveDate: "2026-05-10",
	}); err != nil {
		t.Fatalf("set second goals: %v", err)
	}

	early, err := st.GoalSnapshot(ctx, "2026-05-05")
	if err != nil {
		t.Fatalf("goal snapshot: %v", err)
	}
	if early.Calories == nil || *early.Calories != 2200 {
		t.Fatalf("expected the May 1 snapshot for May 5, got %+v", early)
	}

	late, err := st.GoalSnapshot(ctx, "2026-05-15")
	if err != nil {
		t.Fatalf("goal snapshot: %v", err)
	}
	if late.Calories == nil || *late.Calories != 2000 || late.Primary != "lose" {
		t.Fatalf("expected the May 10 snapshot for May 15, got %+v", late)
	}

	// Before any goal existed, the default is an empty maintain snapshot.
	none, err := st.GoalSnapshot(ctx, "2026-04-01")
	if err != nil {
		t.Fatalf("goal snapshot: %v", err)
	}
	if none.Calories != nil || none.Primary != "maintain" {
		t.Fatalf("expected the default snapshot before any goal, got %+v", none)
	}
}

func TestSetGoalsValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	if err := st.SetGoals(ctx, store.SetGoalsInput{Primary: "bulk"}); err == nil {
		t.Fatal("expected error for an invalid primary goal")
	}
	if err := st.SetGoals(ctx, store.SetGoalsInput{ProteinG: -1}); err == nil {
		t.Fatal("expected error for negative protein")
	}
	if err := st.SetGoals(ctx, store.SetGoalsInput{EffectiveDate: "05/01/2026"}); err == nil {
		t.Fatal("expected error for a malformed date")
	}
}

func TestSleepSamples(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	start := time.Date(2026, 5, 3, 23, 0, 0, 0, time.Local)

	if _, err := st.AddSleepSample(ctx, store.SleepSampleInput{Start: start, End: start.Add(7 * time.Hour), State: "asleep"}); err != nil {
		t.Fatalf("add sleep sample: %v", err)
	}
	if _, err := st.AddSleepSample(ctx, store.SleepSampleInput{Start: start, End: start, State: "asleep"}); err == nil {
		t.Fatal("expected error when end does not follow start")
	}
	if _, err := st.AddSleepSample(ctx, store.SleepSampleInput{Start: start, End: start.Add(time.Hour), State: "napping"}); err == nil {
		t.Fatal("expected error for an unknown state")
	}

	samples, err := st.FetchSleepSamples(ctx, start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch sleep samples: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected one sample, got %d", len(samples))
	}
	if !samples[0].Start.Equal(start) || samples[0].State != "asleep" {
		t.Fatalf("unexpected sample %+v", samples[0])
	}
}

func TestSleepSamplesOrderAcrossOffsetChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	// Two samples written across a DST-style offset change. Their wall-clock
	// RFC 3339 strings would sort in the wrong order; the instants must win.
	winter := time.FixedZone("CET", 1*60*60)
	summer := time.FixedZone("CEST", 2*60*60)
	earlier := time.Date(2026, 3, 29, 3, 30, 0, 0, summer) // 01:30 UTC
	later := time.Date(2026, 3, 29, 3, 0, 0, 0, winter)    // 02:00 UTC

	if _, err := st.AddSleepSample(ctx, store.SleepSampleInput{Start: later, End: later.Add(time.Hour), State: "asleep"}); err != nil {
		t.Fatalf("add later sample: %v", err)
	}
	if _, err := st.AddSleepSample(ctx, store.SleepSampleInput{Start: earlier, End: earlier.Add(time.Hour), State: "asleep"}); err != nil {
		t.Fatalf("add earlier sample: %v", err)
	}

	samples, err := st.FetchSleepSamples(ctx, earlier.Add(-time.Hour), later.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("fetch sleep samples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected both samples, got %d", len(samples))
	}
	if !samples[0].Start.Equal(earlier) || !samples[1].Start.Equal(later) {
		t.Fatalf("expected ascending start instants, got %v then %v", samples[0].Start, samples[1].Start)
	}
}

func TestWeightEntriesConvertToPounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	when := time.Date(2026, 5, 4, 7, 0, 0, 0, time.Local)

	if _, err := st.AddWeightEntry(ctx, store.WeightInput{Weight: 180, Unit: "lb", RecordedAt: when}); err != nil {
		t.Fatalf("add lb entry: %v", err)
	}
	if _, err := st.AddWeightEntry(ctx, store.WeightInput{Weight: 80, Unit: "kg", RecordedAt: when.AddDate(0, 0, 1)}); err != nil {
		t.Fatalf("add kg entry: %v", err)
	}
	if _, err := st.AddWeightEntry(ctx, store.WeightInput{Weight: 12, Unit: "stone", RecordedAt: when}); err == nil {
		t.Fatal("expected error for an unsupported unit")
	}

	history, err := st.WeightHistory(ctx)
	if err != nil {
		t.Fatalf("weight history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected two entries, got %d", len(history))
	}
	if history[0].WeightLb != 180 {
		t.Fatalf("expected the lb entry first, got %+v", history[0])
	}
	if history[1].WeightLb < 176 || history[1].WeightLb > 177 {
		t.Fatalf("expected 80kg to convert to roughly 176.4lb, got %v", history[1].WeightLb)
	}
}

func intPtr(v int) *int { return &v }
