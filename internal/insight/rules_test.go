package insight_test

import (
	"testing"
	"time"

	"github.com/oms2304/nutra-cli/internal/insight"
	"github.com/oms2304/nutra-cli/internal/model"
)

func TestCalorieDeficitRespectsPrimaryGoal(t *testing.T) {
	t.Parallel()

	logs := []model.DailyLog{
		day(mar(1), model.FoodItem{Name: "salad", Calories: 1500}),
		day(mar(2), model.FoodItem{Name: "soup", Calories: 1600}),
		day(mar(3), model.FoodItem{Name: "toast", Calories: 1550}),
	}
	goals := model.GoalSettings{Calories: intPtr(2000), Primary: model.GoalMaintain}

	if _, ok := evaluateAll(insight.Input{Logs: logs, Goals: goals, Now: mar(4)})["Consistent calorie deficit"]; !ok {
		t.Fatal("expected deficit insight for a maintainer eating under 85% of goal")
	}

	goals.Primary = model.GoalLose
	if _, ok := evaluateAll(insight.Input{Logs: logs, Goals: goals, Now: mar(4)})["Consistent calorie deficit"]; ok {
		t.Fatal("deficit insight must not fire when the user is trying to lose weight")
	}
}

func TestCalorieSurplusRespectsPrimaryGoal(t *testing.T) {
	t.Parallel()

	logs := []model.DailyLog{
		day(mar(1), model.FoodItem{Name: "pizza", Calories: 2500}),
		day(mar(2), model.FoodItem{Name: "burger", Calories: 2600}),
		day(mar(3), model.FoodItem{Name: "pasta", Calories: 2550}),
	}
	goals := model.GoalSettings{Calories: intPtr(2000), Primary: model.GoalMaintain}

	if _, ok := evaluateAll(insight.Input{Logs: logs, Goals: goals, Now: mar(4)})["Consistent calorie surplus"]; !ok {
		t.Fatal("expected surplus insight for a maintainer eating over 115% of goal")
	}

	goals.Primary = model.GoalGain
	if _, ok := evaluateAll(insight.Input{Logs: logs, Goals: goals, Now: mar(4)})["Consistent calorie surplus"]; ok {
		t.Fatal("surplus insight must not fire when the user is trying to gain weight")
	}
}

func TestCalorieGoalStreakCelebratesConsistency(t *testing.T) {
	t.Parallel()

	in := insight.Input{
		Logs: []model.DailyLog{
			day(mar(1), model.FoodItem{Name: "bowl", Calories: 1950}),
			day(mar(2), model.FoodItem{Name: "bowl", Calories: 2050}),
			day(mar(3), model.FoodItem{Name: "bowl", Calories: 2000}),
		},
		Goals: model.GoalSettings{Calories: intPtr(2000), Primary: model.GoalMaintain},
		Now:   mar(4),
	}
	ins, ok := evaluateAll(in)["Right on target"]
	if !ok {
		t.Fatal("expected positive-reinforcement insight for three days within 10% of goal")
	}
	if ins.Priority != 10 {
		t.Fatalf("expected priority 10, got %d", ins.Priority)
	}
	if ins.Category != model.CategoryPositiveReinforcement {
		t.Fatalf("unexpected category %q", ins.Category)
	}
}

func TestHighSodiumAgainstGoal(t *testing.T) {
	t.Parallel()

	in := insight.Input{
		Logs: []model.DailyLog{
			day(mar(1), model.FoodItem{Name: "ramen", Calories: 600, SodiumMg: 2800}),
			day(mar(2), model.FoodItem{Name: "deli sandwich", Calories: 550, SodiumMg: 2700}),
			day(mar(3), model.FoodItem{Name: "canned soup", Calories: 400, SodiumMg: 2650}),
		},
		Goals: model.GoalSettings{SodiumMgGoal: floatPtr(2300)},
		Now:   mar(4),
	}
	ins, ok := evaluateAll(in)["Sodium is running high"]
	if !ok {
		t.Fatal("expected sodium insight when the average exceeds 115% of goal")
	}
	if ins.RelatedData["goal_sodium_mg"] != "2300" {
		t.Fatalf("unexpected related data %v", ins.RelatedData)
	}

	// Without a sodium goal there is no reference point.
	in.Goals.SodiumMgGoal = nil
	if _, ok := evaluateAll(in)["Sodium is running high"]; ok {
		t.Fatal("sodium insight requires a sodium goal")
	}
}

func TestLowWaterNeedsEnoughTrackedDays(t *testing.T) {
	t.Parallel()

	water := func(d time.Time, oz float64) model.DailyLog {
		return model.DailyLog{Date: d, Water: &model.WaterTracker{Ounces: oz}}
	}
	goals := model.GoalSettings{WaterOz: 64}

	in := insight.Input{
		Logs:  []model.DailyLog{water(mar(1), 40), water(mar(2), 30), water(mar(3), 45)},
		Goals: goals,
		Now:   mar(4),
	}
	if _, ok := evaluateAll(in)["Hydration has slipped"]; !ok {
		t.Fatal("expected hydration insight with three low tracked days")
	}

	in.Logs = []model.DailyLog{water(mar(1), 40), water(mar(2), 30)}
	if _, ok := evaluateAll(in)["Hydration has slipped"]; ok {
		t.Fatal("hydration insight requires at least three tracked days")
	}
}

func TestProteinLowAndHigh(t *testing.T) {
	t.Parallel()

	low := insight.Input{
		Logs: []model.DailyLog{
			day(mar(1), model.FoodItem{Name: "pasta", Calories: 1800, ProteinG: 40}),
			day(mar(2), model.FoodItem{Name: "rice bowl", Calories: 1900, ProteinG: 45}),
			day(mar(3), model.FoodItem{Name: "bagel", Calories: 1700, ProteinG: 35}),
		},
		Goals: model.GoalSettings{ProteinG: 100},
		Now:   mar(4),
	}
	if _, ok := evaluateAll(low)["Protein below target"]; !ok {
		t.Fatal("expected low-protein insight at 40% of goal")
	}

	highLogs := make([]model.DailyLog, 0, 5)
	for d := 1; d <= 5; d++ {
		highLogs = append(highLogs, day(mar(d), model.FoodItem{Name: "steak", Calories: 2000, ProteinG: 160}))
	}
	high := insight.Input{Logs: highLogs, Goals: model.GoalSettings{ProteinG: 100}, Now: mar(6)}
	ins, ok := evaluateAll(high)["Protein well above target"]
	if !ok {
		t.Fatal("expected high-protein insight at 160% of goal over five days")
	}
	if ins.Priority != 4 {
		t.Fatalf("high protein is informational; expected priority 4, got %d", ins.Priority)
	}
}

func TestFiberLowUsesReferenceIntake(t *testing.T) {
	t.Parallel()

	mk := func(fiber float64) insight.Input {
		return insight.Input{
			Logs: []model.DailyLog{
				day(mar(1), model.FoodItem{Name: "meal", Calories: 1800, FiberG: fiber}),
				day(mar(2), model.FoodItem{Name: "meal", Calories: 1800, FiberG: fiber}),
				day(mar(3), model.FoodItem{Name: "meal", Calories: 1800, FiberG: fiber}),
			},
			Now: mar(4),
		}
	}
	if _, ok := evaluateAll(mk(5))["Fiber intake is low"]; !ok {
		t.Fatal("expected fiber insight at 5g/day")
	}
	if _, ok := evaluateAll(mk(20))["Fiber intake is low"]; ok {
		t.Fatal("20g/day is above half the reference; no fiber insight expected")
	}
}

func TestSaturatedFatShareOfCalories(t *testing.T) {
	t.Parallel()

	in := insight.Input{
		Logs: []model.DailyLog{
			day(mar(1), model.FoodItem{Name: "burger", Calories: 2000, SaturatedFatG: 20}),
			day(mar(2), model.FoodItem{Name: "cheese plate", Calories: 2000, SaturatedFatG: 22}),
			day(mar(3), model.FoodItem{Name: "fried chicken", Calories: 2000, SaturatedFatG: 18}),
		},
		Now: mar(4),
	}
	if _, ok := evaluateAll(in)["Saturated fat above 7% of calories"]; !ok {
		t.Fatal("expected saturated-fat insight at roughly 9% of calories")
	}
}

func TestSkippedBreakfastCountsMissingDays(t *testing.T) {
	t.Parallel()

	logs := make([]model.DailyLog, 0, 4)
	for d := 1; d <= 4; d++ {
		logs = append(logs, day(mar(d), model.FoodItem{Name: "dinner plate", Calories: 800}))
	}
	in := insight.Input{Logs: logs, Now: mar(5)}
	if _, ok := evaluateAll(in)["Breakfast keeps getting skipped"]; !ok {
		t.Fatal("expected skipped-breakfast insight with four breakfast-free days")
	}
}

func TestBreakfastTimingSpread(t *testing.T) {
	t.Parallel()

	breakfastAt := func(d time.Time, hour int) model.DailyLog {
		at := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
		return model.DailyLog{
			Date: d,
			Meals: []model.Meal{{
				Name:  "Breakfast",
				Items: []model.FoodItem{{Name: "oatmeal", Calories: 300, LoggedAt: &at}},
			}},
		}
	}
	in := insight.Input{
		Logs: []model.DailyLog{
			breakfastAt(mar(1), 6),
			breakfastAt(mar(2), 7),
			breakfastAt(mar(3), 11),
			breakfastAt(mar(4), 6),
			breakfastAt(mar(5), 8),
		},
		Now: mar(6),
	}
	if _, ok := evaluateAll(in)["Breakfast timing varies a lot"]; !ok {
		t.Fatal("expected meal-timing insight for a 5-hour breakfast spread")
	}
}

func TestWeekendVariation(t *testing.T) {
	t.Parallel()

	// 2026-03-07 is a Saturday; the 2nd through 6th are weekdays.
	in := insight.Input{
		Logs: []model.DailyLog{
			day(mar(2), model.FoodItem{Name: "meal", Calories: 2000}),
			day(mar(3), model.FoodItem{Name: "meal", Calories: 2000}),
			day(mar(7), model.FoodItem{Name: "brunch feast", Calories: 2600}),
		},
		Goals: model.GoalSettings{Calories: intPtr(2000)},
		Now:   mar(8),
	}
	if _, ok := evaluateAll(in)["Weekends run heavier"]; !ok {
		t.Fatal("expected weekend-variation insight")
	}
}

func TestFoodVarietyCountsDistinctNames(t *testing.T) {
	t.Parallel()

	logs := []model.DailyLog{
		day(mar(1), model.FoodItem{Name: "Oatmeal", Calories: 600}),
		day(mar(2), model.FoodItem{Name: "oatmeal", Calories: 600}),
		day(mar(3), model.FoodItem{Name: "  oatmeal ", Calories: 600}),
	}
	in := insight.Input{Logs: logs, Now: mar(4)}
	ins, ok := evaluateAll(in)["Meals are getting repetitive"]
	if !ok {
		t.Fatal("expected variety insight when one food repeats for three days")
	}
	if ins.Category != model.CategoryFoodVariety {
		t.Fatalf("unexpected category %q", ins.Category)
	}
}

func TestExerciseConsistency(t *testing.T) {
	t.Parallel()

	logs := make([]model.DailyLog, 0, 5)
	for d := 1; d <= 5; d++ {
		logs = append(logs, day(mar(d), model.FoodItem{Name: "meal", Calories: 2000, FiberG: 20}))
	}
	in := insight.Input{Logs: logs, Now: mar(6)}
	if _, ok := evaluateAll(in)["Movement has been sparse"]; !ok {
		t.Fatal("expected exercise-consistency insight with zero active days")
	}

	for i := range logs {
		logs[i].Exercises = []model.LoggedExercise{{Name: "walk", DurationMin: 30, CaloriesBurned: 100, PerformedAt: logs[i].Date}}
	}
	if _, ok := evaluateAll(insight.Input{Logs: logs, Now: mar(6)})["Movement has been sparse"]; ok {
		t.Fatal("daily exercise must not trigger the consistency insight")
	}
}

func TestLunchBalanceFlagsCarbHeavyMeals(t *testing.T) {
	t.Parallel()

	lunch := func(d time.Time) model.DailyLog {
		return model.DailyLog{
			Date: d,
			Meals: []model.Meal{{
				Name:  "Lunch",
				Items: []model.FoodItem{{Name: "white rice", Calories: 400, CarbsG: 80, ProteinG: 5}},
			}},
		}
	}
	in := insight.Input{Logs: []model.DailyLog{lunch(mar(1)), lunch(mar(2))}, Now: mar(3)}
	if _, ok := evaluateAll(in)["Lunch could use more protein"]; !ok {
		t.Fatal("expected lunch-balance insight for 80% carbs and 5% protein")
	}
}

func TestIronVitaminCSynergy(t *testing.T) {
	t.Parallel()

	in := insight.Input{
		Logs: []model.DailyLog{
			day(mar(1), model.FoodItem{Name: "meal", Calories: 1800, IronMg: 5, VitaminCMg: 20}),
			day(mar(2), model.FoodItem{Name: "meal", Calories: 1800, IronMg: 5, VitaminCMg: 20}),
			day(mar(3), model.FoodItem{Name: "meal", Calories: 1800, IronMg: 5, VitaminCMg: 20}),
		},
		Goals: model.GoalSettings{IronMgGoal: floatPtr(18), VitaminCMgGoal: floatPtr(75)},
		Now:   mar(4),
	}
	if _, ok := evaluateAll(in)["Both iron and vitamin C are low"]; !ok {
		t.Fatal("expected synergy insight when both nutrients are under 70% of goal")
	}
}

func TestPostWorkoutRefuel(t *testing.T) {
	t.Parallel()

	workoutDay := func(refuel bool) model.DailyLog {
		d := model.DailyLog{
			Date: mar(1),
			Exercises: []model.LoggedExercise{{
				Name:           "run",
				DurationMin:    60,
				CaloriesBurned: 400,
				PerformedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			}},
		}
		items := []model.FoodItem{}
		if refuel {
			at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
			items = append(items, model.FoodItem{Name: "protein shake", Calories: 200, ProteinG: 25, LoggedAt: &at})
		}
		d.Meals = []model.Meal{{Name: "Snack", Items: items}}
		return d
	}

	in := insight.Input{Logs: []model.DailyLog{workoutDay(false)}, Now: mar(2)}
	if _, ok := evaluateAll(in)["No post-workout refuel"]; !ok {
		t.Fatal("expected refuel insight for a 400-calorie workout with no follow-up snack")
	}

	in = insight.Input{Logs: []model.DailyLog{workoutDay(true)}, Now: mar(2)}
	if _, ok := evaluateAll(in)["No post-workout refuel"]; ok {
		t.Fatal("a protein snack inside the window must suppress the refuel insight")
	}
}

func TestSugaryFoodsKeywordMatch(t *testing.T) {
	t.Parallel()

	logs := []model.DailyLog{
		day(mar(1), model.FoodItem{Name: "Cherry Soda", Calories: 150}),
		day(mar(2), model.FoodItem{Name: "ice cream sundae", Calories: 400}),
		day(mar(3), model.FoodItem{Name: "glazed donut", Calories: 300}),
	}
	in := insight.Input{Logs: logs, Now: mar(4)}
	if _, ok := evaluateAll(in)["Sugary foods keep showing up"]; !ok {
		t.Fatal("expected sugar-awareness insight with sweets on every day")
	}
}
