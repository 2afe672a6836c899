// Package insight evaluates a window of daily logs against a fixed catalog
// of independent rules and returns ranked, human-readable observations.
//
// Every rule is a pure function of the window: it either emits one candidate
// insight with a priority, or nothing when its minimum-data guard fails.
// Rules do not interact, so adding or removing one never touches another.
package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
)

// DefaultMaxInsights bounds the ranked list shown to the user.
const DefaultMaxInsights = 5

// Input is everything a single evaluation pass reads. Logs may arrive in
// either date order; the engine sorts ascending itself.
type Input struct {
	Logs  []model.DailyLog
	Goals model.GoalSettings
	Sleep []model.SleepSample
	Now   time.Time
}

type rule struct {
	name string
	eval func(*window) *model.UserInsight
}

// Registry order breaks priority ties: earlier rules sort first among equal
// priorities because the final sort is stable.
var registry = []rule{
	{"sleep_duration", ruleSleepDuration},
	{"sleep_consistency", ruleSleepConsistency},
	{"high_sodium", ruleHighSodium},
	{"low_water", ruleLowWater},
	{"calorie_deficit", ruleCalorieDeficit},
	{"calorie_surplus", ruleCalorieSurplus},
	{"protein_low", ruleProteinLow},
	{"protein_high", ruleProteinHigh},
	{"fiber_low", ruleFiberLow},
	{"saturated_fat", ruleSaturatedFat},
	{"skipped_breakfast", ruleSkippedBreakfast},
	{"meal_timing", ruleMealTiming},
	{"weekend_variation", ruleWeekendVariation},
	{"food_variety", ruleFoodVariety},
	{"exercise_consistency", ruleExerciseConsistency},
	{"lunch_balance", mealBalanceRule("Lunch")},
	{"dinner_balance", mealBalanceRule("Dinner")},
	{"iron_vitamin_c", ruleIronVitaminC},
	{"calcium_vitamin_d", ruleCalciumVitaminD},
	{"post_workout_refuel", rulePostWorkoutRefuel},
	{"sugary_foods", ruleSugaryFoods},
	{"calorie_goal_streak", ruleCalorieGoalStreak},
}

// window is the precomputed view rules evaluate against: logs ascending by
// date with per-day totals cached.
type window struct {
	logs  []model.DailyLog
	days  []dayTotals
	goals model.GoalSettings
	sleep []model.SleepSample
	now   time.Time
}

type dayTotals struct {
	log    model.DailyLog
	totals nutrition.Totals
}

func newWindow(in Input) *window {
	logs := make([]model.DailyLog, len(in.Logs))
	copy(logs, in.Logs)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})

	w := &window{
		logs:  logs,
		days:  make([]dayTotals, 0, len(logs)),
		goals: in.Goals,
		sleep: in.Sleep,
		now:   in.Now,
	}
	for _, log := range logs {
		w.days = append(w.days, dayTotals{log: log, totals: nutrition.LogTotals(log)})
	}
	return w
}

// foodDays returns the days that have at least one food item, ascending.
func (w *window) foodDays() []dayTotals {
	out := make([]dayTotals, 0, len(w.days))
	for _, d := range w.days {
		if d.log.HasFood() {
			out = append(out, d)
		}
	}
	return out
}

// Evaluate runs every rule over the window and returns the surviving
// insights sorted by priority descending, truncated to maxInsights. The
// result is never empty: when no rule fires, a single "more data needed"
// insight takes its place so the caller always has something to show.
func Evaluate(in Input, maxInsights int) []model.UserInsight {
	if maxInsights <= 0 {
		maxInsights = DefaultMaxInsights
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	w := newWindow(in)

	out := make([]model.UserInsight, 0, len(registry))
	for _, r := range registry {
		if ins := r.eval(w); ins != nil {
			out = append(out, *ins)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	if len(out) == 0 {
		out = append(out, fallbackInsight())
	}
	return out
}

func fallbackInsight() model.UserInsight {
	return model.UserInsight{
		Title:    "Keep logging",
		Message:  "Log a few more days of meals and we'll have personalized insights for you here.",
		Category: model.CategoryNutritionGeneral,
		Priority: 1,
	}
}

// FetchFailure wraps a storage error as the single renderable insight the
// UI falls back to instead of an empty screen.
func FetchFailure(err error) model.UserInsight {
	return model.UserInsight{
		Title:    "Insights unavailable",
		Message:  fmt.Sprintf("We couldn't load your recent logs: %v. Pull to refresh and try again.", err),
		Category: model.CategoryNutritionGeneral,
		Priority: 1,
	}
}
