package nutrition_test

import (
	"testing"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
)

func TestLogTotalsSumsAcrossMeals(t *testing.T) {
	t.Parallel()
	log := model.DailyLog{
		Meals: []model.Meal{
			{
				Name: "Breakfast",
				Items: []model.FoodItem{
					{Name: "Oatmeal", Calories: 100, ProteinG: 10, CarbsG: 18, FatG: 2, FiberG: 4, IronMg: 1.2},
				},
			},
			{
				Name: "Snack",
				Items: []model.FoodItem{
					{Name: "Apple", Calories: 50, CarbsG: 13, FiberG: 2.4, VitaminCMg: 8},
				},
			},
		},
	}

	got := nutrition.LogTotals(log)
	if got.Calories != 150 {
		t.Fatalf("expected 150 calories, got %d", got.Calories)
	}
	if got.ProteinG != 10 {
		t.Fatalf("expected 10g protein, got %.1f", got.ProteinG)
	}
	if got.CarbsG != 31 {
		t.Fatalf("expected 31g carbs, got %.1f", got.CarbsG)
	}
	if got.FiberG != 6.4 {
		t.Fatalf("expected 6.4g fiber, got %.1f", got.FiberG)
	}
	if got.IronMg != 1.2 {
		t.Fatalf("expected 1.2mg iron, got %.1f", got.IronMg)
	}
	if got.VitaminCMg != 8 {
		t.Fatalf("expected 8mg vitamin C, got %.1f", got.VitaminCMg)
	}
}

func TestLogTotalsAbsentNutrientsContributeZero(t *testing.T) {
	t.Parallel()
	log := model.DailyLog{
		Meals: []model.Meal{
			{Name: "Lunch", Items: []model.FoodItem{{Name: "Rice", Calories: 200, CarbsG: 45}}},
		},
	}

	got := nutrition.LogTotals(log)
	if got.SodiumMg != 0 || got.SaturatedFatG != 0 || got.VitaminDUg != 0 {
		t.Fatalf("expected absent nutrients to total zero, got %+v", got)
	}
}

func TestMealTotals(t *testing.T) {
	t.Parallel()
	meal := model.Meal{
		Name: "Dinner",
		Items: []model.FoodItem{
			{Name: "Chicken", Calories: 300, ProteinG: 40, FatG: 8, SaturatedFatG: 2},
			{Name: "Potato", Calories: 150, CarbsG: 34},
		},
	}

	got := nutrition.MealTotals(meal)
	if got.Calories != 450 {
		t.Fatalf("expected 450 calories, got %d", got.Calories)
	}
	if got.ProteinG != 40 || got.CarbsG != 34 || got.FatG != 8 {
		t.Fatalf("unexpected macro totals: %+v", got)
	}
	if got.SaturatedFatG != 2 {
		t.Fatalf("expected 2g saturated fat, got %.1f", got.SaturatedFatG)
	}
}

func TestBurnedBySource(t *testing.T) {
	t.Parallel()
	log := model.DailyLog{
		Exercises: []model.LoggedExercise{
			{Name: "Run", CaloriesBurned: 300, Source: model.ExerciseSourceManual},
			{Name: "Walk", CaloriesBurned: 120, Source: model.ExerciseSourceSynced},
			{Name: "Lift", CaloriesBurned: 180, Source: model.ExerciseSourceManual},
		},
	}

	manual, synced := nutrition.BurnedBySource(log)
	if manual != 480 {
		t.Fatalf("expected 480 manual calories, got %d", manual)
	}
	if synced != 120 {
		t.Fatalf("expected 120 synced calories, got %d", synced)
	}
	if total := nutrition.CaloriesBurned(log); total != 600 {
		t.Fatalf("expected 600 total burned, got %d", total)
	}
}
