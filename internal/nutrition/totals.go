// Package nutrition holds the pure reductions shared by the insight and
// achievement engines. Absent optional nutrients contribute zero; none of
// these functions can fail.
package nutrition

import "github.com/oms2304/nutra-cli/internal/model"

// Totals is the summed nutrition of a meal or a whole day.
type Totals struct {
	Calories      int
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	SaturatedFatG float64
	PolyFatG      float64
	MonoFatG      float64
	FiberG        float64
	SugarG        float64
	SodiumMg      float64
	CalciumMg     float64
	IronMg        float64
	PotassiumMg   float64
	VitaminAUg    float64
	VitaminCMg    float64
	VitaminDUg    float64
}

func (t *Totals) add(item model.FoodItem) {
	t.Calories += item.Calories
	t.ProteinG += item.ProteinG
	t.CarbsG += item.CarbsG
	t.FatG += item.FatG
	t.SaturatedFatG += item.SaturatedFatG
	t.PolyFatG += item.PolyFatG
	t.MonoFatG += item.MonoFatG
	t.FiberG += item.FiberG
	t.SugarG += item.SugarG
	t.SodiumMg += item.SodiumMg
	t.CalciumMg += item.CalciumMg
	t.IronMg += item.IronMg
	t.PotassiumMg += item.PotassiumMg
	t.VitaminAUg += item.VitaminAUg
	t.VitaminCMg += item.VitaminCMg
	t.VitaminDUg += item.VitaminDUg
}

// MealTotals sums every item in one meal.
func MealTotals(m model.Meal) Totals {
	var t Totals
	for _, item := range m.Items {
		t.add(item)
	}
	return t
}

// LogTotals sums every item across all meals of one day.
func LogTotals(log model.DailyLog) Totals {
	var t Totals
	for _, m := range log.Meals {
		for _, item := range m.Items {
			t.add(item)
		}
	}
	return t
}

// BurnedBySource splits a day's exercise calories into manually entered and
// externally synced.
func BurnedBySource(log model.DailyLog) (manual, synced int) {
	for _, e := range log.Exercises {
		if e.Source == model.ExerciseSourceSynced {
			synced += e.CaloriesBurned
			continue
		}
		manual += e.CaloriesBurned
	}
	return manual, synced
}

// CaloriesBurned is the day's total across both sources.
func CaloriesBurned(log model.DailyLog) int {
	manual, synced := BurnedBySource(log)
	return manual + synced
}
