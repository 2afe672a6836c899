package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

// LogFoodInput captures one food item being added to a day's meal.
type LogFoodInput struct {
	Name           string
	Meal           string
	Calories       int
	ProteinG       float64
	CarbsG         float64
	FatG           float64
	SaturatedFatG  float64
	PolyFatG       float64
	MonoFatG       float64
	FiberG         float64
	SugarG         float64
	SodiumMg       float64
	CalciumMg      float64
	IronMg         float64
	PotassiumMg    float64
	VitaminAUg     float64
	VitaminCMg     float64
	VitaminDUg     float64
	ServingSize    string
	ServingWeightG float64
	LoggedAt       time.Time
}

// LogFood inserts a food item into the given meal. The day's log is implicit:
// it exists once its first item does, which keeps the one-log-per-date
// invariant structural.
func (s *Store) LogFood(ctx context.Context, in LogFoodInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("fat", in.FatG); err != nil {
		return 0, err
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	mealID, err := s.mealIDByName(in.Meal)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO food_items(
  name, calories, protein_g, carbs_g, fat_g,
  saturated_fat_g, poly_fat_g, mono_fat_g, fiber_g, sugar_g,
  sodium_mg, calcium_mg, iron_mg, potassium_mg,
  vitamin_a_ug, vitamin_c_mg, vitamin_d_ug,
  serving_size, serving_weight_g, meal_id, day, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Calories, in.ProteinG, in.CarbsG, in.FatG,
		in.SaturatedFatG, in.PolyFatG, in.MonoFatG, in.FiberG, in.SugarG,
		in.SodiumMg, in.CalciumMg, in.IronMg, in.PotassiumMg,
		in.VitaminAUg, in.VitaminCMg, in.VitaminDUg,
		strings.TrimSpace(in.ServingSize), in.ServingWeightG, mealID,
		in.LoggedAt.Format(dayFormat), storeTime(in.LoggedAt))
	if err != nil {
		return 0, fmt.Errorf("insert food item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted food item id: %w", err)
	}
	return id, nil
}

// DeleteFood removes one logged item by id.
func (s *Store) DeleteFood(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM food_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete food item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("food item %d does not exist", id)
	}
	return nil
}

// DayLog assembles the full daily log for one date: meals with their items,
// the day's exercise, and the water tracker if any.
func (s *Store) DayLog(ctx context.Context, day time.Time) (model.DailyLog, error) {
	day = beginningOfDay(day)
	log := model.DailyLog{Date: day}
	key := day.Format(dayFormat)

	meals, err := s.loadMeals(ctx, key, key)
	if err != nil {
		return log, err
	}
	log.Meals = meals[key]

	exercises, err := s.loadExercises(ctx, day, day)
	if err != nil {
		return log, err
	}
	log.Exercises = exercises[key]

	water, err := s.loadWater(ctx, key, key)
	if err != nil {
		return log, err
	}
	if oz, ok := water[key]; ok {
		log.Water = &model.WaterTracker{Ounces: oz}
	}
	return log, nil
}

// FetchLogs returns one DailyLog per day in [from, to] that has any food,
// exercise, or water recorded, ascending by date.
func (s *Store) FetchLogs(ctx context.Context, from, to time.Time) ([]model.DailyLog, error) {
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	from = beginningOfDay(from)
	to = beginningOfDay(to)
	fromKey := from.Format(dayFormat)
	toKey := to.Format(dayFormat)

	meals, err := s.loadMeals(ctx, fromKey, toKey)
	if err != nil {
		return nil, err
	}
	exercises, err := s.loadExercises(ctx, from, to)
	if err != nil {
		return nil, err
	}
	water, err := s.loadWater(ctx, fromKey, toKey)
	if err != nil {
		return nil, err
	}

	logs := make([]model.DailyLog, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		dayMeals := meals[key]
		dayExercises := exercises[key]
		oz, hasWater := water[key]
		if len(dayMeals) == 0 && len(dayExercises) == 0 && !hasWater {
			continue
		}
		log := model.DailyLog{Date: d, Meals: dayMeals, Exercises: dayExercises}
		if hasWater {
			log.Water = &model.WaterTracker{Ounces: oz}
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// LoggedDays reports which days in [from, to] have at least one food item.
func (s *Store) LoggedDays(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT DISTINCT day FROM food_items WHERE day >= ? AND day <= ?
`, beginningOfDay(from).Format(dayFormat), beginningOfDay(to).Format(dayFormat))
	if err != nil {
		return nil, fmt.Errorf("query logged days: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan logged day: %w", err)
		}
		out[day] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logged days: %w", err)
	}
	return out, nil
}

func (s *Store) loadMeals(ctx context.Context, fromKey, toKey string) (map[string][]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT f.day, m.id, m.name,
  f.id, f.name, f.calories, f.protein_g, f.carbs_g, f.fat_g,
  f.saturated_fat_g, f.poly_fat_g, f.mono_fat_g, f.fiber_g, f.sugar_g,
  f.sodium_mg, f.calcium_mg, f.iron_mg, f.potassium_mg,
  f.vitamin_a_ug, f.vitamin_c_mg, f.vitamin_d_ug,
  f.serving_size, f.serving_weight_g, f.logged_at
FROM food_items f
JOIN meals m ON m.id = f.meal_id
WHERE f.day >= ? AND f.day <= ?
ORDER BY f.day ASC, m.id ASC, f.logged_at ASC
`, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("query food items: %w", err)
	}
	defer rows.Close()

	out := map[string][]model.Meal{}
	for rows.Next() {
		var day string
		var mealID int64
		var mealName string
		var item model.FoodItem
		var loggedAt sql.NullString
		if err := rows.Scan(&day, &mealID, &mealName,
			&item.ID, &item.Name, &item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG,
			&item.SaturatedFatG, &item.PolyFatG, &item.MonoFatG, &item.FiberG, &item.SugarG,
			&item.SodiumMg, &item.CalciumMg, &item.IronMg, &item.PotassiumMg,
			&item.VitaminAUg, &item.VitaminCMg, &item.VitaminDUg,
			&item.ServingSize, &item.ServingWeightG, &loggedAt); err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		if loggedAt.Valid && loggedAt.String != "" {
			t, err := parseStoredTime(loggedAt.String)
			if err != nil {
				return nil, err
			}
			item.LoggedAt = &t
		}

		dayMeals := out[day]
		var meal *model.Meal
		for i := range dayMeals {
			if dayMeals[i].ID == mealID {
				meal = &dayMeals[i]
				break
			}
		}
		if meal == nil {
			dayMeals = append(dayMeals, model.Meal{ID: mealID, Name: mealName})
			meal = &dayMeals[len(dayMeals)-1]
		}
		meal.Items = append(meal.Items, item)
		out[day] = dayMeals
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food items: %w", err)
	}
	return out, nil
}

// loadExercises fetches everything performed in the local days [from, to]
// and buckets by local day key. The stored timestamps are UTC, so the query
// filters on instants rather than date prefixes.
func (s *Store) loadExercises(ctx context.Context, from, to time.Time) (map[string][]model.LoggedExercise, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, duration_min, calories_burned, source, performed_at
FROM exercise_logs
WHERE performed_at >= ? AND performed_at < ?
ORDER BY performed_at ASC
`, storeTime(beginningOfDay(from)), storeTime(beginningOfDay(to).AddDate(0, 0, 1)))
	if err != nil {
		return nil, fmt.Errorf("query exercise logs: %w", err)
	}
	defer rows.Close()

	out := map[string][]model.LoggedExercise{}
	for rows.Next() {
		var e model.LoggedExercise
		var performedAtRaw string
		if err := rows.Scan(&e.ID, &e.Name, &e.DurationMin, &e.CaloriesBurned, &e.Source, &performedAtRaw); err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		performedAt, err := parseStoredTime(performedAtRaw)
		if err != nil {
			return nil, err
		}
		e.PerformedAt = performedAt
		key := performedAt.Format(dayFormat)
		out[key] = append(out[key], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise logs: %w", err)
	}
	return out, nil
}

func (s *Store) loadWater(ctx context.Context, fromKey, toKey string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT day, ounces FROM water_logs WHERE day >= ? AND day <= ?
`, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("query water logs: %w", err)
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var day string
		var oz float64
		if err := rows.Scan(&day, &oz); err != nil {
			return nil, fmt.Errorf("scan water log: %w", err)
		}
		out[day] = oz
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water logs: %w", err)
	}
	return out, nil
}
