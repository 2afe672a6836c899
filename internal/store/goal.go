package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
)

// SetGoalsInput is the full goal snapshot being written. Nil optional fields
// mean "not set"; they stay absent rather than defaulting to zero.
type SetGoalsInput struct {
	Calories       *int
	ProteinG       float64
	CarbsG         float64
	FatG           float64
	Primary        string
	WaterOz        float64
	SodiumMgGoal   *float64
	IronMgGoal     *float64
	VitaminCMgGoal *float64
	CalciumMgGoal  *float64
	VitaminDUgGoal *float64
	TargetWeightLb *float64
	EffectiveDate  string
}

// SetGoals writes a goal snapshot effective from the given date, replacing
// any snapshot already effective that day.
func (s *Store) SetGoals(ctx context.Context, in SetGoalsInput) error {
	if in.Calories != nil {
		if err := validateNonNegativeInt("calories", *in.Calories); err != nil {
			return err
		}
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", in.FatG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("water", in.WaterOz); err != nil {
		return err
	}

	primary := strings.ToLower(strings.TrimSpace(in.Primary))
	switch primary {
	case "":
		primary = string(model.GoalMaintain)
	case string(model.GoalLose), string(model.GoalMaintain), string(model.GoalGain):
	default:
		return fmt.Errorf("invalid primary goal %q (use lose, maintain, or gain)", in.Primary)
	}

	in.EffectiveDate = strings.TrimSpace(in.EffectiveDate)
	if in.EffectiveDate == "" {
		in.EffectiveDate = time.Now().Format(dayFormat)
	}
	if _, err := parseDay(in.EffectiveDate); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO goal_settings(
  calories, protein_g, carbs_g, fat_g, primary_goal, water_oz,
  sodium_mg, iron_mg, vitamin_c_mg, calcium_mg, vitamin_d_ug,
  target_weight_lb, effective_date)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  primary_goal=excluded.primary_goal,
  water_oz=excluded.water_oz,
  sodium_mg=excluded.sodium_mg,
  iron_mg=excluded.iron_mg,
  vitamin_c_mg=excluded.vitamin_c_mg,
  calcium_mg=excluded.calcium_mg,
  vitamin_d_ug=excluded.vitamin_d_ug,
  target_weight_lb=excluded.target_weight_lb
`, in.Calories, in.ProteinG, in.CarbsG, in.FatG, primary, in.WaterOz,
		in.SodiumMgGoal, in.IronMgGoal, in.VitaminCMgGoal, in.CalciumMgGoal, in.VitaminDUgGoal,
		in.TargetWeightLb, in.EffectiveDate)
	if err != nil {
		return fmt.Errorf("set goals: %w", err)
	}
	return nil
}

// GoalSnapshot returns the snapshot in effect for the given day: the most
// recent one with effective_date <= day. A zero-value snapshot (no calorie
// goal, maintain) comes back when none has ever been set.
func (s *Store) GoalSnapshot(ctx context.Context, day string) (model.GoalSettings, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		day = time.Now().Format(dayFormat)
	}
	if _, err := parseDay(day); err != nil {
		return model.GoalSettings{}, err
	}

	var g model.GoalSettings
	var calories sql.NullInt64
	var sodium, iron, vitC, calcium, vitD, targetWeight sql.NullFloat64
	var primary string
	err := s.db.QueryRowContext(ctx, `
SELECT calories, protein_g, carbs_g, fat_g, primary_goal, water_oz,
  sodium_mg, iron_mg, vitamin_c_mg, calcium_mg, vitamin_d_ug,
  target_weight_lb, effective_date
FROM goal_settings
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, day).Scan(&calories, &g.ProteinG, &g.CarbsG, &g.FatG, &primary, &g.WaterOz,
		&sodium, &iron, &vitC, &calcium, &vitD, &targetWeight, &g.EffectiveDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.GoalSettings{Primary: model.GoalMaintain}, nil
		}
		return model.GoalSettings{}, fmt.Errorf("goal snapshot for %s: %w", day, err)
	}

	g.Primary = model.PrimaryGoal(primary)
	if calories.Valid {
		v := int(calories.Int64)
		g.Calories = &v
	}
	g.SodiumMgGoal = nullableFloat(sodium)
	g.IronMgGoal = nullableFloat(iron)
	g.VitaminCMgGoal = nullableFloat(vitC)
	g.CalciumMgGoal = nullableFloat(calcium)
	g.VitaminDUgGoal = nullableFloat(vitD)
	g.TargetWeightLb = nullableFloat(targetWeight)
	return g, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
