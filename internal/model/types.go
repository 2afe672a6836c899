package model

import (
	"strings"
	"time"
)

// PrimaryGoal is the user's stated direction for body weight.
type PrimaryGoal string

const (
	GoalLose     PrimaryGoal = "lose"
	GoalMaintain PrimaryGoal = "maintain"
	GoalGain     PrimaryGoal = "gain"
)

// FoodItem is a named quantity of nutrition inside a meal. Macros are
// required; micronutrients default to zero when the source had no value.
type FoodItem struct {
	ID             int64
	Name           string
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
	// LoggedAt is the wall-clock moment the item was eaten. Optional;
	// meal-timing and post-workout heuristics skip items without it.
	LoggedAt *time.Time
}

type Meal struct {
	ID    int64
	Name  string
	Items []FoodItem
}

const (
	ExerciseSourceManual = "manual"
	ExerciseSourceSynced = "synced"
)

type LoggedExercise struct {
	ID             int64
	Name           string
	DurationMin    int
	CaloriesBurned int
	Source         string
	PerformedAt    time.Time
}

// EndedAt is the end of the workout, used for the post-workout refuel window.
func (e LoggedExercise) EndedAt() time.Time {
	return e.PerformedAt.Add(time.Duration(e.DurationMin) * time.Minute)
}

type WaterTracker struct {
	Ounces float64
}

// DailyLog is everything recorded for one calendar day. At most one exists
// per date.
type DailyLog struct {
	Date      time.Time
	Meals     []Meal
	Exercises []LoggedExercise
	Water     *WaterTracker
}

// HasFood reports whether any meal holds at least one item.
func (l DailyLog) HasFood() bool {
	for _, m := range l.Meals {
		if len(m.Items) > 0 {
			return true
		}
	}
	return false
}

// Meal returns the meal with the given name (case-insensitive), or nil.
func (l DailyLog) Meal(name string) *Meal {
	for i := range l.Meals {
		if strings.EqualFold(l.Meals[i].Name, name) {
			return &l.Meals[i]
		}
	}
	return nil
}

// GoalSettings is the user's current targets. Calories is nil until a goal
// has been computed or set; micronutrient goals are nil when never set.
type GoalSettings struct {
	Calories       *int
	ProteinG       float64
	CarbsG         float64
	FatG           float64
	Primary        PrimaryGoal
	WaterOz        float64
	SodiumMgGoal   *float64
	IronMgGoal     *float64
	VitaminCMgGoal *float64
	CalciumMgGoal  *float64
	VitaminDUgGoal *float64
	TargetWeightLb *float64
	EffectiveDate  string
}

const (
	SleepStateInBed  = "in_bed"
	SleepStateAsleep = "asleep"
)

type SleepSample struct {
	ID    int64
	Start time.Time
	End   time.Time
	State string
}

type WeightEntry struct {
	ID         int64
	RecordedAt time.Time
	WeightLb   float64
}

// InsightCategory tags a derived observation for display grouping.
type InsightCategory string

const (
	CategoryNutritionGeneral      InsightCategory = "nutrition_general"
	CategoryHydration             InsightCategory = "hydration"
	CategoryMacroBalance          InsightCategory = "macro_balance"
	CategoryMicroNutrient         InsightCategory = "micro_nutrient"
	CategoryMealTiming            InsightCategory = "meal_timing"
	CategoryConsistency           InsightCategory = "consistency"
	CategoryPostWorkout           InsightCategory = "post_workout"
	CategoryFoodVariety           InsightCategory = "food_variety"
	CategoryPositiveReinforcement InsightCategory = "positive_reinforcement"
	CategorySugarAwareness        InsightCategory = "sugar_awareness"
	CategoryFiberIntake           InsightCategory = "fiber_intake"
	CategorySaturatedFat          InsightCategory = "saturated_fat"
	CategorySmartSuggestion       InsightCategory = "smart_suggestion"
	CategorySleep                 InsightCategory = "sleep"
)

// UserInsight is an ephemeral derived record. Insights are recomputed on
// each request and never persisted.
type UserInsight struct {
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Category    InsightCategory   `json:"category"`
	Priority    int               `json:"priority"`
	RelatedData map[string]string `json:"related_data,omitempty"`
}

// CriteriaType classifies how an achievement unlocks.
type CriteriaType string

const (
	CriteriaLoggingStreak   CriteriaType = "logging_streak"
	CriteriaCalorieGoalHits CriteriaType = "calorie_goal_hits"
	CriteriaMacroGoalHits   CriteriaType = "macro_goal_hits"
	CriteriaWaterGoalHits   CriteriaType = "water_goal_hits"
	CriteriaWeightChange    CriteriaType = "weight_change"
	CriteriaTargetWeight    CriteriaType = "target_weight"
	CriteriaFeatureUsed     CriteriaType = "feature_used"
	CriteriaBarcodeScanUsed CriteriaType = "barcode_scan_used"
	CriteriaImageScanUsed   CriteriaType = "image_scan_used"
	CriteriaAIRecipeLogged  CriteriaType = "ai_recipe_logged"
)

// AchievementDefinition is a static catalog entry, loaded once at startup.
type AchievementDefinition struct {
	ID            string
	Title         string
	Description   string
	Icon          string
	CriteriaType  CriteriaType
	CriteriaValue int
	Points        int
}

// UserAchievementStatus tracks progress toward one definition. Unlocked is
// monotonic: once true it never reverts, and no further writes happen.
type UserAchievementStatus struct {
	ID            string
	AchievementID string
	Unlocked      bool
	UnlockedAt    *time.Time
	Progress      int
	// LastCreditedDay is the calendar day key (YYYY-MM-DD) of the most
	// recent once-per-day credit, so backdated entries can't shadow a
	// credit for the current day.
	LastCreditedDay string
	UpdatedAt       time.Time
}

// ChallengeType classifies what a time-boxed challenge counts.
type ChallengeType string

const (
	ChallengeLoggingStreak  ChallengeType = "logging_streak"
	ChallengeProteinGoalHit ChallengeType = "protein_goal_hit"
	ChallengeWorkoutLogged  ChallengeType = "workout_logged"
	ChallengeCalorieRange   ChallengeType = "calorie_range"
)

// Challenge is a time-boxed progress goal. Completion is one-way.
type Challenge struct {
	ID        string
	Type      ChallengeType
	Title     string
	Goal      int
	Progress  int
	Points    int
	Completed bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Active reports whether the challenge can still accrue progress.
func (c Challenge) Active(now time.Time) bool {
	return !c.Completed && now.Before(c.ExpiresAt)
}
