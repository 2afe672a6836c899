package achievement

import "github.com/oms2304/nutra-cli/internal/model"

// The achievement catalog is static and loaded once; it is not user data.
var definitions = []model.AchievementDefinition{
	{
		ID:            "first_log",
		Title:         "First Bite",
		Description:   "Log your first food item",
		Icon:          "fork.knife",
		CriteriaType:  model.CriteriaLoggingStreak,
		CriteriaValue: 1,
		Points:        10,
	},
	{
		ID:            "streak_7",
		Title:         "One Full Week",
		Description:   "Log food on 7 consecutive days",
		Icon:          "flame",
		CriteriaType:  model.CriteriaLoggingStreak,
		CriteriaValue: 7,
		Points:        50,
	},
	{
		ID:            "streak_30",
		Title:         "Habit Formed",
		Description:   "Log food on 30 consecutive days",
		Icon:          "flame.fill",
		CriteriaType:  model.CriteriaLoggingStreak,
		CriteriaValue: 30,
		Points:        200,
	},
	{
		ID:            "calorie_goal_5",
		Title:         "Dialed In",
		Description:   "Hit your calorie goal on 5 days",
		Icon:          "target",
		CriteriaType:  model.CriteriaCalorieGoalHits,
		CriteriaValue: 5,
		Points:        50,
	},
	{
		ID:            "calorie_goal_20",
		Title:         "Precision Eater",
		Description:   "Hit your calorie goal on 20 days",
		Icon:          "scope",
		CriteriaType:  model.CriteriaCalorieGoalHits,
		CriteriaValue: 20,
		Points:        150,
	},
	{
		ID:            "macro_goal_10",
		Title:         "Macro Master",
		Description:   "Hit all three macro goals on 10 days",
		Icon:          "chart.pie",
		CriteriaType:  model.CriteriaMacroGoalHits,
		CriteriaValue: 10,
		Points:        100,
	},
	{
		ID:            "water_goal_7",
		Title:         "Well Watered",
		Description:   "Reach your water goal on 7 days",
		Icon:          "drop",
		CriteriaType:  model.CriteriaWaterGoalHits,
		CriteriaValue: 7,
		Points:        50,
	},
	{
		ID:            "first_weigh_in",
		Title:         "On the Record",
		Description:   "Record your first weight entry",
		Icon:          "scalemass",
		CriteriaType:  model.CriteriaWeightChange,
		CriteriaValue: 0,
		Points:        10,
	},
	{
		ID:            "weight_change_5",
		Title:         "Moving the Needle",
		Description:   "Change your weight by 5 lb from your first entry",
		Icon:          "arrow.up.arrow.down",
		CriteriaType:  model.CriteriaWeightChange,
		CriteriaValue: 5,
		Points:        100,
	},
	{
		ID:            "target_weight",
		Title:         "Destination Reached",
		Description:   "Reach your target weight",
		Icon:          "mountain.2",
		CriteriaType:  model.CriteriaTargetWeight,
		CriteriaValue: 1,
		Points:        200,
	},
	{
		ID:            "goal_setter",
		Title:         "Goal Setter",
		Description:   "Set your nutrition goals",
		Icon:          "slider.horizontal.3",
		CriteriaType:  model.CriteriaFeatureUsed,
		CriteriaValue: 1,
		Points:        10,
	},
	{
		ID:            "barcode_scanner",
		Title:         "Scanner Pro",
		Description:   "Log a food with the barcode scanner",
		Icon:          "barcode.viewfinder",
		CriteriaType:  model.CriteriaBarcodeScanUsed,
		CriteriaValue: 1,
		Points:        15,
	},
	{
		ID:            "photo_logger",
		Title:         "Say Cheese",
		Description:   "Log a food from a photo scan",
		Icon:          "camera.viewfinder",
		CriteriaType:  model.CriteriaImageScanUsed,
		CriteriaValue: 1,
		Points:        15,
	},
	{
		ID:            "ai_chef",
		Title:         "AI Chef",
		Description:   "Log an AI-generated recipe",
		Icon:          "sparkles",
		CriteriaType:  model.CriteriaAIRecipeLogged,
		CriteriaValue: 1,
		Points:        20,
	},
}

// Definitions returns the full catalog in display order.
func Definitions() []model.AchievementDefinition {
	out := make([]model.AchievementDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// DefinitionByID looks up a catalog entry, or nil when the ID is unknown.
func DefinitionByID(id string) *model.AchievementDefinition {
	for i := range definitions {
		if definitions[i].ID == id {
			return &definitions[i]
		}
	}
	return nil
}
