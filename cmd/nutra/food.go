package nutra

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
	"github.com/oms2304/nutra-cli/internal/store"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log and manage food items",
}

var (
	foodName      string
	foodMeal      string
	foodCalories  int
	foodProtein   float64
	foodCarbs     float64
	foodFat       float64
	foodSatFat    float64
	foodPolyFat   float64
	foodMonoFat   float64
	foodFiber     float64
	foodSugar     float64
	foodSodium    float64
	foodCalcium   float64
	foodIron      float64
	foodPotassium float64
	foodVitaminA  float64
	foodVitaminC  float64
	foodVitaminD  float64
	foodServing   string
	foodWeight    float64
	foodDate      string
	foodTime      string
	foodBarcode   bool
	foodPhoto     bool
	foodAIRecipe  bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food item to a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(foodDate, foodTime)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			before, err := st.DayLog(ctx, loggedAt)
			if err != nil {
				return err
			}

			id, err := st.LogFood(ctx, store.LogFoodInput{
				Name:           foodName,
				Meal:           foodMeal,
				Calories:       foodCalories,
				ProteinG:       foodProtein,
				CarbsG:         foodCarbs,
				FatG:           foodFat,
				SaturatedFatG:  foodSatFat,
				PolyFatG:       foodPolyFat,
				MonoFatG:       foodMonoFat,
				FiberG:         foodFiber,
				SugarG:         foodSugar,
				SodiumMg:       foodSodium,
				CalciumMg:      foodCalcium,
				IronMg:         foodIron,
				PotassiumMg:    foodPotassium,
				VitaminAUg:     foodVitaminA,
				VitaminCMg:     foodVitaminC,
				VitaminDUg:     foodVitaminD,
				ServingSize:    foodServing,
				ServingWeightG: foodWeight,
				LoggedAt:       loggedAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal) to %s [id %d]\n", foodName, foodCalories, foodMeal, id)

			eng := achievement.NewEngine(st, nil)
			if err := eng.OnLogMutated(ctx, loggedAt); err != nil {
				return err
			}
			if foodBarcode {
				if err := eng.OnFeatureUsed(ctx, model.CriteriaBarcodeScanUsed); err != nil {
					return err
				}
			}
			if foodPhoto {
				if err := eng.OnFeatureUsed(ctx, model.CriteriaImageScanUsed); err != nil {
					return err
				}
			}
			if foodAIRecipe {
				if err := eng.OnFeatureUsed(ctx, model.CriteriaAIRecipeLogged); err != nil {
					return err
				}
			}
			return creditFoodChallenges(ctx, cmd, st, eng, before, loggedAt)
		})
	},
}

// creditFoodChallenges translates one food mutation into challenge events:
// the day's first item counts toward logging streaks, and crossing the
// protein goal or landing in the calorie range each count once as they
// happen.
func creditFoodChallenges(ctx context.Context, cmd *cobra.Command, st *store.Store, eng *achievement.Engine, before model.DailyLog, loggedAt time.Time) error {
	after, err := st.DayLog(ctx, loggedAt)
	if err != nil {
		return err
	}
	goals, err := st.GoalSnapshot(ctx, loggedAt.Format("2006-01-02"))
	if err != nil {
		return err
	}
	beforeTotals := nutrition.LogTotals(before)
	afterTotals := nutrition.LogTotals(after)

	if !before.HasFood() && after.HasFood() {
		if err := announceCompleted(ctx, cmd, eng, model.ChallengeLoggingStreak, 1); err != nil {
			return err
		}
	}
	if goals.ProteinG > 0 && beforeTotals.ProteinG < goals.ProteinG && afterTotals.ProteinG >= goals.ProteinG {
		if err := announceCompleted(ctx, cmd, eng, model.ChallengeProteinGoalHit, 1); err != nil {
			return err
		}
	}
	if goals.Calories != nil {
		goal := float64(*goals.Calories)
		inRange := func(calories int) bool {
			c := float64(calories)
			return c >= 0.9*goal && c <= 1.1*goal
		}
		if !inRange(beforeTotals.Calories) && inRange(afterTotals.Calories) {
			if err := announceCompleted(ctx, cmd, eng, model.ChallengeCalorieRange, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func announceCompleted(ctx context.Context, cmd *cobra.Command, eng *achievement.Engine, typ model.ChallengeType, amount int) error {
	completed, err := eng.UpdateChallengeProgress(ctx, typ, amount)
	if err != nil {
		return err
	}
	for _, ch := range completed {
		fmt.Fprintf(cmd.OutOrStdout(), "Challenge complete: %s (+%d points)\n", ch.Title, ch.Points)
	}
	return nil
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a logged food item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food item id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			if err := st.DeleteFood(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food item %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodDeleteCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name (required)")
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "snack", "Meal name (breakfast, lunch, dinner, snack)")
	foodAddCmd.Flags().IntVar(&foodCalories, "calories", 0, "Calories")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	foodAddCmd.Flags().Float64Var(&foodSatFat, "sat-fat", 0, "Saturated fat grams")
	foodAddCmd.Flags().Float64Var(&foodPolyFat, "poly-fat", 0, "Polyunsaturated fat grams")
	foodAddCmd.Flags().Float64Var(&foodMonoFat, "mono-fat", 0, "Monounsaturated fat grams")
	foodAddCmd.Flags().Float64Var(&foodFiber, "fiber", 0, "Fiber grams")
	foodAddCmd.Flags().Float64Var(&foodSugar, "sugar", 0, "Sugar grams")
	foodAddCmd.Flags().Float64Var(&foodSodium, "sodium", 0, "Sodium mg")
	foodAddCmd.Flags().Float64Var(&foodCalcium, "calcium", 0, "Calcium mg")
	foodAddCmd.Flags().Float64Var(&foodIron, "iron", 0, "Iron mg")
	foodAddCmd.Flags().Float64Var(&foodPotassium, "potassium", 0, "Potassium mg")
	foodAddCmd.Flags().Float64Var(&foodVitaminA, "vitamin-a", 0, "Vitamin A mcg")
	foodAddCmd.Flags().Float64Var(&foodVitaminC, "vitamin-c", 0, "Vitamin C mg")
	foodAddCmd.Flags().Float64Var(&foodVitaminD, "vitamin-d", 0, "Vitamin D mcg")
	foodAddCmd.Flags().StringVar(&foodServing, "serving", "", "Serving description")
	foodAddCmd.Flags().Float64Var(&foodWeight, "serving-weight", 0, "Serving weight grams")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default today)")
	foodAddCmd.Flags().StringVar(&foodTime, "time", "", "Time HH:MM (default now)")
	foodAddCmd.Flags().BoolVar(&foodBarcode, "barcode", false, "Mark this item as logged via barcode scan")
	foodAddCmd.Flags().BoolVar(&foodPhoto, "photo", false, "Mark this item as logged via photo scan")
	foodAddCmd.Flags().BoolVar(&foodAIRecipe, "ai-recipe", false, "Mark this item as an AI-generated recipe")
	_ = foodAddCmd.MarkFlagRequired("name")
}
