package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/store"
)

var (
	goalCalories      int64
	goalProtein       float64
	goalCarbs         float64
	goalFat           float64
	goalPrimary       string
	goalWaterOz       float64
	goalSodium        float64
	goalIron          float64
	goalVitaminC      float64
	goalCalcium       float64
	goalVitaminD      float64
	goalTargetWeight  float64
	goalEffectiveDate string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Set and show nutrition goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set goals effective from a date",
	Long: `Set goals effective from a date (default today). Earlier days keep the
snapshot that was in effect at the time, so historical summaries stay honest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			in := store.SetGoalsInput{
				ProteinG:      goalProtein,
				CarbsG:        goalCarbs,
				FatG:          goalFat,
				Primary:       goalPrimary,
				WaterOz:       goalWaterOz,
				EffectiveDate: goalEffectiveDate,
			}
			if cmd.Flags().Changed("calories") {
				v := int(goalCalories)
				in.Calories = &v
			}
			if cmd.Flags().Changed("sodium") {
				in.SodiumMgGoal = &goalSodium
			}
			if cmd.Flags().Changed("iron") {
				in.IronMgGoal = &goalIron
			}
			if cmd.Flags().Changed("vitamin-c") {
				in.VitaminCMgGoal = &goalVitaminC
			}
			if cmd.Flags().Changed("calcium") {
				in.CalciumMgGoal = &goalCalcium
			}
			if cmd.Flags().Changed("vitamin-d") {
				in.VitaminDUgGoal = &goalVitaminD
			}
			if cmd.Flags().Changed("target-weight") {
				in.TargetWeightLb = &goalTargetWeight
			}
			if err := st.SetGoals(ctx, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goals updated.")

			eng := achievement.NewEngine(st, nil)
			return eng.OnFeatureUsed(ctx, model.CriteriaFeatureUsed)
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the goals in effect today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			g, err := st.GoalSnapshot(ctx, "")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if g.Calories != nil {
				fmt.Fprintf(out, "Calories: %d kcal\n", *g.Calories)
			} else {
				fmt.Fprintln(out, "Calories: not set")
			}
			fmt.Fprintf(out, "Protein:  %.0f g\n", g.ProteinG)
			fmt.Fprintf(out, "Carbs:    %.0f g\n", g.CarbsG)
			fmt.Fprintf(out, "Fat:      %.0f g\n", g.FatG)
			fmt.Fprintf(out, "Water:    %.0f oz\n", g.WaterOz)
			fmt.Fprintf(out, "Primary:  %s\n", g.Primary)
			if g.TargetWeightLb != nil {
				fmt.Fprintf(out, "Target weight: %.1f lb\n", *g.TargetWeightLb)
			}
			if g.EffectiveDate != "" {
				fmt.Fprintf(out, "Effective since %s\n", g.EffectiveDate)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalShowCmd)

	goalSetCmd.Flags().Int64Var(&goalCalories, "calories", 0, "Daily calorie goal")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein goal (g)")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs goal (g)")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat goal (g)")
	goalSetCmd.Flags().StringVar(&goalPrimary, "primary", "", "Primary goal: lose, maintain, or gain")
	goalSetCmd.Flags().Float64Var(&goalWaterOz, "water", 0, "Daily water goal (oz)")
	goalSetCmd.Flags().Float64Var(&goalSodium, "sodium", 0, "Daily sodium limit (mg)")
	goalSetCmd.Flags().Float64Var(&goalIron, "iron", 0, "Daily iron goal (mg)")
	goalSetCmd.Flags().Float64Var(&goalVitaminC, "vitamin-c", 0, "Daily vitamin C goal (mg)")
	goalSetCmd.Flags().Float64Var(&goalCalcium, "calcium", 0, "Daily calcium goal (mg)")
	goalSetCmd.Flags().Float64Var(&goalVitaminD, "vitamin-d", 0, "Daily vitamin D goal (µg)")
	goalSetCmd.Flags().Float64Var(&goalTargetWeight, "target-weight", 0, "Target body weight (lb)")
	goalSetCmd.Flags().StringVar(&goalEffectiveDate, "date", "", "Effective date YYYY-MM-DD (default today)")
}
