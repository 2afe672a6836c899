package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
	"github.com/oms2304/nutra-cli/internal/store"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's food, exercise, and water against goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrNow(todayDate)
		if err != nil {
			return err
		}
		dayKey := day.Format("2006-01-02")

		return withStore(func(ctx context.Context, st *store.Store) error {
			log, err := st.DayLog(ctx, day)
			if err != nil {
				return err
			}
			goals, err := st.GoalSnapshot(ctx, dayKey)
			if err != nil {
				return err
			}
			printDaySummary(cmd, dayKey, log, goals)
			return nil
		})
	},
}

func printDaySummary(cmd *cobra.Command, dayKey string, log model.DailyLog, goals model.GoalSettings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Summary for %s\n\n", dayKey)

	for _, meal := range log.Meals {
		if len(meal.Items) == 0 {
			continue
		}
		mt := nutrition.MealTotals(meal)
		fmt.Fprintf(out, "%s (%d kcal)\n", meal.Name, mt.Calories)
		for _, item := range meal.Items {
			fmt.Fprintf(out, "  %-28s %5d kcal  %5.1fp %5.1fc %5.1ff\n",
				item.Name, item.Calories, item.ProteinG, item.CarbsG, item.FatG)
		}
	}
	if !log.HasFood() {
		fmt.Fprintln(out, "No food logged.")
	}

	t := nutrition.LogTotals(log)
	fmt.Fprintf(out, "\nEaten:   %d kcal  (%.0fg protein, %.0fg carbs, %.0fg fat)\n",
		t.Calories, t.ProteinG, t.CarbsG, t.FatG)

	manual, synced := nutrition.BurnedBySource(log)
	if manual+synced > 0 {
		fmt.Fprintf(out, "Burned:  %d kcal  (%d manual, %d synced)\n", manual+synced, manual, synced)
	}
	var waterOz float64
	if log.Water != nil {
		waterOz = log.Water.Ounces
	}
	if waterOz > 0 || goals.WaterOz > 0 {
		fmt.Fprintf(out, "Water:   %.0f oz", waterOz)
		if goals.WaterOz > 0 {
			fmt.Fprintf(out, " of %.0f oz goal", goals.WaterOz)
		}
		fmt.Fprintln(out)
	}

	if goals.Calories != nil && *goals.Calories > 0 {
		net := t.Calories - nutrition.CaloriesBurned(log)
		remaining := *goals.Calories - net
		fmt.Fprintf(out, "Net:     %d kcal of %d goal (%d remaining)\n", net, *goals.Calories, remaining)
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
