package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/store"
)

var (
	waterOunces float64
	waterDate   string
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add water to today's total",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrNow(waterDate)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			total, err := st.AddWater(ctx, day, waterOunces)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water for %s: %.0f oz\n", day.Format("2006-01-02"), total)

			eng := achievement.NewEngine(st, nil)
			return eng.OnLogMutated(ctx, day)
		})
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's water total",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrNow(waterDate)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			total, err := st.WaterForDay(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water for %s: %.0f oz\n", day.Format("2006-01-02"), total)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterShowCmd)

	waterAddCmd.Flags().Float64Var(&waterOunces, "oz", 0, "Ounces to add (required)")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	waterShowCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	_ = waterAddCmd.MarkFlagRequired("oz")
}
