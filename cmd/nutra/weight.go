package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/store"
)

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightTime  string
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		recordedAt, err := parseDateTimeOrNow(weightDate, weightTime)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			id, err := st.AddWeightEntry(ctx, store.WeightInput{
				Weight:     weightValue,
				Unit:       weightUnit,
				RecordedAt: recordedAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f %s [id %d]\n", weightValue, weightUnit, id)

			eng := achievement.NewEngine(st, nil)
			return eng.OnWeightUpdated(ctx)
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			history, err := st.WeightHistory(ctx)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries yet.")
				return nil
			}
			for _, e := range history {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %.1f lb\n", e.RecordedAt.Format("2006-01-02"), e.WeightLb)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "value", 0, "Weight value (required)")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "lb", "Weight unit (lb or kg)")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().StringVar(&weightTime, "time", "", "Time HH:MM (default now)")
	_ = weightAddCmd.MarkFlagRequired("value")
}
