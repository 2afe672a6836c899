package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/store"
)

var (
	sleepStartDate string
	sleepStartTime string
	sleepEndDate   string
	sleepEndTime   string
	sleepState     string
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Record sleep samples",
}

var sleepAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a sleep sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateTime(sleepStartDate, sleepStartTime)
		if err != nil {
			return fmt.Errorf("sleep start: %w", err)
		}
		end, err := parseDateTime(sleepEndDate, sleepEndTime)
		if err != nil {
			return fmt.Errorf("sleep end: %w", err)
		}
		state := sleepState
		if state == "" {
			state = model.SleepStateAsleep
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			id, err := st.AddSleepSample(ctx, store.SleepSampleInput{
				Start: start,
				End:   end,
				State: state,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s sample %s - %s [id %d]\n",
				state, start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"), id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sleepCmd)
	sleepCmd.AddCommand(sleepAddCmd)

	sleepAddCmd.Flags().StringVar(&sleepStartDate, "date", "", "Start date YYYY-MM-DD (required)")
	sleepAddCmd.Flags().StringVar(&sleepStartTime, "time", "", "Start time HH:MM (required)")
	sleepAddCmd.Flags().StringVar(&sleepEndDate, "end-date", "", "End date YYYY-MM-DD (required)")
	sleepAddCmd.Flags().StringVar(&sleepEndTime, "end-time", "", "End time HH:MM (required)")
	sleepAddCmd.Flags().StringVar(&sleepState, "state", "asleep", "Sample state (in_bed or asleep)")
}
