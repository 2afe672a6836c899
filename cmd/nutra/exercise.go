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
	exerciseName     string
	exerciseDuration int
	exerciseCalories int
	exerciseSource   string
	exerciseDate     string
	exerciseTime     string
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		performedAt, err := parseDateTimeOrNow(exerciseDate, exerciseTime)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			id, err := st.LogExercise(ctx, store.LogExerciseInput{
				Name:           exerciseName,
				DurationMin:    exerciseDuration,
				CaloriesBurned: exerciseCalories,
				Source:         exerciseSource,
				PerformedAt:    performedAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal burned) [id %d]\n", exerciseName, exerciseCalories, id)

			eng := achievement.NewEngine(st, nil)
			if err := eng.OnLogMutated(ctx, performedAt); err != nil {
				return err
			}
			return announceCompleted(ctx, cmd, eng, model.ChallengeWorkoutLogged, 1)
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseName, "name", "", "Exercise name (required)")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "Duration minutes")
	exerciseAddCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().StringVar(&exerciseSource, "source", "manual", "Entry source (manual or synced)")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	exerciseAddCmd.Flags().StringVar(&exerciseTime, "time", "", "Time HH:MM (default now)")
	_ = exerciseAddCmd.MarkFlagRequired("name")
}
