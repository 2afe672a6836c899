package nutra

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/insight"
	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/store"
)

var (
	insightDays int
	insightMax  int
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze recent logs and show ranked observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if insightDays <= 0 {
			return fmt.Errorf("--days must be > 0")
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			now := time.Now()
			from := now.AddDate(0, 0, -(insightDays - 1))

			logs, err := st.FetchLogs(ctx, from, now)
			if err != nil {
				printInsights(cmd, []model.UserInsight{insight.FetchFailure(err)})
				return nil
			}
			sleep, err := st.FetchSleepSamples(ctx, from, now)
			if err != nil {
				printInsights(cmd, []model.UserInsight{insight.FetchFailure(err)})
				return nil
			}
			goals, err := st.GoalSnapshot(ctx, now.Format("2006-01-02"))
			if err != nil {
				printInsights(cmd, []model.UserInsight{insight.FetchFailure(err)})
				return nil
			}

			results := insight.Evaluate(insight.Input{
				Logs:  logs,
				Goals: goals,
				Sleep: sleep,
				Now:   now,
			}, insightMax)
			printInsights(cmd, results)
			return nil
		})
	},
}

func printInsights(cmd *cobra.Command, insights []model.UserInsight) {
	out := cmd.OutOrStdout()
	for i, ins := range insights {
		fmt.Fprintf(out, "%d. %s\n", i+1, ins.Title)
		fmt.Fprintf(out, "   %s\n", ins.Message)
		if i < len(insights)-1 {
			fmt.Fprintln(out)
		}
	}
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().IntVar(&insightDays, "days", 14, "How many days of logs to analyze")
	insightsCmd.Flags().IntVar(&insightMax, "max", insight.DefaultMaxInsights, "Maximum insights to show")
}
