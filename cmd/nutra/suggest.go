package nutra

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/insight"
	"github.com/oms2304/nutra-cli/internal/store"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show one context-aware suggestion for right now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			now := time.Now()
			log, err := st.DayLog(ctx, now)
			if err != nil {
				return err
			}
			goals, err := st.GoalSnapshot(ctx, now.Format("2006-01-02"))
			if err != nil {
				return err
			}
			s := insight.DailySuggestion(log, goals, now)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", s.Title, s.Message)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
