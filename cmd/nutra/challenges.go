package nutra

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/store"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Show active weekly challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			eng := achievement.NewEngine(st, nil)
			fresh, err := eng.GenerateWeeklyChallenges(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(fresh) > 0 {
				fmt.Fprintf(out, "New week, new challenges! %d issued.\n\n", len(fresh))
			}

			all, err := st.Challenges(ctx)
			if err != nil {
				return err
			}
			now := time.Now()
			shown := 0
			for _, ch := range all {
				if !ch.Active(now) && !ch.Completed {
					continue
				}
				if ch.Completed && now.After(ch.ExpiresAt) {
					continue
				}
				mark := " "
				if ch.Completed {
					mark = "x"
				}
				remaining := time.Until(ch.ExpiresAt).Round(time.Hour)
				fmt.Fprintf(out, "[%s] %-28s %d/%d  +%d pts  (%s left)\n",
					mark, ch.Title, ch.Progress, ch.Goal, ch.Points, remaining)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "No active challenges.")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(challengesCmd)
}
