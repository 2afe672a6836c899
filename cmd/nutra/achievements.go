package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/store"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			statuses, err := st.AllStatuses(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			unlocked := 0
			for _, def := range achievement.Definitions() {
				status, ok := statuses[def.ID]
				mark := " "
				progress := ""
				switch {
				case ok && status.Unlocked:
					mark = "x"
					unlocked++
					if status.UnlockedAt != nil {
						progress = status.UnlockedAt.Format("2006-01-02")
					}
				case ok && status.Progress > 0 && def.CriteriaValue > 1:
					progress = fmt.Sprintf("%d/%d", status.Progress, def.CriteriaValue)
				}
				fmt.Fprintf(out, "[%s] %-22s %3d pts  %-10s %s\n",
					mark, def.Title, def.Points, progress, def.Description)
			}
			fmt.Fprintf(out, "\n%d of %d unlocked\n", unlocked, len(achievement.Definitions()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
}
