package nutra

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oms2304/nutra-cli/internal/achievement"
	"github.com/oms2304/nutra-cli/internal/store"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show points and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			points, level, err := st.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Level %d  (%d points)\n", level, points)
			if next := achievement.PointsForNextLevel(points); next >= 0 {
				fmt.Fprintf(out, "%d points to level %d\n", next-points, level+1)
			} else {
				fmt.Fprintln(out, "Max level reached.")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(levelCmd)
}
