package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"starstream/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently watched titles, or pick one to watch again",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick a title to watch")
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		who := a.who()
		if who == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Sign in to keep a watch history.")
			return nil
		}

		entries, err := a.history.List(cmd.Context(), who)
		if err != nil {
			return err
		}

		titles := history.Titles(entries, a.catalog.ByID)
		if len(titles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history entries found.")
			return nil
		}

		debugf("history: %d entries, %d in catalog", len(entries), len(titles))
		return listOrPick(cmd, a, "Recently Watched", titles)
	})
}
