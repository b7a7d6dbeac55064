package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"starstream/internal/favorites"
	"starstream/internal/progress"
	"starstream/internal/ui"
)

var continueCmd = &cobra.Command{
	Use:   "continue",
	Short: "Pick up a title you started",
	Args:  cobra.NoArgs,
	RunE:  continueRun,
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved playback progress",
	Args:  cobra.NoArgs,
	RunE:  progressRun,
}

var (
	flagClearAll bool
	flagYes      bool
)

var clearCmd = &cobra.Command{
	Use:   "clear [title-id]",
	Short: "Clear saved progress for a title, or all of it with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  clearRun,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Show your favorites",
	Args:  cobra.NoArgs,
	RunE:  favoritesRun,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <title-id>",
	Short: "Add a title to favorites, or remove it",
	Args:  cobra.ExactArgs(1),
	RunE:  favoritesToggleRun,
}

func init() {
	clearCmd.Flags().BoolVar(&flagClearAll, "all", false, "Clear all saved progress")
	clearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
	favoritesCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick a title to watch")
	favoritesCmd.AddCommand(favoritesToggleCmd)

	rootCmd.AddCommand(continueCmd, progressCmd, clearCmd, favoritesCmd)
}

func continueRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		records, err := a.progress.All(cmd.Context(), a.who())
		if err != nil {
			return err
		}

		t, err := ui.PickContinue(progress.ContinueWatching(records, 0), a.catalog.ByID)
		if errors.Is(err, ui.ErrNothingToPick) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to continue.")
			return nil
		}
		if err != nil {
			return err
		}
		return watchTitle(cmd, a, t)
	})
}

func progressRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		records, err := a.progress.All(cmd.Context(), a.who())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderProgress(records))
		return nil
	})
}

func clearRun(cmd *cobra.Command, args []string) error {
	if flagClearAll == (len(args) == 1) {
		return fmt.Errorf("give either a title id or --all")
	}

	return withApp(cmd.Context(), func(a *app) error {
		who := a.who()
		if who == nil {
			return nil
		}
		if flagClearAll {
			if !flagYes {
				ok, err := ui.Confirm("Clear all saved progress?")
				if err != nil || !ok {
					return err
				}
			}
			return a.progress.ClearAll(cmd.Context(), who)
		}
		return a.progress.Clear(cmd.Context(), who, args[0])
	})
}

func favoritesRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		list, err := a.favorites.List(cmd.Context(), a.who())
		if err != nil {
			return err
		}
		return listOrPick(cmd, a, "My List", favorites.Titles(list, a.catalog.ByID))
	})
}

func favoritesToggleRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		t, ok := a.catalog.ByID(args[0])
		if !ok {
			return fmt.Errorf("no title with id %q", args[0])
		}
		added, err := a.favorites.Toggle(cmd.Context(), a.who(), t.Favorite())
		if err != nil {
			return err
		}
		debugf("favorite %s: %v", t.ID, added)
		return nil
	})
}
