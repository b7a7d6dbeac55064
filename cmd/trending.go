package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"starstream/internal/media"
	"starstream/internal/progress"
	"starstream/internal/ui"
)

var flagPick bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Show the home rows",
	Args:  cobra.NoArgs,
	RunE:  browseRun,
}

func browseRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		out := cmd.OutOrStdout()

		if who := a.who(); who != nil {
			records, err := a.progress.All(cmd.Context(), who)
			if err != nil {
				return err
			}
			if cont := progress.ContinueWatching(records, 0); len(cont) > 0 {
				fmt.Fprint(out, ui.RenderProgress(cont))
			}
		}

		fmt.Fprint(out, ui.RenderRow("Trending Now", a.catalog.Trending()))
		fmt.Fprint(out, ui.RenderRow("New Releases", a.catalog.NewReleases()))
		fmt.Fprint(out, ui.RenderRow("Recommended for You", a.catalog.Recommended()))
		fmt.Fprint(out, ui.RenderRow("Movies", a.catalog.ByKind(media.Movie)))
		fmt.Fprint(out, ui.RenderRow("Series", a.catalog.ByKind(media.Series)))
		return nil
	})
}

// rowCmd builds a command that lists one catalog row, or picks from it with --pick.
func rowCmd(use, short, heading string, row func(*app) []media.Title) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				return listOrPick(cmd, a, heading, row(a))
			})
		},
	}
}

var trendingCmd = rowCmd("trending", "Browse trending titles", "Trending Now",
	func(a *app) []media.Title { return a.catalog.Trending() })

var newCmd = rowCmd("new", "Browse the newest releases", "New Releases",
	func(a *app) []media.Title { return a.catalog.NewReleases() })

var recommendedCmd = rowCmd("recommended", "Browse recommended titles", "Recommended for You",
	func(a *app) []media.Title { return a.catalog.Recommended() })

var genreCmd = &cobra.Command{
	Use:   "genre [name]",
	Short: "Browse titles of one genre",
	Args:  cobra.MaximumNArgs(1),
	RunE:  genreRun,
}

var flagKind string

func genreRun(cmd *cobra.Command, args []string) error {
	var kind *media.Kind
	if flagKind != "" {
		k, err := media.ParseKind(flagKind)
		if err != nil {
			return err
		}
		kind = &k
	}

	return withApp(cmd.Context(), func(a *app) error {
		genre := strings.Join(args, " ")
		if genre == "" {
			genres := a.catalog.Genres(kind)
			idx, err := ui.Select("Genre", genres)
			if err != nil {
				return err
			}
			genre = genres[idx]
		}

		titles := []media.Title{}
		for _, t := range a.catalog.ByGenre(genre) {
			if kind == nil || t.Kind == *kind {
				titles = append(titles, t)
			}
		}
		return listOrPick(cmd, a, genre, titles)
	})
}

// listOrPick prints titles, or lets the user pick one to watch.
func listOrPick(cmd *cobra.Command, a *app, heading string, titles []media.Title) error {
	if !flagPick {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderRow(heading, titles))
		return nil
	}
	if len(titles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No titles found.")
		return nil
	}
	t, err := ui.PickTitle(heading, titles)
	if err != nil {
		return err
	}
	return watchTitle(cmd, a, t)
}

func init() {
	for _, c := range []*cobra.Command{trendingCmd, newCmd, recommendedCmd, genreCmd} {
		c.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick a title to watch")
	}
	genreCmd.Flags().StringVarP(&flagKind, "kind", "k", "", "Only movie or series")

	rootCmd.AddCommand(browseCmd, trendingCmd, newCmd, recommendedCmd, genreCmd)
}
