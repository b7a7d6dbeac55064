package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"starstream/internal/media"
	"starstream/internal/playback"
	"starstream/internal/player"
	"starstream/internal/ui"
)

var (
	flagEpisode  string
	flagNoResume bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search titles by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			query := strings.Join(args, " ")
			return listOrPick(cmd, a, fmt.Sprintf("Results for %q", query), a.catalog.Search(query))
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <title-id>",
	Short: "Watch a title by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			t, ok := a.catalog.ByID(args[0])
			if !ok {
				return fmt.Errorf("no title with id %q", args[0])
			}
			return watchTitle(cmd, a, t)
		})
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick a title to watch")
	for _, c := range []*cobra.Command{rootCmd, watchCmd} {
		c.Flags().StringVarP(&flagEpisode, "episode", "e", "", "Episode id for series")
	}
	rootCmd.PersistentFlags().BoolVar(&flagNoResume, "no-resume", false, "Start from the beginning")

	rootCmd.AddCommand(searchCmd, watchCmd)
}

// searchRun is the default command: starstream <query>
func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if query == "" {
		// Prompt for query via fzf
		var err error
		query, err = ui.Input("Search")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}

	debugf("searching for: %s", query)

	return withApp(cmd.Context(), func(a *app) error {
		results := a.catalog.Search(query)
		if len(results) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q.\n", query)
			return nil
		}

		selected, err := ui.PickTitle("Select", results)
		if err != nil {
			return err
		}
		debugf("selected: %s (ID: %s, type: %s)", selected.Title, selected.ID, selected.Kind)
		return watchTitle(cmd, a, selected)
	})
}

// watchTitle records the view, opens a playback session and plays the title
// with the configured player.
func watchTitle(cmd *cobra.Command, a *app, t media.Title) error {
	ctx := cmd.Context()
	who := a.who()

	if err := a.history.Record(ctx, who, t.ID); err != nil {
		debugf("recording history failed: %v", err)
	}

	src := player.Source{URL: t.VideoURL, Title: t.Title}
	opts := []playback.Option{
		playback.WithInterval(cfg.TickInterval.Duration),
		playback.WithNotifier(a.notifier),
		playback.WithDebug(debugf),
	}

	if t.Kind == media.Series {
		ep, err := ui.PickEpisode(t, flagEpisode)
		if err != nil {
			return err
		}
		src.URL = ep.VideoURL
		src.Title = fmt.Sprintf("%s %s", t.Title, ep.Label())
		opts = append(opts, playback.WithDuration(media.ParseRuntime(ep.Duration)))
		debugf("episode: %s (ID: %s)", ep.Label(), ep.ID)
	}

	session, err := playback.Open(ctx, a.progress, a.identity, t, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	if !flagNoResume {
		if pos, ok := session.Resume(); ok {
			src.StartPos = pos
			debugf("resuming from position: %.0fs", pos)
		}
	}

	if strings.EqualFold(cfg.Player, "builtin") {
		if err := session.Play(); err != nil {
			return err
		}
		if err := ui.Watch(ctx, session); err != nil {
			return err
		}
		moreLikeThis(cmd.OutOrStdout(), a, t)
		return nil
	}

	p, err := player.New(cfg.Player)
	if err != nil {
		return err
	}
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}
	if src.URL == "" {
		return fmt.Errorf("%s has no video source", t.Title)
	}

	lastPos, err := p.Play(ctx, src, func(pos, dur float64) {
		if err := session.Report(ctx, pos, dur); err != nil {
			debugf("saving progress failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	debugf("stopped at %s", media.FormatClock(lastPos))

	moreLikeThis(cmd.OutOrStdout(), a, t)
	return nil
}

// moreLikeThis prints titles sharing a genre with t.
func moreLikeThis(w io.Writer, a *app, t media.Title) {
	fmt.Fprint(w, ui.RenderRow("More like this", a.catalog.SimilarTo(t, 0)))
}
