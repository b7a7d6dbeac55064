package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"starstream/internal/ui"
)

var flagNewsID string

var newsCmd = &cobra.Command{
	Use:   "news [keyword]",
	Short: "Read the latest film and series news",
	Args:  cobra.ArbitraryArgs,
	RunE:  newsRun,
}

func init() {
	newsCmd.Flags().StringVar(&flagNewsID, "id", "", "Show one article in full")
	rootCmd.AddCommand(newsCmd)
}

func newsRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		out := cmd.OutOrStdout()

		if flagNewsID != "" {
			it, ok := a.news.ByID(flagNewsID)
			if !ok {
				return fmt.Errorf("no news item with id %q", flagNewsID)
			}
			fmt.Fprint(out, ui.RenderArticle(it))
			return nil
		}

		keyword := strings.Join(args, " ")
		if keyword == "" {
			fmt.Fprint(out, ui.RenderNews("Latest News", a.news.Latest()))
			return nil
		}
		debugf("searching news for: %s", keyword)
		fmt.Fprint(out, ui.RenderNews(fmt.Sprintf("News matching %q", keyword), a.news.Search(keyword)))
		return nil
	})
}
