package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"starstream/internal/api"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and your library over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func serveRun(cmd *cobra.Command, args []string) error {
	addr := cfg.Listen
	if flagListen != "" {
		addr = flagListen
	}

	return withApp(cmd.Context(), func(a *app) error {
		router := api.NewRouter(api.Deps{
			Catalog:   a.catalog,
			Identity:  a.identity,
			Progress:  a.progress,
			History:   a.history,
			Favorites: a.favorites,
			News:      a.news,
		}, cfg.Debug)

		log.Printf("listening on %s", addr)
		return api.Serve(cmd.Context(), addr, router)
	})
}
