// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"starstream/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagStorage string
	flagDataDir string
	flagPlayer  string
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "starstream [query]",
	Short: "Browse and watch the starstream catalog from the terminal",
	Long: `Starstream is a terminal front end for a small movie and series catalog.
Browse rows, search, keep favorites and resume where you left off.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              searchRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Storage backend: file | sqlite | redis | memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for file and sqlite storage")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: builtin | mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Skip config loading so version works with a broken config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "starstream %s\n", Version)
	},
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagStorage != "" {
		cfg.Storage = flagStorage
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[starstream] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
