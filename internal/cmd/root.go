// Package cmd implements the gridctl command line: headless layout, settle,
// export and config commands over the same engine the desktop app uses.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gridflow/internal/project"
)

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (.json or .toml)")

	rootCmd.AddCommand(
		layoutCmd,
		settleCmd,
		exportCmd,
		configCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "gridctl",
	Short: "Headless tools for self-sizing grid layouts",
	Long: `gridctl builds grid layouts for a catalog without a window.
It prints frames, settles measured heights, exports layout snapshots and
manages the GridFlow configuration file.`,
	Example: `
# Print the frames of the demo catalog at 1000pt
gridctl layout --width 1000

# Measure every card and print the settled content height
gridctl settle --catalog recipes.csv --size-category accessibility-large

# Export a PDF snapshot of the settled layout
gridctl export --format pdf --out layout.pdf

# Write a default TOML config
gridctl config init --config ~/.gridflow/config.toml
  `,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

// setupLogging installs a text handler on stderr, at Debug with --debug.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// configPath returns the --config flag or the default config location.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return project.DefaultConfigPath()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
