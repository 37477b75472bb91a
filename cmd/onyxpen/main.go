package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	noColor      bool
	verbose      bool
	registryPath string
)

var rootCmd = &cobra.Command{
	Use:   "onyxpen",
	Short: "Toggle handwriting optimization for apps on Onyx e-readers",
	Long: `onyxpen edits the per-app EAC configuration of an Onyx e-reader to enable
or disable handwriting (stylus) optimization.

Copy the device's config database (and its .crc companion) to your machine,
run a command against it, then copy both files back. A .backup pair is
written before every change.

Examples:
  onyxpen known
  onyxpen quick --app com.xodo.pdf.reader --database ./onyx_config
  onyxpen enable --app com.myapp --draw-view com.myapp.ui.DrawView --database ./onyx_config
  onyxpen disable --app com.xodo.pdf.reader --database ./onyx_config
  onyxpen list --database ./onyx_config
  onyxpen discover --app com.myapp`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelWarn
		if verbose {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "YAML file with additional known apps")

	rootCmd.AddCommand(knownCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(testCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
