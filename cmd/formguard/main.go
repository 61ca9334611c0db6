// Formguard decides when field validation messages become visible.
//
// Running it without arguments opens an interactive terminal form where
// fields reveal their errors on blur or on submit. The subcommands replay
// scripted scenarios, serve remote forms over WebSocket and find servers on
// the local network.
//
// Usage:
//
//	formguard [command] [flags]
//
// See 'formguard --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/formguard/internal/config"
	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/tui"
	"github.com/muurk/formguard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

// settings is loaded before every command runs.
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "formguard",
	Short: "Field validation visibility controller",
	Long: `Formguard decides, for every field of a form, which validation messages
are shown and when: immediately, once the field loses focus, or only after
the form is submitted.

If no command is specified, an interactive demo form opens. Type to edit a
field, tab to leave it, ctrl+s to submit.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), tui.Options{Scroll: settings.Scroll})
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: OS config dir)/formguard/config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs are off when unset")

	rootCmd.AddCommand(versionCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = logLevel
	}
	if err := logging.Initialize(s.LogLevel); err != nil {
		return err
	}
	settings = s
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}
