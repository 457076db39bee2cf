// Beastx-cfg is a configuration utility for the WL Mouse Beast X.
//
// It stores DPI profiles, polling rate, and lift-off distance in a local
// settings file and pushes hardware-backed settings to the mouse over USB
// HID. The mouse never reports its state back, so the settings file is the
// source of truth and the device is reconciled to it.
//
// Usage:
//
//	beastx-cfg [command] [flags]
//
// Running without arguments prints the device and settings status.
// See 'beastx-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlmouse/beastx/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beastx-cfg",
	Short: "Beast X Mouse Configuration Utility",
	Long: `A standalone utility for configuring the WL Mouse Beast X.

Manages DPI profiles, polling rate, and lift-off distance. Settings are
persisted locally and applied to the mouse over USB HID.

If no command is specified, the current status is printed.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show status when no subcommand provided
		return runStatus(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beastx-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
