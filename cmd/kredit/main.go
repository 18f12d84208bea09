// Kredit is a terminal client for the Kredo consumer loan service.
//
// It provides an interactive application wizard covering identity
// verification, loan parameter selection, offer review and the signing
// ceremony, plus direct commands for tracking an existing application.
//
// Usage:
//
//	kredit [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'kredit --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TuranHaqverdiyev/Kredit/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kredit",
	Short: "Kredo Loan Application Client",
	Long: `A terminal client for applying to Kredo consumer loans.

Provides an interactive application wizard that walks through identity
verification, personal data confirmation, amount selection, offer review
and the signing ceremony, plus direct commands for tracking an
application that is already in progress.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runApply(cmd, args)
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
		fmt.Printf("kredit %s (commit: %s)\n", version.Version, version.Commit)
	},
}
