// Panicreport runs the query engine and, when it crashes, offers to send an
// error report.
//
// If the engine panics or is killed by a signal while a person is at the
// terminal, panicreport shows the captured failure and asks for consent to
// submit it once. In CI or without a terminal the failure is printed and the
// command fails as usual.
//
// Usage:
//
//	panicreport run [flags] -- <engine args>
//	panicreport report --file crash.txt
//
// See 'panicreport --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/panicreport/internal/logging"
	"github.com/muurk/panicreport/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ExitError carries a process exit status up to main without printing
// anything.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var rootCmd = &cobra.Command{
	Use:   "panicreport",
	Short: "Crash reporting wrapper for the query engine",
	Long: `Runs the query engine and handles its crashes.

When the engine panics or dies from a signal in an interactive terminal,
the failure is shown and you are asked whether to send an error report.
Reports are sent once, never retried, and contain no personal data.

In CI (CI or GITHUB_ACTIONS set) or when stdout is not a terminal the
failure is printed and the command exits with an error.`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	Example: `  # Run the engine
  panicreport run -- --port 4466

  # Use a specific engine binary and collector
  panicreport --engine ./query-engine --endpoint http://localhost:8080/v1 run

  # Offer to report a crash captured elsewhere
  panicreport report --file crash.txt`,
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
		fmt.Fprintf(cmd.OutOrStdout(), "panicreport %s (commit: %s)\n", version.Version, version.Commit)
	},
}
