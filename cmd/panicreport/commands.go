package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/panicreport/internal/config"
	"github.com/muurk/panicreport/internal/crash"
	"github.com/muurk/panicreport/internal/crashflow"
	"github.com/muurk/panicreport/internal/engine"
	"github.com/muurk/panicreport/internal/logging"
	"github.com/muurk/panicreport/internal/reporter"
	"github.com/muurk/panicreport/internal/version"
)

// Global flags
var (
	configPath string
	endpoint   string
	enginePath string
	logLevel   string
)

// Report command flags
var (
	failureFile   string
	engineVersion string
)

// Config command flags
var forceInit bool

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Error report collector URL")
	rootCmd.PersistentFlags().StringVar(&enginePath, "engine", "", "Engine binary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); default: $"+logging.LogLevelEnvVar)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// runCmd executes the engine
var runCmd = &cobra.Command{
	Use:   "run [-- engine args]",
	Short: "Run the engine and handle crashes",
	Long: `Run the engine binary with the given arguments.

Engine output is passed through. If the engine panics or is terminated by a
signal, the crash report dialog is shown. An ordinary non-zero exit is passed
on as panicreport's own exit status.`,
	Example: `  panicreport run -- --port 4466 --datamodel schema.prisma`,
	RunE:    runEngine,
}

// reportCmd offers a captured failure for submission
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Offer to submit a previously captured crash",
	Long: `Read engine stderr captured elsewhere and show the crash report dialog
for it. Use --file - to read from standard input.`,
	Example: `  panicreport report --file crash.txt
  query-engine 2>&1 | panicreport report --file -`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&failureFile, "file", "f", "-", "Captured engine stderr (- for stdin)")
	reportCmd.Flags().StringVar(&engineVersion, "engine-version", "", "Engine version to report (default: ask the engine)")
}

// configCmd groups configuration file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// configInitCmd writes a config file with defaults
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default settings",
	Long: `Write a configuration file populated with the defaults. --endpoint and
--engine, when given, are stored instead of the defaults.

The file is written to --config or the platform config directory. An existing
file is only replaced with --force.`,
	Example: `  panicreport config init
  panicreport --endpoint http://localhost:8080/v1 config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	cfg := config.New()
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if enginePath != "" {
		cfg.Engine.Path = enginePath
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if enginePath != "" {
		cfg.Engine.Path = enginePath
	}
	return cfg, nil
}

func newRunner(cfg *config.Config, cmd *cobra.Command) *engine.Runner {
	return engine.NewRunner(engine.Config{
		Path:        cfg.Engine.Path,
		Timeout:     cfg.Engine.Timeout,
		VersionArgs: cfg.Engine.VersionArgs,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	}, logging.Named("engine"))
}

func newHandler(cfg *config.Config) *crashflow.Handler {
	client := reporter.NewClient(cfg.Endpoint)
	client.SetTimeout(cfg.Timeout)
	return crashflow.New(client)
}

func runEngine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner := newRunner(cfg, cmd)
	err = runner.Run(cmd.Context(), args)

	var failure *crash.Failure
	if errors.As(err, &failure) {
		_, err = newHandler(cfg).Handle(cmd.Context(), failure, version.Version, runner.Version(cmd.Context()))
	}
	return exitError(err)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	failure, err := readFailure(cmd.InOrStdin(), failureFile)
	if err != nil {
		return err
	}

	h := newHandler(cfg)
	if failureFile == "-" {
		// stdin carried the failure; answers have to come from the terminal
		h.In = nil
		h.ProgramOptions = append(h.ProgramOptions, tea.WithInputTTY())
	}

	ev := engineVersion
	if ev == "" {
		ev = newRunner(cfg, cmd).Version(cmd.Context())
	}

	_, err = h.Handle(cmd.Context(), failure, version.Version, ev)
	return err
}

// readFailure parses captured engine stderr from path, or from stdin when
// path is "-".
func readFailure(stdin io.Reader, path string) (*crash.Failure, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read captured failure: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("captured failure is empty")
	}
	return crash.FromStderr(string(data), nil, 0, ""), nil
}

// exitError turns an ordinary engine exit into the same exit status for
// panicreport. Anything else is returned unchanged.
func exitError(err error) error {
	var execErr *engine.ExecutionError
	if errors.As(err, &execErr) && execErr.Err == nil && execErr.ExitCode > 0 {
		return &ExitError{Code: execErr.ExitCode}
	}
	return err
}
