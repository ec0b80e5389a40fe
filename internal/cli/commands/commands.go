package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gtp/internal/cli"
	"gtp/internal/config"
	"gtp/internal/execution"
	"gtp/internal/fixtures"
	"gtp/internal/logging"
	"gtp/internal/selection"
	"gtp/internal/storage"
	"gtp/internal/ui"
	"gtp/pkg/suite"
)

// ErrTestsFailed is returned by run when a test failed or errored
var ErrTestsFailed = errors.New("tests failed")

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// SuiteSource returns the suites to run. It is called after the config is loaded.
type SuiteSource func() []suite.Handle

// Commands holds all CLI commands
type Commands struct {
	config *config.Config
	logger *zap.Logger

	Run       *RunCommand
	List      *ListCommand
	Faills    *FaillsCommand
	Provision *ProvisionCommand
}

// NewCommands creates all commands with dependencies. cfg and logger are
// replaced in place once flags are parsed, so dependents keep valid pointers.
func NewCommands(cfg *config.Config, logger *zap.Logger, suites SuiteSource, out io.Writer) *Commands {
	filter := selection.NewFilter()
	runner := execution.NewRunner(cfg, logger, filter)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, out)
	errorViewer := ui.NewErrorViewer(jsonStorage, logger)
	dbManager := fixtures.NewDatabaseManager(cfg, logger)

	return &Commands{
		config:    cfg,
		logger:    logger,
		Run:       NewRunCommand(cfg, logger, suites, runner, jsonStorage, formatter, errorViewer),
		List:      NewListCommand(cfg, suites, filter, formatter, jsonStorage),
		Faills:    NewFaillsCommand(cfg, jsonStorage, errorViewer),
		Provision: NewProvisionCommand(cfg, dbManager, out),
	}
}

// prepare loads the config for the parsed flags and rebuilds the logger
func (c *Commands) prepare(flags *cli.Flags) error {
	loaded, err := config.Load(flags.ToConfigFlags())
	if err != nil {
		return err
	}
	*c.config = *loaded

	logger, err := logging.New(c.config.LogLevel, flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	*c.logger = *logger
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the YAML config file (default ./gtp.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Debug logging and per-test output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return c.prepare(flags)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.logger.Sync()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run test suites",
		Long:  "Execute the registered suites one at a time and save the results",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.SuiteFilter, "suite", "s", "", "Filter suites by name pattern (supports wildcards, e.g., 'math*' or '*check*')")
	runCmd.Flags().StringVarP(&flags.TestFilter, "filter", "f", "", "Run only tests whose name contains this text")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first suite with a failed or errored test")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only suites that failed in the last run (from storage/test-results.json)")
	runCmd.Flags().StringVar(&flags.JUnitFile, "junit", "", "Also write a JUnit XML report to this file")
	runCmd.Flags().StringVar(&flags.MetricsFile, "metrics", "", "Also write Prometheus metrics in textfile format to this file")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered suites",
		Long:  "List the registered suites, and optionally their tests, without executing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.SuiteFilter, "suite", "s", "", "Filter suites by name pattern (supports wildcards, e.g., 'math*' or '*check*')")
	listCmd.Flags().BoolVarP(&flags.ShowTests, "tests", "t", false, "List tests under each suite")
	rootCmd.AddCommand(listCmd)

	// Provision command
	provisionCmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the test database",
		Long:  "Create the MySQL database used by the mysql suite if it does not exist",
		RunE:  c.Provision.Execute,
	}
	rootCmd.AddCommand(provisionCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
