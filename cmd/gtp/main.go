package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gtp/internal/cli"
	"gtp/internal/cli/commands"
	"gtp/internal/config"
	"gtp/internal/selfcheck"
	"gtp/pkg/suite"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "gtp",
		Short:         "Lightweight test-execution engine",
		Long:          `Run suites of pure test functions with shared setup and teardown, filter them by name, and report the results to the console, JSON, JUnit XML and Prometheus.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config and logger; both are replaced once flags are parsed
	cfg := config.New()
	logger := zap.NewNop()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	suites := func() []suite.Handle {
		return selfcheck.Suites(cfg, logger)
	}

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger, suites, os.Stdout)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(commands.ExitCode(err))
	}
}
