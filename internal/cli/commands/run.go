package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/internal/execution"
	"gtp/internal/metrics"
	"gtp/internal/storage"
	"gtp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	logger    *zap.Logger
	suites    SuiteSource
	runner    *execution.Runner
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	logger *zap.Logger,
	suites SuiteSource,
	runner *execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		logger:    logger,
		suites:    suites,
		runner:    runner,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	var last *domain.TestResultsOutput
	if rc.config.Flags.OnlyFailed {
		var err error
		last, err = rc.storage.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				color.Yellow("No previous run found at %s", rc.config.GetOutputPath())
				return nil
			}
			return fmt.Errorf("failed to load last results: %w", err)
		}
	}

	handles := rc.runner.Select(rc.suites(), last)
	if len(handles) == 0 {
		color.Yellow("No suites to execute")
		return nil
	}

	if rc.config.Flags.Verbose {
		rc.runner.SetReporter(rc.formatter.PrintSuiteOutcome)
	} else {
		rc.runner.SetProgress(ui.NewProgressBar(rc.runner.Planned(handles), cmd.ErrOrStderr()))
	}

	result, err := rc.runner.Execute(handles)
	if err != nil {
		return err
	}

	output := domain.NewTestResultsOutput(uuid.NewString(), result.Summary, result.Outcomes, time.Now())
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	if err := rc.writeReports(output); err != nil {
		return err
	}

	rc.formatter.PrintSummary(output)

	if result.Summary.OK() {
		return nil
	}
	if rc.config.Flags.OpenFaills {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d failed, %d errored", ErrTestsFailed, result.Summary.Failed, result.Summary.Errored)
}

// writeReports writes the optional JUnit and metrics files
func (rc *RunCommand) writeReports(output *domain.TestResultsOutput) error {
	if path := rc.config.GetJUnitPath(); path != "" {
		if err := storage.NewJUnitWriter().Write(path, output); err != nil {
			return fmt.Errorf("failed to write junit report: %w", err)
		}
		rc.logger.Info("junit report written", zap.String("path", path))
	}

	if path := rc.config.GetMetricsPath(); path != "" {
		recorder := metrics.NewRecorder()
		recorder.Record(output)
		if err := recorder.WriteTextfile(path); err != nil {
			return err
		}
		rc.logger.Info("metrics written", zap.String("path", path))
	}
	return nil
}
