package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtp/internal/config"
	"gtp/internal/selection"
	"gtp/internal/storage"
	"gtp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	suites    SuiteSource
	filter    *selection.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	suites SuiteSource,
	filter *selection.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		suites:    suites,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	handles := lc.filter.Suites(lc.suites(), lc.config.Flags.SuiteFilter)
	if len(handles) == 0 {
		color.Yellow("No suites found")
		return nil
	}

	// Mark what failed in the last run, if there is one
	var failed map[string]bool
	if last, err := lc.storage.Load(); err == nil {
		failed = last.FailedTests()
		for _, name := range last.FailedSuites() {
			failed[name] = true
		}
	}

	lc.formatter.PrintSuiteList(handles, lc.config.Flags.ShowTests, failed)
	return nil
}
