package execution

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/internal/selection"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

// Runner executes suites one at a time in registration order
type Runner struct {
	config   *config.Config
	logger   *zap.Logger
	filter   *selection.Filter
	progress Progress
	reporter func(suite.SuiteOutcome)
	clock    suite.Clock
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger *zap.Logger, filter *selection.Filter) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
		filter: filter,
		clock:  suite.SystemClock(),
	}
}

// SetProgress sets the progress display for the runner
func (r *Runner) SetProgress(progress Progress) {
	r.progress = progress
}

// SetReporter sets a function called with each finished suite
func (r *Runner) SetReporter(fn func(suite.SuiteOutcome)) {
	r.reporter = fn
}

// SetClock replaces the clock used to time the run
func (r *Runner) SetClock(c suite.Clock) {
	if c != nil {
		r.clock = c
	}
}

// Select applies the suite filter and, with --failed, keeps only the suites
// that failed in last. A nil last selects nothing in --failed mode.
func (r *Runner) Select(handles []suite.Handle, last *domain.TestResultsOutput) []suite.Handle {
	selected := r.filter.Suites(handles, r.config.Flags.SuiteFilter)
	if !r.config.Flags.OnlyFailed {
		return selected
	}
	if last == nil {
		return nil
	}
	return r.filter.Only(selected, last.FailedSuites())
}

// Planned returns how many tests the test filter selects across handles
func (r *Runner) Planned(handles []suite.Handle) int {
	total := 0
	for _, h := range handles {
		total += r.planned(h)
	}
	return total
}

func (r *Runner) planned(h suite.Handle) int {
	filter := r.config.Flags.TestFilter
	if filter == "" {
		return h.TestCount()
	}
	n := 0
	for _, name := range h.TestNames() {
		if strings.Contains(name, filter) {
			n++
		}
	}
	return n
}

// Execute runs handles sequentially. With fail-fast the run stops after the
// first suite that has a failed or errored test.
func (r *Runner) Execute(handles []suite.Handle) (*Result, error) {
	if err := suite.Check(handles); err != nil {
		return nil, fmt.Errorf("invalid suites: %w", err)
	}

	arena := scratch.Unbounded()
	if r.config.ScratchLimit > 0 {
		arena = scratch.New(r.config.ScratchLimit)
	}

	var done, passed, failed int
	opts := []suite.RunOption{
		suite.WithTestFilter(r.config.Flags.TestFilter),
		suite.WithRunClock(r.clock),
		suite.WithObserver(func(i int, so suite.SuiteOutcome) {
			c := so.Counts()
			done += r.planned(handles[i])
			passed += c.Passed
			failed += c.Failed + c.Errored

			r.logSuite(so, c)
			if r.progress != nil {
				r.progress.Update(done, passed, failed)
			}
			if r.reporter != nil {
				r.reporter(so)
			}
		}),
	}
	if r.config.Flags.FailFast {
		opts = append(opts, suite.WithStop(func(so suite.SuiteOutcome) bool {
			return !so.OK()
		}))
	}

	r.logger.Info("run started",
		zap.Int("suites", len(handles)),
		zap.Int("tests", r.Planned(handles)),
		zap.String("test_filter", r.config.Flags.TestFilter),
		zap.Int("scratch_limit", arena.Limit()),
	)

	summary, outcomes := suite.Run(arena, handles, opts...)
	if r.progress != nil {
		r.progress.Finish()
	}

	r.logger.Info("run finished",
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errored", summary.Errored),
		zap.Duration("elapsed", summary.Elapsed),
	)

	return &Result{Summary: summary, Outcomes: outcomes}, nil
}

func (r *Runner) logSuite(so suite.SuiteOutcome, c suite.Counts) {
	if so.SetupFailed {
		r.logger.Warn("suite setup failed",
			zap.String("suite", so.Name),
			zap.Int("errored", c.Errored),
			zap.String("error", so.SetupError),
		)
		return
	}
	if so.TeardownError != "" {
		r.logger.Warn("suite teardown failed",
			zap.String("suite", so.Name),
			zap.String("error", so.TeardownError),
		)
	}
	r.logger.Debug("suite finished",
		zap.String("suite", so.Name),
		zap.Int("passed", c.Passed),
		zap.Int("failed", c.Failed),
		zap.Int("skipped", c.Skipped),
		zap.Duration("elapsed", so.Elapsed),
	)
	for _, t := range so.Tests {
		if t.Outcome.IsFail() {
			r.logger.Debug("test failed",
				zap.String("suite", so.Name),
				zap.String("test", t.Name),
				zap.String("outcome", t.Outcome.String()),
			)
		}
	}
}
