package execution

import (
	"gtp/pkg/suite"
)

// Executor executes suites and returns results
type Executor interface {
	Execute(handles []suite.Handle) (*Result, error)
}

// Result is the output of one run
type Result struct {
	Summary  suite.RunSummary
	Outcomes []suite.SuiteOutcome
}

// Progress receives test counts as suites finish
type Progress interface {
	Update(done, passed, failed int)
	Finish()
}
