package domain

import "fmt"

// SetupTestName stands in for the test name of a failure raised by suite setup
const SetupTestName = "(setup)"

// TestFailure is one failure of the last run as shown by the faills viewer
type TestFailure struct {
	Suite    string `json:"suite"`
	TestName string `json:"test_name"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// ID returns "suite/test"
func (f TestFailure) ID() string {
	return fmt.Sprintf("%s/%s", f.Suite, f.TestName)
}

// FailureRecord is a persisted outcome.Failure
type FailureRecord struct {
	Message   string `json:"message"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
	HasDetail bool   `json:"has_detail,omitempty"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Func      string `json:"func,omitempty"`
}
