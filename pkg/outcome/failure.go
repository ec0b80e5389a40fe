package outcome

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Location identifies the source position that produced a failure
type Location struct {
	File string
	Line int
	Func string
}

// Caller returns the location skip frames above the caller of Caller.
// Caller(0) is the function calling Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Func = fn.Name()
	}
	return loc
}

// Here returns the location of its caller
func Here() Location {
	return Caller(1)
}

// IsZero reports whether the location is unknown
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String renders the location as base(file):line
func (l Location) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// Failure is one recorded assertion mismatch
type Failure struct {
	Message   string
	Expected  string
	Actual    string
	HasDetail bool // Expected and Actual are set
	Location  Location
}

// Detail returns the expected and actual representations if the failure carries them
func (f Failure) Detail() (expected, actual string, ok bool) {
	if !f.HasDetail {
		return "", "", false
	}
	return f.Expected, f.Actual, true
}

// String renders the failure as "location: message (expected X, actual Y)"
func (f Failure) String() string {
	var b strings.Builder
	b.WriteString(f.Location.String())
	b.WriteString(": ")
	b.WriteString(f.Message)
	if f.HasDetail {
		fmt.Fprintf(&b, " (expected %s, actual %s)", f.Expected, f.Actual)
	}
	return b.String()
}
