package storage

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"gtp/internal/domain"
)

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Errors   int              `xml:"errors,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitMessage `xml:"failure,omitempty"`
	Error     *junitMessage `xml:"error,omitempty"`
	Skipped   *junitMessage `xml:"skipped,omitempty"`
}

type junitMessage struct {
	Message string `xml:"message,attr,omitempty"`
	Body    string `xml:",chardata"`
}

// JUnitWriter renders a run report as JUnit XML for CI systems.
type JUnitWriter struct{}

// NewJUnitWriter creates a new JUnitWriter
func NewJUnitWriter() *JUnitWriter {
	return &JUnitWriter{}
}

// Encode renders output as a JUnit <testsuites> document. A suite whose setup
// failed gets one errored case standing in for its declared tests.
func (w *JUnitWriter) Encode(output *domain.TestResultsOutput) ([]byte, error) {
	doc := junitTestSuites{
		Name:     "gtp",
		Tests:    output.Meta.TotalTests,
		Failures: output.Meta.Failed,
		Errors:   output.Meta.Errored,
		Skipped:  output.Meta.Skipped,
		Time:     seconds(output.Meta.DurationNs),
	}

	for _, sr := range output.Suites {
		js := junitTestSuite{
			Name:     sr.Name,
			Tests:    sr.Total,
			Failures: sr.Failed,
			Errors:   sr.Errored,
			Skipped:  sr.Skipped,
			Time:     seconds(sr.DurationNs),
		}
		if sr.SetupFailed {
			js.Cases = append(js.Cases, junitTestCase{
				Name:      domain.SetupTestName,
				Classname: sr.Name,
				Time:      seconds(sr.DurationNs),
				Error:     &junitMessage{Message: sr.SetupError},
			})
		}
		for _, tr := range sr.Tests {
			tc := junitTestCase{
				Name:      tr.Name,
				Classname: sr.Name,
				Time:      seconds(tr.DurationNs),
			}
			switch tr.Status {
			case domain.StatusFail:
				tc.Failure = failureMessage(tr.Failures)
			case domain.StatusSkip:
				tc.Skipped = &junitMessage{Message: tr.Reason}
			}
			js.Cases = append(js.Cases, tc)
		}
		doc.Suites = append(doc.Suites, js)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal junit: %w", err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// Write encodes output and writes it to path
func (w *JUnitWriter) Write(path string, output *domain.TestResultsOutput) error {
	data, err := w.Encode(output)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func failureMessage(failures []domain.FailureRecord) *junitMessage {
	if len(failures) == 0 {
		return &junitMessage{Message: "failed"}
	}
	lines := make([]string, 0, len(failures))
	for _, f := range failures {
		line := f.Message
		if f.HasDetail {
			line = fmt.Sprintf("%s (expected %s, actual %s)", f.Message, f.Expected, f.Actual)
		}
		if f.File != "" {
			line = fmt.Sprintf("%s:%d: %s", f.File, f.Line, line)
		}
		lines = append(lines, line)
	}
	return &junitMessage{Message: failures[0].Message, Body: strings.Join(lines, "\n")}
}

func seconds(ns int64) string {
	return fmt.Sprintf("%.3f", time.Duration(ns).Seconds())
}
