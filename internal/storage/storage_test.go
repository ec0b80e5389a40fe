package storage

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/pkg/outcome"
	"gtp/pkg/suite"
)

func sampleOutput() *domain.TestResultsOutput {
	outcomes := []suite.SuiteOutcome{
		{
			Name:      "math",
			TestCount: 3,
			Tests: []suite.TestOutcome{
				{Name: "add", Outcome: outcome.Pass()},
				{Name: "mul", Outcome: outcome.FailWith("product", "4", "5", outcome.Location{File: "/src/m.go", Line: 7})},
				{Name: "div", Outcome: outcome.Skip("wip")},
			},
		},
		{
			Name:        "file",
			TestCount:   2,
			Tests:       []suite.TestOutcome{},
			SetupFailed: true,
			SetupError:  "setup: missing fixture",
		},
	}
	summary := suite.Summarize(outcomes, time.Second)
	return domain.NewTestResultsOutput("run-1", summary, outcomes, time.Unix(0, 0).UTC())
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	store := NewJSONStorage(cfg)

	_, err := store.Load()
	assert.Error(t, err, "nothing saved yet")

	out := sampleOutput()
	require.NoError(t, store.Save(out))
	assert.FileExists(t, cfg.GetOutputPath())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, out, loaded)

	loaded.Details[0].Resolved = true
	require.NoError(t, store.SaveOutput(loaded))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.Details[0].Resolved)
	assert.Len(t, reloaded.Unresolved(), 1)
}

func TestJSONStorage_SaveNil(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	assert.Error(t, NewJSONStorage(cfg).Save(nil))
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	path := cfg.GetOutputPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONStorage(cfg).Load()
	assert.ErrorContains(t, err, "parse results")
}

func TestJUnitWriter_Encode(t *testing.T) {
	data, err := NewJUnitWriter().Encode(sampleOutput())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var doc junitTestSuites
	require.NoError(t, xml.Unmarshal(data, &doc))

	assert.Equal(t, 5, doc.Tests)
	assert.Equal(t, 1, doc.Failures)
	assert.Equal(t, 2, doc.Errors)
	assert.Equal(t, 1, doc.Skipped)
	assert.Equal(t, "1.000", doc.Time)
	require.Len(t, doc.Suites, 2)

	math := doc.Suites[0]
	require.Len(t, math.Cases, 3)
	assert.Nil(t, math.Cases[0].Failure)
	require.NotNil(t, math.Cases[1].Failure)
	assert.Equal(t, "product", math.Cases[1].Failure.Message)
	assert.Equal(t, "/src/m.go:7: product (expected 4, actual 5)", math.Cases[1].Failure.Body)
	require.NotNil(t, math.Cases[2].Skipped)
	assert.Equal(t, "wip", math.Cases[2].Skipped.Message)

	file := doc.Suites[1]
	require.Len(t, file.Cases, 1)
	assert.Equal(t, domain.SetupTestName, file.Cases[0].Name)
	require.NotNil(t, file.Cases[0].Error)
	assert.Equal(t, "setup: missing fixture", file.Cases[0].Error.Message)
}

func TestJUnitWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "junit.xml")
	require.NoError(t, NewJUnitWriter().Write(path, sampleOutput()))
	assert.FileExists(t, path)
}
