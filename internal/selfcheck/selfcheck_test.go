package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gtp/internal/config"
	"gtp/internal/selection"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func TestSuites_Registration(t *testing.T) {
	cfg := config.New()
	handles := Suites(cfg, zap.NewNop())
	require.NoError(t, suite.Check(handles))
	assert.Equal(t, []string{"outcome", "assert", "scratch", "report", "pending"}, selection.Names(handles))

	cfg.Database.Enabled = true
	handles = Suites(cfg, zap.NewNop())
	assert.Equal(t, "mysql", handles[len(handles)-1].Name())
}

func TestSuites_AllPass(t *testing.T) {
	handles := Suites(config.New(), zap.NewNop())

	summary, outcomes := suite.RunAll(scratch.New(config.DefaultScratchLimit), handles)

	for _, so := range outcomes {
		assert.False(t, so.SetupFailed, "suite %s: %s", so.Name, so.SetupError)
		for _, to := range so.Tests {
			assert.False(t, to.Outcome.IsFail(), "%s/%s: %s", so.Name, to.Name, to.Outcome)
		}
	}
	assert.Equal(t, 0, summary.ExitCode())
	assert.Equal(t, 2, summary.Skipped)
}

func TestSuites_MySQLSetupFailureIsErrored(t *testing.T) {
	cfg := config.New()
	cfg.Database.Enabled = true
	cfg.Database.Port = "1"

	handles := selection.NewFilter().Suites(Suites(cfg, zap.NewNop()), "mysql")
	require.Len(t, handles, 1)

	summary, outcomes := suite.RunAll(nil, handles)
	assert.True(t, outcomes[0].SetupFailed)
	assert.Equal(t, 2, summary.Errored)
	assert.Equal(t, 1, summary.ExitCode())
}
