package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gtp/internal/domain"
)

const (
	MetricsNamespace = "gtp"
)

// Recorder collects the metrics of one run in its own registry
type Recorder struct {
	reg *prometheus.Registry

	testsTotal    *prometheus.GaugeVec
	suiteTests    *prometheus.GaugeVec
	suiteDuration *prometheus.GaugeVec
	setupFailures prometheus.Gauge
	runDuration   prometheus.Gauge
	runSuccess    prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		testsTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "tests",
			Help:      "Number of tests by status in the last run",
		}, []string{"status"}),
		suiteTests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "suite_tests",
			Help:      "Number of tests by suite and status in the last run",
		}, []string{"suite", "status"}),
		suiteDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "suite_duration_seconds",
			Help:      "Duration of each suite in the last run",
		}, []string{"suite"}),
		setupFailures: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "setup_failures",
			Help:      "Number of suites whose setup failed",
		}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		runSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_success",
			Help:      "1 if nothing failed or errored in the last run",
		}),
	}
}

// Registry returns the registry holding the run metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Record sets every gauge from a run report
func (r *Recorder) Record(output *domain.TestResultsOutput) {
	meta := output.Meta
	r.testsTotal.WithLabelValues(domain.StatusPass).Set(float64(meta.Passed))
	r.testsTotal.WithLabelValues(domain.StatusFail).Set(float64(meta.Failed))
	r.testsTotal.WithLabelValues(domain.StatusSkip).Set(float64(meta.Skipped))
	r.testsTotal.WithLabelValues("error").Set(float64(meta.Errored))
	r.runDuration.Set(meta.DurationSeconds)
	if meta.ExitCode == 0 {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}

	setupFailures := 0
	for _, sr := range output.Suites {
		r.suiteTests.WithLabelValues(sr.Name, domain.StatusPass).Set(float64(sr.Passed))
		r.suiteTests.WithLabelValues(sr.Name, domain.StatusFail).Set(float64(sr.Failed))
		r.suiteTests.WithLabelValues(sr.Name, domain.StatusSkip).Set(float64(sr.Skipped))
		r.suiteTests.WithLabelValues(sr.Name, "error").Set(float64(sr.Errored))
		r.suiteDuration.WithLabelValues(sr.Name).Set(float64(sr.DurationNs) / 1e9)
		if sr.SetupFailed {
			setupFailures++
		}
	}
	r.setupFailures.Set(float64(setupFailures))
}

// WriteTextfile writes the metrics in the node_exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
