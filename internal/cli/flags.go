package cli

import "gtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	SuiteFilter string
	TestFilter  string
	ShowTests   bool
	FailFast    bool
	OnlyFailed  bool
	OpenFaills  bool
	Verbose     bool
	JUnitFile   string
	MetricsFile string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		SuiteFilter: f.SuiteFilter,
		TestFilter:  f.TestFilter,
		ShowTests:   f.ShowTests,
		FailFast:    f.FailFast,
		OnlyFailed:  f.OnlyFailed,
		OpenFaills:  f.OpenFaills,
		Verbose:     f.Verbose,
		JUnitFile:   f.JUnitFile,
		MetricsFile: f.MetricsFile,
	}
}
