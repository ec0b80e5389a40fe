package selection

import (
	"path/filepath"
	"strings"

	"gtp/pkg/suite"
)

// Filter selects suites by name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches pattern.
// Patterns with * or ? are wildcards ("math*", "*check*"); anything else is a substring.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// "*a*b*" also matches when every literal part appears in order
	if !strings.Contains(pattern, "*") || strings.Contains(pattern, "?") {
		return false
	}
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}

// Suites keeps the handles whose name matches pattern, in order
func (f *Filter) Suites(handles []suite.Handle, pattern string) []suite.Handle {
	if pattern == "" {
		return handles
	}

	filtered := make([]suite.Handle, 0, len(handles))
	for _, h := range handles {
		if f.Match(h.Name(), pattern) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Only keeps the handles named in names, in handle order
func (f *Filter) Only(handles []suite.Handle, names []string) []suite.Handle {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	filtered := make([]suite.Handle, 0, len(names))
	for _, h := range handles {
		if wanted[h.Name()] {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Names returns the names of handles
func Names(handles []suite.Handle) []string {
	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = h.Name()
	}
	return names
}
