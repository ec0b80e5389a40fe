package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gtp/internal/domain"
)

// Save writes a fresh run report to the configured JSON output file.
func (s *JSONStorage) Save(output *domain.TestResultsOutput) error {
	if output == nil {
		return fmt.Errorf("save results: nil output")
	}
	return s.SaveOutput(output)
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := output.Encode()
	if err != nil {
		return err
	}
	return writeFile(s.cfg.GetOutputPath(), data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
