package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Algorithm identifies the coreset construction algorithm of an experiment.
type Algorithm string

const (
	SensitivitySampling Algorithm = "sensitivity-sampling"
	GroupSampling       Algorithm = "group-sampling"
	UniformSampling     Algorithm = "uniform-sampling"
)

// knownAlgorithms maps accepted algorithm identifiers.
var knownAlgorithms = map[Algorithm]bool{
	SensitivitySampling: true,
	GroupSampling:       true,
	UniformSampling:     true,
}

// IsValidAlgorithm returns true if the given string is a recognized
// coreset algorithm identifier.
func IsValidAlgorithm(s string) bool {
	return knownAlgorithms[Algorithm(s)]
}

// RunInfo describes one experiment, loaded from the single JSON descriptor
// in its directory. Descriptors are written once by the sweep generator and
// are read-only to the pipeline.
type RunInfo struct {
	Iteration   int       `json:"iteration"`
	Algorithm   Algorithm `json:"algorithm"`
	Dataset     string    `json:"dataset"`
	DatasetPath string    `json:"datasetPath,omitempty"`
	K           int       `json:"k"`
	M           int       `json:"m"` // coreset target size
	RandomSeed  int64     `json:"randomSeed"`
}

// Validate checks the descriptor invariants.
func (ri *RunInfo) Validate() error {
	if !IsValidAlgorithm(string(ri.Algorithm)) {
		return fmt.Errorf("unknown algorithm %q", ri.Algorithm)
	}
	if ri.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", ri.K)
	}
	if ri.M <= 0 {
		return fmt.Errorf("m must be positive, got %d", ri.M)
	}
	return nil
}

// LoadRunInfo loads the run descriptor of an experiment directory.
// Exactly one *.json file must exist in the directory; zero or multiple
// descriptors make the experiment unprocessable (ErrNoDescriptor,
// ErrAmbiguousDescriptor).
func LoadRunInfo(dir string) (*RunInfo, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w in %s", ErrNoDescriptor, dir)
	case len(matches) > 1:
		return nil, fmt.Errorf("%w in %s: found %d", ErrAmbiguousDescriptor, dir, len(matches))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	var ri RunInfo
	if err := json.Unmarshal(data, &ri); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", matches[0], err)
	}
	if err := ri.Validate(); err != nil {
		return nil, fmt.Errorf("invalid descriptor %s: %w", matches[0], err)
	}
	return &ri, nil
}
