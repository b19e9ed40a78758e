package eval

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// SeedSource produces a fresh unpredictable seed per call.
type SeedSource interface {
	Next() (int64, error)
}

// OracleSeedSource obtains seeds from an external generator program that
// writes a single integer to standard output.
//
// The generator returns a repeated seed when invoked twice within the same
// wall-clock second, so every invocation is preceded by a one second pause.
// The pause is a correctness requirement, not an optimization.
type OracleSeedSource struct {
	Path  string
	Sleep func(time.Duration) // defaults to time.Sleep
}

// NewOracleSeedSource creates a seed source backed by the generator binary
// at path.
func NewOracleSeedSource(path string) *OracleSeedSource {
	return &OracleSeedSource{Path: path, Sleep: time.Sleep}
}

// Next invokes the generator and parses its output.
func (s *OracleSeedSource) Next() (int64, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return 0, fmt.Errorf("seed generator %s cannot be found: %w", s.Path, err)
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(time.Second)

	out, err := exec.Command(s.Path).Output()
	if err != nil {
		return 0, fmt.Errorf("running seed generator %s: %w", s.Path, err)
	}
	seed, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed generator %s produced non-integer output %q: %w", s.Path, strings.TrimSpace(string(out)), err)
	}
	return seed, nil
}
