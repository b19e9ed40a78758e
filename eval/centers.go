package eval

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// CentersFileName is the cached candidate-solution artifact written next to
// the coreset it was computed from.
const CentersFileName = "centers.txt"

// DefaultRetryBudget bounds the number of oracle invocations per coreset.
const DefaultRetryBudget = 10

// kParamPattern extracts the number of centers embedded in a coreset file
// name, e.g. "001-census-uniform-sampling-k20-m1000/results.txt".
var kParamPattern = regexp.MustCompile(`-k(\d+)-`)

// CenterRecovery drives the external center-computation oracle against a
// coreset, validating output and retrying with a fresh seed on numerical
// failure.
//
// Recovery is a bounded retry loop: every attempt draws a new seed, runs
// the oracle, and validates the result. An invalid attempt deletes the
// oracle's output before the next one; exhausting the budget fails with
// ErrRetriesExhausted and leaves no invalid centers file behind.
type CenterRecovery struct {
	Oracle  CentersOracle
	Seeds   SeedSource
	Retries int // defaults to DefaultRetryBudget when zero
}

// RecoverCenters returns the k x D candidate center set for the coreset at
// coresetPath, computing and caching it as a centers.txt sibling on first
// use. A cached file is revalidated: a truncated or NaN-laden centers.txt
// left behind by an interrupted run is discarded and regenerated.
func (cr *CenterRecovery) RecoverCenters(coresetPath string) (*mat.Dense, error) {
	centersPath := filepath.Join(filepath.Dir(coresetPath), CentersFileName)
	if centers, ok := cr.cachedCenters(centersPath); ok {
		return centers, nil
	}

	d, err := coresetDims(coresetPath)
	if err != nil {
		return nil, err
	}
	k, err := coresetK(coresetPath)
	if err != nil {
		return nil, err
	}

	budget := cr.Retries
	if budget <= 0 {
		budget = DefaultRetryBudget
	}
	for attempt := 1; attempt <= budget; attempt++ {
		seed, err := cr.Seeds.Next()
		if err != nil {
			return nil, err
		}

		start := time.Now()
		if err := cr.Oracle.ComputeCenters(coresetPath, k, d, centersPath, seed); err != nil {
			return nil, err
		}
		logrus.Infof("k-means++ centers computed in %.2f secs", time.Since(start).Seconds())

		wp, err := LoadWeightedPoints(centersPath, false)
		if err != nil {
			return nil, fmt.Errorf("loading oracle output: %w", err)
		}
		stats := inspectCoords(wp.Points)
		if stats.clean() {
			return wp.Points, nil
		}

		logrus.Warnf("Detected NaN values in the computed centers (attempt %d/%d).", attempt, budget)
		logrus.Warnf("- NaN Count: %d", stats.nanCount)
		logrus.Warnf("- Inf Count: %d", stats.infCount)
		logrus.Warnf("- Positions: %v", stats.positions)
		logrus.Warnf("Removing %s...", centersPath)
		if err := os.Remove(centersPath); err != nil {
			return nil, fmt.Errorf("removing invalid centers file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: giving up after %d attempts for %s", ErrRetriesExhausted, budget, coresetPath)
}

// cachedCenters loads a previously computed centers file. It trusts the
// file only after it parses and contains finite coordinates; anything else
// is removed so the generation path starts clean.
func (cr *CenterRecovery) cachedCenters(centersPath string) (*mat.Dense, bool) {
	info, err := os.Stat(centersPath)
	if err != nil || info.Size() == 0 {
		return nil, false
	}
	wp, err := LoadWeightedPoints(centersPath, false)
	if err != nil {
		logrus.Warnf("Cached centers file %s is unreadable (%v), recomputing...", centersPath, err)
		os.Remove(centersPath)
		return nil, false
	}
	if stats := inspectCoords(wp.Points); !stats.clean() {
		logrus.Warnf("Cached centers file %s contains %d NaN and %d Inf values, recomputing...",
			centersPath, stats.nanCount, stats.infCount)
		os.Remove(centersPath)
		return nil, false
	}
	return wp.Points, true
}

// coordStats summarizes non-finite coordinates in a recovered center set.
type coordStats struct {
	nanCount  int
	infCount  int
	positions [][2]int
}

func (s coordStats) clean() bool {
	return s.nanCount == 0 && s.infCount == 0
}

func inspectCoords(m *mat.Dense) coordStats {
	var stats coordStats
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			switch {
			case math.IsNaN(v):
				stats.nanCount++
				stats.positions = append(stats.positions, [2]int{i, j})
			case math.IsInf(v, 0):
				stats.infCount++
				stats.positions = append(stats.positions, [2]int{i, j})
			}
		}
	}
	return stats
}

// coresetDims derives the point dimensionality from the coreset file: the
// first line is a header, the second supplies a representative row whose
// field count minus the weight column is D.
func coresetDims(coresetPath string) (int, error) {
	f, err := os.Open(coresetPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return 0, fmt.Errorf("%s: missing header line", coresetPath)
	}
	if !sc.Scan() {
		return 0, fmt.Errorf("%s: missing first data row", coresetPath)
	}
	d := len(strings.Fields(sc.Text())) - 1
	if d < 1 {
		return 0, fmt.Errorf("%s: first data row has no coordinates", coresetPath)
	}
	return d, nil
}

// coresetK extracts the number of centers from the -k<digits>- parameter
// embedded in the coreset file's path.
func coresetK(coresetPath string) (int, error) {
	m := kParamPattern.FindStringSubmatch(coresetPath)
	if m == nil {
		return 0, fmt.Errorf("cannot derive k: no -k<digits>- parameter in %s", coresetPath)
	}
	return strconv.Atoi(m[1])
}
