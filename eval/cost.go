package eval

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Cost artifact file names inside an experiment directory.
const (
	CoresetCostFileName = "coreset_cost.txt"
	RealCostFileName    = "real_cost.txt"
	DistortionFileName  = "distortion.txt"
)

// nearestSqDist returns the squared Euclidean distance from p to its
// closest row of centers.
func nearestSqDist(p []float64, centers *mat.Dense) float64 {
	k, _ := centers.Dims()
	best := math.Inf(1)
	for c := 0; c < k; c++ {
		row := centers.RawRowView(c)
		var dist float64
		for j, v := range p {
			diff := v - row[j]
			dist += diff * diff
		}
		if dist < best {
			best = dist
		}
	}
	return best
}

// RealCost is the unweighted sum-of-squared-distances cost of the full
// dataset against the center set: for each data point, the squared
// Euclidean distance to its nearest center, summed over all points. No
// normalization by N.
func RealCost(data *mat.Dense, centers *mat.Dense) float64 {
	n, _ := data.Dims()
	var cost float64
	for i := 0; i < n; i++ {
		cost += nearestSqDist(data.RawRowView(i), centers)
	}
	return cost
}

// CoresetCost is the weighted variant: each point's nearest-center squared
// distance is multiplied by its weight before summation.
func CoresetCost(coreset *WeightedPoints, centers *mat.Dense) float64 {
	n, _ := coreset.Points.Dims()
	var cost float64
	for i := 0; i < n; i++ {
		cost += coreset.Weights[i] * nearestSqDist(coreset.Points.RawRowView(i), centers)
	}
	return cost
}

// Distortion is max(coresetCost/realCost, realCost/coresetCost): the
// worst-case ratio between the cost measured on the coreset and the cost
// measured on the full dataset for the same center set. Symmetric and >= 1
// for positive costs. The metric is undefined when either cost is exactly
// zero; that case returns ErrZeroCost instead of dividing.
func Distortion(coresetCost, realCost float64) (float64, error) {
	if coresetCost == 0 || realCost == 0 {
		return 0, fmt.Errorf("%w: coreset=%v real=%v", ErrZeroCost, coresetCost, realCost)
	}
	return math.Max(coresetCost/realCost, realCost/coresetCost), nil
}

// WriteCost persists a scalar cost artifact as its decimal string.
func WriteCost(path string, cost float64) error {
	return os.WriteFile(path, []byte(strconv.FormatFloat(cost, 'g', -1, 64)), 0o644)
}

// ReadCost loads a previously persisted scalar cost artifact.
func ReadCost(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing cost file %s: %w", path, err)
	}
	return v, nil
}
