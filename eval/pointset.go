package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// WeightedPoints is an N-row point set where every row carries a weight.
// Weights[i] belongs to row i of Points. Used for both coresets and raw
// oracle output (recovered centers also carry a weight, discarded by the
// cost computation).
type WeightedPoints struct {
	Weights []float64
	Points  *mat.Dense // N x D coordinates
}

// Len returns the number of points.
func (wp *WeightedPoints) Len() int {
	n, _ := wp.Points.Dims()
	return n
}

// Dims returns the coordinate dimensionality D.
func (wp *WeightedPoints) Dims() int {
	_, d := wp.Points.Dims()
	return d
}

// ParseWeightedPoints reads whitespace-delimited rows of
// "weight coord_1 ... coord_D". When skipHeader is set the first line is
// discarded (result files start with a format/count header line).
// D is inferred from the first data row; every later row must match it.
func ParseWeightedPoints(r io.Reader, skipHeader bool) (*WeightedPoints, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if skipHeader && sc.Scan() {
		// header line discarded
	}

	var (
		weights []float64
		coords  []float64
		dims    = -1
		line    = 0
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("row %d: need a weight and at least one coordinate, got %d fields", line, len(fields))
		}
		if dims == -1 {
			dims = len(fields) - 1
		} else if len(fields)-1 != dims {
			return nil, fmt.Errorf("row %d: expected %d coordinates, got %d", line, dims, len(fields)-1)
		}
		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad weight %q: %w", line, fields[0], err)
		}
		weights = append(weights, w)
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad coordinate %q: %w", line, f, err)
			}
			coords = append(coords, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return &WeightedPoints{
		Weights: weights,
		Points:  mat.NewDense(len(weights), dims, coords),
	}, nil
}

// LoadWeightedPoints parses a weighted point set from a file.
func LoadWeightedPoints(path string, skipHeader bool) (*WeightedPoints, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	wp, err := ParseWeightedPoints(f, skipHeader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return wp, nil
}
