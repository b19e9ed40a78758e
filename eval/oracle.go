package eval

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// CentersOracle computes candidate cluster centers from a weighted point
// set. The computation is non-deterministic: the same coreset with a
// different seed may yield different centers, and on degenerate coresets
// the output occasionally contains NaN or Inf coordinates.
type CentersOracle interface {
	// ComputeCenters reads the coreset at coresetPath and writes k lines of
	// "weight coord_1 ... coord_D" to outputPath.
	ComputeCenters(coresetPath string, k, d int, outputPath string, seed int64) error
}

// KMeansOracle drives the external k-means++ program. The CLI contract is
// positional: <program> <coresetPath> <k> <d> <outputPath> <mode> <seed>.
type KMeansOracle struct {
	Path string
	Mode int // fixed mode flag, 0 in production
}

// NewKMeansOracle creates an oracle backed by the k-means binary at path.
func NewKMeansOracle(path string) *KMeansOracle {
	return &KMeansOracle{Path: path}
}

// ComputeCenters invokes the program synchronously and blocks until it
// exits. A missing binary is an environment error.
func (o *KMeansOracle) ComputeCenters(coresetPath string, k, d int, outputPath string, seed int64) error {
	if _, err := os.Stat(o.Path); err != nil {
		return fmt.Errorf("center computation program %s cannot be found: %w", o.Path, err)
	}
	cmd := exec.Command(o.Path,
		coresetPath,
		strconv.Itoa(k),
		strconv.Itoa(d),
		outputPath,
		strconv.Itoa(o.Mode),
		strconv.FormatInt(seed, 10),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", o.Path, err)
	}
	return nil
}
