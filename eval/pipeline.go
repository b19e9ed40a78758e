package eval

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/coreset-bench/coreset-eval/eval/dataset"
)

// Pipeline orchestrates cost evaluation over a tree of experiment
// directories. Each directory is processed to completion before the next
// begins; every expensive artifact is cached on disk, so an interrupted
// batch resumes where it stopped.
type Pipeline struct {
	Recovery *CenterRecovery
	Datasets *dataset.Cache

	// DataRoot resolves the full-dataset path when a run descriptor
	// carries only the dataset identifier.
	DataRoot string

	// Strict restores the original batch-halting behavior: the first
	// per-directory failure aborts the run instead of being recorded.
	Strict bool
}

// Failure records a per-directory processing error in non-strict mode.
type Failure struct {
	ResultPath string
	Err        error
}

// Run scans resultsRoot and processes every unfinished experiment.
// In non-strict mode, environment and numerical failures are isolated per
// directory and returned as Failures so one bad experiment does not abort
// the batch.
func (p *Pipeline) Run(resultsRoot string) ([]Failure, error) {
	resultPaths, err := Scan(resultsRoot)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", resultsRoot, err)
	}

	var failures []Failure
	total := len(resultPaths)
	for i, resultPath := range resultPaths {
		logrus.Infof("Processing file %d of %d: %s", i+1, total, resultPath)
		dir := filepath.Dir(resultPath)

		ri, err := LoadRunInfo(dir)
		if err != nil {
			logrus.Warnf("Cannot process results file because run file is missing or invalid: %v", err)
			continue
		}
		if err := p.resolveDatasetPath(ri); err != nil {
			logrus.Warnf("Skipping %s: %v", dir, err)
			continue
		}
		if _, err := os.Stat(ri.DatasetPath); err != nil {
			logrus.Warnf("Dataset path %s cannot be found. Skipping...", ri.DatasetPath)
			continue
		}

		if err := p.processResult(ri, resultPath); err != nil {
			if p.Strict {
				return failures, fmt.Errorf("processing %s: %w", resultPath, err)
			}
			logrus.Errorf("Failed to process %s: %v", resultPath, err)
			failures = append(failures, Failure{ResultPath: resultPath, Err: err})
			continue
		}
		logrus.Infof("Done processing file %d of %d.", i+1, total)
	}
	return failures, nil
}

// resolveDatasetPath fills in the dataset path from the identifier when the
// descriptor does not carry one explicitly.
func (p *Pipeline) resolveDatasetPath(ri *RunInfo) error {
	if ri.DatasetPath != "" {
		return nil
	}
	fileName, err := dataset.FileName(dataset.Name(ri.Dataset))
	if err != nil {
		return err
	}
	ri.DatasetPath = filepath.Join(p.DataRoot, fileName)
	return nil
}

// processResult evaluates one experiment directory: recover a candidate
// solution from the coreset, then measure its cost against both the
// coreset and the full dataset and persist the distortion ratio. Each
// artifact re-checks its own existence, allowing partial resumption.
func (p *Pipeline) processResult(ri *RunInfo, resultPath string) error {
	dir := filepath.Dir(resultPath)
	coresetCostPath := filepath.Join(dir, CoresetCostFileName)
	realCostPath := filepath.Join(dir, RealCostFileName)

	if costsComputed(dir) {
		logrus.Info("Costs are already computed!")
		return nil
	}

	coresetPath, err := UnpackResult(resultPath)
	if err != nil {
		return err
	}

	centers, err := p.Recovery.RecoverCenters(coresetPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(coresetCostPath); err != nil {
		coreset, err := LoadWeightedPoints(coresetPath, true)
		if err != nil {
			return err
		}
		logrus.Info("Computing coreset cost...")
		cost := CoresetCost(coreset, centers)
		logrus.Infof("Computed coreset cost: %v", cost)
		if err := WriteCost(coresetCostPath, cost); err != nil {
			return err
		}
	}

	if _, err := os.Stat(realCostPath); err != nil {
		data, err := p.Datasets.Get(dataset.Name(ri.Dataset), ri.DatasetPath)
		if err != nil {
			return err
		}
		_, dataDims := data.Dims()
		_, centerDims := centers.Dims()
		if dataDims != centerDims {
			return fmt.Errorf("dimensionality mismatch: dataset %s has %d dims, centers have %d", ri.Dataset, dataDims, centerDims)
		}
		logrus.Info("Computing real cost...")
		cost := RealCost(data, centers)
		logrus.Infof("Computed real cost: %v", cost)
		if err := WriteCost(realCostPath, cost); err != nil {
			return err
		}
	}

	distortionPath := filepath.Join(dir, DistortionFileName)
	if _, err := os.Stat(distortionPath); err == nil {
		return nil
	}
	coresetCost, err := ReadCost(coresetCostPath)
	if err != nil {
		return err
	}
	realCost, err := ReadCost(realCostPath)
	if err != nil {
		return err
	}
	distortion, err := Distortion(coresetCost, realCost)
	if err != nil {
		return err
	}
	logrus.Infof("Distortion: %.5f", distortion)
	return WriteCost(distortionPath, distortion)
}
