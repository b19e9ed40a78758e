package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/coreset-bench/coreset-eval/eval/dataset"
)

// SweepConfig describes a combinatorial sweep of experiment descriptors:
// every dataset x algorithm x k x iteration combination yields one JSON
// descriptor in OutputDir.
type SweepConfig struct {
	IterStart           int
	IterEnd             int
	CoresetSizeMultiple int // m = multiple * k
	Algorithms          []Algorithm
	Datasets            []dataset.Name
	KRanges             map[dataset.Name][]int
	OutputDir           string
	Force               bool // rewrite descriptors that already exist
}

// WriteSweep writes the descriptor files of the sweep, drawing a fresh
// oracle seed per descriptor, and returns the paths it wrote. Existing
// descriptors are skipped unless Force is set so that a re-run never
// clobbers the seeds of experiments already generated.
func WriteSweep(cfg SweepConfig, seeds SeedSource) ([]string, error) {
	if cfg.IterEnd < cfg.IterStart {
		cfg.IterEnd = cfg.IterStart
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, ds := range cfg.Datasets {
		kValues, ok := cfg.KRanges[ds]
		if !ok {
			return written, fmt.Errorf("no k range configured for dataset %q", ds)
		}
		for _, algo := range cfg.Algorithms {
			for _, k := range kValues {
				for i := cfg.IterStart; i <= cfg.IterEnd; i++ {
					m := cfg.CoresetSizeMultiple * k
					path := filepath.Join(cfg.OutputDir,
						fmt.Sprintf("%03d-%s-%s-k%d-m%d.json", i, ds, algo, k, m))
					if !cfg.Force {
						if _, err := os.Stat(path); err == nil {
							logrus.Infof("File already exists %s. Skipping...", path)
							continue
						}
					}
					seed, err := seeds.Next()
					if err != nil {
						return written, err
					}
					logrus.Infof("Random seed %d", seed)
					ri := RunInfo{
						Iteration:  i,
						Algorithm:  algo,
						Dataset:    string(ds),
						K:          k,
						M:          m,
						RandomSeed: seed,
					}
					data, err := json.MarshalIndent(&ri, "", "    ")
					if err != nil {
						return written, err
					}
					logrus.Infof("Writing %s...", path)
					if err := os.WriteFile(path, data, 0o644); err != nil {
						return written, err
					}
					written = append(written, path)
				}
			}
		}
	}
	return written, nil
}
