package cmd

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreset-bench/coreset-eval/eval/dataset"
)

// SweepFileConfig is the YAML sweep configuration consumed by the gen
// command. It overrides the compiled-in k ranges per dataset.
type SweepFileConfig struct {
	Version string           `yaml:"version"`
	KRanges map[string][]int `yaml:"k_ranges"`
}

// defaultKRanges mirrors the ranges the benchmark suite was originally run
// with; tower is a much larger dataset and gets proportionally larger k.
func defaultKRanges() map[dataset.Name][]int {
	return map[dataset.Name][]int{
		dataset.Census:    {10, 20, 30, 40, 50},
		dataset.Covertype: {10, 20, 30, 40, 50},
		dataset.Tower:     {20, 40, 60, 80, 100},
	}
}

// loadKRanges returns the sweep k ranges, from the YAML file at path when
// given and from the compiled-in defaults otherwise. YAML decoding is
// strict: unknown fields are errors.
func loadKRanges(path string) (map[dataset.Name][]int, error) {
	if path == "" {
		return defaultKRanges(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SweepFileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	ranges := defaultKRanges()
	for name, ks := range cfg.KRanges {
		ranges[dataset.Name(name)] = ks
	}
	return ranges, nil
}
