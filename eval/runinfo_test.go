package eval

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const descriptorJSON = `{
    "iteration": 1,
    "algorithm": "uniform-sampling",
    "dataset": "census",
    "k": 20,
    "m": 4000,
    "randomSeed": 1234567890
}`

func TestLoadRunInfo_SingleDescriptor(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "001-census-uniform-sampling-k20-m4000.json"), []byte(descriptorJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	ri, err := LoadRunInfo(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ri.Algorithm != UniformSampling {
		t.Errorf("algorithm = %q, want uniform-sampling", ri.Algorithm)
	}
	if ri.Dataset != "census" || ri.K != 20 || ri.M != 4000 || ri.RandomSeed != 1234567890 {
		t.Errorf("unexpected descriptor fields: %+v", ri)
	}
}

func TestLoadRunInfo_NoDescriptor(t *testing.T) {
	_, err := LoadRunInfo(t.TempDir())
	if !errors.Is(err, ErrNoDescriptor) {
		t.Errorf("got err %v, want ErrNoDescriptor", err)
	}
}

func TestLoadRunInfo_MultipleDescriptors(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(descriptorJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_, err := LoadRunInfo(dir)
	if !errors.Is(err, ErrAmbiguousDescriptor) {
		t.Errorf("got err %v, want ErrAmbiguousDescriptor", err)
	}
}

func TestRunInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ri      RunInfo
		wantErr bool
	}{
		{"valid", RunInfo{Algorithm: GroupSampling, K: 10, M: 200}, false},
		{"unknown algorithm", RunInfo{Algorithm: "kmedian-sampling", K: 10, M: 200}, true},
		{"zero k", RunInfo{Algorithm: GroupSampling, K: 0, M: 200}, true},
		{"zero m", RunInfo{Algorithm: GroupSampling, K: 10, M: 0}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ri.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
