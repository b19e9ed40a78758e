package eval

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ResultFileName is the compressed result artifact the coreset generator
// writes into every experiment directory.
const ResultFileName = "results.txt.gz"

// Scan walks resultsRoot recursively and returns the compressed result
// files that still need processing: those whose directory is missing at
// least one of the two cost artifacts and holds exactly one valid run
// descriptor. Traversal order is directory-tree order; experiments are
// independent, so order does not affect correctness.
func Scan(resultsRoot string) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(resultsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != ResultFileName {
			return nil
		}
		dir := filepath.Dir(path)
		if costsComputed(dir) {
			return nil
		}
		if _, err := LoadRunInfo(dir); err != nil {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// costsComputed reports whether both cost artifacts already exist in dir.
func costsComputed(dir string) bool {
	for _, name := range []string{RealCostFileName, CoresetCostFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}
