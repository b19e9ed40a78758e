package eval

import (
	"os"
	"path/filepath"
	"testing"
)

// makeExperiment creates an experiment directory under root with a
// compressed result file and the given number of descriptor files.
func makeExperiment(t *testing.T, root, name string, descriptors int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeGzip(t, filepath.Join(dir, ResultFileName), "2 2\n1 0.0 0.0\n")
	for i := 0; i < descriptors; i++ {
		fname := "run.json"
		if i > 0 {
			fname = "run2.json"
		}
		if err := os.WriteFile(filepath.Join(dir, fname), []byte(descriptorJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScan_FindsUnprocessedResults(t *testing.T) {
	root := t.TempDir()
	want := makeExperiment(t, root, "001-census-uniform-sampling-k20-m4000", 1)

	got, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != filepath.Join(want, ResultFileName) {
		t.Errorf("candidates = %v, want the single unprocessed result", got)
	}
}

func TestScan_SkipsZeroOrMultipleDescriptors(t *testing.T) {
	root := t.TempDir()
	makeExperiment(t, root, "no-descriptor", 0)
	makeExperiment(t, root, "two-descriptors", 2)

	got, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none", got)
	}
}

func TestScan_SkipsFullyProcessedDirectories(t *testing.T) {
	root := t.TempDir()
	done := makeExperiment(t, root, "done", 1)
	for _, name := range []string{RealCostFileName, CoresetCostFileName} {
		if err := os.WriteFile(filepath.Join(done, name), []byte("400"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	partial := makeExperiment(t, root, "partial", 1)
	if err := os.WriteFile(filepath.Join(partial, CoresetCostFileName), []byte("400"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	// a directory missing only one cost artifact is still a candidate
	if len(got) != 1 || got[0] != filepath.Join(partial, ResultFileName) {
		t.Errorf("candidates = %v, want only the partially processed directory", got)
	}
}

func TestScan_RecursesIntoNestedDirectories(t *testing.T) {
	root := t.TempDir()
	nested := makeExperiment(t, root, filepath.Join("2026", "08", "001-tower-group-sampling-k40-m8000"), 1)

	got, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != filepath.Join(nested, ResultFileName) {
		t.Errorf("candidates = %v, want nested result", got)
	}
}
