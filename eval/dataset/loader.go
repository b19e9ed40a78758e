// Package dataset loads the full benchmark datasets that coresets are
// evaluated against, and memoizes them across experiment directories.
//
// Formats are selected by an explicit registry keyed by dataset identifier;
// unknown identifiers fail with ErrUnsupported rather than falling through
// on a path-substring match.
package dataset

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// ErrUnsupported indicates a dataset identifier with no registered loader.
var ErrUnsupported = errors.New("dataset: unsupported format")

// Name identifies a benchmark dataset.
type Name string

const (
	Census    Name = "census"
	Tower     Name = "tower"
	Covertype Name = "covertype"
)

// LoadFunc parses a raw dataset file into an N x D matrix.
type LoadFunc func(path string) (*mat.Dense, error)

// loaders is the format registry. All supported datasets are registered
// here; there is no fallback dispatch.
var loaders = map[Name]LoadFunc{
	Census:    loadCensus,
	Tower:     loadTower,
	Covertype: loadCovertype,
}

// fileNames maps a dataset to its conventional on-disk file name, used to
// resolve the dataset path when the run descriptor carries only the
// identifier.
var fileNames = map[Name]string{
	Census:    "USCensus1990.data.txt",
	Tower:     "Tower.txt",
	Covertype: "covtype.data.gz",
}

// IsValidName returns true if the given string is a known dataset
// identifier.
func IsValidName(s string) bool {
	_, ok := loaders[Name(s)]
	return ok
}

// FileName returns the conventional file name for a dataset, or an error
// for unknown identifiers.
func FileName(name Name) (string, error) {
	fn, ok := fileNames[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return fn, nil
}

// Load reads the dataset with the registered loader for name.
func Load(name Name, path string) (*mat.Dense, error) {
	loadFn, ok := loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	start := time.Now()
	m, err := loadFn(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s dataset from %s: %w", name, path, err)
	}
	rows, cols := m.Dims()
	logrus.Infof("Loaded %s matrix of shape (%d, %d) in %.2f secs", name, rows, cols, time.Since(start).Seconds())
	return m, nil
}

// open returns a reader over the dataset file, transparently decompressing
// a .gz path.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{f: f, zr: zr}, nil
}

type gzipFile struct {
	f  *os.File
	zr *gzip.Reader
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// readCSV parses comma-delimited numeric rows, skipping skipRows leading
// lines, and returns the values row-major along with the column count.
func readCSV(r io.Reader, skipRows int) ([]float64, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for i := 0; i < skipRows && sc.Scan(); i++ {
	}

	var (
		values []float64
		cols   = -1
		line   = skipRows
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, 0, fmt.Errorf("row %d: expected %d columns, got %d", line, cols, len(fields))
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, 0, fmt.Errorf("row %d: bad value %q: %w", line, f, err)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	if len(values) == 0 {
		return nil, 0, fmt.Errorf("no data rows")
	}
	return values, cols, nil
}

// loadCensus parses the US Census 1990 file: comma-delimited with a header
// row, first column a case id that is dropped.
func loadCensus(path string) (*mat.Dense, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, cols, err := readCSV(f, 1)
	if err != nil {
		return nil, err
	}
	full := mat.NewDense(len(values)/cols, cols, values)
	rows, _ := full.Dims()
	return mat.DenseCopyOf(full.Slice(0, rows, 1, cols)), nil
}

// loadTower parses the Tower file: a flat stream of comma- or
// newline-separated values reshaped into N x 3 RGB rows.
func loadTower(path string) (*mat.Dense, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	const dims = 3
	var values []float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		for _, field := range strings.FieldsFunc(sc.Text(), func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("bad value %q: %w", field, err)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 || len(values)%dims != 0 {
		return nil, fmt.Errorf("value count %d is not a multiple of %d", len(values), dims)
	}
	return mat.NewDense(len(values)/dims, dims, values), nil
}

// loadCovertype parses the Covertype file: comma-delimited, no header, last
// column a class label that is dropped.
func loadCovertype(path string) (*mat.Dense, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, cols, err := readCSV(f, 0)
	if err != nil {
		return nil, err
	}
	full := mat.NewDense(len(values)/cols, cols, values)
	rows, _ := full.Dims()
	return mat.DenseCopyOf(full.Slice(0, rows, 0, cols-1)), nil
}
