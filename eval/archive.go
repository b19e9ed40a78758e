package eval

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// UnpackResult decompresses a gzip-compressed result file into a plaintext
// sibling derived by stripping the .gz suffix. If the plaintext file
// already exists it is returned immediately; the decompression is never
// repeated. A missing output after decompression is an environment error,
// not a data error.
func UnpackResult(compressedPath string) (string, error) {
	plainPath := strings.TrimSuffix(compressedPath, ".gz")
	if plainPath == compressedPath {
		return "", fmt.Errorf("result file %s has no .gz suffix", compressedPath)
	}
	if _, err := os.Stat(plainPath); err == nil {
		return plainPath, nil
	}

	logrus.Infof("Unzipping file %s...", compressedPath)
	if err := gunzip(compressedPath, plainPath); err != nil {
		return "", err
	}
	if _, err := os.Stat(plainPath); err != nil {
		return "", fmt.Errorf("decompressed output %s missing: %w", plainPath, err)
	}
	return plainPath, nil
}

func gunzip(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("opening gzip stream %s: %w", src, err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("decompressing %s: %w", src, err)
	}
	return out.Close()
}
