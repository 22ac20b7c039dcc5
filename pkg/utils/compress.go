package utils

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CompressFile gzips the file at path into a temporary file and returns the
// path of the compressed copy. The caller owns the returned file and should
// remove it with CleanupTempFile when done.
func CompressFile(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	outputPath := filepath.Join(os.TempDir(), filepath.Base(path)+".gz")
	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create compressed file: %w", err)
	}
	defer out.Close()

	gzWriter := gzip.NewWriter(out)
	gzWriter.Name = filepath.Base(path)

	if _, err := io.Copy(gzWriter, in); err != nil {
		return "", fmt.Errorf("failed to compress %s: %w", path, err)
	}

	if err := gzWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize compressed file: %w", err)
	}

	return outputPath, nil
}

func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to cleanup temporary file %s: %w", path, err)
	}
	return nil
}
