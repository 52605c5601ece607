// Package gz streams a gzip-compressed file to an uncompressed
// sibling, using parallel decompression.
package gz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
)

// Decompress streams src (gzip) into dst. The data is written to a
// temporary file in dst's directory and renamed into place once the
// whole stream decompressed cleanly, so a failure partway through
// never leaves a truncated FASTA behind.
func Decompress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open compressed file: %w", err)
	}
	defer in.Close()

	zr, err := pgzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("read gzip header of %s: %w", src, err)
	}
	defer zr.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".decompress-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, zr); err != nil {
		tmp.Close()
		return fmt.Errorf("decompress %s: %w", src, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename decompressed file into place: %w", err)
	}
	return nil
}
