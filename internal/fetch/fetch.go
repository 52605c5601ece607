// Package fetch downloads the compressed proteome file and the NCBI
// taxonomy dump using an external multi-connection download client.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agudeloromero/mmseq-viral-db/internal/extern"
)

// Client wraps the aria2c download client and the tar archive tool.
type Client struct {
	Runner extern.Runner

	// aria2c binary name
	Binary string

	// tar binary name
	Tar string

	// connections opened per download
	Connections int
}

// args shared by every aria2c invocation. "-c" resumes a partial
// download instead of restarting it.
func (c *Client) baseArgs() []string {
	n := strconv.Itoa(c.Connections)
	return []string{"--file-allocation=none", "-c", "-x", n, "-s", n}
}

// Download fetches url to outPath, creating the parent directory.
func (c *Client) Download(ctx context.Context, url, outPath string) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	args := append(c.baseArgs(), "-d", dir, "-o", filepath.Base(outPath), url)
	if err := c.Runner.Run(ctx, c.Binary, args...); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}

// DownloadTaxonomy fetches the taxonomy dump archive from url into
// dir, extracts it there and removes the archive.
func (c *Client) DownloadTaxonomy(ctx context.Context, url, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create taxonomy directory: %w", err)
	}

	args := append(c.baseArgs(), "-d", dir, url)
	if err := c.Runner.Run(ctx, c.Binary, args...); err != nil {
		return fmt.Errorf("download taxonomy dump %s: %w", url, err)
	}

	archive := filepath.Join(dir, filepath.Base(url))
	if err := c.Runner.Run(ctx, c.Tar, "-xzf", archive, "-C", dir); err != nil {
		return fmt.Errorf("extract taxonomy dump %s: %w", archive, err)
	}

	if err := os.Remove(archive); err != nil {
		return fmt.Errorf("remove taxonomy archive: %w", err)
	}
	return nil
}
