package socrata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"socrataexport/internal/models"
	"socrataexport/pkg/utils"
)

// DownloadBulkCSV streams the full dataset to disk via the bulk CSV export
// endpoint. The body is consumed in fixed-size chunks and written out
// immediately, so the payload is never held in memory. When verbose is set a
// single progress line is kept updated on stdout. The reported final size is
// read back from disk rather than taken from the running counter, so any
// write discrepancy would be visible in the summary.
func (c *Client) DownloadBulkCSV(ctx context.Context, outputPath string, chunkSize int, verbose bool) (*models.DownloadResult, error) {
	startTime := time.Now()

	resolvedOutput := c.ResolveOutputPath(ctx, outputPath)
	if err := os.MkdirAll(filepath.Dir(resolvedOutput), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// A plain client timeout would cap the whole transfer, so stalls are
	// detected with an inactivity watchdog kicked on every chunk instead.
	ctx, wd := newWatchdog(ctx, readTimeout)
	defer wd.Cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request bulk export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: c.exportURL(), StatusCode: resp.StatusCode}
	}

	totalSize := resp.ContentLength // -1 when the server doesn't declare it

	out, err := os.Create(resolvedOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", resolvedOutput, err)
	}
	defer out.Close()

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buff := make([]byte, chunkSize)
	var downloaded int64

	for {
		n, readErr := resp.Body.Read(buff)
		if n > 0 {
			if _, err := out.Write(buff[:n]); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", resolvedOutput, err)
			}
			downloaded += int64(n)
			wd.Kick()
			if verbose {
				printProgress(downloaded, totalSize)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read export stream: %w", readErr)
		}
	}

	if verbose {
		fmt.Println()
	}

	info, err := os.Stat(resolvedOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", resolvedOutput, err)
	}
	finalSize := info.Size()

	fmt.Printf("Saved %s to %s.\n", utils.FormatBytes(finalSize), resolvedOutput)

	return &models.DownloadResult{
		OutputPath:       resolvedOutput,
		BytesDownloaded:  downloaded,
		SizeOnDiskBytes:  finalSize,
		SizeOnDiskHuman:  utils.FormatBytes(finalSize),
		OperationTime:    utils.FormatTime(startTime),
		DownloadDuration: time.Since(startTime).String(),
	}, nil
}

func printProgress(downloaded, totalSize int64) {
	if totalSize > 0 {
		percent := float64(downloaded) / float64(totalSize) * 100
		fmt.Printf("\rDownloaded %d bytes of %d (%.1f%%).", downloaded, totalSize, percent)
		return
	}
	fmt.Printf("\rDownloaded %s", utils.FormatBytes(downloaded))
}
