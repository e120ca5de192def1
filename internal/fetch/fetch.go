// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads openly available documents for discovered papers.
// Implements: docs/ARCHITECTURE § Document Fetch.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// BatchResult holds the outcome of one fetch pass over a record set.
type BatchResult struct {
	Downloaded int
	Skipped    int
	NoLink     int
	Failed     int
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.NoLink + r.Failed
}

// FetchBatch downloads the document for every paper exposing a direct link.
// A file that already exists at the destination is skipped silently, so
// re-runs are idempotent and perform no network call for it. A failure for
// one record is logged as a warning naming the title and does not abort the
// rest of the batch.
func FetchBatch(client *http.Client, papers []types.Paper, dir string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range papers {
		if p.PDFURL == "" {
			result.NoLink++
			continue
		}

		destPath := filepath.Join(dir, PDFFileName(p))
		if _, err := os.Stat(destPath); err == nil {
			result.Skipped++
			continue
		}

		if result.Downloaded+result.Failed > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}

		if err := downloadFile(client, p.PDFURL, destPath, cfg); err != nil {
			fmt.Fprintf(w, "warning: pdf download failed for %q: %v\n", p.Title, err)
			result.Failed++
			continue
		}
		result.Downloaded++
	}
	return result
}

// PDFFileName derives the destination filename from year and title, in the
// pattern {year}_{title} with unsafe runs collapsed to underscores.
func PDFFileName(p types.Paper) string {
	year := ""
	if p.Year != 0 {
		year = strconv.Itoa(p.Year)
	}
	return SafeFilename(year+"_"+p.Title) + ".pdf"
}

// unsafeRuns matches character runs replaced in filenames.
var (
	unsafeRuns     = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

const maxFilenameLen = 120

// SafeFilename maps an arbitrary string to a filesystem-safe token:
// non-alphanumeric runs become underscores, repeats collapse, the result is
// length-capped and stripped of stray underscores.
func SafeFilename(s string) string {
	s = unsafeRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
	}
	s = strings.Trim(s, "_")
	if s == "" {
		return "paper"
	}
	return s
}

// downloadFile streams url to destPath using a temporary file, renaming on
// success so partial downloads never land at the destination.
func downloadFile(client *http.Client, url, destPath string, cfg types.FetchConfig) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
