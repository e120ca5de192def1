// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/discover"
	"github.com/pdiddy/paper-scout/internal/fetch"
	"github.com/pdiddy/paper-scout/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <results.jsonl>",
	Short: "Download open-access PDFs for a previous result set",
	Long: `Fetch reads a JSONL result file written by search and downloads the
document for every record with a direct link. Files already present in the
destination directory are skipped, so re-runs only fetch what is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("pdf-dir", "", "directory for PDFs (default: <results>_pdfs)")
	fetchCmd.Flags().Duration("timeout", defaultPDFTimeout, "HTTP request timeout per download")
	fetchCmd.Flags().Duration("delay", defaultPageDelay, "delay between consecutive downloads")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")

	papers, err := discover.ReadJSONL(args[0])
	if err != nil {
		return err
	}
	if pdfDir == "" {
		pdfDir = strings.TrimSuffix(args[0], ".jsonl") + "_pdfs"
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		DownloadDelay: delay,
	}
	client := &http.Client{Timeout: cfg.Timeout}

	result := fetch.FetchBatch(client, papers, pdfDir, cfg, os.Stderr)
	fmt.Fprintf(cmd.OutOrStdout(), "PDFs under %s (%d downloaded, %d skipped, %d without link, %d failed)\n",
		pdfDir, result.Downloaded, result.Skipped, result.NoLink, result.Failed)
	return nil
}
