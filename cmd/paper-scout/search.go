// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/discover"
	"github.com/pdiddy/paper-scout/internal/fetch"
	"github.com/pdiddy/paper-scout/internal/library"
	"github.com/pdiddy/paper-scout/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultPDFTimeout = 60 * time.Second
	defaultPageDelay  = 1 * time.Second
	defaultUserAgent  = "paper-scout/0.1"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a bibliographic API and filter to allowlisted venues",
	Long: `Search queries one bibliographic backend (Semantic Scholar by default, or
Google Scholar via SerpAPI) for papers matching a topic, filters them to a
venue allowlist and year window, removes duplicate (title, year) records,
and writes CSV and JSONL files plus a run manifest. A BibTeX stub and
open-access PDF downloads are optional.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "topic query string (required)")
	searchCmd.Flags().String("venues", "", "path to venue allowlist text file (required)")
	searchCmd.Flags().String("years", "", "year range: YYYY or YYYY:YYYY (open ends allowed, e.g. 2020:)")
	searchCmd.Flags().Int("limit", 200, "max raw results to fetch before filtering")
	searchCmd.Flags().String("out", "", "output path prefix, folder/name without extension (required)")
	searchCmd.Flags().String("backend", "semantic_scholar", "search backend: semantic_scholar or google_scholar")
	searchCmd.Flags().Bool("write-bibtex", false, "write a minimal BibTeX stub")
	searchCmd.Flags().Bool("download-pdfs", false, "download PDFs when a direct link is present")
	searchCmd.Flags().String("pdf-dir", "", "directory for PDFs (default: <out>_pdfs)")
	searchCmd.Flags().String("api-key", "", "backend API key (default: .secrets/ or environment)")
	searchCmd.Flags().Bool("index", false, "record accepted papers in the library catalog")
	searchCmd.Flags().String("db", "library/papers.db", "library catalog database path")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout per page fetch")
	searchCmd.Flags().Duration("page-delay", defaultPageDelay, "delay between successful page fetches")

	searchCmd.MarkFlagRequired("query")
	searchCmd.MarkFlagRequired("venues")
	searchCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("query")
	venuesPath, _ := cmd.Flags().GetString("venues")
	yearsStr, _ := cmd.Flags().GetString("years")
	limit, _ := cmd.Flags().GetInt("limit")
	outPrefix, _ := cmd.Flags().GetString("out")
	backendName, _ := cmd.Flags().GetString("backend")
	writeBib, _ := cmd.Flags().GetBool("write-bibtex")
	downloadPDFs, _ := cmd.Flags().GetBool("download-pdfs")
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	apiKey, _ := cmd.Flags().GetString("api-key")
	index, _ := cmd.Flags().GetBool("index")
	dbPath, _ := cmd.Flags().GetString("db")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	pageDelay, _ := cmd.Flags().GetDuration("page-delay")

	// Configuration errors are fatal before any network activity.
	window, err := discover.ParseYearRange(yearsStr)
	if err != nil {
		return err
	}
	allowlist, err := discover.LoadAllowlist(venuesPath)
	if err != nil {
		return err
	}

	cfg := types.DiscoveryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Limit:     limit,
		PageDelay: pageDelay,
	}

	client := &http.Client{Timeout: cfg.Timeout}

	var backend discover.Backend
	switch backendName {
	case "semantic_scholar":
		cfg.APIKey = secretDefault("semantic-scholar-api-key", apiKey)
		backend = &discover.SemanticScholarBackend{Client: client}
	case "google_scholar":
		cfg.APIKey = secretDefault("serpapi-api-key", apiKey)
		if cfg.APIKey == "" {
			return fmt.Errorf("missing SerpAPI key: add .secrets/serpapi-api-key or pass --api-key")
		}
		backend = &discover.ScholarBackend{Client: client}
	default:
		return fmt.Errorf("unknown backend %q (use semantic_scholar or google_scholar)", backendName)
	}

	query := discover.Query{Topic: topic, Years: window}

	raw, err := backend.Search(cmd.Context(), query, cfg)
	if err != nil {
		return fmt.Errorf("%s search: %w", backend.Name(), err)
	}

	accepted, stats := discover.Filter(raw, window, allowlist)

	outCSV := outPrefix + ".csv"
	outJSONL := outPrefix + ".jsonl"
	outputs := []string{outCSV, outJSONL}

	if err := discover.WriteCSV(accepted, outCSV); err != nil {
		return err
	}
	if err := discover.WriteJSONL(accepted, outJSONL); err != nil {
		return err
	}
	if writeBib {
		outBib := outPrefix + ".bib"
		if err := discover.WriteBibTeX(accepted, outBib); err != nil {
			return err
		}
		outputs = append(outputs, outBib)
	}

	if err := discover.WriteManifest(outPrefix+".manifest.yaml", query, backend.Name(), limit, stats, outputs); err != nil {
		return err
	}

	if index {
		store, err := library.Open(types.LibraryConfig{DBPath: dbPath})
		if err != nil {
			return err
		}
		runID, err := store.RecordRun(topic, backend.Name(), accepted)
		closeErr := store.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed run %d (%d papers) in %s\n", runID, len(accepted), dbPath)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Wrote %d papers (%s)\n", len(accepted), stats)
	for _, out := range outputs {
		fmt.Fprintf(w, "- %s\n", out)
	}

	if downloadPDFs {
		if pdfDir == "" {
			pdfDir = outPrefix + "_pdfs"
		}
		fetchCfg := types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultPDFTimeout,
				UserAgent: defaultUserAgent,
			},
			DownloadDelay: pageDelay,
		}
		pdfClient := &http.Client{Timeout: fetchCfg.Timeout}
		result := fetch.FetchBatch(pdfClient, accepted, pdfDir, fetchCfg, os.Stderr)
		fmt.Fprintf(w, "- PDFs under %s (%d downloaded, %d skipped, %d without link, %d failed)\n",
			pdfDir, result.Downloaded, result.Skipped, result.NoLink, result.Failed)
	}

	return nil
}
