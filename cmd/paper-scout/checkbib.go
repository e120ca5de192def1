// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/bibcheck"
)

var checkBibCmd = &cobra.Command{
	Use:   "check-bib <library.bib>",
	Short: "Validate BibTeX entries for required metadata",
	Long: `Check-bib verifies that every BibTeX entry carries a title, author, year,
and a publication container (booktitle, journal, or venue). Entries with
missing fields are listed and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckBib,
}

func init() {
	checkBibCmd.Flags().String("out", "", "write a JSON report to this path")

	rootCmd.AddCommand(checkBibCmd)
}

func runCheckBib(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")

	report, err := bibcheck.ValidateFile(args[0])
	if err != nil {
		return err
	}

	if outPath != "" {
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating report directory: %w", err)
			}
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	if len(report.Findings) > 0 {
		fmt.Fprintf(w, "Found %d invalid BibTeX entries:\n", len(report.Findings))
		for _, f := range report.Findings {
			fmt.Fprintf(w, "- %s (%s): missing %s\n", f.Key, f.EntryType, strings.Join(f.Missing, ", "))
		}
		return fmt.Errorf("%d of %d entries missing required fields", len(report.Findings), report.TotalEntries)
	}

	fmt.Fprintln(w, "All BibTeX entries have required fields.")
	return nil
}
