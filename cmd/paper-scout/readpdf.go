// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/pdftext"
)

var readPDFCmd = &cobra.Command{
	Use:   "read-pdf <paper.pdf>",
	Short: "Extract text from a PDF (no OCR)",
	Long: `Read-pdf extracts plain text from a PDF, optionally limited to a
1-indexed page range (N or START:END with open ends). Scanned PDFs require
OCR and produce little or no text.`,
	Args: cobra.ExactArgs(1),
	RunE: runReadPDF,
}

func init() {
	readPDFCmd.Flags().String("pages", "", "page range: N or START:END (open ends allowed)")
	readPDFCmd.Flags().String("out", "", "write extracted text to this path instead of stdout")

	rootCmd.AddCommand(readPDFCmd)
}

func runReadPDF(cmd *cobra.Command, args []string) error {
	pagesStr, _ := cmd.Flags().GetString("pages")
	outPath, _ := cmd.Flags().GetString("out")

	start, end, err := pdftext.ParsePages(pagesStr)
	if err != nil {
		return err
	}

	text, err := pdftext.Extract(args[0], start, end)
	if err != nil {
		return err
	}

	if outPath != "" {
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		return os.WriteFile(outPath, []byte(text), 0o644)
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
