// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF files. Extraction quality
// depends on how the PDF is encoded; scanned PDFs need OCR, which this
// package does not do.
package pdftext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ParsePages parses a 1-indexed page range: "" (all pages), "N" (one page),
// or "START:END" with either side optionally empty. A zero side means
// unbounded.
func ParsePages(s string) (start, end int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	startStr, endStr, found := strings.Cut(s, ":")
	if !found {
		p, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page %q: %w", s, err)
		}
		return p, p, nil
	}

	if startStr != "" {
		if start, err = strconv.Atoi(startStr); err != nil {
			return 0, 0, fmt.Errorf("invalid start page %q: %w", startStr, err)
		}
	}
	if endStr != "" {
		if end, err = strconv.Atoi(endStr); err != nil {
			return 0, 0, fmt.Errorf("invalid end page %q: %w", endStr, err)
		}
	}
	return start, end, nil
}

// Extract reads pages [start, end] from the PDF at path and returns their
// text with a banner line per page. Zero bounds are clamped to the
// document's page count. Pages that fail text extraction contribute only
// their banner.
func Extract(path string, start, end int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	n := reader.NumPage()
	if start < 1 {
		start = 1
	}
	if end == 0 || end > n {
		end = n
	}

	var b strings.Builder
	for i := start; i <= end; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		fmt.Fprintf(&b, "\n\n===== Page %d / %d =====\n\n", i, n)
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}
