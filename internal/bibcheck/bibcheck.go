// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibcheck validates BibTeX entries for required metadata. It is a
// field-presence check over parsed entries, not a semantic validator.
package bibcheck

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nickng/bibtex"
)

// requiredFields must each be present and non-empty in every entry.
var requiredFields = []string{"title", "author", "year"}

// publishedFields lists the alternatives for "where published"; at least one
// must be present.
var publishedFields = []string{"booktitle", "journal", "venue"}

// Finding describes one entry missing required fields.
type Finding struct {
	Key       string   `json:"key"`
	EntryType string   `json:"type"`
	Missing   []string `json:"missing"`
}

// Report summarizes a validation pass over one file.
type Report struct {
	File           string    `json:"file"`
	TotalEntries   int       `json:"total_entries"`
	InvalidEntries int       `json:"invalid_entries"`
	Findings       []Finding `json:"findings"`
}

// Validate parses BibTeX from r and returns one finding per entry with
// missing required fields, plus the total entry count.
func Validate(r io.Reader) ([]Finding, int, error) {
	db, err := bibtex.Parse(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing BibTeX: %w", err)
	}

	var findings []Finding
	for _, entry := range db.Entries {
		missing := missingFields(entry)
		if len(missing) > 0 {
			findings = append(findings, Finding{
				Key:       entry.CiteName,
				EntryType: entry.Type,
				Missing:   missing,
			})
		}
	}
	return findings, len(db.Entries), nil
}

// ValidateFile runs Validate over a file and assembles the report.
func ValidateFile(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening BibTeX file: %w", err)
	}
	defer f.Close()

	findings, total, err := Validate(f)
	if err != nil {
		return Report{}, err
	}
	return Report{
		File:           path,
		TotalEntries:   total,
		InvalidEntries: len(findings),
		Findings:       findings,
	}, nil
}

// missingFields returns the required fields an entry lacks. The alternatives
// group is reported as one label, e.g. "where_published(booktitle|journal|venue)".
func missingFields(entry *bibtex.BibEntry) []string {
	var missing []string
	for _, field := range requiredFields {
		if fieldValue(entry, field) == "" {
			missing = append(missing, field)
		}
	}

	published := false
	for _, field := range publishedFields {
		if fieldValue(entry, field) != "" {
			published = true
			break
		}
	}
	if !published {
		missing = append(missing, "where_published("+strings.Join(publishedFields, "|")+")")
	}
	return missing
}

// fieldValue returns the trimmed string value of a field, or "" when absent.
func fieldValue(entry *bibtex.BibEntry, field string) string {
	v, ok := entry.Fields[field]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(v.String())
}
