// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// csvHeader is the fixed column set of the tabular output.
var csvHeader = []string{
	"title", "authors", "year", "venue", "publication_types",
	"url", "doi", "pdf_url", "source", "paper_id",
}

// WriteCSV writes papers as a tabular file with a header row. The header is
// written even when papers is empty.
func WriteCSV(papers []types.Paper, path string) error {
	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		year := ""
		if p.Year != 0 {
			year = strconv.Itoa(p.Year)
		}
		row := []string{
			p.Title,
			strings.Join(p.Authors, "; "),
			year,
			p.Venue,
			strings.Join(p.PublicationTypes, "; "),
			p.URL,
			p.DOI,
			p.PDFURL,
			p.Source,
			p.ID,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// WriteJSONL writes papers as line-delimited JSON, one canonical record per
// line. The file is created even when papers is empty.
func WriteJSONL(papers []types.Paper, path string) error {
	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, p := range papers {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("writing JSONL record: %w", err)
		}
	}
	return nil
}

// ReadJSONL loads papers from a line-delimited JSON file, skipping blank
// lines.
func ReadJSONL(path string) ([]types.Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening JSONL file: %w", err)
	}
	defer f.Close()

	var papers []types.Paper
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var p types.Paper
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("parsing JSONL record: %w", err)
		}
		papers = append(papers, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading JSONL file: %w", err)
	}
	return papers, nil
}

// WriteBibTeX writes a minimal citation stub, one entry per paper. Fields
// appear only when present. Backends rarely supply complete bibliographic
// metadata; entries need manual verification against publisher pages.
func WriteBibTeX(papers []types.Paper, path string) error {
	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range papers {
		key := bibKey(p)
		fmt.Fprintf(w, "@inproceedings{%s,\n", key)
		fmt.Fprintf(w, "  title={{%s}},\n", strings.NewReplacer("{", "", "}", "").Replace(p.Title))
		if len(p.Authors) > 0 {
			fmt.Fprintf(w, "  author={{%s}},\n", strings.Join(p.Authors, " and "))
		}
		if p.Year != 0 {
			fmt.Fprintf(w, "  year={{%d}},\n", p.Year)
		}
		if p.Venue != "" {
			fmt.Fprintf(w, "  booktitle={{%s}},\n", p.Venue)
		}
		if p.DOI != "" {
			fmt.Fprintf(w, "  doi={{%s}},\n", p.DOI)
		}
		if p.URL != "" {
			fmt.Fprintf(w, "  url={{%s}},\n", p.URL)
		}
		fmt.Fprint(w, "}\n\n")
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing BibTeX file: %w", err)
	}
	return nil
}

// bibKey derives a citation key: the first author's last name token, the
// year (or "n.d."), and the first title word, sanitized and truncated.
func bibKey(p types.Paper) string {
	author := "Unknown"
	if len(p.Authors) > 0 {
		tokens := strings.Fields(p.Authors[0])
		if len(tokens) > 0 {
			author = tokens[len(tokens)-1]
		}
	}
	year := "n.d."
	if p.Year != 0 {
		year = strconv.Itoa(p.Year)
	}
	titleWord := "Untitled"
	if tokens := strings.Fields(p.Title); len(tokens) > 0 {
		titleWord = tokens[0]
	}
	return sanitizeToken(author+year+titleWord, 60)
}

// unsafeRuns matches character runs not allowed in citation keys or
// filenames.
var (
	unsafeRuns     = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// sanitizeToken replaces unsafe character runs with underscores, collapses
// repeats, truncates, and trims stray underscores.
func sanitizeToken(s string, maxLen int) string {
	s = unsafeRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.Trim(s, "_")
	if s == "" {
		return "paper"
	}
	return s
}

// createWithDirs creates path, making parent directories as needed.
func createWithDirs(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}
