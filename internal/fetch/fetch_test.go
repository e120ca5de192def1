// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func testFetchCfg() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Simple Title", "Simple_Title"},
		{"  padded  ", "padded"},
		{"slashes/and:colons", "slashes_and_colons"},
		{"many   spaces", "many_spaces"},
		{"", "paper"},
		{"???", "paper"},
		{"trailing punctuation!", "trailing_punctuation"},
		{strings.Repeat("a", 200), strings.Repeat("a", 120)},
	}
	for _, tt := range tests {
		if got := SafeFilename(tt.input); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPDFFileName(t *testing.T) {
	tests := []struct {
		name string
		p    types.Paper
		want string
	}{
		{
			"year and title",
			types.Paper{Title: "A Study of Things", Year: 2021},
			"2021_A_Study_of_Things.pdf",
		},
		{
			"no year",
			types.Paper{Title: "Undated Work"},
			"Undated_Work.pdf",
		},
		{
			"empty paper",
			types.Paper{},
			"paper.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PDFFileName(tt.p); got != tt.want {
				t.Errorf("PDFFileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchBatchDownloadsAndCounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	papers := []types.Paper{
		{Title: "Has Link", Year: 2021, PDFURL: ts.URL + "/a.pdf"},
		{Title: "No Link", Year: 2021},
	}

	var buf bytes.Buffer
	result := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), &buf)

	if result.Downloaded != 1 || result.NoLink != 1 || result.Failed != 0 || result.Skipped != 0 {
		t.Errorf("result = %+v", result)
	}
	if result.Total() != 2 {
		t.Errorf("Total = %d, want 2", result.Total())
	}

	data, err := os.ReadFile(filepath.Join(dir, "2021_Has_Link.pdf"))
	if err != nil {
		t.Fatalf("downloaded file: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("content = %q", data)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warnings: %s", buf.String())
	}
}

// A second pass over the same records finds the files on disk and performs
// no network calls.
func TestFetchBatchRerunIsIdempotent(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	papers := []types.Paper{{Title: "Stable", Year: 2022, PDFURL: ts.URL + "/s.pdf"}}

	first := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), os.Stderr)
	if first.Downloaded != 1 {
		t.Fatalf("first pass = %+v", first)
	}

	second := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), os.Stderr)
	if second.Skipped != 1 || second.Downloaded != 0 {
		t.Errorf("second pass = %+v, want skip", second)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hits = %d, want 1 (re-run must not refetch)", n)
	}
}

// One failing download is reported as a warning and does not abort the rest
// of the batch.
func TestFetchBatchFailureIsolation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.pdf") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	papers := []types.Paper{
		{Title: "Broken Link", Year: 2021, PDFURL: ts.URL + "/missing.pdf"},
		{Title: "Good Link", Year: 2021, PDFURL: ts.URL + "/good.pdf"},
	}

	var buf bytes.Buffer
	result := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), &buf)

	if result.Failed != 1 || result.Downloaded != 1 {
		t.Errorf("result = %+v", result)
	}
	warning := buf.String()
	if !strings.Contains(warning, "Broken Link") || !strings.Contains(warning, "404") {
		t.Errorf("warning = %q, want title and status", warning)
	}
	if _, err := os.Stat(filepath.Join(dir, "2021_Good_Link.pdf")); err != nil {
		t.Errorf("good download missing: %v", err)
	}
}

// Failed downloads leave no partial file at the destination or as a stray
// temp file.
func TestFetchBatchNoPartialFiles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	dir := t.TempDir()
	papers := []types.Paper{{Title: "Broken", Year: 2021, PDFURL: ts.URL + "/b.pdf"}}

	var buf bytes.Buffer
	result := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), &buf)
	if result.Failed != 1 {
		t.Fatalf("result = %+v", result)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory should be empty, found %v", entries)
	}
}

func TestFetchBatchCreatesDestinationDir(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "nested", "pdfs")
	papers := []types.Paper{{Title: "Deep", Year: 2021, PDFURL: ts.URL + "/d.pdf"}}

	result := FetchBatch(ts.Client(), papers, dir, testFetchCfg(), os.Stderr)
	if result.Downloaded != 1 {
		t.Fatalf("result = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "2021_Deep.pdf")); err != nil {
		t.Errorf("file missing: %v", err)
	}
}
