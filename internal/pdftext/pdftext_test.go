// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"path/filepath"
	"testing"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		input     string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{"", 0, 0, false},
		{"5", 5, 5, false},
		{"2:7", 2, 7, false},
		{"3:", 3, 0, false},
		{":4", 0, 4, false},
		{":", 0, 0, false},
		{"  2:7  ", 2, 7, false},
		{"abc", 0, 0, true},
		{"2:abc", 0, 0, true},
		{"abc:7", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := ParsePages(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePages(%q) expected error, got (%d, %d)", tt.input, start, end)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePages(%q): %v", tt.input, err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ParsePages(%q) = (%d, %d), want (%d, %d)",
					tt.input, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "absent.pdf"), 0, 0)
	if err == nil {
		t.Error("expected error for missing PDF")
	}
}
