// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// NormalizeVenue lowercases a venue string, trims it, and collapses internal
// whitespace runs to single spaces. The same normalization keys the dedup set.
func NormalizeVenue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// LoadAllowlist reads a line-oriented venue allowlist. Blank lines and lines
// starting with "#" are ignored; the remaining lines are normalized. Entries
// may be full venue names or substrings ("pldi" matches any decorated PLDI
// proceedings string).
func LoadAllowlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening venue allowlist: %w", err)
	}
	defer f.Close()

	var venues []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		venues = append(venues, NormalizeVenue(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading venue allowlist: %w", err)
	}
	return venues, nil
}

// VenueMatches reports whether the normalized candidate contains any
// allowlist entry as a substring. An empty candidate never matches.
func VenueMatches(venue string, allowlist []string) bool {
	if venue == "" {
		return false
	}
	normalized := NormalizeVenue(venue)
	for _, allowed := range allowlist {
		if strings.Contains(normalized, allowed) {
			return true
		}
	}
	return false
}
