// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"fmt"
	"strconv"
	"strings"
)

// YearRange bounds accepted publication years. A zero side is unbounded.
// An inverted range is not rejected at parse time; it simply matches no year.
type YearRange struct {
	Start int
	End   int
}

// ParseYearRange parses a textual range: "" (unbounded), a bare year
// ("2019" means 2019:2019), or two colon-separated years with either side
// optionally empty ("2020:" is open-ended upward).
func ParseYearRange(s string) (YearRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearRange{}, nil
	}

	startStr, endStr, found := strings.Cut(s, ":")
	if !found {
		y, err := strconv.Atoi(s)
		if err != nil {
			return YearRange{}, fmt.Errorf("invalid year %q: %w", s, err)
		}
		return YearRange{Start: y, End: y}, nil
	}

	var r YearRange
	if startStr != "" {
		y, err := strconv.Atoi(startStr)
		if err != nil {
			return YearRange{}, fmt.Errorf("invalid start year %q: %w", startStr, err)
		}
		r.Start = y
	}
	if endStr != "" {
		y, err := strconv.Atoi(endStr)
		if err != nil {
			return YearRange{}, fmt.Errorf("invalid end year %q: %w", endStr, err)
		}
		r.End = y
	}
	return r, nil
}

// IsBounded reports whether either side of the range is set.
func (r YearRange) IsBounded() bool {
	return r.Start != 0 || r.End != 0
}

// Contains reports whether year falls inside the range. A record with an
// unknown year (0) never passes, even against the unbounded range.
func (r YearRange) Contains(year int) bool {
	if year == 0 {
		return false
	}
	if r.Start != 0 && year < r.Start {
		return false
	}
	if r.End != 0 && year > r.End {
		return false
	}
	return true
}

// String renders the range in the input grammar, for summaries.
func (r YearRange) String() string {
	switch {
	case r.Start == 0 && r.End == 0:
		return ""
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	case r.Start == 0:
		return ":" + strconv.Itoa(r.End)
	case r.End == 0:
		return strconv.Itoa(r.Start) + ":"
	default:
		return fmt.Sprintf("%d:%d", r.Start, r.End)
	}
}
