// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import "testing"

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{"", 0, 0, false},
		{"2019", 2019, 2019, false},
		{"2020:2025", 2020, 2025, false},
		{"2020:", 2020, 0, false},
		{":2023", 0, 2023, false},
		{":", 0, 0, false},
		{"  2019  ", 2019, 2019, false},
		{"2025:2020", 2025, 2020, false}, // inverted ranges are not rejected
		{"abcd", 0, 0, true},
		{"2020:abcd", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYearRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseYearRange(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseYearRange(%q): %v", tt.input, err)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("ParseYearRange(%q) = (%d, %d), want (%d, %d)",
					tt.input, got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestYearRangeContains(t *testing.T) {
	tests := []struct {
		name string
		r    YearRange
		year int
		want bool
	}{
		{"inside closed range", YearRange{2020, 2025}, 2022, true},
		{"at lower bound", YearRange{2020, 2025}, 2020, true},
		{"at upper bound", YearRange{2020, 2025}, 2025, true},
		{"below range", YearRange{2020, 2025}, 2019, false},
		{"above range", YearRange{2020, 2025}, 2026, false},
		{"open upper", YearRange{2020, 0}, 2099, true},
		{"open lower", YearRange{0, 2023}, 1999, true},
		{"unbounded", YearRange{}, 1987, true},
		{"inverted matches nothing", YearRange{2025, 2020}, 2022, false},
		{"unknown year fails bounded", YearRange{2020, 2025}, 0, false},
		{"unknown year fails unbounded", YearRange{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.year); got != tt.want {
				t.Errorf("%+v.Contains(%d) = %v, want %v", tt.r, tt.year, got, tt.want)
			}
		})
	}
}

// Widening a window never turns an accepted year into a rejected one.
func TestYearRangeContainsMonotonic(t *testing.T) {
	narrow := YearRange{2020, 2022}
	wide := YearRange{2018, 2025}
	for year := 1995; year <= 2030; year++ {
		if narrow.Contains(year) && !wide.Contains(year) {
			t.Errorf("year %d accepted by narrow window but rejected by wider one", year)
		}
	}
}

func TestYearRangeString(t *testing.T) {
	tests := []struct {
		r    YearRange
		want string
	}{
		{YearRange{}, ""},
		{YearRange{2019, 2019}, "2019"},
		{YearRange{2020, 2025}, "2020:2025"},
		{YearRange{2020, 0}, "2020:"},
		{YearRange{0, 2023}, ":2023"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
