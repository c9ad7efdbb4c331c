package analysis_test

import (
	"testing"
	"time"

	"github.com/stacklens/stacklens/internal/analysis"
)

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		g    analysis.Granularity
		want string
	}{
		{"day", time.Date(2025, 12, 2, 0, 0, 0, 0, time.Local), analysis.GranularityDay, "2025-12-02"},
		{"week, Monday of ISO week 14", time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local), analysis.GranularityWeek, "2025-W14"},
		{"week, single-digit zero-padded", time.Date(2025, 1, 8, 0, 0, 0, 0, time.Local), analysis.GranularityWeek, "2025-W02"},
		{"week, January in prior ISO year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local), analysis.GranularityWeek, "2026-W53"},
		{"month", time.Date(2025, 12, 2, 0, 0, 0, 0, time.Local), analysis.GranularityMonth, "2025-12"},
		{"year", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), analysis.GranularityYear, "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.BucketKey(tt.date, tt.g); got != tt.want {
				t.Errorf("BucketKey(%v, %s) = %q, want %q", tt.date, tt.g, got, tt.want)
			}
		})
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in   string
		want analysis.Granularity
	}{
		{"day", analysis.GranularityDay},
		{"week", analysis.GranularityWeek},
		{"month", analysis.GranularityMonth},
		{"year", analysis.GranularityYear},
		{"", analysis.GranularityMonth},
		{"quarter", analysis.GranularityMonth},
		{"WEEK", analysis.GranularityWeek},
		{"Day", analysis.GranularityDay},
	}

	for _, tt := range tests {
		if got := analysis.ParseGranularity(tt.in); got != tt.want {
			t.Errorf("ParseGranularity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocalDate_TruncatesToMidnight(t *testing.T) {
	epoch := time.Date(2025, 7, 4, 23, 59, 58, 0, time.Local).Unix()

	got := analysis.LocalDate(epoch)
	want := time.Date(2025, 7, 4, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("LocalDate = %v, want %v", got, want)
	}
}
