package timeparsing

import (
	"testing"
	"time"
)

// TestParseNaturalLanguage tests the NLP parser wrapper.
func TestParseNaturalLanguage(t *testing.T) {
	// Fixed reference time: Wednesday, January 15, 2025, 10:00:00 AM
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		input     string
		wantMonth time.Month
		wantDay   int
		wantHour  int // -1 means don't check hour
		wantErr   bool
	}{
		{name: "tomorrow", input: "tomorrow", wantMonth: time.January, wantDay: 16, wantHour: -1},
		{name: "yesterday", input: "yesterday", wantMonth: time.January, wantDay: 14, wantHour: -1},
		{name: "next monday", input: "next monday", wantMonth: time.January, wantDay: 20, wantHour: -1},
		{name: "in 3 days", input: "in 3 days", wantMonth: time.January, wantDay: 18, wantHour: -1},
		{name: "3 days ago", input: "3 days ago", wantMonth: time.January, wantDay: 12, wantHour: -1},
		{name: "random text", input: "not a date at all", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNaturalLanguage(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNaturalLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Year() != 2025 || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseNaturalLanguage(%q) = %v, want 2025-%02d-%02d", tt.input, got, tt.wantMonth, tt.wantDay)
			}
			if tt.wantHour >= 0 && got.Hour() != tt.wantHour {
				t.Errorf("ParseNaturalLanguage(%q) hour = %d, want %d", tt.input, got.Hour(), tt.wantHour)
			}
		})
	}
}

// TestParseRelativeTime tests the layered parsing function.
func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "compact duration keeps clock time",
			input: "+1d",
			want:  time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "keyword resolves to midnight",
			input: "yesterday",
			want:  time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "keyword phrase is case-insensitive",
			input: "Next  Week",
			want:  time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "calendar date with time",
			input: "March 5 2024 @ 14:30",
			want:  time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "date-only",
			input: "2025-02-01",
			want:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "2025-03-15T14:30:00Z",
			want:  time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "millisecond layout",
			input: "2025-03-15T14:30:00.250",
			want:  time.Date(2025, 3, 15, 14, 30, 0, 250_000_000, time.UTC),
		},
		{
			name:    "invalid expression",
			input:   "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRelativeTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseRelativeTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
