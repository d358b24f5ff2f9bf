package timeparsing

import (
	"reflect"
	"testing"
	"time"
)

func TestExpand(t *testing.T) {
	// Monday
	now := time.Date(2024, 6, 17, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "no dates",
			input: []string{"transactions", "where", "amount", "gt", "100"},
			want:  []string{"transactions", "where", "amount", "gt", "100"},
		},
		{
			name:  "phrase split across tokens",
			input: []string{"where", "created", "ge", "next", "week"},
			want:  []string{"where", "created", "ge", "2024-06-24T00:00:00.000"},
		},
		{
			name:  "calendar date split across tokens",
			input: []string{"created", "ge", "March", "5", "2024", "@", "14:30"},
			want:  []string{"created", "ge", "2024-03-05T14:30:00.000"},
		},
		{
			name:  "signed duration",
			input: []string{"created", "ge", "-1d"},
			want:  []string{"created", "ge", "2024-06-16T13:45:00.000"},
		},
		{
			name:  "token with embedded whitespace is re-split",
			input: []string{"transactions where", "status", "today"},
			want:  []string{"transactions", "where", "status", "2024-06-17T00:00:00.000"},
		},
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.input, now)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand_Idempotent(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	input := []string{"where", "created", "ge", "yesterday,", "updated", "lt", "May", "1", "@", "10:00", "by", "created", "-2w"}

	once := Expand(input, now)
	twice := Expand(once, now)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expand is not idempotent:\n  once:  %q\n  twice: %q", once, twice)
	}
}

func TestExpand_Yesterday(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	got := Expand([]string{"yesterday"}, now)
	if len(got) != 1 || got[0] != "2024-06-14T00:00:00.000" {
		t.Errorf("Expand(yesterday) = %q", got)
	}
}
