package ui

import "testing"

func TestTruncateSimple(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short text unchanged",
			input:  "acme01",
			maxLen: 10,
			want:   "acme01",
		},
		{
			name:   "exact length unchanged",
			input:  "acme01",
			maxLen: 6,
			want:   "acme01",
		},
		{
			name:   "truncate with ellipsis",
			input:  "https://api-sandbox.payabli.com",
			maxLen: 14,
			want:   "https://api...",
		},
		{
			name:   "very short maxLen",
			input:  "sandbox",
			maxLen: 3,
			want:   "...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "unicode chars",
			input:  "héllo wörld",
			maxLen: 8,
			want:   "héllo...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateSimple(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateSimple(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"qa", 5, "qa   "},
		{"prod", 4, "prod"},
		{"production", 4, "production"},
		{"wörld", 6, "wörld "},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := PadRight(tt.input, tt.width); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}
