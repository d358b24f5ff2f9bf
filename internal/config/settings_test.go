package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestIsSettingKey(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"format", true},
		{"timeout", true},
		{"retries", true},
		{"no-pager", true},
		{"pager", true},
		{"config", true},
		{"api_token", false},
		{"environments", false},
		{"Format", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSettingKey(tt.key); got != tt.expected {
				t.Errorf("IsSettingKey(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestValidateSetting(t *testing.T) {
	valid := [][2]string{
		{"format", "json"},
		{"format", "yaml"},
		{"timeout", "1m30s"},
		{"retries", "0"},
		{"no-pager", "true"},
		{"pager", "less -S"},
		{"config", "/etc/payquery.yml"},
		{"base-url", "http://127.0.0.1:8080"},
	}
	for _, kv := range valid {
		if err := ValidateSetting(kv[0], kv[1]); err != nil {
			t.Errorf("ValidateSetting(%q, %q) = %v", kv[0], kv[1], err)
		}
	}

	invalid := [][2]string{
		{"format", "xml"},
		{"timeout", "soon"},
		{"timeout", "-5s"},
		{"retries", "-1"},
		{"retries", "many"},
		{"no-pager", "sometimes"},
		{"api_token", "x"},
		{"base-url", "api-payabli.com"},
		{"base-url", "ftp://api-payabli.com"},
	}
	for _, kv := range invalid {
		if err := ValidateSetting(kv[0], kv[1]); err == nil {
			t.Errorf("ValidateSetting(%q, %q) accepted an invalid value", kv[0], kv[1])
		}
	}
}

func TestUpdateYamlKey(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		key      string
		value    string
		expected string
	}{
		{
			name:     "update commented key",
			content:  "# no-pager: false\nformat: json",
			key:      "no-pager",
			value:    "true",
			expected: "no-pager: true\nformat: json",
		},
		{
			name:     "update existing key",
			content:  "format: json\ntimeout: 30s",
			key:      "format",
			value:    "yaml",
			expected: "format: yaml\ntimeout: 30s",
		},
		{
			name:     "add new key",
			content:  "format: json",
			key:      "retries",
			value:    "5",
			expected: "format: json\n\nretries: 5",
		},
		{
			name:     "empty file",
			content:  "",
			key:      "timeout",
			value:    "10s",
			expected: "timeout: 10s",
		},
		{
			name:     "preserve indentation",
			content:  "  # timeout: 5s\nformat: json",
			key:      "timeout",
			value:    "1m",
			expected: "  timeout: 1m\nformat: json",
		},
		{
			name:     "quote special characters",
			content:  "format: json",
			key:      "pager",
			value:    "less -R #x",
			expected: "format: json\n\npager: \"less -R #x\"",
		},
		{
			name:     "only first match is replaced",
			content:  "format: json\n# format: yaml",
			key:      "format",
			value:    "yaml",
			expected: "format: yaml\n# format: yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := updateYamlKey(tt.content, tt.key, tt.value)
			if err != nil {
				t.Fatalf("updateYamlKey() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("updateYamlKey() =\n%q\nwant:\n%q", got, tt.expected)
			}
		})
	}
}

func TestUpdateYamlKey_InvalidKey(t *testing.T) {
	if _, err := updateYamlKey("", "a: b", "c"); err == nil {
		t.Error("expected error for key containing ':'")
	}
}

func TestFormatYamlValue(t *testing.T) {
	tests := map[string]string{
		"TRUE":       "true",
		"42":         "42",
		"1.5":        "1.5",
		"30s":        "30s",
		"less":       "less",
		"":           `""`,
		" padded":    `" padded"`,
		"a: b":       `"a: b"`,
		"say \"hi\"": `"say \"hi\""`,
	}
	for in, want := range tests {
		if got := formatYamlValue(in); got != want {
			t.Errorf("formatYamlValue(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSetSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv("PQ_SETTINGS", path)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if err := SetSetting("format", "yaml"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := SetSetting("timeout", "5s"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if got := GetString("format"); got != "yaml" {
		t.Errorf("GetString(format) after SetSetting = %q, want yaml", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if want := "format: yaml\n\ntimeout: 5s\n"; string(data) != want {
		t.Errorf("settings file =\n%q\nwant:\n%q", data, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("settings file mode = %o, want 600", perm)
	}

	// A fresh process sees the written values.
	ResetForTesting()
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetDuration("timeout"); got != 5*time.Second {
		t.Errorf("GetDuration(timeout) = %v, want 5s", got)
	}
	if got := ConfigFileUsed(); got != path {
		t.Errorf("ConfigFileUsed() = %q, want %q", got, path)
	}
}

func TestSetSetting_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("PQ_SETTINGS", path)

	err := SetSetting("api_token", "secret")
	if err == nil || !strings.Contains(err.Error(), "unknown setting") {
		t.Fatalf("SetSetting(api_token) error = %v, want unknown setting", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected setting still created the settings file")
	}
}
