package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SettingKeys are the keys that may be written to the settings file.
// Credentials never go here; they live in the environments file.
var SettingKeys = map[string]string{
	"format":   "default output format: json or yaml",
	"timeout":  "request timeout, e.g. 30s",
	"retries":  "retry attempts for transient HTTP failures",
	"no-pager": "disable the pager",
	"pager":    "pager command, overrides PAGER",
	"config":   "path to the environments file",
	"base-url": "API base URL, overrides the environment's host",
}

// IsSettingKey reports whether key may be stored in the settings file.
func IsSettingKey(key string) bool {
	_, ok := SettingKeys[key]
	return ok
}

// ValidateSetting checks value against the type of key.
func ValidateSetting(key, value string) error {
	if !IsSettingKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	switch key {
	case "format":
		if value != "json" && value != "yaml" {
			return fmt.Errorf("format must be json or yaml, got %q", value)
		}
	case "timeout":
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("timeout must be a positive duration, got %q", value)
		}
	case "retries":
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return fmt.Errorf("retries must be a non-negative integer, got %q", value)
		}
	case "base-url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("base-url must be an http(s) URL, got %q", value)
		}
	case "no-pager":
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("no-pager must be true or false, got %q", value)
		}
	}
	return nil
}

// SetSetting validates a setting and writes it to the settings file,
// creating the file if needed. Existing lines, comments included, are
// kept; a commented-out key is uncommented in place.
func SetSetting(key, value string) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}

	path := SettingsPath()
	if path == "" {
		return fmt.Errorf("cannot determine settings file location")
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is the user's settings file
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	newContent, err := updateYamlKey(string(content), key, value)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(newContent+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	Set(key, value)
	return nil
}

// updateYamlKey sets key to value in yaml content. A matching line,
// commented or not, is replaced in place with its indentation kept;
// otherwise the key is appended.
func updateYamlKey(content, key, value string) (string, error) {
	if strings.ContainsAny(key, ":#\n") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	newLine := fmt.Sprintf("%s: %s", key, formatYamlValue(value))
	keyPattern := regexp.MustCompile(`^(\s*)(#\s*)?` + regexp.QuoteMeta(key) + `\s*:`)

	var result []string
	found := false
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimRight(content, "\n")))
	for scanner.Scan() {
		line := scanner.Text()
		if m := keyPattern.FindStringSubmatch(line); m != nil && !found {
			result = append(result, m[1]+newLine)
			found = true
			continue
		}
		result = append(result, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	if !found {
		if len(result) > 0 && result[len(result)-1] != "" {
			result = append(result, "")
		}
		result = append(result, newLine)
	}
	return strings.Join(result, "\n"), nil
}

// formatYamlValue quotes value when YAML would otherwise misread it.
func formatYamlValue(value string) string {
	lower := strings.ToLower(value)
	if lower == "true" || lower == "false" {
		return lower
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return value
	}
	if _, err := time.ParseDuration(value); err == nil {
		return value
	}
	if value == "" || needsQuoting(value) {
		return strconv.Quote(value)
	}
	return value
}

func needsQuoting(s string) bool {
	if strings.ContainsAny(s, ":#[]{},&*!|>'\"%@`") {
		return true
	}
	return strings.TrimSpace(s) != s
}
