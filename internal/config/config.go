// Package config holds payquery's two configuration layers: process
// settings (output format, timeouts, pager) read through viper, and the
// environments file of named API credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/payquery/payquery/internal/debug"
)

var v *viper.Viper

// Initialize sets up the viper singleton. Precedence, highest first:
// explicit Set calls and bound flags, PQ_* environment variables, the
// settings file, defaults.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	// PQ_NO_PAGER -> no-pager
	v.SetEnvPrefix("PQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "json")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("retries", 3)
	v.SetDefault("no-pager", false)
	v.SetDefault("pager", "")
	v.SetDefault("base-url", "")
	v.SetDefault("config", DefaultEnvironmentsPath())

	path := SettingsPath()
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading settings file %s: %w", path, err)
	}
	debug.Logf("config: loaded settings from %s\n", path)
	return nil
}

// ResetForTesting drops the viper singleton so the next Initialize starts
// from a clean slate.
func ResetForTesting() {
	v = nil
}

// SettingsPath returns the location of the settings file, or "" when no
// user config directory can be determined. PQ_SETTINGS overrides it.
func SettingsPath() string {
	if p := os.Getenv("PQ_SETTINGS"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "payquery", "config.yaml")
}

// DefaultEnvironmentsPath returns ~/payquery.yml.
func DefaultEnvironmentsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "payquery.yml"
	}
	return filepath.Join(home, "payquery.yml")
}

// EnvironmentsPath returns the configured environments file location.
func EnvironmentsPath() string {
	if p := GetString("config"); p != "" {
		return p
	}
	return DefaultEnvironmentsPath()
}

// GetString retrieves a string setting.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean setting.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer setting.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration retrieves a duration setting.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set overrides a setting for the rest of the process.
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns every known setting, merged across layers.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// ConfigFileUsed returns the settings file viper read, or "".
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}
