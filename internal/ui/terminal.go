package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

func init() {
	if !ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor decides whether output is colored:
//   - NO_COLOR (any value) disables color
//   - CLICOLOR=0 disables color
//   - CLICOLOR_FORCE (non-zero) enables color even when piped
//   - otherwise color follows the terminal's capabilities
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if f := os.Getenv("CLICOLOR_FORCE"); f != "" && f != "0" {
		return true
	}
	if !IsTerminal() {
		return false
	}
	return termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
}

// ColorProfile returns the profile used for raw termenv styling.
func ColorProfile() termenv.Profile {
	if !ShouldUseColor() {
		return termenv.Ascii
	}
	if p := termenv.NewOutput(os.Stdout).ColorProfile(); p != termenv.Ascii {
		return p
	}
	// Forced color on a non-terminal.
	return termenv.ANSI
}
