package ui

import (
	"bytes"
	"strings"

	"github.com/muesli/termenv"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// depthColors cycle with indentation depth: red, green, blue, yellow, magenta.
var depthColors = []string{"1", "2", "4", "3", "5"}

// PrettyJSON renders v as JSON indented by two spaces with object keys
// sorted.
func PrettyJSON(v any) string {
	return oj.JSON(v, &oj.Options{Indent: 2, Sort: true})
}

// PrettyYAML renders v as YAML indented by two spaces. Map keys are sorted.
func PrettyYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ColorizeDepth colors every line of text by its indentation depth, two
// spaces per level, when color output is enabled.
func ColorizeDepth(text string) string {
	return colorizeDepth(text, ColorProfile())
}

func colorizeDepth(text string, p termenv.Profile) string {
	if p == termenv.Ascii {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		c := depthColors[(indent/2)%len(depthColors)]
		lines[i] = termenv.String(line).Foreground(p.Color(c)).String()
	}
	return strings.Join(lines, "\n")
}
