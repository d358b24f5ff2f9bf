package ui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSON(t *testing.T) {
	v, err := oj.ParseString(`[{"zeta":1,"alpha":{"inner":[true,null]},"mid":"x"}]`)
	require.NoError(t, err)

	out := PrettyJSON(v)

	back, err := oj.ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, v, back, "output is the same document")

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 5, "output is multi-line")
	assert.True(t, strings.HasPrefix(lines[1], "  {"), "two-space indent: %q", lines[1])

	a, m, z := strings.Index(out, `"alpha"`), strings.Index(out, `"mid"`), strings.Index(out, `"zeta"`)
	assert.True(t, a < m && m < z, "keys sorted:\n%s", out)
}

func TestPrettyYAML(t *testing.T) {
	v, err := oj.ParseString(`[{"zeta":1,"alpha":{"inner":[true,null]},"amount":20.5,"id":"A7"}]`)
	require.NoError(t, err)

	out, err := PrettyYAML(v)
	require.NoError(t, err)

	want := strings.Join([]string{
		"- alpha:",
		"    inner:",
		"      - true",
		"      - null",
		"  amount: 20.5",
		"  id: A7",
		"  zeta: 1",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestColorizeDepth(t *testing.T) {
	text := "{\n  \"a\": {\n    \"b\": 1\n  }\n}"

	assert.Equal(t, text, colorizeDepth(text, termenv.Ascii), "no color, no change")

	got := strings.Split(colorizeDepth(text, termenv.ANSI), "\n")
	require.Len(t, got, 5)
	assert.Equal(t, "\x1b[31m{\x1b[0m", got[0])
	assert.Equal(t, "\x1b[32m  \"a\": {\x1b[0m", got[1])
	assert.Equal(t, "\x1b[34m    \"b\": 1\x1b[0m", got[2])
	assert.Equal(t, "\x1b[32m  }\x1b[0m", got[3])
	assert.Equal(t, "\x1b[31m}\x1b[0m", got[4])
}

func TestColorizeDepth_Cycles(t *testing.T) {
	line := strings.Repeat(" ", 10) + "x" // depth 5 wraps to red
	assert.Equal(t, "\x1b[31m"+line+"\x1b[0m", colorizeDepth(line, termenv.ANSI))

	line = strings.Repeat(" ", 8) + "x" // depth 4
	assert.Equal(t, "\x1b[35m"+line+"\x1b[0m", colorizeDepth(line, termenv.ANSI))
}
