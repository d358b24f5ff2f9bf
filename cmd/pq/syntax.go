package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/timeparsing"
	"github.com/payquery/payquery/internal/ui"
)

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show the query grammar",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(syntaxMarkdown()))
	},
}

const syntaxIntro = `# pq query syntax

    pq [only <n>] <route...> [for <env>] [where <filters>] [by <key> [asc|desc]] [crop]

| Clause | Meaning |
|---|---|
| ` + "`only <n>`" + ` | cap the result at n records (` + "`limitRecord`" + `) |
| ` + "`<route...>`" + ` | path segments under /api/Query/ |
| ` + "`for <env>`" + ` | environment from the config file (default: ` + "`default`" + `) |
| ` + "`where ...`" + ` | comma-separated filters: ` + "`field op value`" + ` or ` + "`field value`" + ` |
| ` + "`by <key> [desc]`" + ` | sort records by a dot path, e.g. ` + "`customer.name`" + ` |
| ` + "`crop`" + ` | print only the sort key's value per record |

Keywords are lowercase. Only the first ` + "`only`, `for`, `where`, `by`" + ` is a
keyword; later ones are plain words.

A route ending in ` + "`org`" + ` gets the environment's org id appended. A route
ending in a number is used as-is. Any other route gets the entrypoint.
`

const syntaxDates = `## Dates

Values may be written as dates and are rewritten to timestamps
(` + "`2006-01-02T15:04:05.000`" + `) before the query is parsed:

- keywords: %s
- calendar dates: ` + "`March 5`, `March 5 2024`, `March 5 @ 14:30`" + `
- signed durations: ` + "`-7d`, `+6h`, `-2w`, `-1m`, `-1y`" + `

Try ` + "`pq date <phrase>`" + ` to preview one.
`

func syntaxMarkdown() string {
	var sb strings.Builder
	sb.WriteString(syntaxIntro)

	sb.WriteString("\n## Operators\n\n| Code | Spellings |\n|---|---|\n")
	for _, op := range query.Operators() {
		aliases := make([]string, 0, 2)
		for _, a := range op.Aliases() {
			aliases = append(aliases, "`"+a+"`")
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", op, strings.Join(aliases, " "))
	}
	sb.WriteString("\nWithout an operator a filter means `eq`.\n\n")

	keywords := make([]string, 0, 13)
	for k := range timeparsing.KeywordMap(time.Now()) {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	fmt.Fprintf(&sb, syntaxDates, "`"+strings.Join(keywords, "`, `")+"`")
	return sb.String()
}

func init() {
	rootCmd.AddCommand(syntaxCmd)
}
