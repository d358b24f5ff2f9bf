package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/payquery/payquery/internal/timeparsing"
)

var dateCmd = &cobra.Command{
	Use:   "date <phrase...>",
	Short: "Resolve a date phrase to the timestamp a query would use",
	Long: `Resolve a date phrase the way query values are resolved, and also
through natural language parsing for phrases queries do not accept.

Examples:
  pq date last month
  pq date -7d
  pq date March 5 @ 9:15
  pq date next friday at 2pm

Flags are not parsed, so signed durations like -7d work as-is.`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		t, err := timeparsing.ParseRelativeTime(strings.Join(args, " "), time.Now())
		if err != nil {
			FatalError("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), timeparsing.Format(t))
	},
}

func init() {
	rootCmd.AddCommand(dateCmd)
}
