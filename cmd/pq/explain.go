package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/payquery/payquery/internal/config"
	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:   "explain <query...>",
	Short: "Show how a query compiles, without sending it",
	Long: `Compile a query and print its parts: route, target environment,
filters, sort, limit and the request URL. No request is sent.

When the target environment cannot be loaded the route is shown without
its scope segment and no URL is printed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		args, err := splitQueryArgs(args)
		if err != nil {
			fail(err)
		}
		exp, err := explainQuery(args, time.Now())
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), exp)
			return
		}
		printExplanation(cmd.OutOrStdout(), exp)
	},
}

// explanation is the result of explain.
type explanation struct {
	Query  *query.Descriptor `json:"query"`
	Route  []string          `json:"route"`
	URL    string            `json:"url,omitempty"`
	Params []query.Param     `json:"params"`
	Error  string            `json:"environment_error,omitempty"`
}

func explainQuery(args []string, now time.Time) (*explanation, error) {
	d, err := query.Compile(args, query.Options{Now: now})
	if err != nil {
		return nil, err
	}
	exp := &explanation{Query: d, Route: d.Route, Params: d.Params()}

	env, err := config.Resolve(config.EnvironmentsPath(), d.Target)
	if err != nil {
		exp.Error = err.Error()
		return exp, nil
	}
	route, err := query.ScopeRoute(d.Route, env.Scope())
	if err != nil {
		exp.Error = err.Error()
		return exp, nil
	}
	exp.Route = route
	req := &request{Descriptor: d, Env: env, Route: route}
	exp.URL = req.client().URL(route, exp.Params)
	return exp, nil
}

func printExplanation(w io.Writer, exp *explanation) {
	d := exp.Query
	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", ui.RenderAccent(ui.PadRight(label, 9)), value)
	}

	row("Route:", "/"+strings.Join(exp.Route, "/"))
	row("Target:", d.Target)
	if len(d.Filters) == 0 {
		row("Filters:", ui.RenderMuted("none"))
	}
	for i, f := range d.Filters {
		label := ""
		if i == 0 {
			label = "Filters:"
		}
		row(label, f.String())
	}
	if d.Sort != nil {
		sort := d.Sort.Key + " " + string(d.Sort.Direction)
		if d.Crop {
			sort += " (crop)"
		}
		row("Sort:", sort)
	}
	if d.Limit != nil {
		row("Limit:", fmt.Sprint(*d.Limit))
	}
	if exp.URL != "" {
		row("URL:", exp.URL)
	}
	if exp.Error != "" {
		fmt.Fprintf(w, "%s %s\n", ui.RenderWarnIcon(), ui.RenderWarn(exp.Error))
	}
}

func init() {
	explainCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(explainCmd)
}
