package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/payquery/payquery"
	"github.com/payquery/payquery/internal/client"
	"github.com/payquery/payquery/internal/config"
	"github.com/payquery/payquery/internal/debug"
	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/ui"
)

// request is a compiled query bound to an environment.
type request struct {
	Descriptor *query.Descriptor
	Env        config.Environment
	Route      []string // route with the scope segment appended
}

// prepare compiles args and resolves the target environment. Nothing
// touches the network.
func prepare(args []string, now time.Time) (*request, error) {
	d, err := query.Compile(args, query.Options{Now: now})
	if err != nil {
		return nil, err
	}

	env, err := loadEnvironment(d.Target)
	if err != nil {
		return nil, err
	}

	route, err := query.ScopeRoute(d.Route, env.Scope())
	if err != nil {
		return nil, err
	}
	return &request{Descriptor: d, Env: env, Route: route}, nil
}

// loadEnvironment resolves name from the environments file. On a first
// run at an interactive terminal the default environment is created with
// a form instead of failing.
func loadEnvironment(name string) (config.Environment, error) {
	path := config.EnvironmentsPath()
	env, err := config.Resolve(path, name)
	if err == nil {
		return env, nil
	}
	if !errors.Is(err, config.ErrNoEnvironments) || name != query.DefaultTarget || !interactive() {
		return config.Environment{}, err
	}

	fmt.Fprintln(os.Stderr, ui.RenderPass("No configuration found. Let's create one!"))
	if _, err := createEnvironment(path, name); err != nil {
		return config.Environment{}, err
	}
	return config.Resolve(path, name)
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && ui.IsTerminal()
}

// baseURL is the environment's API host unless the base-url setting
// overrides it.
func (r *request) baseURL() string {
	if u := config.GetString("base-url"); u != "" {
		return u
	}
	return r.Env.BaseURL()
}

func (r *request) client() *client.Client {
	return client.New(r.baseURL(), r.Env.APIToken,
		client.WithTimeout(config.GetDuration("timeout")),
		client.WithRetries(config.GetInt("retries")),
		client.WithUserAgent("pq/"+Version),
	)
}

// runQuery compiles and sends one query, then writes the records to out.
func runQuery(ctx context.Context, out io.Writer, args []string) error {
	start := time.Now()
	req, err := prepare(args, start)
	if err != nil {
		return err
	}

	c := req.client()
	params := req.Descriptor.Params()
	if dryRun {
		fmt.Fprintln(out, c.URL(req.Route, params))
		return nil
	}

	resp, err := c.Query(ctx, req.Route, params)
	var se *client.StatusError
	if errors.As(err, &se) {
		debug.FprintlnNormal(out, ui.RenderStatus(se.Status, se.StatusCode))
	}
	if err != nil {
		return err
	}
	debug.FprintlnNormal(out, ui.RenderStatus(resp.Status, resp.StatusCode))

	recs, err := resp.Records()
	if err != nil {
		return err
	}
	debug.Timef(start, fmt.Sprintf("query returned %d records", len(recs)))

	text, err := renderRecords(payquery.SortRecords(req.Descriptor, recs), outputFormat())
	if err != nil {
		return err
	}
	return ui.ToPager(text, ui.PagerOptions{
		NoPager: noPager,
		Command: config.GetString("pager"),
		Out:     out,
	})
}

// renderRecords pretty-prints v as json or yaml, colored by depth when
// color is enabled.
func renderRecords(v any, format string) (string, error) {
	var text string
	switch format {
	case "yaml":
		y, err := ui.PrettyYAML(v)
		if err != nil {
			return "", fmt.Errorf("rendering yaml: %w", err)
		}
		text = y
	case "json":
		text = ui.PrettyJSON(v)
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	return ui.ColorizeDepth(text) + "\n", nil
}
