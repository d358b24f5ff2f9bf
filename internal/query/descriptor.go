package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/payquery/payquery/internal/debug"
	"github.com/payquery/payquery/internal/timeparsing"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps a sort word to a Direction. Only "desc" sorts
// descending; anything else sorts ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders records by a dot-separated key path.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Descriptor is a compiled command line, ready to drive one request.
type Descriptor struct {
	Route   []string `json:"route"`
	Target  string   `json:"target"`
	Filters []Filter `json:"filters"`
	Sort    *Sort    `json:"sort,omitempty"`
	Limit   *int     `json:"limit,omitempty"`
	Crop    bool     `json:"crop"`
}

// Options controls compilation.
type Options struct {
	// Now is the reference instant for relative dates. Zero means time.Now().
	Now time.Time
}

// Compile turns raw command-line tokens into a Descriptor: dates are
// expanded, the line is split into clauses and the where clause is
// parsed. Any error aborts compilation; no partial descriptor is returned.
func Compile(args []string, opts Options) (*Descriptor, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	tokens := timeparsing.Expand(args, now)
	debug.Logf("query: expanded %q\n", tokens)

	clauses, err := Split(tokens)
	if err != nil {
		return nil, err
	}
	debug.Logf("query: route=%q filter=%q target=%q\n", clauses.Route, clauses.Filter, clauses.Target)

	filters, err := ParseFilters(clauses.Filter)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Route:   clauses.Route,
		Target:  clauses.Target,
		Filters: filters,
		Sort:    clauses.Sort,
		Limit:   clauses.Limit,
		Crop:    clauses.Sort != nil && clauses.CropRequested,
	}, nil
}

// Param is one query-string parameter. Params keep insertion order.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LimitParam is the query parameter carrying the record cap.
const LimitParam = "limitRecord"

// Params returns the request parameters: one per filter, in order,
// followed by the limit when set.
func (d *Descriptor) Params() []Param {
	params := make([]Param, 0, len(d.Filters)+1)
	for _, f := range d.Filters {
		params = append(params, Param{Key: f.Key(), Value: f.Value})
	}
	if d.Limit != nil {
		params = append(params, Param{Key: LimitParam, Value: strconv.Itoa(*d.Limit)})
	}
	return params
}

// EncodeParams renders params as a query string without reordering them.
func EncodeParams(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// Scope supplies the implicit trailing route segment.
type Scope struct {
	OrgID      string
	Entrypoint string
}

// ScopeRoute appends the implicit scope segment to an explicit route:
//   - last segment "org": the org id
//   - empty route or non-numeric last segment: the entrypoint
//   - numeric last segment: nothing, the id is explicit
func ScopeRoute(route []string, scope Scope) ([]string, error) {
	out := append([]string(nil), route...)

	var last string
	if len(route) > 0 {
		last = route[len(route)-1]
	}

	switch {
	case last == "org":
		if scope.OrgID == "" {
			return nil, fmt.Errorf("route ends in 'org' but no org id is configured")
		}
		return append(out, scope.OrgID), nil
	case last != "" && isNumeric(last):
		return out, nil
	default:
		if scope.Entrypoint == "" {
			return nil, fmt.Errorf("route %q needs an entrypoint but none is configured", strings.Join(route, "/"))
		}
		return append(out, scope.Entrypoint), nil
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// BuildURL joins base and route into the query endpoint,
// "<base>/api/Query/<route>/".
func BuildURL(base string, route []string) string {
	segments := make([]string, len(route))
	for i, seg := range route {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/api/Query/" + strings.Join(segments, "/") + "/"
}
