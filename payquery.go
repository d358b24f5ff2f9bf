// Package payquery provides a minimal public API for embedding the pq
// query compiler.
//
// The compiler is pure: it turns command-line words into a Descriptor and
// never touches the network or the environments file. Use Scope and URL
// to finish a request for a known environment.
package payquery

import (
	"time"

	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/records"
)

// Core types for working with compiled queries
type (
	Descriptor = query.Descriptor
	Filter     = query.Filter
	Operator   = query.Operator
	Sort       = query.Sort
	Direction  = query.Direction
	Param      = query.Param
	Scope      = query.Scope
)

// Sort directions
const (
	Asc  = query.Asc
	Desc = query.Desc
)

// Parse errors, for use with errors.Is
var (
	ErrMissingSortKey  = query.ErrMissingSortKey
	ErrInvalidClause   = query.ErrInvalidClause
	ErrUnknownOperator = query.ErrUnknownOperator
)

// Compile compiles a query against the current time.
func Compile(words []string) (*Descriptor, error) {
	return query.Compile(words, query.Options{})
}

// CompileAt compiles a query, resolving relative dates against now.
func CompileAt(words []string, now time.Time) (*Descriptor, error) {
	return query.Compile(words, query.Options{Now: now})
}

// URL returns the request URL for d against base, with the scope segment
// appended to the route.
func URL(base string, d *Descriptor, scope Scope) (string, error) {
	route, err := query.ScopeRoute(d.Route, scope)
	if err != nil {
		return "", err
	}
	u := query.BuildURL(base, route)
	if qs := query.EncodeParams(d.Params()); qs != "" {
		u += "?" + qs
	}
	return u, nil
}

// SortRecords orders records, as parsed from a response's Records array,
// the way d's by clause asks. Cropped queries return the sort key's value
// per record instead of the records.
func SortRecords(d *Descriptor, recs []any) []any {
	if d.Sort == nil {
		return recs
	}
	records.Sort(recs, *d.Sort)
	if d.Crop {
		return records.Crop(recs, d.Sort.Key)
	}
	return recs
}
