// Package records post-processes the Records array of a query response:
// nested key lookup, sorting and cropping.
package records

import (
	"errors"
	"sort"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/payquery/payquery/internal/query"
)

// ErrNoRecords is returned when a response body has no Records array.
var ErrNoRecords = errors.New("response has no Records array")

// recordsPath selects the top-level Records member of a response envelope.
var recordsPath = jp.C("Records")

// Parse extracts the Records array from a JSON response body.
func Parse(body []byte) ([]any, error) {
	doc, err := oj.Parse(body)
	if err != nil {
		return nil, err
	}
	for _, v := range recordsPath.Get(doc) {
		if list, ok := v.([]any); ok {
			return list, nil
		}
	}
	return nil, ErrNoRecords
}

// pathExpr builds a child-only expression from a dot-separated key.
// Components are taken literally, so keys holding '[' or '*' never turn
// into wildcards or filters.
func pathExpr(path string) jp.Expr {
	var x jp.Expr
	for _, k := range strings.Split(path, ".") {
		x = append(x, jp.Child(k))
	}
	return x
}

// Resolve walks record along a dot-separated path. Only object nodes are
// descended; a missing member or a non-object node reports false.
func Resolve(record any, path string) (any, bool) {
	if _, ok := record.(map[string]any); !ok {
		return nil, false
	}
	got := pathExpr(path).Get(record)
	if len(got) == 0 {
		return nil, false
	}
	return got[0], true
}

// Sort orders records in place by the value at s.Key. The sort is stable;
// records without the key sort as null.
func Sort(records []any, s query.Sort) {
	x := pathExpr(s.Key)
	keys := make([]any, len(records))
	for i, r := range records {
		if _, ok := r.(map[string]any); ok {
			keys[i] = x.First(r)
		}
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		c := Compare(keys[idx[i]], keys[idx[j]])
		if s.Direction == query.Desc {
			return c > 0
		}
		return c < 0
	})

	sorted := make([]any, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}

// Crop replaces each record with its value at key. Records without the
// key become null.
func Crop(records []any, key string) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i], _ = Resolve(r, key)
	}
	return out
}

// Compare orders two JSON values: null first, then numbers by value and
// strings lexically. Values of different kinds, and objects or arrays,
// compare by their compact JSON text.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	return strings.Compare(oj.JSON(a), oj.JSON(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
