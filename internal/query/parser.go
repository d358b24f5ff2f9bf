package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Operator is a canonical filter operator code understood by the API.
type Operator string

const (
	OpEquals      Operator = "eq"
	OpGreater     Operator = "gt"
	OpGreaterEq   Operator = "ge"
	OpLess        Operator = "lt"
	OpLessEq      Operator = "le"
	OpNotEquals   Operator = "ne"
	OpContains    Operator = "ct"
	OpNotContains Operator = "nct"
	OpIn          Operator = "in"
	OpNotIn       Operator = "nin"
)

// operatorAliases maps every accepted spelling to its canonical code.
var operatorAliases = map[string]Operator{
	"=":            OpEquals,
	"eq":           OpEquals,
	">":            OpGreater,
	"gt":           OpGreater,
	">=":           OpGreaterEq,
	"ge":           OpGreaterEq,
	"<":            OpLess,
	"lt":           OpLess,
	"<=":           OpLessEq,
	"le":           OpLessEq,
	"!=":           OpNotEquals,
	"ne":           OpNotEquals,
	"contains":     OpContains,
	"ct":           OpContains,
	"not_contains": OpNotContains,
	"nct":          OpNotContains,
	"in":           OpIn,
	"not_in":       OpNotIn,
	"nin":          OpNotIn,
}

// Operators lists the canonical operator codes.
func Operators() []Operator {
	return []Operator{
		OpEquals, OpGreater, OpGreaterEq, OpLess, OpLessEq,
		OpNotEquals, OpContains, OpNotContains, OpIn, OpNotIn,
	}
}

// LookupOperator resolves an operator alias. Unknown aliases report false.
func LookupOperator(alias string) (Operator, bool) {
	op, ok := operatorAliases[alias]
	return op, ok
}

// Aliases returns the accepted spellings for op.
func (op Operator) Aliases() []string {
	var out []string
	for alias, target := range operatorAliases {
		if target == op {
			out = append(out, alias)
		}
	}
	// Symbols before words, then lexically.
	sort.Slice(out, func(i, j int) bool {
		wi, wj := isWord(out[i]), isWord(out[j])
		if wi != wj {
			return wj
		}
		return out[i] < out[j]
	})
	return out
}

func isWord(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}

var (
	// ErrInvalidClause is returned for a clause that is not
	// "field value" or "field operator value".
	ErrInvalidClause = errors.New("invalid filter clause")

	// ErrUnknownOperator is returned for an operator outside the alias table.
	ErrUnknownOperator = errors.New("invalid condition")
)

// Filter is one parsed filter clause.
type Filter struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value string   `json:"value"`
}

// Key returns the normalized parameter name, "field(op)".
func (f Filter) Key() string {
	return fmt.Sprintf("%s(%s)", f.Field, f.Op)
}

func (f Filter) String() string {
	return f.Key() + "=" + f.Value
}

// ParseFilterClause parses a single clause:
//
//	field operator value   e.g. amount gt 100, status != void
//	field value            operator defaults to eq
func ParseFilterClause(clause string) (Filter, error) {
	parts := strings.Fields(clause)
	switch len(parts) {
	case 3:
		op, ok := LookupOperator(parts[1])
		if !ok {
			return Filter{}, fmt.Errorf("%w %q for field %q", ErrUnknownOperator, parts[1], parts[0])
		}
		return Filter{Field: parts[0], Op: op, Value: parts[2]}, nil
	case 2:
		return Filter{Field: parts[0], Op: OpEquals, Value: parts[1]}, nil
	default:
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidClause, strings.TrimSpace(clause))
	}
}

// ParseFilters parses the tokens of a where clause. Tokens are joined
// with spaces and split on commas; empty clauses are skipped. Parsing
// stops at the first bad clause and no filters are returned.
func ParseFilters(tokens []string) ([]Filter, error) {
	var filters []Filter
	for _, clause := range strings.Split(strings.Join(tokens, " "), ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		f, err := ParseFilterClause(clause)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
