package query

import (
	"errors"
	"strconv"

	"github.com/payquery/payquery/internal/debug"
)

// DefaultTarget is the environment name used when no for clause is given.
const DefaultTarget = "default"

// ErrMissingSortKey is returned when by is not followed by a sort key.
var ErrMissingSortKey = errors.New("missing sort key after 'by'")

// state is the clause the splitter is currently filling.
type state int

const (
	stateRoute state = iota
	stateClosed // route ended at for; words go nowhere until where or by
	stateFilter
	stateSort
)

func (s state) String() string {
	switch s {
	case stateRoute:
		return "ROUTE"
	case stateClosed:
		return "CLOSED"
	case stateFilter:
		return "FILTER"
	case stateSort:
		return "SORT"
	default:
		return "?"
	}
}

// Clauses is a command line partitioned by its structural keywords.
type Clauses struct {
	Route  []string // route segments, in order
	Filter []string // raw filter tokens, not yet parsed
	Sort   *Sort    // nil when there is no by clause
	Limit  *int     // nil when only is absent or its argument is not a count
	Target string   // environment name

	// CropRequested records that crop appeared anywhere in the input.
	// Cropping only takes effect when Sort is set.
	CropRequested bool
}

// splitter walks tagged tokens and distributes words into clauses.
type splitter struct {
	state     state
	clauses   Clauses
	sawBy     bool
	sortWords []string
}

// Split partitions args into route, filter, sort, limit and target.
//
// Transitions:
//   - only consumes the next token as the limit argument and discards
//     any route words seen before it
//   - for consumes the next token as the target, in any state; in ROUTE
//     it moves to CLOSED
//   - where enters FILTER, by enters SORT, from any state
//   - crop is recorded and never lands in a clause
//
// The route therefore starts after only and its argument and ends at the
// earliest of for, where and by. The filter window ends at by when by
// follows where and at end of input otherwise. for, only and crop, with
// their arguments, are dropped from the filter and sort windows.
func Split(args []string) (*Clauses, error) {
	s := &splitter{clauses: Clauses{Target: DefaultTarget}}
	tokens := Tokenize(args)
	for i := 0; i < len(tokens); i++ {
		i += s.step(tokens[i], next(tokens, i))
	}
	return s.finish()
}

// next returns the token after i, or nil at end of input.
func next(tokens []Token, i int) *Token {
	if i+1 < len(tokens) {
		return &tokens[i+1]
	}
	return nil
}

// step applies one token and returns how many following tokens it consumed.
// A keyword never serves as another keyword's argument.
func (s *splitter) step(tok Token, arg *Token) int {
	switch tok.Type {
	case TokenOnly:
		s.clauses.Route = nil
		if arg == nil || arg.Type != TokenWord {
			return 0
		}
		if n, err := strconv.Atoi(arg.Value); err == nil && n >= 0 {
			s.clauses.Limit = &n
		} else {
			debug.Logf("ignoring limit %q after 'only': not a record count\n", arg.Value)
		}
		return 1
	case TokenFor:
		if s.state == stateRoute {
			s.state = stateClosed
		}
		if arg == nil || arg.Type != TokenWord {
			return 0
		}
		s.clauses.Target = arg.Value
		return 1
	case TokenWhere:
		s.state = stateFilter
	case TokenBy:
		s.sawBy = true
		s.state = stateSort
	case TokenCrop:
		s.clauses.CropRequested = true
	default:
		s.word(tok.Value)
	}
	return 0
}

func (s *splitter) word(w string) {
	switch s.state {
	case stateRoute:
		s.clauses.Route = append(s.clauses.Route, w)
	case stateFilter:
		s.clauses.Filter = append(s.clauses.Filter, w)
	case stateSort:
		s.sortWords = append(s.sortWords, w)
	case stateClosed:
		debug.Logf("dropping %q: the route ended at 'for'\n", w)
	}
}

func (s *splitter) finish() (*Clauses, error) {
	if s.sawBy {
		if len(s.sortWords) == 0 {
			return nil, ErrMissingSortKey
		}
		sort := &Sort{Key: s.sortWords[0], Direction: Asc}
		if len(s.sortWords) > 1 {
			sort.Direction = ParseDirection(s.sortWords[1])
		}
		s.clauses.Sort = sort
	}
	return &s.clauses, nil
}
