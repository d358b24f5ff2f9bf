// Package query compiles a free-form command line into a query descriptor
// for the reporting API.
//
// A command line is a route followed by optional clauses, each introduced
// by a structural keyword:
//
//	only N       cap the number of records
//	for NAME     pick the named environment configuration
//	where ...    comma-separated filter clauses: field [operator] value
//	by KEY [DIR] sort the records by a dot-separated key, asc or desc
//	crop         print only the sort key's values
//
// Example command lines:
//   - transactions
//   - only 10 transactions for prod where totalAmount gt 100 by createdAt desc
//   - customers org 42 where firstname ct ann, balance ge 0
//   - settlements where settlementDate ge last month by batchNumber crop
package query

import "fmt"

// TokenType represents the role of a token in the command line.
type TokenType int

const (
	TokenWord  TokenType = iota // route segment, filter text, sort text
	TokenOnly                   // only
	TokenFor                    // for
	TokenWhere                  // where
	TokenBy                     // by
	TokenCrop                   // crop
)

// String returns the string representation of a TokenType.
func (t TokenType) String() string {
	switch t {
	case TokenWord:
		return "WORD"
	case TokenOnly:
		return "ONLY"
	case TokenFor:
		return "FOR"
	case TokenWhere:
		return "WHERE"
	case TokenBy:
		return "BY"
	case TokenCrop:
		return "CROP"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

// Token is a command-line argument tagged with its role.
type Token struct {
	Type  TokenType
	Value string
	Pos   int // index in the argument list
}

// clauseKeywords are structural only on their first occurrence; later
// occurrences are plain words.
var clauseKeywords = map[string]TokenType{
	"only":  TokenOnly,
	"for":   TokenFor,
	"where": TokenWhere,
	"by":    TokenBy,
}

// Tokenize tags the structural keywords in args. The first occurrence of
// each of only, for, where and by is structural; every crop is.
// Keywords are matched exactly and are case-sensitive.
func Tokenize(args []string) []Token {
	tokens := make([]Token, len(args))
	seen := make(map[TokenType]bool, len(clauseKeywords))
	for i, arg := range args {
		tok := Token{Type: TokenWord, Value: arg, Pos: i}
		if typ, ok := clauseKeywords[arg]; ok && !seen[typ] {
			seen[typ] = true
			tok.Type = typ
		} else if arg == "crop" {
			tok.Type = TokenCrop
		}
		tokens[i] = tok
	}
	return tokens
}
