// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"

	"spark-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT // identifiers: x, count, myVar
	INT   // integer literals: 123
	FLOAT // float literals: 3.14

	// Operators
	ASSIGN // =
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	CARET  // ^

	EQ  // ==
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=

	// Delimiters
	LPAREN // (
	RPAREN // )

	// Keywords
	KW_VAR
	KW_AND
	KW_OR
	KW_NOT
	KW_IF
	KW_DO
	KW_ELIF
	KW_ELSE
	KW_FOR
	KW_UPTO
	KW_STEP
	KW_WHILE
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT: "IDENT",
	INT:   "INT",
	FLOAT: "FLOAT",

	ASSIGN: "=",
	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	CARET:  "^",
	EQ:     "==",
	NEQ:    "!=",
	LT:     "<",
	LTE:    "<=",
	GT:     ">",
	GTE:    ">=",

	LPAREN: "(",
	RPAREN: ")",

	KW_VAR:   "VAR",
	KW_AND:   "AND",
	KW_OR:    "OR",
	KW_NOT:   "NOT",
	KW_IF:    "IF",
	KW_DO:    "DO",
	KW_ELIF:  "ELIF",
	KW_ELSE:  "ELSE",
	KW_FOR:   "FOR",
	KW_UPTO:  "UPTO",
	KW_STEP:  "STEP",
	KW_WHILE: "WHILE",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_VAR && k <= KW_WHILE
}

// IsLiteral returns true if the kind is a literal (ident/int/float).
func (k Kind) IsLiteral() bool {
	return k >= IDENT && k <= FLOAT
}

// Reserved words are case-sensitive: "var" is an identifier, "VAR" is not.
var keywords = map[string]Kind{
	"VAR":   KW_VAR,
	"AND":   KW_AND,
	"OR":    KW_OR,
	"NOT":   KW_NOT,
	"IF":    KW_IF,
	"DO":    KW_DO,
	"ELIF":  KW_ELIF,
	"ELSE":  KW_ELSE,
	"FOR":   KW_FOR,
	"UPTO":  KW_UPTO,
	"STEP":  KW_STEP,
	"WHILE": KW_WHILE,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
