// Package lexer implements the lexical analysis (tokenization) for spark-lang.
package lexer

import (
	"spark-lang/internal/diag"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// Lexer tokenizes source code into a sequence of tokens. The first lexical
// error aborts the scan: callers get either the full token sequence or a
// single diagnostic, never both.
type Lexer struct {
	source string
	src    span.Source

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)
}

// New creates a new Lexer for the given source text.
func New(source, name string) *Lexer {
	return &Lexer{
		source: source,
		src:    span.Source{Name: name, Text: source},
		pos:    0,
		line:   1,
		col:    1,
	}
}

// Tokenize scans the entire source. On success the returned sequence
// always ends with an EOF token, even for empty input. On failure the
// tokens scanned so far are discarded and only the diagnostic is returned.
func (l *Lexer) Tokenize() ([]token.Token, *diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok, d := l.nextToken()
		if d != nil {
			return nil, d
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// ---- internal helpers ----

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// curPos returns the current position as a span.Position.
func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// makeSpan returns a span from start to current position.
func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

// skipWhitespace skips spaces and tabs. Newlines are not whitespace: they
// fall through to readOperator's default arm and fail as illegal characters.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == ' ' || ch == '\t' {
			l.advance()
		} else {
			break
		}
	}
}

// ---- token reading ----

func (l *Lexer) nextToken() (token.Token, *diag.Diagnostic) {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Lexeme: "", Span: l.makeSpan(l.curPos())}, nil
	}

	start := l.curPos()
	ch := l.peek()

	// Number literal
	if isDigit(ch) {
		return l.readNumber(start), nil
	}

	// Identifier or keyword
	if isLetter(ch) {
		return l.readIdentifier(start), nil
	}

	// Operators and delimiters
	return l.readOperator(start)
}

// readNumber reads an integer or float literal. It greedily consumes
// digits and at most one '.'; a second '.' terminates the literal without
// being consumed, so the next scan step starts on it (and fails, since a
// bare '.' never starts a literal). That is the scanning policy, not a bug.
func (l *Lexer) readNumber(start span.Position) token.Token {
	numStart := l.pos
	dots := 0

	for l.pos < len(l.source) {
		ch := l.peek()
		if ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		} else if !isDigit(ch) {
			break
		}
		l.advance()
	}

	lexeme := l.source[numStart:l.pos]
	kind := token.INT
	if dots > 0 {
		kind = token.FLOAT
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	identStart := l.pos

	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}

	lexeme := l.source[identStart:l.pos]
	kind := token.LookupIdent(lexeme)
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readOperator reads an operator or delimiter token.
func (l *Lexer) readOperator(start span.Position) (token.Token, *diag.Diagnostic) {
	ch := l.advance()

	switch ch {
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Span: l.makeSpan(start)}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Span: l.makeSpan(start)}, nil
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Span: l.makeSpan(start)}, nil
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Span: l.makeSpan(start)}, nil
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Span: l.makeSpan(start)}, nil
	case '/':
		return token.Token{Kind: token.SLASH, Lexeme: "/", Span: l.makeSpan(start)}, nil
	case '^':
		return token.Token{Kind: token.CARET, Lexeme: "^", Span: l.makeSpan(start)}, nil
	case '=':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.EQ, Lexeme: "==", Span: l.makeSpan(start)}, nil
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Span: l.makeSpan(start)}, nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.NEQ, Lexeme: "!=", Span: l.makeSpan(start)}, nil
		}
		return token.Token{}, diag.Errorf(diag.ExpectedCharacter, l.src, l.makeSpan(start), "'=' (after '!')")
	case '<':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.LTE, Lexeme: "<=", Span: l.makeSpan(start)}, nil
		}
		return token.Token{Kind: token.LT, Lexeme: "<", Span: l.makeSpan(start)}, nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.GTE, Lexeme: ">=", Span: l.makeSpan(start)}, nil
		}
		return token.Token{Kind: token.GT, Lexeme: ">", Span: l.makeSpan(start)}, nil
	default:
		return token.Token{}, diag.Errorf(diag.IllegalCharacter, l.src, l.makeSpan(start), "'%c'", ch)
	}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
