// Package parser implements the syntax analysis for spark-lang.
//
// The grammar is a fixed precedence ladder, tightest-binding first:
//
//	expr        := 'VAR' IDENT '=' expr | orExpr
//	orExpr      := compExpr (('AND'|'OR') compExpr)*
//	compExpr    := 'NOT' compExpr | arith ((EQ|NE|LT|GT|LE|GE) arith)*
//	arith       := term (('+'|'-') term)*
//	term        := unary (('*'|'/') unary)*
//	unary       := ('+'|'-') unary | power
//	power       := atom ('^' unary)?
//	atom        := INT | FLOAT | IDENT | '(' expr ')' | ifExpr | forExpr | whileExpr
//	ifExpr      := 'IF' expr 'DO' expr ('ELIF' expr 'DO' expr)* ('ELSE' expr)?
//	forExpr     := 'FOR' IDENT '=' expr 'UPTO' expr ('STEP' expr)? 'DO' expr
//	whileExpr   := 'WHILE' expr 'DO' expr
//
// One method per rule. '^' is right-associative: its right operand is
// parsed by recursing into unary rather than the next atom.
package parser

import (
	"strconv"

	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	src    span.Source
}

// New creates a new parser from a token slice.
func New(tokens []token.Token, src span.Source) *Parser {
	return &Parser{tokens: tokens, pos: 0, src: src}
}

// Parse parses a single expression spanning the whole token sequence.
// Trailing tokens after a complete expression are a syntax error.
func (p *Parser) Parse() (ast.Expr, *diag.Diagnostic) {
	expr, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	if !p.isAtEnd() {
		tok := p.peek()
		return nil, p.syntaxErr(tok.Span, "expected end of input, got '%s'", tok.Lexeme)
	}
	return expr, nil
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or fails with "expected <what>".
func (p *Parser) expect(kind token.Kind, what string) (token.Token, *diag.Diagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.syntaxErr(p.peek().Span, "expected %s", what)
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

func (p *Parser) syntaxErr(s span.Span, format string, args ...interface{}) *diag.Diagnostic {
	return diag.Errorf(diag.InvalidSyntax, p.src, s, format, args...)
}

// ---- grammar rules ----

// parseExpr parses the top expression rule. The VAR form is dispatched on
// its keyword; otherwise the orExpr alternative is tried. Error selection
// follows the furthest-progress rule: the broader "expected ..." message
// below replaces a failure from orExpr only when that attempt consumed
// zero tokens — a failure that advanced into the input is always the more
// relevant diagnostic and is surfaced unchanged.
func (p *Parser) parseExpr() (ast.Expr, *diag.Diagnostic) {
	if p.check(token.KW_VAR) {
		return p.parseVarAssign()
	}

	start := p.pos
	expr, d := p.parseOrExpr()
	if d != nil {
		if p.pos == start {
			return nil, p.syntaxErr(p.peek().Span,
				"expected 'VAR', 'IF', 'FOR', 'WHILE', 'NOT', int, float, identifier, '+', '-' or '('")
		}
		return nil, d
	}
	return expr, nil
}

// parseVarAssign parses: 'VAR' IDENT '=' expr
func (p *Parser) parseVarAssign() (ast.Expr, *diag.Diagnostic) {
	start := p.advance() // consume 'VAR'

	nameTok, d := p.expect(token.IDENT, "identifier")
	if d != nil {
		return nil, d
	}
	if _, d := p.expect(token.ASSIGN, "'='"); d != nil {
		return nil, d
	}

	value, d := p.parseExpr()
	if d != nil {
		return nil, d
	}

	return &ast.VarAssignExpr{
		ExprBase: exprBase(start.Span.Start, value.GetSpan().End),
		Name:     nameTok.Lexeme,
		Value:    value,
	}, nil
}

// parseOrExpr parses: compExpr (('AND'|'OR') compExpr)*
func (p *Parser) parseOrExpr() (ast.Expr, *diag.Diagnostic) {
	return p.parseBinOp(p.parseCompExpr, token.KW_AND, token.KW_OR)
}

// parseCompExpr parses: 'NOT' compExpr | arith ((EQ|NE|LT|GT|LE|GE) arith)*
// The same zero-progress substitution as parseExpr applies to the
// comparison alternative.
func (p *Parser) parseCompExpr() (ast.Expr, *diag.Diagnostic) {
	if p.check(token.KW_NOT) {
		opTok := p.advance()
		operand, d := p.parseCompExpr()
		if d != nil {
			return nil, d
		}
		return &ast.UnaryExpr{
			ExprBase: exprBase(opTok.Span.Start, operand.GetSpan().End),
			Op:       token.KW_NOT,
			Operand:  operand,
		}, nil
	}

	start := p.pos
	expr, d := p.parseBinOp(p.parseArith,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE)
	if d != nil {
		if p.pos == start {
			return nil, p.syntaxErr(p.peek().Span,
				"expected 'NOT', 'IF', 'FOR', 'WHILE', int, float, identifier, '+', '-' or '('")
		}
		return nil, d
	}
	return expr, nil
}

// parseArith parses: term (('+'|'-') term)*
func (p *Parser) parseArith() (ast.Expr, *diag.Diagnostic) {
	return p.parseBinOp(p.parseTerm, token.PLUS, token.MINUS)
}

// parseTerm parses: unary (('*'|'/') unary)*
func (p *Parser) parseTerm() (ast.Expr, *diag.Diagnostic) {
	return p.parseBinOp(p.parseUnary, token.STAR, token.SLASH)
}

// parseUnary parses: ('+'|'-') unary | power
func (p *Parser) parseUnary() (ast.Expr, *diag.Diagnostic) {
	if p.match(token.PLUS, token.MINUS) {
		opTok := p.advance()
		operand, d := p.parseUnary()
		if d != nil {
			return nil, d
		}
		return &ast.UnaryExpr{
			ExprBase: exprBase(opTok.Span.Start, operand.GetSpan().End),
			Op:       opTok.Kind,
			Operand:  operand,
		}, nil
	}
	return p.parsePower()
}

// parsePower parses: atom ('^' unary)?
// Recursing into unary for the right operand makes '^' right-associative:
// a^b^c parses as a^(b^c).
func (p *Parser) parsePower() (ast.Expr, *diag.Diagnostic) {
	left, d := p.parseAtom()
	if d != nil {
		return nil, d
	}

	if p.check(token.CARET) {
		opTok := p.advance()
		right, d := p.parseUnary()
		if d != nil {
			return nil, d
		}
		return &ast.BinaryExpr{
			ExprBase: exprBase(left.GetSpan().Start, right.GetSpan().End),
			Op:       opTok.Kind,
			Left:     left,
			Right:    right,
		}, nil
	}
	return left, nil
}

// parseAtom parses the leaf rule.
func (p *Parser) parseAtom() (ast.Expr, *diag.Diagnostic) {
	tok := p.peek()

	switch tok.Kind {
	case token.INT, token.FLOAT:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.syntaxErr(tok.Span, "malformed number literal '%s'", tok.Lexeme)
		}
		return &ast.NumberExpr{
			ExprBase: exprBase(tok.Span.Start, tok.Span.End),
			Value:    val,
		}, nil

	case token.IDENT:
		p.advance()
		return &ast.IdentExpr{
			ExprBase: exprBase(tok.Span.Start, tok.Span.End),
			Name:     tok.Lexeme,
		}, nil

	case token.LPAREN:
		p.advance() // consume '('
		expr, d := p.parseExpr()
		if d != nil {
			return nil, d
		}
		if _, d := p.expect(token.RPAREN, "')'"); d != nil {
			return nil, d
		}
		return expr, nil

	case token.KW_IF:
		return p.parseIfExpr()

	case token.KW_FOR:
		return p.parseForExpr()

	case token.KW_WHILE:
		return p.parseWhileExpr()

	default:
		return nil, p.syntaxErr(tok.Span,
			"expected int, float, identifier, '+', '-', '(', 'IF', 'FOR' or 'WHILE'")
	}
}

// parseIfExpr parses: 'IF' expr 'DO' expr ('ELIF' expr 'DO' expr)* ('ELSE' expr)?
func (p *Parser) parseIfExpr() (ast.Expr, *diag.Diagnostic) {
	start := p.advance() // consume 'IF'
	node := &ast.IfExpr{}

	cond, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	if _, d := p.expect(token.KW_DO, "'DO'"); d != nil {
		return nil, d
	}
	body, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	node.Cases = append(node.Cases, ast.IfCase{Cond: cond, Body: body})

	for p.check(token.KW_ELIF) {
		p.advance() // consume 'ELIF'
		cond, d := p.parseExpr()
		if d != nil {
			return nil, d
		}
		if _, d := p.expect(token.KW_DO, "'DO'"); d != nil {
			return nil, d
		}
		body, d := p.parseExpr()
		if d != nil {
			return nil, d
		}
		node.Cases = append(node.Cases, ast.IfCase{Cond: cond, Body: body})
	}

	if p.check(token.KW_ELSE) {
		p.advance() // consume 'ELSE'
		elseExpr, d := p.parseExpr()
		if d != nil {
			return nil, d
		}
		node.Else = elseExpr
	}

	node.ExprBase = exprBase(start.Span.Start, p.prevEnd())
	return node, nil
}

// parseForExpr parses: 'FOR' IDENT '=' expr 'UPTO' expr ('STEP' expr)? 'DO' expr
func (p *Parser) parseForExpr() (ast.Expr, *diag.Diagnostic) {
	start := p.advance() // consume 'FOR'

	nameTok, d := p.expect(token.IDENT, "identifier")
	if d != nil {
		return nil, d
	}
	if _, d := p.expect(token.ASSIGN, "'='"); d != nil {
		return nil, d
	}

	startExpr, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	if _, d := p.expect(token.KW_UPTO, "'UPTO'"); d != nil {
		return nil, d
	}
	endExpr, d := p.parseExpr()
	if d != nil {
		return nil, d
	}

	var stepExpr ast.Expr
	if p.check(token.KW_STEP) {
		p.advance() // consume 'STEP'
		stepExpr, d = p.parseExpr()
		if d != nil {
			return nil, d
		}
	}

	if _, d := p.expect(token.KW_DO, "'DO'"); d != nil {
		return nil, d
	}
	body, d := p.parseExpr()
	if d != nil {
		return nil, d
	}

	return &ast.ForExpr{
		ExprBase: exprBase(start.Span.Start, body.GetSpan().End),
		VarName:  nameTok.Lexeme,
		Start:    startExpr,
		End:      endExpr,
		Step:     stepExpr,
		Body:     body,
	}, nil
}

// parseWhileExpr parses: 'WHILE' expr 'DO' expr
func (p *Parser) parseWhileExpr() (ast.Expr, *diag.Diagnostic) {
	start := p.advance() // consume 'WHILE'

	cond, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	if _, d := p.expect(token.KW_DO, "'DO'"); d != nil {
		return nil, d
	}
	body, d := p.parseExpr()
	if d != nil {
		return nil, d
	}

	return &ast.WhileExpr{
		ExprBase: exprBase(start.Span.Start, body.GetSpan().End),
		Cond:     cond,
		Body:     body,
	}, nil
}

// parseBinOp parses a left-associative chain: operand (op operand)*.
func (p *Parser) parseBinOp(operand func() (ast.Expr, *diag.Diagnostic), ops ...token.Kind) (ast.Expr, *diag.Diagnostic) {
	left, d := operand()
	if d != nil {
		return nil, d
	}

	for p.match(ops...) {
		opTok := p.advance()
		right, d := operand()
		if d != nil {
			return nil, d
		}
		left = &ast.BinaryExpr{
			ExprBase: exprBase(left.GetSpan().Start, right.GetSpan().End),
			Op:       opTok.Kind,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// ---- span helpers ----

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func exprBase(start, end span.Position) ast.ExprBase {
	return ast.ExprBase{Span: span.Span{Start: start, End: end}}
}
