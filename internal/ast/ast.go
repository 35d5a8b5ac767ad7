// Package ast defines the abstract syntax tree for spark-lang.
//
// The language is expression-oriented: there are no statements, so Expr is
// the single node interface. Every node carries a span equal to the union
// of its children's spans, used only for diagnostics.
package ast

import (
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// Expr is the interface implemented by all AST nodes.
type Expr interface {
	exprNode()
	GetSpan() span.Span
}

// ExprBase provides the common Span field for all AST nodes.
type ExprBase struct {
	Span span.Span
}

func (e ExprBase) exprNode()          {}
func (e ExprBase) GetSpan() span.Span { return e.Span }

// NumberExpr represents an integer or float literal. Both forms share one
// numeric representation; they differ only at the token level.
type NumberExpr struct {
	ExprBase
	Value float64
}

// IdentExpr represents a variable reference.
type IdentExpr struct {
	ExprBase
	Name string
}

// VarAssignExpr represents 'VAR' IDENT '=' expr. Assignment is itself an
// expression and may appear anywhere an expression is expected.
type VarAssignExpr struct {
	ExprBase
	Name  string
	Value Expr
}

// UnaryExpr represents a unary operation: -x, +x, NOT x.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// BinaryExpr represents a binary operation: a + b, x == y, a AND b.
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// IfCase is one (condition, body) pair of a conditional expression.
type IfCase struct {
	Cond Expr
	Body Expr
}

// IfExpr represents 'IF' expr 'DO' expr ('ELIF' expr 'DO' expr)* ('ELSE' expr)?.
// Cases are ordered; Else may be nil.
type IfExpr struct {
	ExprBase
	Cases []IfCase
	Else  Expr
}

// ForExpr represents 'FOR' IDENT '=' expr 'UPTO' expr ('STEP' expr)? 'DO' expr.
// Step may be nil (defaults to 1 at evaluation time).
type ForExpr struct {
	ExprBase
	VarName string
	Start   Expr
	End     Expr
	Step    Expr
	Body    Expr
}

// WhileExpr represents 'WHILE' expr 'DO' expr.
type WhileExpr struct {
	ExprBase
	Cond Expr
	Body Expr
}
