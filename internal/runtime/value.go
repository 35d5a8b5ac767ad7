// Package runtime implements the evaluator and runtime value system for spark-lang.
package runtime

import (
	"strconv"

	"spark-lang/internal/span"
)

// Value is the interface for all runtime values.
type Value interface {
	TypeName() string
	String() string
}

// Number is the single numeric value type. Integer and float literals both
// produce one: the representation is uniformly float64. Span and Env
// annotate where and in which scope the value was produced; they exist
// only to attribute runtime diagnostics and are not part of equality.
type Number struct {
	Val  float64
	Span span.Span
	Env  *Environment
}

func (v Number) TypeName() string { return "number" }

// String renders the shortest representation: integral values print
// without a fractional part, so 5.0 prints as "5".
func (v Number) String() string {
	return strconv.FormatFloat(v.Val, 'g', -1, 64)
}

// Null is the explicit "no value" result of bare loops and of conditionals
// where no case matched and there is no ELSE. It is a result, not an error.
type Null struct{}

func (v Null) TypeName() string { return "null" }
func (v Null) String() string   { return "null" }

// IsTruthy returns the truthiness of a value: any nonzero Number is true,
// zero and Null are false.
func IsTruthy(v Value) bool {
	n, ok := v.(Number)
	return ok && n.Val != 0
}

// boolNumber converts a comparison result to the 1/0 numeric convention.
func boolNumber(b bool, s span.Span, env *Environment) Number {
	if b {
		return Number{Val: 1, Span: s, Env: env}
	}
	return Number{Val: 0, Span: s, Env: env}
}
