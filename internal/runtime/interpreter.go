package runtime

import (
	"math"

	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// StepFunc is an optional host-injected check invoked before every loop
// iteration. Returning a non-nil error aborts evaluation with a runtime
// diagnostic; a nil hook leaves loops unbounded.
type StepFunc func() error

// Interpreter walks the AST and evaluates it against a persistent global
// environment. It is single-threaded: one evaluation runs at a time.
type Interpreter struct {
	global *Environment
	step   StepFunc
	src    span.Source // source of the program currently being evaluated
}

// NewInterpreter creates an interpreter owning a fresh global environment.
// The environment lives as long as the interpreter and is shared across
// every Eval call, which is what makes variables persist between runs.
func NewInterpreter() *Interpreter {
	return &Interpreter{global: NewEnvironment(nil)}
}

// Global returns the interpreter's global environment.
func (i *Interpreter) Global() *Environment {
	return i.global
}

// SetStepHook installs a cooperative cancellation check run before each
// loop iteration. Pass nil to restore the default unbounded behavior.
func (i *Interpreter) SetStepHook(fn StepFunc) {
	i.step = fn
}

// Eval evaluates a parsed expression against the global environment.
func (i *Interpreter) Eval(root ast.Expr, src span.Source) (Value, *diag.Diagnostic) {
	i.src = src
	frame := &diag.Frame{Name: "<program>"}
	return i.eval(root, i.global, frame)
}

// ---- node dispatch ----

func (i *Interpreter) eval(node ast.Expr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	switch n := node.(type) {
	case *ast.NumberExpr:
		return Number{Val: n.Value, Span: n.GetSpan(), Env: env}, nil
	case *ast.IdentExpr:
		return i.evalIdent(n, env, ctx)
	case *ast.VarAssignExpr:
		return i.evalVarAssign(n, env, ctx)
	case *ast.UnaryExpr:
		return i.evalUnary(n, env, ctx)
	case *ast.BinaryExpr:
		return i.evalBinary(n, env, ctx)
	case *ast.IfExpr:
		return i.evalIf(n, env, ctx)
	case *ast.ForExpr:
		return i.evalFor(n, env, ctx)
	case *ast.WhileExpr:
		return i.evalWhile(n, env, ctx)
	default:
		return nil, i.runtimeErr(node.GetSpan(), ctx, "unhandled expression type: %T", node)
	}
}

// evalIdent resolves a variable reference through the scope chain. The
// stored value is returned as a copy rebound to the reference's span and
// environment (copy-on-read), so mutating the result never touches the
// stored binding.
func (i *Interpreter) evalIdent(e *ast.IdentExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	val, ok := env.Get(e.Name)
	if !ok {
		return nil, i.runtimeErr(e.GetSpan(), ctx, "'%s' is not defined", e.Name)
	}
	if n, isNum := val.(Number); isNum {
		n.Span = e.GetSpan()
		n.Env = env
		return n, nil
	}
	return val, nil
}

// evalVarAssign evaluates the value first, then binds it in the local
// environment (never a parent), and yields the value.
func (i *Interpreter) evalVarAssign(e *ast.VarAssignExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	val, d := i.eval(e.Value, env, ctx)
	if d != nil {
		return nil, d
	}
	env.Define(e.Name, val)
	return val, nil
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	operand, d := i.eval(e.Operand, env, ctx)
	if d != nil {
		return nil, d
	}

	switch e.Op {
	case token.KW_NOT:
		// Truthiness complement: nonzero -> 0, zero (and null) -> 1.
		return boolNumber(!IsTruthy(operand), e.GetSpan(), env), nil
	case token.MINUS:
		n, ok := operand.(Number)
		if !ok {
			return nil, i.runtimeErr(e.Operand.GetSpan(), ctx, "'%s' is not a number", operand.TypeName())
		}
		return Number{Val: n.Val * -1, Span: e.GetSpan(), Env: env}, nil
	case token.PLUS:
		n, ok := operand.(Number)
		if !ok {
			return nil, i.runtimeErr(e.Operand.GetSpan(), ctx, "'%s' is not a number", operand.TypeName())
		}
		return Number{Val: n.Val, Span: e.GetSpan(), Env: env}, nil
	default:
		return nil, i.runtimeErr(e.GetSpan(), ctx, "unknown unary operator: %s", e.Op)
	}
}

// evalBinary evaluates left, then right, then dispatches on the operator.
// Both sides are always evaluated: AND and OR do not short-circuit, which
// is observable when the right operand contains an assignment.
func (i *Interpreter) evalBinary(e *ast.BinaryExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	left, d := i.eval(e.Left, env, ctx)
	if d != nil {
		return nil, d
	}
	right, d := i.eval(e.Right, env, ctx)
	if d != nil {
		return nil, d
	}

	if e.Op == token.KW_AND {
		return boolNumber(IsTruthy(left) && IsTruthy(right), e.GetSpan(), env), nil
	}
	if e.Op == token.KW_OR {
		return boolNumber(IsTruthy(left) || IsTruthy(right), e.GetSpan(), env), nil
	}

	ln, ok := left.(Number)
	if !ok {
		return nil, i.runtimeErr(e.Left.GetSpan(), ctx, "'%s' is not a number", left.TypeName())
	}
	rn, ok := right.(Number)
	if !ok {
		return nil, i.runtimeErr(e.Right.GetSpan(), ctx, "'%s' is not a number", right.TypeName())
	}

	switch e.Op {
	case token.PLUS:
		return Number{Val: ln.Val + rn.Val, Span: e.GetSpan(), Env: env}, nil
	case token.MINUS:
		return Number{Val: ln.Val - rn.Val, Span: e.GetSpan(), Env: env}, nil
	case token.STAR:
		return Number{Val: ln.Val * rn.Val, Span: e.GetSpan(), Env: env}, nil
	case token.SLASH:
		if rn.Val == 0 {
			return nil, i.runtimeErr(e.Right.GetSpan(), ctx, "division by zero")
		}
		return Number{Val: ln.Val / rn.Val, Span: e.GetSpan(), Env: env}, nil
	case token.CARET:
		return Number{Val: math.Pow(ln.Val, rn.Val), Span: e.GetSpan(), Env: env}, nil
	case token.EQ:
		return boolNumber(ln.Val == rn.Val, e.GetSpan(), env), nil
	case token.NEQ:
		return boolNumber(ln.Val != rn.Val, e.GetSpan(), env), nil
	case token.LT:
		return boolNumber(ln.Val < rn.Val, e.GetSpan(), env), nil
	case token.GT:
		return boolNumber(ln.Val > rn.Val, e.GetSpan(), env), nil
	case token.LTE:
		return boolNumber(ln.Val <= rn.Val, e.GetSpan(), env), nil
	case token.GTE:
		return boolNumber(ln.Val >= rn.Val, e.GetSpan(), env), nil
	default:
		return nil, i.runtimeErr(e.GetSpan(), ctx, "unknown binary operator: %s", e.Op)
	}
}

// evalIf evaluates the ordered cases top to bottom and returns the body of
// the first truthy condition. With no match and no ELSE, the result is
// Null, not an error.
func (i *Interpreter) evalIf(e *ast.IfExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	for _, c := range e.Cases {
		cond, d := i.eval(c.Cond, env, ctx)
		if d != nil {
			return nil, d
		}
		if IsTruthy(cond) {
			return i.eval(c.Body, env, ctx)
		}
	}
	if e.Else != nil {
		return i.eval(e.Else, env, ctx)
	}
	return Null{}, nil
}

// evalFor evaluates start, end and step once before iterating. The end
// bound is exclusive in both directions: the loop runs while cur < end for
// a non-negative step, or cur > end for a negative one. Each iteration
// rebinds the loop variable in the ambient environment and discards the
// body's value. There is no iteration cap unless the host installed a
// step hook.
func (i *Interpreter) evalFor(e *ast.ForExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	startN, d := i.evalNumber(e.Start, env, ctx)
	if d != nil {
		return nil, d
	}
	endN, d := i.evalNumber(e.End, env, ctx)
	if d != nil {
		return nil, d
	}
	step := 1.0
	if e.Step != nil {
		stepN, d := i.evalNumber(e.Step, env, ctx)
		if d != nil {
			return nil, d
		}
		step = stepN.Val
	}

	for cur := startN.Val; (step >= 0 && cur < endN.Val) || (step < 0 && cur > endN.Val); cur += step {
		if d := i.checkStep(e.GetSpan(), ctx); d != nil {
			return nil, d
		}
		env.Define(e.VarName, Number{Val: cur, Span: e.GetSpan(), Env: env})
		if _, d := i.eval(e.Body, env, ctx); d != nil {
			return nil, d
		}
	}
	return Null{}, nil
}

// evalWhile re-evaluates the condition before every iteration and stops on
// the first falsy result, discarding the body's value each time.
func (i *Interpreter) evalWhile(e *ast.WhileExpr, env *Environment, ctx *diag.Frame) (Value, *diag.Diagnostic) {
	for {
		if d := i.checkStep(e.GetSpan(), ctx); d != nil {
			return nil, d
		}
		cond, d := i.eval(e.Cond, env, ctx)
		if d != nil {
			return nil, d
		}
		if !IsTruthy(cond) {
			return Null{}, nil
		}
		if _, d := i.eval(e.Body, env, ctx); d != nil {
			return nil, d
		}
	}
}

// ---- helpers ----

// evalNumber evaluates an expression that must yield a Number.
func (i *Interpreter) evalNumber(node ast.Expr, env *Environment, ctx *diag.Frame) (Number, *diag.Diagnostic) {
	val, d := i.eval(node, env, ctx)
	if d != nil {
		return Number{}, d
	}
	n, ok := val.(Number)
	if !ok {
		return Number{}, i.runtimeErr(node.GetSpan(), ctx, "'%s' is not a number", val.TypeName())
	}
	return n, nil
}

func (i *Interpreter) checkStep(s span.Span, ctx *diag.Frame) *diag.Diagnostic {
	if i.step == nil {
		return nil
	}
	if err := i.step(); err != nil {
		return i.runtimeErr(s, ctx, "evaluation aborted: %v", err)
	}
	return nil
}

func (i *Interpreter) runtimeErr(s span.Span, ctx *diag.Frame, format string, args ...interface{}) *diag.Diagnostic {
	d := diag.Errorf(diag.RuntimeError, i.src, s, format, args...)
	d.Frame = ctx
	return d
}
