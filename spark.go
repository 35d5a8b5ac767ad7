// Package spark exposes the entry point for evaluating spark-lang source
// text: scan, parse, evaluate, each stage short-circuiting on its first
// diagnostic.
package spark

import (
	"spark-lang/internal/diag"
	"spark-lang/internal/lexer"
	"spark-lang/internal/parser"
	"spark-lang/internal/runtime"
	"spark-lang/internal/span"
)

// Session owns one interpreter and therefore one global environment.
// Variables defined by one Run call are visible to every later Run call on
// the same session; that persistence is the contract, not an accident.
// Sessions are not safe for concurrent use — callers needing parallel
// evaluation create one session per goroutine.
type Session struct {
	interp *runtime.Interpreter
}

// NewSession creates a session with a fresh, empty global environment.
func NewSession() *Session {
	return &Session{interp: runtime.NewInterpreter()}
}

// Run scans, parses and evaluates one source text. Exactly one of the
// returned pair is meaningful: the diagnostic is non-nil iff any stage
// failed, and the value is non-nil only on full success. The value may be
// runtime.Null for expressions that evaluate to nothing (bare loops,
// unmatched conditionals without ELSE).
func (s *Session) Run(sourceName, sourceText string) (runtime.Value, *diag.Diagnostic) {
	src := span.Source{Name: sourceName, Text: sourceText}

	l := lexer.New(sourceText, sourceName)
	tokens, d := l.Tokenize()
	if d != nil {
		return nil, d
	}

	p := parser.New(tokens, src)
	root, d := p.Parse()
	if d != nil {
		return nil, d
	}

	return s.interp.Eval(root, src)
}

// Env returns the session's global environment (useful for REPL inspection).
func (s *Session) Env() *runtime.Environment {
	return s.interp.Global()
}

// SetStepHook installs a cooperative per-iteration cancellation check on
// the session's interpreter. See runtime.StepFunc.
func (s *Session) SetStepHook(fn runtime.StepFunc) {
	s.interp.SetStepHook(fn)
}

// defaultSession backs the package-level Run: one global environment per
// process, shared across sequential calls.
var defaultSession = NewSession()

// Run evaluates source text against the process-wide default session.
func Run(sourceName, sourceText string) (runtime.Value, *diag.Diagnostic) {
	return defaultSession.Run(sourceName, sourceText)
}
