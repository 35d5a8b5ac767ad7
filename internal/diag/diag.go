// Package diag provides the diagnostic types shared by the lexer, parser
// and evaluator, and their text rendering.
package diag

import (
	"fmt"
	"strings"

	"spark-lang/internal/span"
)

// Kind classifies a diagnostic by the pipeline stage that produced it.
type Kind int

const (
	IllegalCharacter  Kind = iota // lexical: unrecognized character
	ExpectedCharacter             // lexical: two-character operator prefix without its suffix
	InvalidSyntax                 // parse
	RuntimeError                  // evaluation: division by zero, undefined variable, bad operand
)

func (k Kind) String() string {
	switch k {
	case IllegalCharacter:
		return "Illegal Character"
	case ExpectedCharacter:
		return "Expected Character"
	case InvalidSyntax:
		return "Invalid Syntax"
	case RuntimeError:
		return "Runtime Error"
	default:
		return "Unknown"
	}
}

// Frame identifies one level of the active evaluation context. Frames form
// a linked list from innermost to outermost; they exist only to render
// runtime tracebacks and play no part in value computation.
type Frame struct {
	Name   string        // display name, e.g. "<program>"
	Call   span.Position // position in the parent frame where this frame was entered
	Parent *Frame
}

// Diagnostic is the closed error record returned by every pipeline stage.
type Diagnostic struct {
	Kind    Kind        `json:"kind"`
	Message string      `json:"message"`
	Span    span.Span   `json:"span"`
	Source  span.Source `json:"source"`
	Frame   *Frame      `json:"-"` // set on runtime diagnostics only
}

// Errorf creates a diagnostic of the given kind at the given span.
func Errorf(kind Kind, src span.Source, s span.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    s,
		Source:  src,
	}
}

// Error makes Diagnostic usable as an error value.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String renders the diagnostic as user-facing text. Runtime diagnostics
// are prefixed with a traceback, oldest frame first.
func (d *Diagnostic) String() string {
	var b strings.Builder

	if d.Kind == RuntimeError && d.Frame != nil {
		b.WriteString(d.traceback())
	} else {
		fmt.Fprintf(&b, "File %s, line %d\n", d.Source.Name, d.Span.Start.Line)
	}

	fmt.Fprintf(&b, "%s: %s", d.Kind, d.Message)

	if excerpt := d.Excerpt(); excerpt != "" {
		b.WriteString("\n\n")
		b.WriteString(excerpt)
	}
	return b.String()
}

// traceback walks the frame chain from the failure site outward, recording
// file, line and frame name per level using each frame's call-site
// position, then prints the collected lines oldest frame first.
func (d *Diagnostic) traceback() string {
	var lines []string
	pos := d.Span.Start
	for f := d.Frame; f != nil; f = f.Parent {
		lines = append(lines, fmt.Sprintf("  File %s, line %d, in %s\n", d.Source.Name, pos.Line, f.Name))
		pos = f.Call
	}

	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(lines[i])
	}
	return b.String()
}

// Excerpt returns the source line covered by the start of the span with
// caret markers underneath, or "" if the span is out of range.
func (d *Diagnostic) Excerpt() string {
	text := d.Source.Text
	start := d.Span.Start.Offset
	if start > len(text) {
		return ""
	}

	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if idx := strings.IndexByte(text[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	line := text[lineStart:lineEnd]

	markers := d.Span.End.Offset - start
	if d.Span.End.Offset > lineEnd || markers < 1 {
		markers = 1
	}
	if start+markers > lineEnd {
		markers = lineEnd - start
		if markers < 1 {
			markers = 1
		}
	}

	return line + "\n" + strings.Repeat(" ", start-lineStart) + strings.Repeat("^", markers)
}
