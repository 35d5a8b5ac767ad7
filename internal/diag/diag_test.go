package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spark-lang/internal/span"
)

func srcOf(name, text string) span.Source {
	return span.Source{Name: name, Text: text}
}

func spanAt(startOff, endOff, line, startCol, endCol int) span.Span {
	return span.Span{
		Start: span.Position{Offset: startOff, Line: line, Column: startCol},
		End:   span.Position{Offset: endOff, Line: line, Column: endCol},
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Illegal Character", IllegalCharacter.String())
	require.Equal(t, "Expected Character", ExpectedCharacter.String())
	require.Equal(t, "Invalid Syntax", InvalidSyntax.String())
	require.Equal(t, "Runtime Error", RuntimeError.String())
}

func TestStringWithoutFrame(t *testing.T) {
	d := Errorf(IllegalCharacter, srcOf("test.sk", "3 + @"), spanAt(4, 5, 1, 5, 6), "'@'")

	got := d.String()
	require.Contains(t, got, "File test.sk, line 1")
	require.Contains(t, got, "Illegal Character: '@'")
	require.Contains(t, got, "3 + @\n    ^")
}

func TestStringRuntimeTraceback(t *testing.T) {
	d := Errorf(RuntimeError, srcOf("test.sk", "3/0"), spanAt(2, 3, 1, 3, 4), "division by zero")
	d.Frame = &Frame{Name: "<program>"}

	got := d.String()
	require.Contains(t, got, "Traceback (most recent call last):")
	require.Contains(t, got, "File test.sk, line 1, in <program>")
	require.Contains(t, got, "Runtime Error: division by zero")
	require.Contains(t, got, "3/0\n  ^")
}

// The traceback prints the oldest frame first, using each frame's call-site
// position for the enclosing level.
func TestTracebackFrameOrder(t *testing.T) {
	d := Errorf(RuntimeError, srcOf("test.sk", "1/0"), spanAt(2, 3, 1, 3, 4), "division by zero")
	outer := &Frame{Name: "<program>"}
	d.Frame = &Frame{
		Name:   "<loop>",
		Call:   span.Position{Offset: 0, Line: 1, Column: 1},
		Parent: outer,
	}

	got := d.String()
	programAt := strings.Index(got, "in <program>")
	loopAt := strings.Index(got, "in <loop>")
	require.True(t, programAt >= 0 && loopAt >= 0, "both frames must be rendered:\n%s", got)
	require.Less(t, programAt, loopAt, "oldest frame must come first:\n%s", got)
}

func TestExcerptCaretWidth(t *testing.T) {
	// "VAR" covers three characters, so three carets.
	d := Errorf(InvalidSyntax, srcOf("test.sk", "1 + VAR"), spanAt(4, 7, 1, 5, 8), "unexpected 'VAR'")

	require.Equal(t, "1 + VAR\n    ^^^", d.Excerpt())
}

func TestExcerptAtEndOfInput(t *testing.T) {
	// Zero-width span at EOF still produces a single caret.
	d := Errorf(InvalidSyntax, srcOf("test.sk", "(1 + 2"), spanAt(6, 6, 1, 7, 7), "expected ')'")

	require.Equal(t, "(1 + 2\n      ^", d.Excerpt())
}

func TestExcerptPicksCoveredLine(t *testing.T) {
	text := "1 + 1\n2/0\n3 * 3"
	d := Errorf(RuntimeError, srcOf("test.sk", text), spanAt(8, 9, 2, 3, 4), "division by zero")

	require.Equal(t, "2/0\n  ^", d.Excerpt())
}

func TestErrorInterface(t *testing.T) {
	d := Errorf(InvalidSyntax, srcOf("test.sk", "VAR"), spanAt(3, 3, 1, 4, 4), "expected identifier")

	var err error = d
	require.Equal(t, d.String(), err.Error())
}
