package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"spark-lang/internal/diag"
	"spark-lang/internal/token"
)

// kindsOf extracts just the token kinds for shape comparisons.
func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func tokenizeOK(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, d := New(source, "test.sk").Tokenize()
	require.Nil(t, d, "unexpected diagnostic: %v", d)
	return tokens
}

func TestTokenizeSimple(t *testing.T) {
	tokens := tokenizeOK(t, `VAR x = 1 + 2`)

	want := []token.Kind{
		token.KW_VAR, token.IDENT, token.ASSIGN,
		token.INT, token.PLUS, token.INT, token.EOF,
	}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := tokenizeOK(t, `VAR AND NOT OR IF DO ELIF ELSE FOR UPTO STEP WHILE`)

	want := []token.Kind{
		token.KW_VAR, token.KW_AND, token.KW_NOT, token.KW_OR,
		token.KW_IF, token.KW_DO, token.KW_ELIF, token.KW_ELSE,
		token.KW_FOR, token.KW_UPTO, token.KW_STEP, token.KW_WHILE,
		token.EOF,
	}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	tokens := tokenizeOK(t, `var While FOr`)

	want := []token.Kind{token.IDENT, token.IDENT, token.IDENT, token.EOF}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens := tokenizeOK(t, `= == != < <= > >= + - * / ^ ( )`)

	want := []token.Kind{
		token.ASSIGN, token.EQ, token.NEQ,
		token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.CARET,
		token.LPAREN, token.RPAREN,
		token.EOF,
	}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeFloat(t *testing.T) {
	tokens := tokenizeOK(t, `12.5`)

	require.Len(t, tokens, 2)
	require.Equal(t, token.FLOAT, tokens[0].Kind)
	require.Equal(t, "12.5", tokens[0].Lexeme)
	require.Equal(t, token.EOF, tokens[1].Kind)
}

func TestTokenizeInt(t *testing.T) {
	tokens := tokenizeOK(t, `123 0 42`)

	require.Equal(t, token.INT, tokens[0].Kind)
	require.Equal(t, "123", tokens[0].Lexeme)
	require.Equal(t, token.INT, tokens[1].Kind)
	require.Equal(t, token.INT, tokens[2].Kind)
}

// A second '.' terminates the literal without being consumed; the bare '.'
// then fails as an illegal character on the next scan step.
func TestTokenizeDoubleDot(t *testing.T) {
	tokens, d := New("1..2", "test.sk").Tokenize()

	require.Nil(t, tokens, "tokens must be discarded on a lexical error")
	require.NotNil(t, d)
	require.Equal(t, diag.IllegalCharacter, d.Kind)
	require.Equal(t, "'.'", d.Message)
	require.Equal(t, 2, d.Span.Start.Offset, "diagnostic must point at the second '.'")
}

func TestTokenizeTrailingDot(t *testing.T) {
	tokens := tokenizeOK(t, `1.`)

	require.Equal(t, token.FLOAT, tokens[0].Kind)
	require.Equal(t, "1.", tokens[0].Lexeme)
}

func TestBangRequiresEquals(t *testing.T) {
	_, d := New("!", "test.sk").Tokenize()

	require.NotNil(t, d)
	require.Equal(t, diag.ExpectedCharacter, d.Kind)
	require.Equal(t, "'=' (after '!')", d.Message)

	tokens := tokenizeOK(t, `1 != 2`)
	require.Equal(t, token.NEQ, tokens[1].Kind)
}

func TestIllegalCharacter(t *testing.T) {
	_, d := New("3 + @", "test.sk").Tokenize()

	require.NotNil(t, d)
	require.Equal(t, diag.IllegalCharacter, d.Kind)
	require.Equal(t, "'@'", d.Message)
	require.Equal(t, 4, d.Span.Start.Offset)
}

// Newlines are not whitespace: they must be explicitly classified, and the
// scanner classifies them as illegal.
func TestNewlineIsIllegal(t *testing.T) {
	_, d := New("1\n2", "test.sk").Tokenize()

	require.NotNil(t, d)
	require.Equal(t, diag.IllegalCharacter, d.Kind)
	require.Equal(t, 1, d.Span.Start.Offset)
}

func TestTokenizeEmpty(t *testing.T) {
	tokens := tokenizeOK(t, "")

	require.Len(t, tokens, 1)
	require.Equal(t, token.EOF, tokens[0].Kind)
}

func TestTokenizePositions(t *testing.T) {
	tokens := tokenizeOK(t, "VAR x = 1")

	// "VAR" starts at line 1, col 1
	require.Equal(t, 1, tokens[0].Span.Start.Line)
	require.Equal(t, 1, tokens[0].Span.Start.Column)
	// "x" starts at line 1, col 5
	require.Equal(t, 1, tokens[1].Span.Start.Line)
	require.Equal(t, 5, tokens[1].Span.Start.Column)
	// half-open spans: "VAR" covers [0, 3)
	require.Equal(t, 0, tokens[0].Span.Start.Offset)
	require.Equal(t, 3, tokens[0].Span.End.Offset)
}

func TestIdentifierWithUnderscoreAndDigits(t *testing.T) {
	tokens := tokenizeOK(t, `loop_var2`)

	require.Equal(t, token.IDENT, tokens[0].Kind)
	require.Equal(t, "loop_var2", tokens[0].Lexeme)
}
