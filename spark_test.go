package spark_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	spark "spark-lang"
	"spark-lang/internal/diag"
	"spark-lang/internal/runtime"
)

// Variables persist across Run calls on one session; a fresh session
// starts empty.
func TestSessionPersistence(t *testing.T) {
	session := spark.NewSession()

	val, d := session.Run("<test>", "VAR x = 5")
	require.Nil(t, d)
	require.Equal(t, "5", val.String())

	val, d = session.Run("<test>", "x + 1")
	require.Nil(t, d)
	require.Equal(t, "6", val.String())

	fresh := spark.NewSession()
	_, d = fresh.Run("<test>", "x")
	require.NotNil(t, d)
	require.Equal(t, diag.RuntimeError, d.Kind)
	require.Equal(t, "'x' is not defined", d.Message)
}

func TestPackageLevelRunSharesEnvironment(t *testing.T) {
	_, d := spark.Run("<a>", "VAR shared_probe = 41")
	require.Nil(t, d)

	val, d := spark.Run("<b>", "shared_probe + 1")
	require.Nil(t, d)
	require.Equal(t, "42", val.String())
}

// Each stage fails fast: exactly one of (value, diagnostic) is meaningful.
func TestRunStageFailures(t *testing.T) {
	session := spark.NewSession()

	tests := []struct {
		source string
		kind   diag.Kind
	}{
		{"1 @ 2", diag.IllegalCharacter},
		{"!", diag.ExpectedCharacter},
		{"VAR = 5", diag.InvalidSyntax},
		{"missing_var", diag.RuntimeError},
	}
	for _, tt := range tests {
		val, d := session.Run("<test>", tt.source)
		require.Nil(t, val, "source: %q", tt.source)
		require.NotNil(t, d, "source: %q", tt.source)
		require.Equal(t, tt.kind, d.Kind, "source: %q", tt.source)
	}
}

func TestRunReportsSourceName(t *testing.T) {
	session := spark.NewSession()

	_, d := session.Run("calc.sk", "undefined_name")
	require.NotNil(t, d)
	require.Equal(t, "calc.sk", d.Source.Name)
	require.Contains(t, d.String(), "calc.sk")
}

func TestRuntimeDiagnosticRendersTraceback(t *testing.T) {
	session := spark.NewSession()

	_, d := session.Run("<test>", "3/0")
	require.NotNil(t, d)

	rendered := d.String()
	require.Contains(t, rendered, "Traceback (most recent call last):")
	require.Contains(t, rendered, "in <program>")
	require.Contains(t, rendered, "Runtime Error: division by zero")
	require.Contains(t, rendered, "3/0\n  ^")
}

func TestRunNullResult(t *testing.T) {
	session := spark.NewSession()

	val, d := session.Run("<test>", "WHILE 0 DO 1")
	require.Nil(t, d)
	require.IsType(t, runtime.Null{}, val)
}

func TestSessionStepHook(t *testing.T) {
	session := spark.NewSession()
	calls := 0
	session.SetStepHook(func() error {
		calls++
		return nil
	})

	_, d := session.Run("<test>", "FOR i = 0 UPTO 5 DO i")
	require.Nil(t, d)
	require.Equal(t, 5, calls)
}
