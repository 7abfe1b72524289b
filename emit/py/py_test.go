package py

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hlc/compiler/analyze"
	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/lexer"
	"github.com/slowlang/hlc/compiler/parse"
)

func mustAnalyze(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexDiags := lexer.Tokenize([]byte(src))
	require.Empty(t, lexDiags)
	prog, parseDiags, hadError := parse.ParseProgram(toks)
	require.False(t, hadError, "%v", parseDiags)
	diags, ok := analyze.Analyze(prog)
	require.True(t, ok, "%v", diags)
	return prog
}

func TestEmitSimpleProgram(t *testing.T) {
	prog := mustAnalyze(t, `int x = 1 + 2; print(x);`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "x = (1 + 2)")
	assert.Contains(t, src, "print(x)")
}

func TestEmitFunctionAndFor(t *testing.T) {
	prog := mustAnalyze(t, `
fx power(int a, int b) { int result = 1; for (i, 0, b) { result = result * a; } return result; }
int x = power(4, 2);
`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "def power(a, b):")
	assert.Contains(t, src, "for i in __hl_range(0, b, None):")
	assert.Contains(t, src, "return result")
}

func TestEmitIntDivisionFloors(t *testing.T) {
	prog := mustAnalyze(t, `int count = 2; int r = 10 / count;`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	assert.Contains(t, string(out), "r = (10 // count)")
}

func TestEmitFloatDivisionIsTrueDivision(t *testing.T) {
	prog := mustAnalyze(t, `float r = 10.0 / 3;`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	assert.Contains(t, string(out), "r = (10.0 / 3)")
}

func TestEmitAssignStatementHasNoWalrus(t *testing.T) {
	prog := mustAnalyze(t, `int result = 1; int a = 2; result = result * a;`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "result = (result * a)")
	assert.NotContains(t, src, ":=")
}

func TestEmitMathDispatch(t *testing.T) {
	prog := mustAnalyze(t, `int y = Math.power(2, 10); float z = Math.sqrt(2);`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "__hl_power(2, 10)")
	assert.Contains(t, src, "math.sqrt(2)")
}

func TestEmitIntMethods(t *testing.T) {
	prog := mustAnalyze(t, `int n = 5; int f = n.fact(); bool e = n.isEven(); string b = n.toBinary();`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "__hl_fact(n)")
	assert.Contains(t, src, "__hl_is_even(n)")
	assert.Contains(t, src, "__hl_to_binary(n)")
}
