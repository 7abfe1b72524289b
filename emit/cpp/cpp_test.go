package cpp

import (
	"strings"
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

func TestEmitVarDeclAndPrint(t *testing.T) {
	prog := mustAnalyze(t, `int x = 1 + 2; print(x);`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "long long x = (1 + 2);")
	assert.Contains(t, src, "std::cout << x << std::endl;")
	assert.Contains(t, src, "int main() {")
}

func TestEmitFunctionBeforeMain(t *testing.T) {
	prog := mustAnalyze(t, `
fx power(int a, int b) { int result = 1; for (i, 0, b) { result = result * a; } return result; }
int x = power(4, 2);
`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "long long power(long long a, long long b) {")
	assert.Contains(t, src, "int main() {")
	assert.Less(t, strings.Index(src, "long long power("), strings.Index(src, "int main() {"))
}

func TestEmitListType(t *testing.T) {
	prog := mustAnalyze(t, `list<int> xs = [1, 2, 3];`)

	out, err := New().Emit(prog)
	require.NoError(t, err)

	assert.Contains(t, string(out), "std::vector<long long> xs")
}
