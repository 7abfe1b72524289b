package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/lexer"
)

func parseSrc(t *testing.T, src string) (*ast.Program, []Diagnostic, bool) {
	t.Helper()
	toks, lexDiags := lexer.Tokenize([]byte(src))
	require.Empty(t, lexDiags)
	return ParseProgram(toks)
}

func TestParseVarDeclAndExpr(t *testing.T) {
	prog, diags, hadError := parseSrc(t, `int x = 1 + 2 * 3;`)
	require.False(t, hadError)
	require.Empty(t, diags)
	require.Len(t, prog.Stmts, 1)

	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name)

	bin, ok := vd.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, bin.Op)
}

func TestParseFunctionDecl(t *testing.T) {
	prog, diags, hadError := parseSrc(t, `
fx power(int a, int b) {
  int result = 1;
  for (i, 0, b) { result = result * a; }
  return result;
}
`)
	require.False(t, hadError)
	require.Empty(t, diags)
	require.Len(t, prog.Stmts, 1)

	fd, ok := prog.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "power", fd.Name)
	require.Len(t, fd.Params, 2)
	assert.Equal(t, "a", fd.Params[0].Name)
}

func TestParseIfElifElse(t *testing.T) {
	prog, diags, hadError := parseSrc(t, `
if (a == 1) { print(1); } elif (a == 2) { print(2); } else { print(3); }
`)
	require.False(t, hadError)
	require.Empty(t, diags)

	ifStmt, ok := prog.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.Elifs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, diags, hadError := parseSrc(t, `1 + 2 = 3;`)
	require.True(t, hadError)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "Invalid assignment target")
}

func TestParseRecoversAfterError(t *testing.T) {
	// Missing ';' after the first statement should be recorded and parsing
	// should still recover and parse the second statement.
	_, diags, hadError := parseSrc(t, `int x = 1 print(x);`)
	require.True(t, hadError)
	require.NotEmpty(t, diags)
}

func TestParseListLiteralAndAccess(t *testing.T) {
	prog, diags, hadError := parseSrc(t, `list<int> xs = [1, 2, 3]; int y = xs[0];`)
	require.False(t, hadError)
	require.Empty(t, diags)
	require.Len(t, prog.Stmts, 2)

	vd := prog.Stmts[0].(*ast.VarDecl)
	lit, ok := vd.Init.(*ast.ListLit)
	require.True(t, ok)
	assert.Len(t, lit.Elements, 3)
}

func TestParseMethodCallChain(t *testing.T) {
	prog, diags, hadError := parseSrc(t, `int y = Math.power(2, 10);`)
	require.False(t, hadError)
	require.Empty(t, diags)

	vd := prog.Stmts[0].(*ast.VarDecl)
	call, ok := vd.Init.(*ast.CallExpr)
	require.True(t, ok)
	member, ok := call.Callee.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "power", member.Member)
}
