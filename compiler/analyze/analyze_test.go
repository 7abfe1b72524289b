package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/lexer"
	"github.com/slowlang/hlc/compiler/parse"
	"github.com/slowlang/hlc/compiler/tp"
)

func analyzeSrc(t *testing.T, src string) (*ast.Program, []string) {
	t.Helper()
	toks, lexDiags := lexer.Tokenize([]byte(src))
	require.Empty(t, lexDiags)
	prog, parseDiags, hadError := parse.ParseProgram(toks)
	require.False(t, hadError, "parse diags: %v", parseDiags)
	diags, _ := Analyze(prog)
	return prog, diags
}

// S1 — power function.
func TestPowerFunctionInfersIntReturn(t *testing.T) {
	prog, diags := analyzeSrc(t, `
fx power(int a, int b) { int result = 1; for (i, 0, b) { result = result * a; } return result; }
int x = power(4, 2);
print(x);
`)
	require.Empty(t, diags)

	fd := prog.Stmts[0].(*ast.FuncDecl)
	assert.Equal(t, tp.Int, fd.ResolvedReturn.Kind)

	vd := prog.Stmts[1].(*ast.VarDecl)
	assert.Equal(t, tp.Int, vd.Init.TypeOf().Kind)
}

// S2 — division by variable.
func TestDivisionByVariable(t *testing.T) {
	_, diags := analyzeSrc(t, `int count = 2; int r = 10 / count; print(r);`)
	assert.Empty(t, diags)
}

// S3 — const reassignment.
func TestConstReassignment(t *testing.T) {
	_, diags := analyzeSrc(t, `const int k = 3; k = 4;`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Error: Cannot reassign to constant variable: k", diags[0])
}

// S4 — use before init.
func TestUseBeforeInit(t *testing.T) {
	_, diags := analyzeSrc(t, `int a; print(a);`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Error: Variable 'a' used before initialization.", diags[0])
}

// S5 — loop control outside loop.
func TestEndloopOutsideLoop(t *testing.T) {
	_, diags := analyzeSrc(t, `endloop;`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Error: `endloop` can only be used within a loop.", diags[0])
}

// S6 — Math dispatch.
func TestMathDispatch(t *testing.T) {
	prog, diags := analyzeSrc(t, `int y = Math.power(2, 10); float z = Math.sqrt(2);`)
	require.Empty(t, diags)

	y := prog.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, tp.Int, y.Init.TypeOf().Kind)

	z := prog.Stmts[1].(*ast.VarDecl)
	assert.Equal(t, tp.Float, z.Init.TypeOf().Kind)
}

// S7 — mixed-type list.
func TestMixedTypeList(t *testing.T) {
	_, diags := analyzeSrc(t, `list<int> xs = [1, "a"];`)
	assert.NotEmpty(t, diags)
}

func TestForStepMustBePositiveLiteral(t *testing.T) {
	_, diags := analyzeSrc(t, `for (i, 5, 1) { print(i); }`)
	assert.Empty(t, diags)

	_, diags = analyzeSrc(t, `for (i, 1, 5, 0) { print(i); }`)
	assert.NotEmpty(t, diags)
}

func TestConstWithoutInitializerRejected(t *testing.T) {
	_, diags := analyzeSrc(t, `const int x;`)
	assert.NotEmpty(t, diags)
}

func TestReservedNameMath(t *testing.T) {
	_, diags := analyzeSrc(t, `int Math = 1;`)
	assert.NotEmpty(t, diags)
}

func TestIntFactIsEvenToBinary(t *testing.T) {
	prog, diags := analyzeSrc(t, `
int n = 5;
int f = n.fact();
bool e = n.isEven();
string b = n.toBinary();
`)
	require.Empty(t, diags)

	f := prog.Stmts[1].(*ast.VarDecl)
	assert.Equal(t, tp.Int, f.Init.TypeOf().Kind)
	e := prog.Stmts[2].(*ast.VarDecl)
	assert.Equal(t, tp.Bool, e.Init.TypeOf().Kind)
	b := prog.Stmts[3].(*ast.VarDecl)
	assert.Equal(t, tp.String, b.Init.TypeOf().Kind)
}

func TestReturnTypeMismatchAcrossReturns(t *testing.T) {
	_, diags := analyzeSrc(t, `
fx f() { return 1; return "a"; }
`)
	assert.NotEmpty(t, diags)
}

func TestUndefinedFunctionCall(t *testing.T) {
	_, diags := analyzeSrc(t, `int x = nope(1);`)
	assert.NotEmpty(t, diags)
}

func TestListAppendTypeMismatch(t *testing.T) {
	_, diags := analyzeSrc(t, `list<int> xs = [1, 2]; xs.append("a");`)
	assert.NotEmpty(t, diags)
}

func TestDuplicateParameterNameRejected(t *testing.T) {
	_, diags := analyzeSrc(t, `fx f(int a, int a) { }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Error: Duplicate parameter name in function 'f': 'a'.", diags[0])
}

func TestForIteratorReservedNameMath(t *testing.T) {
	_, diags := analyzeSrc(t, `for (Math, 0, 5) { print(Math); }`)
	require.NotEmpty(t, diags)
	assert.Equal(t, "Error: Loop iterator cannot be named 'Math' as it is reserved.", diags[0])
}

func TestCatchReservedNameMath(t *testing.T) {
	_, diags := analyzeSrc(t, `try { } catch (Math) { }`)
	require.NotEmpty(t, diags)
	assert.Equal(t, "Error: Exception variable cannot be named 'Math' as it is reserved.", diags[0])
}
