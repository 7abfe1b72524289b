// Package analyze implements the two-pass semantic analyzer: function
// registration, then a single walk that resolves every expression's type,
// tracks initialization and constness, and validates loop control and
// return statements.
//
// Analyzer state lives in one value (scope stack, function table, loop
// depth, current function context) per spec.md's Design Notes on avoiding
// process-wide singletons; callers get a fresh Analyzer per compilation.
package analyze

import (
	"fmt"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/scope"
	"github.com/slowlang/hlc/compiler/tp"
)

// Analyzer walks a parsed Program and annotates it with resolved types,
// accumulating diagnostics rather than aborting on the first error.
type Analyzer struct {
	scopes *scope.Stack
	funcs  map[string]*ast.FuncDecl

	loopDepth int

	currentFunc    *ast.FuncDecl
	inferredReturn *tp.Type

	diags []string
}

// New returns an empty Analyzer, ready to run Analyze.
func New() *Analyzer {
	return &Analyzer{
		scopes: scope.New(),
		funcs:  map[string]*ast.FuncDecl{},
	}
}

// Analyze runs both passes over prog and returns the accumulated
// diagnostics, formatted per spec.md §6.4 ("Error: <message>"). A nil
// result means the program is well-typed.
func (a *Analyzer) Analyze(prog *ast.Program) []string {
	a.run(prog)
	return a.diags
}

// Analyze is the package-level convenience form: it runs a fresh Analyzer
// over prog and reports whether it is well-typed.
func Analyze(prog *ast.Program) (diags []string, ok bool) {
	a := New()
	diags = a.Analyze(prog)
	return diags, len(diags) == 0
}

func (a *Analyzer) errf(format string, args ...any) {
	a.diags = append(a.diags, "Error: "+fmt.Sprintf(format, args...))
}

func (a *Analyzer) run(prog *ast.Program) {
	a.scopes.Push()
	a.scopes.DeclareGlobal("Math", tp.NewMathObject())
	a.scopes.MarkInitialized("Math")

	a.registerFunctions(prog.Stmts)

	for _, stmt := range prog.Stmts {
		a.checkStmt(stmt)
	}

	a.scopes.Pop()
}

// registerFunctions is pass 1: it records every top-level function's
// signature before any body is checked, so forward calls resolve.
func (a *Analyzer) registerFunctions(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		fd, ok := stmt.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fd.Name == "Math" {
			a.errf("The name 'Math' is reserved and cannot be used as a function name.")
			continue
		}
		if _, exists := a.funcs[fd.Name]; exists {
			a.errf("Function '%s' is already declared.", fd.Name)
			continue
		}
		a.funcs[fd.Name] = fd
	}
}

// --- statements ---

func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		a.checkExpr(st.X)

	case *ast.VarDecl:
		a.checkVarDecl(st)

	case *ast.If:
		a.requireBool(a.checkExpr(st.Cond), "if")
		a.checkBlock(st.Then)
		for _, elif := range st.Elifs {
			a.requireBool(a.checkExpr(elif.Cond), "elif")
			a.checkBlock(elif.Body)
		}
		if st.Else != nil {
			a.checkBlock(st.Else)
		}

	case *ast.While:
		a.requireBool(a.checkExpr(st.Cond), "while")
		a.loopDepth++
		a.checkBlock(st.Body)
		a.loopDepth--

	case *ast.For:
		a.checkFor(st)

	case *ast.FuncDecl:
		a.checkFuncDecl(st)

	case *ast.Return:
		a.checkReturn(st)

	case *ast.TryCatch:
		a.checkBlock(st.Try)
		if st.CatchName == "Math" {
			a.errf("Exception variable cannot be named 'Math' as it is reserved.")
		}
		a.scopes.Push()
		a.scopes.Declare(st.CatchName, tp.NewString(), true)
		for _, cs := range st.Catch {
			a.checkStmt(cs)
		}
		a.scopes.Pop()

	case *ast.Print:
		a.checkExpr(st.Value)

	case *ast.Input:
		t := a.checkExpr(st.Prompt)
		if t != nil && t.Kind != tp.String {
			a.errf("The prompt given to 'input' must be a string.")
		}

	case *ast.Endloop:
		if a.loopDepth == 0 {
			a.errf("`endloop` can only be used within a loop.")
		}

	case *ast.Next:
		if a.loopDepth == 0 {
			a.errf("`next` can only be used within a loop.")
		}

	default:
		a.errf("internal: unhandled statement %T", s)
	}
}

func (a *Analyzer) checkBlock(stmts []ast.Stmt) {
	a.scopes.Push()
	for _, s := range stmts {
		a.checkStmt(s)
	}
	a.scopes.Pop()
}

func (a *Analyzer) requireBool(t *tp.Type, where string) {
	if t != nil && t.Kind != tp.Bool {
		a.errf("The condition of '%s' must be a bool.", where)
	}
}

func (a *Analyzer) checkVarDecl(st *ast.VarDecl) {
	if st.Name == "Math" {
		a.errf("The name 'Math' is reserved and cannot be used as a variable name.")
		return
	}
	if st.Const && st.Init == nil {
		a.errf("Constant '%s' must be initialized.", st.Name)
	}
	if a.scopes.IsDeclaredInCurrent(st.Name) {
		a.errf("Variable '%s' is already declared in this scope.", st.Name)
	}

	initialized := false
	if st.Init != nil {
		actual := a.checkExpr(st.Init)
		if actual != nil && !tp.Compatible(st.Type, actual) {
			a.errf("Cannot initialize '%s' of type %s with a value of type %s.", st.Name, st.Type, actual)
		}
		initialized = true
	}

	a.scopes.Declare(st.Name, st.Type, initialized)
	if st.Const {
		a.scopes.MarkConst(st.Name)
	}
}

func (a *Analyzer) checkFor(st *ast.For) {
	if st.Iterator == "Math" {
		a.errf("Loop iterator cannot be named 'Math' as it is reserved.")
	}

	startT := a.checkExpr(st.Start)
	endT := a.checkExpr(st.End)
	if startT != nil && startT.Kind != tp.Int {
		a.errf("The start value of a 'for' loop must be an int.")
	}
	if endT != nil && endT.Kind != tp.Int {
		a.errf("The end value of a 'for' loop must be an int.")
	}

	if st.Step != nil {
		lit, ok := st.Step.(*ast.IntLit)
		if !ok || lit.Value <= 0 {
			a.errf("The step in a 'for' loop must be a positive integer literal.")
		}
		a.checkExpr(st.Step)
	}

	a.scopes.Push()
	a.scopes.Declare(st.Iterator, tp.NewInt(), true)
	a.loopDepth++
	for _, s := range st.Body {
		a.checkStmt(s)
	}
	a.loopDepth--
	a.scopes.Pop()
}

func (a *Analyzer) checkFuncDecl(fd *ast.FuncDecl) {
	prevFunc, prevInferred := a.currentFunc, a.inferredReturn
	a.currentFunc = fd
	a.inferredReturn = nil
	if fd.DeclaredReturn != nil {
		a.inferredReturn = fd.DeclaredReturn
	}

	a.scopes.Push()
	seenParams := make(map[string]bool, len(fd.Params))
	for _, p := range fd.Params {
		if p.Name == "Math" {
			a.errf("The name 'Math' is reserved and cannot be used as a parameter name.")
			continue
		}
		if seenParams[p.Name] {
			a.errf("Duplicate parameter name in function '%s': '%s'.", fd.Name, p.Name)
			continue
		}
		seenParams[p.Name] = true
		a.scopes.Declare(p.Name, p.Type, true)
	}
	for _, s := range fd.Body {
		a.checkStmt(s)
	}
	a.scopes.Pop()

	if fd.DeclaredReturn != nil {
		fd.ResolvedReturn = fd.DeclaredReturn
	} else if a.inferredReturn != nil {
		fd.ResolvedReturn = a.inferredReturn
	} else {
		fd.ResolvedReturn = tp.NewVoid()
	}

	a.currentFunc, a.inferredReturn = prevFunc, prevInferred
}

func (a *Analyzer) checkReturn(st *ast.Return) {
	var actual *tp.Type
	if st.Value != nil {
		actual = a.checkExpr(st.Value)
	} else {
		actual = tp.NewVoid()
	}

	if a.currentFunc == nil {
		a.errf("'return' used outside of a function.")
		return
	}

	if a.currentFunc.DeclaredReturn != nil {
		if actual != nil && !tp.Compatible(a.currentFunc.DeclaredReturn, actual) {
			a.errf("Function '%s' must return %s, got %s.", a.currentFunc.Name, a.currentFunc.DeclaredReturn, actual)
		}
		return
	}

	if a.inferredReturn == nil {
		a.inferredReturn = actual
		return
	}
	if actual != nil && !tp.Compatible(a.inferredReturn, actual) {
		a.errf("Function '%s' has inconsistent return types: %s and %s.", a.currentFunc.Name, a.inferredReturn, actual)
	}
}

// --- expressions ---

func (a *Analyzer) checkExpr(e ast.Expr) *tp.Type {
	if e == nil {
		return nil
	}

	var t *tp.Type
	switch ex := e.(type) {
	case *ast.IntLit:
		t = tp.NewInt()
	case *ast.FloatLit:
		t = tp.NewFloat()
	case *ast.StringLit:
		t = tp.NewString()
	case *ast.BoolLit:
		t = tp.NewBool()
	case *ast.ListLit:
		t = a.checkListLit(ex)
	case *ast.Ident:
		t = a.checkIdent(ex)
	case *ast.BinaryExpr:
		t = a.checkBinary(ex)
	case *ast.UnaryExpr:
		t = a.checkUnary(ex)
	case *ast.ListAccess:
		t = a.checkListAccess(ex)
	case *ast.CallExpr:
		t = a.checkCall(ex)
	case *ast.MemberAccess:
		// A bare member access (not the callee of a call) is not a valid
		// construct in this language: methods are only ever invoked.
		a.checkExpr(ex.Object)
		a.errf("'%s' must be called as a method.", ex.Member)
		t = tp.NewVoid()
	case *ast.AssignExpr:
		t = a.checkAssign(ex)
	default:
		a.errf("internal: unhandled expression %T", e)
		t = tp.NewVoid()
	}

	e.SetType(t)
	return t
}

func (a *Analyzer) checkIdent(id *ast.Ident) *tp.Type {
	declared, ok := a.scopes.Lookup(id.Name)
	if !ok {
		a.errf("Undefined variable '%s'.", id.Name)
		return tp.NewVoid()
	}
	if !a.scopes.IsInitialized(id.Name) {
		a.errf("Variable '%s' used before initialization.", id.Name)
	}
	return declared
}

func (a *Analyzer) checkListLit(ll *ast.ListLit) *tp.Type {
	var elem *tp.Type
	mismatch := false

	for _, el := range ll.Elements {
		t := a.checkExpr(el)
		if t == nil {
			continue
		}
		switch {
		case elem == nil:
			elem = t
		case elem.Kind == t.Kind:
			// already compatible; keep elem as is, except widen int -> float
		case elem.Kind == tp.Int && t.Kind == tp.Float:
			elem = tp.NewFloat()
		case elem.Kind == tp.Float && t.Kind == tp.Int:
			// keep float
		default:
			mismatch = true
		}
	}

	if mismatch {
		a.errf("List literal has elements of incompatible types.")
		return tp.NewList(nil)
	}
	return tp.NewList(elem)
}

func (a *Analyzer) checkBinary(be *ast.BinaryExpr) *tp.Type {
	l := a.checkExpr(be.Left)
	r := a.checkExpr(be.Right)
	if l == nil || r == nil {
		return tp.NewVoid()
	}

	switch be.Op {
	case ast.Add:
		if l.Kind == tp.String && r.Kind == tp.String {
			return tp.NewString()
		}
		if tp.IsNumeric(l) && tp.IsNumeric(r) {
			return widen(l, r)
		}
		a.errf("Operands to '+' must both be string or both be numeric.")
		return tp.NewVoid()

	case ast.Sub, ast.Mul, ast.Div:
		if tp.IsNumeric(l) && tp.IsNumeric(r) {
			return widen(l, r)
		}
		a.errf("Operands to '%s' must be numeric.", be.Op)
		return tp.NewVoid()

	case ast.Mod:
		if l.Kind == tp.Int && r.Kind == tp.Int {
			return tp.NewInt()
		}
		a.errf("Operands to '%%' must be int.")
		return tp.NewVoid()

	case ast.Eq, ast.NotEq, ast.Lt, ast.Gt, ast.LtEq, ast.GtEq:
		if tp.Compatible(l, r) || tp.Compatible(r, l) {
			return tp.NewBool()
		}
		a.errf("Operands to '%s' are not compatible: %s and %s.", be.Op, l, r)
		return tp.NewBool()

	case ast.And, ast.Or:
		if l.Kind == tp.Bool && r.Kind == tp.Bool {
			return tp.NewBool()
		}
		a.errf("Operands to '%s' must be bool.", be.Op)
		return tp.NewBool()
	}

	a.errf("internal: unhandled binary operator %s", be.Op)
	return tp.NewVoid()
}

func widen(l, r *tp.Type) *tp.Type {
	if l.Kind == tp.Float || r.Kind == tp.Float {
		return tp.NewFloat()
	}
	return tp.NewInt()
}

func (a *Analyzer) checkUnary(ue *ast.UnaryExpr) *tp.Type {
	operand := a.checkExpr(ue.Operand)
	if operand == nil {
		return tp.NewVoid()
	}

	switch ue.Op {
	case ast.Not:
		if operand.Kind != tp.Bool {
			a.errf("Operand to 'not' must be bool.")
			return tp.NewBool()
		}
		return tp.NewBool()
	case ast.Neg:
		if !tp.IsNumeric(operand) {
			a.errf("Operand to unary '-' must be numeric.")
			return tp.NewVoid()
		}
		return operand
	}

	return tp.NewVoid()
}

func (a *Analyzer) checkListAccess(la *ast.ListAccess) *tp.Type {
	listT := a.checkExpr(la.List)
	idxT := a.checkExpr(la.Index)

	if idxT != nil && idxT.Kind != tp.Int {
		a.errf("List index must be an int.")
	}
	if listT == nil {
		return tp.NewVoid()
	}
	if listT.Kind != tp.List {
		a.errf("Cannot index into a value of type %s.", listT)
		return tp.NewVoid()
	}
	if listT.Elem == nil {
		return &tp.Type{Kind: tp.Unknown}
	}
	return listT.Elem
}

func (a *Analyzer) checkAssign(ae *ast.AssignExpr) *tp.Type {
	valueT := a.checkExpr(ae.Value)

	switch target := ae.Target.(type) {
	case *ast.Ident:
		if target.Name == "Math" {
			a.errf("The name 'Math' is reserved and cannot be assigned to.")
			break
		}
		declared, ok := a.scopes.Lookup(target.Name)
		if !ok {
			a.errf("Undefined variable '%s'.", target.Name)
			break
		}
		if a.scopes.IsConst(target.Name) {
			a.errf("Cannot reassign to constant variable: %s", target.Name)
			break
		}
		if valueT != nil && !tp.Compatible(declared, valueT) {
			a.errf("Cannot assign a value of type %s to '%s' of type %s.", valueT, target.Name, declared)
		}
		a.scopes.MarkInitialized(target.Name)
		target.SetType(declared)

	case *ast.ListAccess:
		elemT := a.checkExpr(target)
		if valueT != nil && elemT != nil && elemT.Kind != tp.Unknown && !tp.Compatible(elemT, valueT) {
			a.errf("Cannot assign a value of type %s into a list of %s.", valueT, elemT)
		}

	case *ast.MemberAccess:
		a.checkExpr(target.Object)
		a.errf("Cannot assign to a method access.")

	default:
		a.errf("Invalid assignment target.")
	}

	return tp.NewVoid()
}

// --- calls & builtins ---

func (a *Analyzer) checkCall(ce *ast.CallExpr) *tp.Type {
	switch callee := ce.Callee.(type) {
	case *ast.Ident:
		t := a.checkGlobalCall(ce, callee)
		callee.SetType(t)
		return t
	case *ast.MemberAccess:
		t := a.checkMethodCall(ce, callee)
		callee.SetType(t)
		return t
	default:
		a.checkExpr(ce.Callee)
		a.errf("Expression is not callable.")
		return tp.NewVoid()
	}
}

func (a *Analyzer) checkGlobalCall(ce *ast.CallExpr, callee *ast.Ident) *tp.Type {
	switch callee.Name {
	case "input":
		return a.checkOneArgBuiltin(ce, "input", []tp.Kind{tp.String}, tp.NewString)
	case "STR":
		return a.checkOneArgBuiltin(ce, "STR", []tp.Kind{tp.Int, tp.Float, tp.Bool, tp.String}, tp.NewString)
	case "INT":
		return a.checkOneArgBuiltin(ce, "INT", []tp.Kind{tp.Float, tp.Bool, tp.String}, tp.NewInt)
	case "FLOAT":
		return a.checkOneArgBuiltin(ce, "FLOAT", []tp.Kind{tp.Int, tp.Bool, tp.String}, tp.NewFloat)
	}
	return a.checkUserCall(ce, callee.Name)
}

func (a *Analyzer) checkOneArgBuiltin(ce *ast.CallExpr, name string, allowed []tp.Kind, result func() *tp.Type) *tp.Type {
	if len(ce.Args) != 1 {
		a.errf("'%s' expects exactly one argument.", name)
		return result()
	}
	arg := ce.Args[0]
	argT := a.checkExpr(arg)
	if isUnknownListAccess(arg) {
		return result()
	}
	if argT == nil {
		return result()
	}
	for _, k := range allowed {
		if argT.Kind == k {
			return result()
		}
	}
	a.errf("'%s' cannot accept an argument of type %s.", name, argT)
	return result()
}

func isUnknownListAccess(e ast.Expr) bool {
	la, ok := e.(*ast.ListAccess)
	if !ok {
		return false
	}
	lt := la.List.TypeOf()
	return lt != nil && lt.Kind == tp.List && (lt.Elem == nil || lt.Elem.Kind == tp.Unknown)
}

func (a *Analyzer) checkUserCall(ce *ast.CallExpr, name string) *tp.Type {
	for _, arg := range ce.Args {
		a.checkExpr(arg)
	}

	fd, ok := a.funcs[name]
	if !ok {
		a.errf("Undefined function '%s'.", name)
		return tp.NewVoid()
	}

	if len(ce.Args) != len(fd.Params) {
		a.errf("Function '%s' expects %d argument(s), got %d.", name, len(fd.Params), len(ce.Args))
	} else {
		for i, arg := range ce.Args {
			argT := arg.TypeOf()
			want := fd.Params[i].Type
			if argT != nil && !tp.Compatible(want, argT) {
				a.errf("Argument %d to '%s' has incompatible type: expected %s, got %s.", i+1, name, want, argT)
			}
		}
	}

	if fd.ResolvedReturn != nil {
		return fd.ResolvedReturn
	}
	a.errf("Cannot yet determine the return type of '%s'.", name)
	return tp.NewVoid()
}

func (a *Analyzer) checkMethodCall(ce *ast.CallExpr, me *ast.MemberAccess) *tp.Type {
	if ident, ok := me.Object.(*ast.Ident); ok && ident.Name == "Math" {
		a.checkExpr(me.Object)
		for _, arg := range ce.Args {
			a.checkExpr(arg)
		}
		return a.checkMathMethod(ce, me.Member)
	}

	objT := a.checkExpr(me.Object)
	for _, arg := range ce.Args {
		a.checkExpr(arg)
	}
	if objT == nil {
		return tp.NewVoid()
	}

	switch objT.Kind {
	case tp.String:
		return a.checkStringMethod(ce, me.Member)
	case tp.List:
		return a.checkListMethod(ce, me.Member, objT)
	case tp.Int:
		return a.checkIntMethod(ce, me.Member)
	default:
		a.errf("Type %s has no method '%s'.", objT, me.Member)
		return tp.NewVoid()
	}
}

func (a *Analyzer) argKinds(ce *ast.CallExpr) []tp.Kind {
	kinds := make([]tp.Kind, len(ce.Args))
	for i, arg := range ce.Args {
		if t := arg.TypeOf(); t != nil {
			kinds[i] = t.Kind
		}
	}
	return kinds
}

func (a *Analyzer) checkArity(ce *ast.CallExpr, recv, method string, want int) bool {
	if len(ce.Args) != want {
		a.errf("'%s.%s' expects %d argument(s), got %d.", recv, method, want, len(ce.Args))
		return false
	}
	return true
}

func (a *Analyzer) checkStringMethod(ce *ast.CallExpr, method string) *tp.Type {
	kinds := a.argKinds(ce)
	switch method {
	case "length":
		a.checkArity(ce, "string", method, 0)
		return tp.NewInt()
	case "substring":
		if a.checkArity(ce, "string", method, 2) {
			if kinds[0] != tp.Int || kinds[1] != tp.Int {
				a.errf("'string.substring' expects two int arguments.")
			}
		}
		return tp.NewString()
	case "concat":
		if a.checkArity(ce, "string", method, 1) && kinds[0] != tp.String {
			a.errf("'string.concat' expects a string argument.")
		}
		return tp.NewString()
	case "toUpper", "toLower":
		a.checkArity(ce, "string", method, 0)
		return tp.NewString()
	case "sub":
		if a.checkArity(ce, "string", method, 2) {
			if kinds[0] != tp.String || kinds[1] != tp.String {
				a.errf("'string.sub' expects two string arguments.")
			}
		}
		return tp.NewString()
	}
	a.errf("Type string has no method '%s'.", method)
	return tp.NewVoid()
}

func (a *Analyzer) checkListMethod(ce *ast.CallExpr, method string, listT *tp.Type) *tp.Type {
	kinds := a.argKinds(ce)
	switch method {
	case "length":
		a.checkArity(ce, "list", method, 0)
		return tp.NewInt()
	case "append", "prepend":
		if a.checkArity(ce, "list", method, 1) {
			argT := ce.Args[0].TypeOf()
			if listT.Elem != nil && listT.Elem.Kind != tp.Unknown && argT != nil && !tp.Compatible(listT.Elem, argT) {
				a.errf("'list.%s' expects a value compatible with %s, got %s.", method, listT.Elem, argT)
			}
		}
		return tp.NewVoid()
	case "remove":
		if a.checkArity(ce, "list", method, 1) && kinds[0] != tp.Int {
			a.errf("'list.remove' expects an int index.")
		}
		return tp.NewVoid()
	case "empty":
		a.checkArity(ce, "list", method, 0)
		return tp.NewVoid()
	}
	a.errf("Type %s has no method '%s'.", listT, method)
	return tp.NewVoid()
}

func (a *Analyzer) checkIntMethod(ce *ast.CallExpr, method string) *tp.Type {
	kinds := a.argKinds(ce)
	switch method {
	case "power":
		if a.checkArity(ce, "int", method, 1) && kinds[0] != tp.Int {
			a.errf("'int.power' expects an int argument.")
		}
		return tp.NewInt()
	case "fact":
		a.checkArity(ce, "int", method, 0)
		return tp.NewInt()
	case "isEven":
		a.checkArity(ce, "int", method, 0)
		return tp.NewBool()
	case "toBinary":
		a.checkArity(ce, "int", method, 0)
		return tp.NewString()
	}
	a.errf("Type int has no method '%s'.", method)
	return tp.NewVoid()
}

func (a *Analyzer) checkMathMethod(ce *ast.CallExpr, method string) *tp.Type {
	kinds := a.argKinds(ce)
	allNumeric := func() bool {
		for _, k := range kinds {
			if k != tp.Int && k != tp.Float {
				return false
			}
		}
		return true
	}

	switch method {
	case "power":
		if !a.checkArity(ce, "Math", method, 2) {
			return tp.NewInt()
		}
		if !allNumeric() {
			a.errf("'Math.power' expects two numeric arguments.")
			return tp.NewInt()
		}
		if kinds[0] == tp.Int && kinds[1] == tp.Int {
			return tp.NewInt()
		}
		return tp.NewFloat()

	case "sqrt":
		if a.checkArity(ce, "Math", method, 1) && !allNumeric() {
			a.errf("'Math.sqrt' expects a numeric argument.")
		}
		return tp.NewFloat()

	case "abs":
		if !a.checkArity(ce, "Math", method, 1) {
			return tp.NewInt()
		}
		if !allNumeric() {
			a.errf("'Math.abs' expects a numeric argument.")
			return tp.NewInt()
		}
		if kinds[0] == tp.Float {
			return tp.NewFloat()
		}
		return tp.NewInt()

	case "round":
		if a.checkArity(ce, "Math", method, 1) && !allNumeric() {
			a.errf("'Math.round' expects a numeric argument.")
		}
		return tp.NewInt()
	}

	a.errf("Math has no method '%s'.", method)
	return tp.NewVoid()
}
