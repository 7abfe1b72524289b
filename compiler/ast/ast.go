// Package ast defines the syntax tree produced by compiler/parse and
// annotated by compiler/analyze.
//
// Following the teacher compiler's Design Notes: the tree is two sum types
// (Expr, Stmt) over one shared position header (Base), traversed by Go type
// switches rather than downcasting. A program is a tree, not a graph —
// nodes own their children by value/slice, never shared.
package ast

import "github.com/slowlang/hlc/compiler/tp"

// Node is the common interface of every tree node: it carries source
// position for diagnostics.
type Node interface {
	Pos() (line, col int)
}

// Base is the position header embedded by every node.
type Base struct {
	Line int
	Col  int
}

func (b Base) Pos() (int, int) { return b.Line, b.Col }

// Expr is any expression node. Every Expr reachable from a successfully
// analyzed program has a non-nil Type after Analyze runs (spec.md invariant
// 1).
type Expr interface {
	Node
	exprNode()
	TypeOf() *tp.Type
	SetType(*tp.Type)
}

// ExprBase is embedded by every concrete expression type; it supplies the
// resolved-type slot the analyzer fills in.
type ExprBase struct {
	Base `tlog:",embed"`
	Type *tp.Type
}

func (e *ExprBase) exprNode()          {}
func (e *ExprBase) TypeOf() *tp.Type   { return e.Type }
func (e *ExprBase) SetType(t *tp.Type) { e.Type = t }

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// StmtBase is embedded by every concrete statement type.
type StmtBase struct {
	Base `tlog:",embed"`
}

func (s StmtBase) stmtNode() {}

// --- Expressions ---

type (
	IntLit struct {
		ExprBase
		Value int64
	}

	FloatLit struct {
		ExprBase
		Value float64
	}

	StringLit struct {
		ExprBase
		Value string
	}

	BoolLit struct {
		ExprBase
		Value bool
	}

	// ListLit is a `[e1, e2, ...]` literal. Elements may be empty.
	ListLit struct {
		ExprBase
		Elements []Expr
	}

	Ident struct {
		ExprBase
		Name string
	}

	BinaryExpr struct {
		ExprBase
		Op    BinaryOp
		Left  Expr
		Right Expr
	}

	UnaryExpr struct {
		ExprBase
		Op      UnaryOp
		Operand Expr
	}

	// MemberAccess is `object.Member`. It only ever appears bare as the
	// callee of a CallExpr in this language (there are no fields), but is
	// kept as its own node per spec.md's Data Model.
	MemberAccess struct {
		ExprBase
		Object Expr
		Member string
	}

	ListAccess struct {
		ExprBase
		List  Expr
		Index Expr
	}

	CallExpr struct {
		ExprBase
		Callee Expr
		Args   []Expr
	}

	// AssignExpr is `target = value`, usable as a statement or nested in a
	// larger expression; its own type is always void.
	AssignExpr struct {
		ExprBase
		Target Expr
		Value  Expr
	}
)

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq
	And
	Or
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case LtEq:
		return "<="
	case GtEq:
		return ">="
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return "?"
	}
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
)

func (op UnaryOp) String() string {
	if op == Not {
		return "not"
	}
	return "-"
}

// --- Statements ---

type (
	ExprStmt struct {
		StmtBase
		X Expr
	}

	// Param is a single typed function parameter.
	Param struct {
		Name string
		Type *tp.Type
	}

	VarDecl struct {
		StmtBase
		Const bool
		Type  *tp.Type
		Name  string
		Init  Expr // nil if no initializer
	}

	ElifClause struct {
		Cond Expr
		Body []Stmt
	}

	If struct {
		StmtBase
		Cond  Expr
		Then  []Stmt
		Elifs []ElifClause
		Else  []Stmt // nil if no else
	}

	While struct {
		StmtBase
		Cond Expr
		Body []Stmt
	}

	For struct {
		StmtBase
		Iterator string
		Start    Expr
		End      Expr
		Step     Expr // nil if absent
		Body     []Stmt
	}

	FuncDecl struct {
		StmtBase
		Name string
		Params []Param
		// DeclaredReturn is the type written in source, or nil if the
		// function has no declared return type (to be inferred).
		DeclaredReturn *tp.Type
		// ResolvedReturn is filled in by the analyzer: either
		// DeclaredReturn, or the type inferred from the first return
		// statement, or void if the function never returns.
		ResolvedReturn *tp.Type
		Body           []Stmt
	}

	Return struct {
		StmtBase
		Value Expr // nil for a bare `return;`
	}

	TryCatch struct {
		StmtBase
		Try       []Stmt
		CatchName string
		Catch     []Stmt
	}

	Print struct {
		StmtBase
		Value Expr
	}

	// Input is the `input(prompt);` statement form (as distinct from the
	// `input(prompt)` expression form, which parses to a CallExpr).
	Input struct {
		StmtBase
		Prompt Expr
	}

	// Endloop is `endloop;` (break).
	Endloop struct {
		StmtBase
	}

	// Next is `next;` (continue).
	Next struct {
		StmtBase
	}
)

// Program is the root of the tree.
type Program struct {
	Base
	Stmts []Stmt
}

func (p *Program) Pos() (int, int) { return p.Base.Pos() }
