// Package py prints an analyzed tree as Python 3 source. Python is
// dynamically typed, so every resolved tp.Type on the tree is dropped on
// the floor here except where it picks an emission strategy (floor vs true
// division for `/`); this mirrors spec.md §1's framing of `py` as the
// "dynamically typed scripting target".
package py

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"tlog.app/go/errors"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/tp"
)

// preamble defines the handful of helpers the source language needs that
// Python's standard library doesn't give for free: power for Math.power,
// the three Math-adjacent int methods, and a direction-aware range for
// `for`.
const preamble = `import math


def __hl_range(start, end, step):
    if step is None:
        step = 1 if end >= start else -1
    if step > 0 and end < start:
        return range(start, end, -step)
    return range(start, end, step)


def __hl_power(a, b):
    return a ** b


def __hl_fact(n):
    r = 1
    for i in range(2, n + 1):
        r *= i
    return r


def __hl_is_even(n):
    return n % 2 == 0


def __hl_to_binary(n):
    return bin(n)[2:] if n >= 0 else '-' + bin(-n)[2:]

`

// Backend emits Python 3.
type Backend struct{}

// New returns a Python backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return "py" }

func (b *Backend) Emit(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(preamble)

	e := &emitter{buf: &buf}
	for _, stmt := range prog.Stmts {
		if err := e.stmt(stmt, 0); err != nil {
			return nil, errors.Wrap(err, "emit py")
		}
	}

	return buf.Bytes(), nil
}

type emitter struct {
	buf *bytes.Buffer
}

func (e *emitter) indent(n int) {
	e.buf.WriteString(strings.Repeat("    ", n))
}

func (e *emitter) stmt(s ast.Stmt, depth int) error {
	switch st := s.(type) {
	case *ast.ExprStmt:
		e.indent(depth)
		if as, ok := st.X.(*ast.AssignExpr); ok {
			target, err := e.expr(as.Target)
			if err != nil {
				return err
			}
			value, err := e.expr(as.Value)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.buf, "%s = %s\n", target, value)
			return nil
		}
		expr, err := e.expr(st.X)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.buf, "%s\n", expr)

	case *ast.VarDecl:
		e.indent(depth)
		if st.Init == nil {
			fmt.Fprintf(e.buf, "%s = None\n", st.Name)
			return nil
		}
		init, err := e.expr(st.Init)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.buf, "%s = %s\n", st.Name, init)

	case *ast.If:
		cond, err := e.expr(st.Cond)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "if %s:\n", cond)
		if err := e.block(st.Then, depth+1); err != nil {
			return err
		}
		for _, elif := range st.Elifs {
			c, err := e.expr(elif.Cond)
			if err != nil {
				return err
			}
			e.indent(depth)
			fmt.Fprintf(e.buf, "elif %s:\n", c)
			if err := e.block(elif.Body, depth+1); err != nil {
				return err
			}
		}
		if st.Else != nil {
			e.indent(depth)
			e.buf.WriteString("else:\n")
			if err := e.block(st.Else, depth+1); err != nil {
				return err
			}
		}

	case *ast.While:
		cond, err := e.expr(st.Cond)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "while %s:\n", cond)
		return e.block(st.Body, depth+1)

	case *ast.For:
		start, err := e.expr(st.Start)
		if err != nil {
			return err
		}
		end, err := e.expr(st.End)
		if err != nil {
			return err
		}
		step := "None"
		if st.Step != nil {
			step, err = e.expr(st.Step)
			if err != nil {
				return err
			}
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "for %s in __hl_range(%s, %s, %s):\n", st.Iterator, start, end, step)
		return e.block(st.Body, depth+1)

	case *ast.FuncDecl:
		params := make([]string, len(st.Params))
		for i, p := range st.Params {
			params[i] = p.Name
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "def %s(%s):\n", st.Name, strings.Join(params, ", "))
		if len(st.Body) == 0 {
			e.indent(depth + 1)
			e.buf.WriteString("pass\n")
			return nil
		}
		return e.block(st.Body, depth+1)

	case *ast.Return:
		e.indent(depth)
		if st.Value == nil {
			e.buf.WriteString("return\n")
			return nil
		}
		v, err := e.expr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.buf, "return %s\n", v)

	case *ast.TryCatch:
		e.indent(depth)
		e.buf.WriteString("try:\n")
		if err := e.block(st.Try, depth+1); err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "except Exception as %s:\n", st.CatchName)
		return e.block(st.Catch, depth+1)

	case *ast.Print:
		v, err := e.expr(st.Value)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "print(%s)\n", v)

	case *ast.Input:
		p, err := e.expr(st.Prompt)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "input(%s)\n", p)

	case *ast.Endloop:
		e.indent(depth)
		e.buf.WriteString("break\n")

	case *ast.Next:
		e.indent(depth)
		e.buf.WriteString("continue\n")

	default:
		return errors.New("emit py: unsupported statement %T", s)
	}

	return nil
}

func (e *emitter) block(stmts []ast.Stmt, depth int) error {
	if len(stmts) == 0 {
		e.indent(depth)
		e.buf.WriteString("pass\n")
		return nil
	}
	for _, s := range stmts {
		if err := e.stmt(s, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) expr(x ast.Expr) (string, error) {
	switch ex := x.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(ex.Value, 10), nil
	case *ast.FloatLit:
		s := strconv.FormatFloat(ex.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0" // keep the literal a float in the target
		}
		return s, nil
	case *ast.StringLit:
		return strconv.Quote(ex.Value), nil
	case *ast.BoolLit:
		if ex.Value {
			return "True", nil
		}
		return "False", nil
	case *ast.ListLit:
		parts := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			s, err := e.expr(el)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case *ast.Ident:
		if ex.Name == "Math" {
			return "math", nil
		}
		return ex.Name, nil
	case *ast.BinaryExpr:
		return e.binary(ex)
	case *ast.UnaryExpr:
		operand, err := e.expr(ex.Operand)
		if err != nil {
			return "", err
		}
		if ex.Op == ast.Not {
			return fmt.Sprintf("(not %s)", operand), nil
		}
		return fmt.Sprintf("(-%s)", operand), nil
	case *ast.ListAccess:
		list, err := e.expr(ex.List)
		if err != nil {
			return "", err
		}
		idx, err := e.expr(ex.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", list, idx), nil
	case *ast.CallExpr:
		return e.call(ex)
	case *ast.MemberAccess:
		return "", errors.New("emit py: bare member access %q is not emittable", ex.Member)
	case *ast.AssignExpr:
		target, err := e.expr(ex.Target)
		if err != nil {
			return "", err
		}
		value, err := e.expr(ex.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s := %s", target, value), nil
	}

	return "", errors.New("emit py: unsupported expression %T", x)
}

func (e *emitter) binary(be *ast.BinaryExpr) (string, error) {
	left, err := e.expr(be.Left)
	if err != nil {
		return "", err
	}
	right, err := e.expr(be.Right)
	if err != nil {
		return "", err
	}

	op := be.Op.String()
	switch be.Op {
	case ast.And:
		op = "and"
	case ast.Or:
		op = "or"
	case ast.Div:
		// Python's `/` is always true division; this language's `/` is an
		// int result when both operands are int (spec.md §4.3's arithmetic
		// table), so floor-divide in that case to match.
		op = "/"
		if t := be.TypeOf(); t != nil && t.Kind == tp.Int {
			op = "//"
		}
	}

	return fmt.Sprintf("(%s %s %s)", left, op, right), nil
}

func (e *emitter) call(ce *ast.CallExpr) (string, error) {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		s, err := e.expr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	switch callee := ce.Callee.(type) {
	case *ast.Ident:
		switch callee.Name {
		case "STR":
			return fmt.Sprintf("str(%s)", args[0]), nil
		case "INT":
			return fmt.Sprintf("int(%s)", args[0]), nil
		case "FLOAT":
			return fmt.Sprintf("float(%s)", args[0]), nil
		case "input":
			return fmt.Sprintf("input(%s)", args[0]), nil
		}
		return fmt.Sprintf("%s(%s)", callee.Name, strings.Join(args, ", ")), nil

	case *ast.MemberAccess:
		return e.methodCall(callee, args)
	}

	return "", errors.New("emit py: unsupported call target %T", ce.Callee)
}

func (e *emitter) methodCall(me *ast.MemberAccess, args []string) (string, error) {
	obj, err := e.expr(me.Object)
	if err != nil {
		return "", err
	}

	if ident, ok := me.Object.(*ast.Ident); ok && ident.Name == "Math" {
		switch me.Member {
		case "power":
			return fmt.Sprintf("__hl_power(%s)", strings.Join(args, ", ")), nil
		case "sqrt":
			return fmt.Sprintf("math.sqrt(%s)", args[0]), nil
		case "abs":
			return fmt.Sprintf("abs(%s)", args[0]), nil
		case "round":
			return fmt.Sprintf("round(%s)", args[0]), nil
		}
		return "", errors.New("emit py: unsupported Math method %q", me.Member)
	}

	switch me.Member {
	case "length":
		return fmt.Sprintf("len(%s)", obj), nil
	case "substring":
		return fmt.Sprintf("%s[%s:%s]", obj, args[0], args[1]), nil
	case "concat":
		return fmt.Sprintf("(%s + %s)", obj, args[0]), nil
	case "toUpper":
		return fmt.Sprintf("%s.upper()", obj), nil
	case "toLower":
		return fmt.Sprintf("%s.lower()", obj), nil
	case "sub":
		return fmt.Sprintf("%s.replace(%s, %s)", obj, args[0], args[1]), nil
	case "append":
		return fmt.Sprintf("%s.append(%s)", obj, args[0]), nil
	case "prepend":
		return fmt.Sprintf("%s.insert(0, %s)", obj, args[0]), nil
	case "remove":
		return fmt.Sprintf("%s.pop(%s)", obj, args[0]), nil
	case "empty":
		return fmt.Sprintf("%s.clear()", obj), nil
	case "power":
		return fmt.Sprintf("(%s ** %s)", obj, args[0]), nil
	case "fact":
		return fmt.Sprintf("__hl_fact(%s)", obj), nil
	case "isEven":
		return fmt.Sprintf("__hl_is_even(%s)", obj), nil
	case "toBinary":
		return fmt.Sprintf("__hl_to_binary(%s)", obj), nil
	}

	return "", errors.New("emit py: unsupported method %q", me.Member)
}
