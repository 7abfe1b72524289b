// Package cpp prints an analyzed tree as C++17 source, using the resolved
// tp.Type on every node to pick a concrete static type (spec.md frames
// `cpp` as the "statically typed systems target", the mirror image of
// emit/py).
package cpp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"tlog.app/go/errors"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/tp"
)

const preamble = `#include <cctype>
#include <cmath>
#include <iostream>
#include <string>
#include <vector>

template <typename T>
T __hl_power(T a, T b) {
    T r = 1;
    for (T i = 0; i < b; i++) r *= a;
    return r;
}

long long __hl_fact(long long n) {
    long long r = 1;
    for (long long i = 2; i <= n; i++) r *= i;
    return r;
}

bool __hl_is_even(long long n) { return n % 2 == 0; }

std::string __hl_str_upper(std::string s) {
    for (auto& c : s) c = std::toupper(static_cast<unsigned char>(c));
    return s;
}

std::string __hl_str_lower(std::string s) {
    for (auto& c : s) c = std::tolower(static_cast<unsigned char>(c));
    return s;
}

std::string __hl_str_replace(std::string s, const std::string& needle, const std::string& repl) {
    if (needle.empty()) return s;
    size_t pos = 0;
    while ((pos = s.find(needle, pos)) != std::string::npos) {
        s.replace(pos, needle.size(), repl);
        pos += repl.size();
    }
    return s;
}

std::string __hl_to_binary(long long n) {
    bool neg = n < 0;
    unsigned long long u = neg ? -n : n;
    std::string s;
    if (u == 0) s = "0";
    while (u > 0) {
        s = char('0' + (u % 2)) + s;
        u /= 2;
    }
    return neg ? "-" + s : s;
}

`

// Backend emits C++17.
type Backend struct{}

// New returns a C++ backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return "cpp" }

func (b *Backend) Emit(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(preamble)

	e := &emitter{buf: &buf}

	// Function definitions are emitted above main, in source order. No
	// prototypes are emitted: the analyzer only accepts a call to a
	// function whose body it has already checked, so a callee always
	// precedes its caller.
	var funcs []*ast.FuncDecl
	var topLevel []ast.Stmt
	for _, s := range prog.Stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			funcs = append(funcs, fd)
			continue
		}
		topLevel = append(topLevel, s)
	}

	for _, fd := range funcs {
		if err := e.funcDecl(fd, 0); err != nil {
			return nil, errors.Wrap(err, "emit cpp")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("int main() {\n")
	for _, s := range topLevel {
		if err := e.stmt(s, 1); err != nil {
			return nil, errors.Wrap(err, "emit cpp")
		}
	}
	buf.WriteString("    return 0;\n}\n")

	return buf.Bytes(), nil
}

type emitter struct {
	buf *bytes.Buffer
}

func (e *emitter) indent(n int) { e.buf.WriteString(strings.Repeat("    ", n)) }

// cppType renders a resolved type as a C++ type name. nil is treated as
// void, matching an unresolved node defaulting to the analyzer's "void on
// error" convention.
func cppType(t *tp.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case tp.Int:
		return "long long"
	case tp.Float:
		return "double"
	case tp.String:
		return "std::string"
	case tp.Bool:
		return "bool"
	case tp.Void:
		return "void"
	case tp.List:
		return "std::vector<" + cppType(t.Elem) + ">"
	case tp.MathObject:
		return "void"
	default:
		return "auto"
	}
}

func (e *emitter) funcDecl(fd *ast.FuncDecl, depth int) error {
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = fmt.Sprintf("%s %s", cppType(p.Type), p.Name)
	}

	e.indent(depth)
	fmt.Fprintf(e.buf, "%s %s(%s) {\n", cppType(fd.ResolvedReturn), fd.Name, strings.Join(params, ", "))
	for _, s := range fd.Body {
		if err := e.stmt(s, depth+1); err != nil {
			return err
		}
	}
	e.indent(depth)
	e.buf.WriteString("}\n")
	return nil
}

func (e *emitter) stmt(s ast.Stmt, depth int) error {
	switch st := s.(type) {
	case *ast.ExprStmt:
		expr, err := e.expr(st.X)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "%s;\n", expr)

	case *ast.VarDecl:
		e.indent(depth)
		if st.Init == nil {
			fmt.Fprintf(e.buf, "%s %s;\n", cppType(st.Type), st.Name)
			return nil
		}
		init, err := e.expr(st.Init)
		if err != nil {
			return err
		}
		qualifier := ""
		if st.Const {
			qualifier = "const "
		}
		fmt.Fprintf(e.buf, "%s%s %s = %s;\n", qualifier, cppType(st.Type), st.Name, init)

	case *ast.If:
		cond, err := e.expr(st.Cond)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "if (%s) {\n", cond)
		if err := e.block(st.Then, depth+1); err != nil {
			return err
		}
		for _, elif := range st.Elifs {
			c, err := e.expr(elif.Cond)
			if err != nil {
				return err
			}
			e.indent(depth)
			fmt.Fprintf(e.buf, "} else if (%s) {\n", c)
			if err := e.block(elif.Body, depth+1); err != nil {
				return err
			}
		}
		if st.Else != nil {
			e.indent(depth)
			e.buf.WriteString("} else {\n")
			if err := e.block(st.Else, depth+1); err != nil {
				return err
			}
		}
		e.indent(depth)
		e.buf.WriteString("}\n")

	case *ast.While:
		cond, err := e.expr(st.Cond)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "while (%s) {\n", cond)
		if err := e.block(st.Body, depth+1); err != nil {
			return err
		}
		e.indent(depth)
		e.buf.WriteString("}\n")

	case *ast.For:
		start, err := e.expr(st.Start)
		if err != nil {
			return err
		}
		end, err := e.expr(st.End)
		if err != nil {
			return err
		}
		step := "1"
		if st.Step != nil {
			step, err = e.expr(st.Step)
			if err != nil {
				return err
			}
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "for (long long %s = %s; %s != %s; %s += (%s > %s ? -(%s) : (%s))) {\n",
			st.Iterator, start, st.Iterator, end, st.Iterator, start, end, step, step)
		if err := e.block(st.Body, depth+1); err != nil {
			return err
		}
		e.indent(depth)
		e.buf.WriteString("}\n")

	case *ast.FuncDecl:
		return e.funcDecl(st, depth)

	case *ast.Return:
		e.indent(depth)
		if st.Value == nil {
			e.buf.WriteString("return;\n")
			return nil
		}
		v, err := e.expr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.buf, "return %s;\n", v)

	case *ast.TryCatch:
		e.indent(depth)
		e.buf.WriteString("try {\n")
		if err := e.block(st.Try, depth+1); err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "} catch (const std::exception& %s) {\n", st.CatchName)
		if err := e.block(st.Catch, depth+1); err != nil {
			return err
		}
		e.indent(depth)
		e.buf.WriteString("}\n")

	case *ast.Print:
		v, err := e.expr(st.Value)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "std::cout << %s << std::endl;\n", v)

	case *ast.Input:
		p, err := e.expr(st.Prompt)
		if err != nil {
			return err
		}
		e.indent(depth)
		fmt.Fprintf(e.buf, "std::cout << %s; std::string __hl_discard; std::getline(std::cin, __hl_discard);\n", p)

	case *ast.Endloop:
		e.indent(depth)
		e.buf.WriteString("break;\n")

	case *ast.Next:
		e.indent(depth)
		e.buf.WriteString("continue;\n")

	default:
		return errors.New("emit cpp: unsupported statement %T", s)
	}

	return nil
}

func (e *emitter) block(stmts []ast.Stmt, depth int) error {
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
			s += ".0" // keep the literal a double in the target
		}
		return s, nil
	case *ast.StringLit:
		return strconv.Quote(ex.Value), nil
	case *ast.BoolLit:
		if ex.Value {
			return "true", nil
		}
		return "false", nil
	case *ast.ListLit:
		parts := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			s, err := e.expr(el)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		elemT := cppType(ex.TypeOf())
		return fmt.Sprintf("%s{%s}", elemT, strings.Join(parts, ", ")), nil
	case *ast.Ident:
		if ex.Name == "Math" {
			return "", nil // Math is never read as a value in cpp; only dispatched through method calls.
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
			return fmt.Sprintf("(!%s)", operand), nil
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
		return "", errors.New("emit cpp: bare member access %q is not emittable", ex.Member)
	case *ast.AssignExpr:
		target, err := e.expr(ex.Target)
		if err != nil {
			return "", err
		}
		value, err := e.expr(ex.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s = %s)", target, value), nil
	}

	return "", errors.New("emit cpp: unsupported expression %T", x)
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

	switch be.Op {
	case ast.And:
		return fmt.Sprintf("(%s && %s)", left, right), nil
	case ast.Or:
		return fmt.Sprintf("(%s || %s)", left, right), nil
	}

	return fmt.Sprintf("(%s %s %s)", left, be.Op, right), nil
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
			return fmt.Sprintf("std::to_string(%s)", args[0]), nil
		case "INT":
			return fmt.Sprintf("static_cast<long long>(%s)", args[0]), nil
		case "FLOAT":
			return fmt.Sprintf("static_cast<double>(%s)", args[0]), nil
		case "input":
			return fmt.Sprintf("(std::cout << %s, [](){ std::string __s; std::getline(std::cin, __s); return __s; }())", args[0]), nil
		}
		return fmt.Sprintf("%s(%s)", callee.Name, strings.Join(args, ", ")), nil

	case *ast.MemberAccess:
		return e.methodCall(callee, args)
	}

	return "", errors.New("emit cpp: unsupported call target %T", ce.Callee)
}

func (e *emitter) methodCall(me *ast.MemberAccess, args []string) (string, error) {
	if ident, ok := me.Object.(*ast.Ident); ok && ident.Name == "Math" {
		switch me.Member {
		case "power":
			return fmt.Sprintf("__hl_power(%s)", strings.Join(args, ", ")), nil
		case "sqrt":
			return fmt.Sprintf("std::sqrt(%s)", args[0]), nil
		case "abs":
			return fmt.Sprintf("std::abs(%s)", args[0]), nil
		case "round":
			return fmt.Sprintf("static_cast<long long>(std::round(%s))", args[0]), nil
		}
		return "", errors.New("emit cpp: unsupported Math method %q", me.Member)
	}

	obj, err := e.expr(me.Object)
	if err != nil {
		return "", err
	}

	switch me.Member {
	case "length":
		return fmt.Sprintf("static_cast<long long>(%s.size())", obj), nil
	case "substring":
		return fmt.Sprintf("%s.substr(%s, (%s) - (%s))", obj, args[0], args[1], args[0]), nil
	case "concat":
		return fmt.Sprintf("(%s + %s)", obj, args[0]), nil
	case "toUpper":
		return fmt.Sprintf("__hl_str_upper(%s)", obj), nil
	case "toLower":
		return fmt.Sprintf("__hl_str_lower(%s)", obj), nil
	case "sub":
		return fmt.Sprintf("__hl_str_replace(%s, %s, %s)", obj, args[0], args[1]), nil
	case "append":
		return fmt.Sprintf("%s.push_back(%s)", obj, args[0]), nil
	case "prepend":
		return fmt.Sprintf("%s.insert(%s.begin(), %s)", obj, obj, args[0]), nil
	case "remove":
		return fmt.Sprintf("%s.erase(%s.begin() + %s)", obj, obj, args[0]), nil
	case "empty":
		return fmt.Sprintf("%s.clear()", obj), nil
	case "power":
		return fmt.Sprintf("__hl_power(%s, %s)", obj, args[0]), nil
	case "fact":
		return fmt.Sprintf("__hl_fact(%s)", obj), nil
	case "isEven":
		return fmt.Sprintf("__hl_is_even(%s)", obj), nil
	case "toBinary":
		return fmt.Sprintf("__hl_to_binary(%s)", obj), nil
	}

	return "", errors.New("emit cpp: unsupported method %q", me.Member)
}
