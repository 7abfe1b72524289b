// Package emit defines the contract every backend implements: take an
// analyzed tree and print source text for a target language. Backends are
// deliberately shallow syntax-directed printers, not optimizing compilers —
// the lexer, parser, and analyzer are the hard engineering core.
package emit

import "github.com/slowlang/hlc/compiler/ast"

// Backend turns an analyzed Program into target-language source text.
type Backend interface {
	// Name is the backend's identifier, e.g. "py" or "cpp".
	Name() string
	Emit(prog *ast.Program) ([]byte, error)
}
