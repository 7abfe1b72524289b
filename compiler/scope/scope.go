// Package scope implements the analyzer's nested symbol tables: a LIFO
// stack of name -> type maps with a parallel initialization-tracking stack,
// following the shape of the teacher compiler's front.Scope/FuncScope
// (compiler/front/gen.go), generalized from a single function body to the
// whole program (global scope, blocks, function bodies, try/catch).
package scope

import "github.com/slowlang/hlc/compiler/tp"

// Stack is the analyzer's scope stack. Every enterScope/exitScope pair in
// spec.md §4.3 maps to one Push/Pop here; the global scope is pushed once
// and lives for the whole analysis.
type Stack struct {
	scopes []map[string]*tp.Type
	inits  []map[string]bool
	consts map[string]bool // const-ness is global to the whole program, not per-scope: a name is const for its entire visible lifetime
}

// New returns an empty stack (no scopes pushed yet).
func New() *Stack {
	return &Stack{consts: map[string]bool{}}
}

// Push opens a new, empty scope.
func (s *Stack) Push() {
	s.scopes = append(s.scopes, map[string]*tp.Type{})
	s.inits = append(s.inits, map[string]bool{})
}

// Pop closes the innermost scope.
func (s *Stack) Pop() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.inits = s.inits[:len(s.inits)-1]
}

// Depth reports how many scopes are currently open.
func (s *Stack) Depth() int { return len(s.scopes) }

// Declare binds name to t in the innermost scope, with the given
// initialized flag. It does not check for redeclaration; callers check
// IsDeclaredInCurrent first so they can produce the right diagnostic.
func (s *Stack) Declare(name string, t *tp.Type, initialized bool) {
	if len(s.scopes) == 0 {
		s.Push()
	}
	s.scopes[len(s.scopes)-1][name] = t
	s.inits[len(s.inits)-1][name] = initialized
}

// DeclareGlobal binds name directly into the outermost (global) scope,
// used by the analyzer to pre-bind the reserved name Math.
func (s *Stack) DeclareGlobal(name string, t *tp.Type) {
	if len(s.scopes) == 0 {
		s.Push()
	}
	s.scopes[0][name] = t
}

// MarkConst records that name must never be reassigned, for the remainder
// of the analysis.
func (s *Stack) MarkConst(name string) { s.consts[name] = true }

// IsConst reports whether name was declared const.
func (s *Stack) IsConst(name string) bool { return s.consts[name] }

// Lookup searches innermost-to-outermost for name, returning its type and
// whether it was found at all.
func (s *Stack) Lookup(name string) (*tp.Type, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// IsDeclared reports whether name is visible in any enclosing scope.
func (s *Stack) IsDeclared(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// IsDeclaredInCurrent reports whether name is declared in the innermost
// scope only, used to diagnose redeclaration within the same block.
func (s *Stack) IsDeclaredInCurrent(name string) bool {
	if len(s.scopes) == 0 {
		return false
	}
	_, ok := s.scopes[len(s.scopes)-1][name]
	return ok
}

// MarkInitialized sets name's initialization flag to true in the innermost
// scope in which it is already declared.
func (s *Stack) MarkInitialized(name string) {
	for i := len(s.inits) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i][name]; ok {
			s.inits[i][name] = true
			return
		}
	}
}

// IsInitialized reports whether name has been definitely assigned on every
// path reaching this point, per the conservative flow-insensitive
// approximation in the Glossary: any prior assignment in an enclosing scope
// suffices.
func (s *Stack) IsInitialized(name string) bool {
	for i := len(s.inits) - 1; i >= 0; i-- {
		if v, ok := s.inits[i][name]; ok {
			return v
		}
	}
	return false
}
