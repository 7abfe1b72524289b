// Package compiler wires the lexer, parser, and semantic analyzer into the
// single lex -> parse -> analyze pipeline: source text in, an annotated
// Program and its diagnostics out.
package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hlc/compiler/analyze"
	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/lexer"
	"github.com/slowlang/hlc/compiler/parse"
)

// ErrCompileFailed is wrapped by Compile/CompileFile whenever the returned
// Result carries any diagnostic; callers that only care about success or
// failure can test with errors.Is.
var ErrCompileFailed = errors.New("compile failed")

// Result carries every diagnostic produced along the pipeline plus the
// resulting tree. Program is non-nil only when parsing succeeded, even if
// analysis went on to report errors against it.
type Result struct {
	Name string

	LexDiagnostics     []lexer.Diagnostic
	ParseDiagnostics   []parse.Diagnostic
	AnalyzeDiagnostics []string

	Program *ast.Program
}

// Failed reports whether any stage of the pipeline produced a diagnostic.
func (r *Result) Failed() bool {
	return len(r.LexDiagnostics) > 0 || len(r.ParseDiagnostics) > 0 || len(r.AnalyzeDiagnostics) > 0
}

// CompileFile reads name from disk and runs Compile over its contents.
func CompileFile(ctx context.Context, name string) (*Result, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile runs the lex -> parse -> analyze pipeline over text. It returns a
// non-nil Result even on failure, so callers can print every diagnostic
// gathered before bailing; err is non-nil exactly when Result.Failed() is
// true, wrapping ErrCompileFailed.
func Compile(ctx context.Context, name string, text []byte) (*Result, error) {
	res := &Result{Name: name}

	toks, lexDiags := lexer.Tokenize(text)
	res.LexDiagnostics = lexDiags
	tlog.SpanFromContext(ctx).Printw("tokenize", "name", name, "tokens", len(toks), "diags", len(lexDiags))

	prog, parseDiags, hadError := parse.ParseProgram(toks)
	res.ParseDiagnostics = parseDiags
	tlog.SpanFromContext(ctx).Printw("parse", "name", name, "had_error", hadError, "diags", len(parseDiags))

	if hadError || len(lexDiags) > 0 {
		return res, errors.Wrap(ErrCompileFailed, "parse text")
	}

	res.Program = prog

	analyzeDiags, ok := analyze.Analyze(prog)
	res.AnalyzeDiagnostics = analyzeDiags
	tlog.SpanFromContext(ctx).Printw("analyze", "name", name, "ok", ok, "diags", len(analyzeDiags))

	if !ok {
		return res, errors.Wrap(ErrCompileFailed, "analyze")
	}

	return res, nil
}
