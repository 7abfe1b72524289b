package runner

import (
	"context"
	"path/filepath"

	"github.com/go-python/gpython/py"
	_ "github.com/go-python/gpython/stdlib" // registers builtin modules (math, etc) used by emit/py's preamble

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// PyRunner runs an emitted Python file through an in-process gpython
// interpreter, so `hlc build --run --target=py` never shells out to a
// system python3.
type PyRunner struct{}

// NewPy returns a Python runner.
func NewPy() *PyRunner { return &PyRunner{} }

// Run expects src to already have been written to workDir/output.py by the
// caller (the driver does this for both backends uniformly); it is passed
// again here only so Runner's signature stays symmetric with CppRunner.
func (r *PyRunner) Run(ctx context.Context, src []byte, workDir string) (Result, error) {
	path := filepath.Join(workDir, "output.py")
	tlog.SpanFromContext(ctx).Printw("run py", "path", path, "bytes", len(src))

	pyCtx := py.NewContext(py.DefaultContextOpts())
	_, err := py.RunFile(pyCtx, path, py.CompileOpts{}, nil)
	if err != nil {
		return Result{ExitCode: 1}, errors.Wrap(err, "run emitted python")
	}

	return Result{ExitCode: 0}, nil
}
