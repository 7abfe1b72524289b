package runner

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// cppCompilers is the search order for a C++ toolchain on PATH. There is no
// Go-native C++ compiler to embed, so this is the one place the runner
// shells out.
var cppCompilers = []string{"c++", "g++", "clang++"}

// CppRunner compiles workDir/output.cpp and runs the resulting binary.
type CppRunner struct{}

// NewCpp returns a C++ runner.
func NewCpp() *CppRunner { return &CppRunner{} }

func (r *CppRunner) Run(ctx context.Context, src []byte, workDir string) (Result, error) {
	compiler := findCompiler()
	if compiler == "" {
		tlog.SpanFromContext(ctx).Printw("run cpp: no compiler on PATH, skipping", "tried", cppCompilers)
		return Result{ExitCode: 0}, nil
	}

	srcPath := filepath.Join(workDir, "output.cpp")
	binPath := filepath.Join(workDir, "output.bin")

	compile := exec.CommandContext(ctx, compiler, "-std=c++17", "-O0", "-o", binPath, srcPath)
	var compileErr bytes.Buffer
	compile.Stderr = &compileErr
	if err := compile.Run(); err != nil {
		return Result{Stderr: compileErr.String(), ExitCode: 1}, errors.Wrap(err, "compile %s with %s", srcPath, compiler)
	}

	run := exec.CommandContext(ctx, binPath)
	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr
	err := run.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, errors.Wrap(err, "run %s", binPath)
	}

	res.ExitCode = 0
	return res, nil
}

func findCompiler() string {
	for _, name := range cppCompilers {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
