// Command hlc is the driver for the compiler: it reads a .hl source file
// (or stdin terminated by a line that is exactly END), runs it through the
// lexer/parser/analyzer pipeline, prints diagnostics, and optionally hands
// the tree to a backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hlc/compiler"
	"github.com/slowlang/hlc/compiler/lexer"
	"github.com/slowlang/hlc/emit"
	"github.com/slowlang/hlc/emit/cpp"
	"github.com/slowlang/hlc/emit/py"
	"github.com/slowlang/hlc/internal/config"
	"github.com/slowlang/hlc/internal/runner"
)

func main() {
	lexCmd := &cli.Command{Name: "lex", Action: lexAct, Args: cli.Args{}}
	parseCmd := &cli.Command{Name: "parse", Action: parseAct, Args: cli.Args{}}
	checkCmd := &cli.Command{Name: "check", Action: checkAct, Args: cli.Args{}}
	buildCmd := &cli.Command{Name: "build", Action: buildAct, Args: cli.Args{}}

	app := &cli.Command{
		Name:        "hlc",
		Description: "hlc compiles .hl source to a py or cpp target",
		Commands: []*cli.Command{
			lexCmd,
			parseCmd,
			checkCmd,
			buildCmd,
		},
		Action: legacyAct,
		Args:   cli.Args{},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func rootCtx() context.Context {
	ctx := context.Background()
	return tlog.ContextWithSpan(ctx, tlog.Root())
}

// readSource loads name if given, or reads stdin up to a line that is
// exactly "END", matching spec.md §6.1's legacy invocation.
func readSource(name string) ([]byte, string, error) {
	if name != "" {
		text, err := os.ReadFile(name)
		if err != nil {
			return nil, "", errors.Wrap(err, "read %s", name)
		}
		return text, name, nil
	}

	var buf strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "END" {
			break
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, "", errors.Wrap(err, "read stdin")
	}

	return []byte(buf.String()), "<stdin>", nil
}

func printResult(res *compiler.Result) {
	for _, d := range res.LexDiagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	for _, d := range res.ParseDiagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	for _, d := range res.AnalyzeDiagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
}

func lexAct(c *cli.Command) error {
	ctx := rootCtx()
	for _, a := range c.Args {
		text, _, err := readSource(a)
		if err != nil {
			return err
		}
		toks, diags := lexer.Tokenize(text)
		tlog.SpanFromContext(ctx).Printw("lex", "name", a, "tokens", len(toks))
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
		for _, t := range toks {
			fmt.Println(t.String())
		}
	}
	return nil
}

func parseAct(c *cli.Command) error {
	ctx := rootCtx()
	for _, a := range c.Args {
		text, name, err := readSource(a)
		if err != nil {
			return err
		}
		res, err := compiler.Compile(ctx, name, text)
		printResult(res)
		if err != nil && res.Program == nil {
			return errors.Wrap(err, "parse %v", name)
		}
		fmt.Printf("%+v\n", res.Program)
	}
	return nil
}

func checkAct(c *cli.Command) error {
	ctx := rootCtx()
	failed := false
	for _, a := range c.Args {
		text, name, err := readSource(a)
		if err != nil {
			return err
		}
		res, _ := compiler.Compile(ctx, name, text)
		printResult(res)
		if res.Failed() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func buildAct(c *cli.Command) error {
	ctx := rootCtx()

	target, run, args := parseBuildFlags(c.Args)
	if len(args) == 0 {
		return errors.New("build: no input given")
	}

	cfg, err := config.Load(".")
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if target == "" {
		target = cfg.Target
	}
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "."
	}

	for _, a := range args {
		text, name, err := readSource(a)
		if err != nil {
			return err
		}

		res, err := compiler.Compile(ctx, name, text)
		printResult(res)
		if err != nil {
			return errors.Wrap(err, "compile %v", name)
		}

		backend, outName := backendFor(target)
		out, err := backend.Emit(res.Program)
		if err != nil {
			return errors.Wrap(err, "emit %v", target)
		}

		outPath := filepath.Join(outDir, outName)
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return errors.Wrap(err, "write %v", outPath)
		}
		tlog.SpanFromContext(ctx).Printw("wrote backend output", "path", outPath)

		if run || cfg.Run {
			res, err := runFor(ctx, target, out, outDir)
			if err != nil {
				return errors.Wrap(err, "run %v", outPath)
			}
			fmt.Print(res.Stdout)
			fmt.Fprint(os.Stderr, res.Stderr)
			if res.ExitCode != 0 {
				os.Exit(res.ExitCode)
			}
		}
	}

	return nil
}

// legacyAct implements spec.md §6.1's no-subcommand invocation: read one
// file (or stdin-until-END), compile, then interactively prompt for a
// backend.
func legacyAct(c *cli.Command) error {
	ctx := rootCtx()

	var arg string
	if len(c.Args) > 0 {
		arg = c.Args[0]
	}

	text, name, err := readSource(arg)
	if err != nil {
		return err
	}

	res, err := compiler.Compile(ctx, name, text)
	printResult(res)
	if err != nil {
		os.Exit(1)
	}

	fmt.Println("Choose target backend: 1 = scripting (py), 2 = static (cpp)")
	reader := bufio.NewReader(os.Stdin)
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)

	target := "py"
	if choice == "2" {
		target = "cpp"
	}

	backend, outName := backendFor(target)
	out, err := backend.Emit(res.Program)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "emit %v", target))
		os.Exit(1)
	}

	if err := os.WriteFile(outName, out, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "write %v", outName))
		os.Exit(1)
	}

	runRes, err := runFor(ctx, target, out, ".")
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "run %v", outName))
		os.Exit(1)
	}
	fmt.Print(runRes.Stdout)
	fmt.Fprint(os.Stderr, runRes.Stderr)
	os.Exit(runRes.ExitCode)

	return nil
}

func backendFor(target string) (emit.Backend, string) {
	if target == "cpp" {
		return cpp.New(), "output.cpp"
	}
	return py.New(), "output.py"
}

func runFor(ctx context.Context, target string, out []byte, dir string) (runner.Result, error) {
	if target == "cpp" {
		return runner.NewCpp().Run(ctx, out, dir)
	}
	return runner.NewPy().Run(ctx, out, dir)
}

// parseBuildFlags pulls --target=X and --run out of args, leaving the
// remaining positional arguments (source files) behind.
func parseBuildFlags(args []string) (target string, run bool, rest []string) {
	for _, a := range args {
		switch {
		case a == "--run":
			run = true
		case strings.HasPrefix(a, "--target="):
			target = strings.TrimPrefix(a, "--target=")
		default:
			rest = append(rest, a)
		}
	}
	return target, run, rest
}
