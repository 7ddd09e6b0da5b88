// Package main implements the vera translator entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/vera/internal/codegen"
	"github.com/you-not-fish/vera/internal/passes"
	"github.com/you-not-fish/vera/internal/syntax"
	"github.com/you-not-fish/vera/internal/toolchain"
	"github.com/you-not-fish/vera/internal/translate"
)

// Version information
const Version = "0.1.0-dev"

// starter is the program written by "verac new".
const starter = `main() {
    string greeting = "Hello, vera!"
    print(greeting)
}
`

var errToolsMissing = errors.New("some required tools are missing")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
// Every failure is reported on stderr as a single diagnostic.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return translate.ExitOK
	}

	fmt.Fprintln(stderr, diagnostic(err))
	return translate.ExitCode(err)
}

// diagnostic formats err for stderr. Errors that carry a source
// position already name their kind.
func diagnostic(err error) string {
	var le *syntax.LexError
	var pe *syntax.ParseError
	var ce *codegen.Error
	if errors.As(err, &le) || errors.As(err, &pe) || errors.As(err, &ce) {
		return err.Error()
	}
	return "verac: " + err.Error()
}

func newRootCmd() *cobra.Command {
	var runFile string

	root := &cobra.Command{
		Use:           "verac",
		Short:         "Translate vera programs to C",
		Long:          "verac translates a vera source file into a standalone C99 program.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runFile == "" {
				return cmd.Help()
			}
			return runProgram(cmd, runFile)
		},
	}
	root.Flags().StringVarP(&runFile, "run", "r", "", "translate, compile and run `file`")

	root.AddCommand(newNewCmd(), newBuildCmd(), newRunCmd(), newDoctorCmd(), newVersionCmd())
	return root
}

// ----------------------------------------------------------------------------
// new

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [dir]",
		Short: "Create a starter main.vera",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			path := filepath.Join(dir, "main.vera")
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				if errors.Is(err, os.ErrExist) {
					return fmt.Errorf("%s already exists", path)
				}
				return err
			}
			if _, err := f.WriteString(starter); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
}

// ----------------------------------------------------------------------------
// build

type buildFlags struct {
	output     string
	emitTokens bool
	emitAST    bool
	astFormat  string
	fold       bool
	dumpBefore string
	dumpAfter  string
	verify     bool
	trace      bool
}

func newBuildCmd() *cobra.Command {
	var bf buildFlags

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Translate a vera file to C",
		Long: "Translate a vera file to C. The output goes to <file>.c unless -o is given;\n" +
			"-o - writes it to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			switch {
			case bf.emitTokens:
				return emitTokens(cmd.OutOrStdout(), filename)
			case bf.emitAST:
				return emitAST(cmd, filename, &bf)
			}
			return build(cmd, filename, &bf)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&bf.output, "output", "o", "", "output `file` (\"-\" for stdout)")
	fl.BoolVar(&bf.emitTokens, "emit-tokens", false, "output the token stream")
	fl.BoolVar(&bf.emitAST, "emit-ast", false, "output the AST")
	fl.StringVar(&bf.astFormat, "ast-format", "text", "AST output format (text or json)")
	fl.BoolVar(&bf.fold, "fold", false, "fold constant expressions before generating C")
	fl.StringVar(&bf.dumpBefore, "dump-before", "", "dump the AST before `pass` (name or \"*\")")
	fl.StringVar(&bf.dumpAfter, "dump-after", "", "dump the AST after `pass` (name or \"*\")")
	fl.BoolVar(&bf.verify, "verify", false, "check identifier resolution around each pass")
	fl.BoolVar(&bf.trace, "trace", false, "output timing trace")
	return cmd
}

func (bf *buildFlags) options(cmd *cobra.Command) *translate.Options {
	opt := &translate.Options{
		Fold:       bf.fold,
		DumpBefore: bf.dumpBefore,
		DumpAfter:  bf.dumpAfter,
		Verify:     bf.verify,
		Dump:       cmd.ErrOrStderr(),
	}
	if bf.trace {
		opt.Trace = cmd.ErrOrStderr()
	}
	return opt
}

// translateFile runs the pipeline over a file on disk.
func translateFile(filename string, opt *translate.Options) (*translate.Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return translate.Translate(filename, f, opt)
}

func build(cmd *cobra.Command, filename string, bf *buildFlags) error {
	res, err := translateFile(filename, bf.options(cmd))
	if err != nil {
		return err
	}

	out := bf.output
	if out == "" {
		out = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".c"
	}
	if out == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), res.C)
		return err
	}
	if err := os.WriteFile(out, []byte(res.C), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}

// emitAST parses the input, runs any requested passes, and prints the
// resulting tree.
func emitAST(cmd *cobra.Command, filename string, bf *buildFlags) error {
	if bf.astFormat != "text" && bf.astFormat != "json" {
		return fmt.Errorf("unknown AST format %q (want text or json)", bf.astFormat)
	}

	res, err := translateFile(filename, bf.options(cmd))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if bf.astFormat == "json" {
		return syntax.FprintJSON(w, res.Program)
	}
	syntax.Fprint(w, res.Program)
	return nil
}

// emitTokens scans the input file and prints all tokens with positions.
func emitTokens(w io.Writer, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	toks, err := syntax.Tokenize(filename, string(src))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		fmt.Fprintf(w, "%-20s %-12s %s\n", tok.Pos, tok.Tok, formatLiteral(tok.Lit))
	}
	return nil
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// ----------------------------------------------------------------------------
// run

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Translate, compile and run a vera file (same as -r)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, args[0])
		},
	}
}

// runProgram translates filename, compiles the C with the system
// compiler and runs the result, relaying its output. A non-zero exit
// from the program itself is reported but does not fail verac.
func runProgram(cmd *cobra.Command, filename string) error {
	res, err := translateFile(filename, nil)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "verac-run-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	ctx := cmd.Context()
	exe := filepath.Join(dir, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if err := toolchain.Compile(ctx, res.C, exe, nil); err != nil {
		return err
	}

	out, err := toolchain.Run(ctx, exe)
	if err != nil {
		return err
	}
	io.WriteString(cmd.OutOrStdout(), out.Stdout)
	io.WriteString(cmd.ErrOrStderr(), out.Stderr)
	if out.ExitCode != 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "verac: program exited with status %d\n", out.ExitCode)
	}
	return nil
}

// ----------------------------------------------------------------------------
// doctor and version

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runDoctor checks for the C compiler "run" needs.
func runDoctor(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "vera Toolchain Doctor")
	fmt.Fprintln(w, "=====================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Go:      %s (built with)\n", runtime.Version())

	cc := toolchain.Compiler(nil)
	ccVersion, ok := "", false
	if _, err := toolchain.Lookup(cc); err == nil {
		ccVersion, ok = toolchain.Version(ctx, cc)
	}
	fmt.Fprintf(w, "%-8s %s", cc+":", ccVersion)
	if ok {
		fmt.Fprintln(w, " ✓")
	} else {
		fmt.Fprintln(w, " ✗ (not found; set CC to choose a compiler)")
	}

	fmt.Fprintf(w, "passes:  %s\n", strings.Join(passes.Names(), ", "))
	fmt.Fprintln(w)

	if !ok {
		return errToolsMissing
	}
	fmt.Fprintln(w, "All required tools available!")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "verac version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go version %s\n", runtime.Version())
		},
	}
}
