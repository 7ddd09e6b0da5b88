// Package translate drives one vera source file through the pipeline:
// scan and parse, optional AST passes, then C generation.
package translate

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/you-not-fish/vera/internal/codegen"
	"github.com/you-not-fish/vera/internal/passes"
	"github.com/you-not-fish/vera/internal/syntax"
	"github.com/you-not-fish/vera/internal/toolchain"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitSyntax  = 1 // lex or parse error, or any failure outside the pipeline
	ExitCodegen = 2
	ExitCompile = 3
)

// ErrPass indicates an AST pass failed.
var ErrPass = errors.New("pass failed")

// Options controls a translation.
type Options struct {
	// Fold enables the constant folding pass.
	Fold bool
	// DumpBefore and DumpAfter name a pass ("*" for all) whose input or
	// output AST is written to Dump.
	DumpBefore string
	DumpAfter  string
	// Verify checks identifier resolution around every pass.
	Verify bool
	// Dump receives pass dumps (default os.Stderr).
	Dump io.Writer
	// Trace, if not nil, receives one timing line per stage.
	Trace io.Writer
	// Codegen is passed through to the C generator.
	Codegen *codegen.Options
}

// Result is a successful translation.
type Result struct {
	C       string          // generated C source
	Program *syntax.Program // tree handed to the generator, after passes
	Info    *syntax.Info    // tables built while parsing
}

// Translate reads src and returns its C translation. Each call uses its
// own parser and tables, so concurrent calls are independent. Errors
// are *syntax.LexError, *syntax.ParseError or *codegen.Error, or wrap
// ErrPass.
func Translate(filename string, src io.Reader, opt *Options) (*Result, error) {
	o := opt.normalize()

	pipeline, err := o.passes()
	if err != nil {
		return nil, err
	}

	var prog *syntax.Program
	var info *syntax.Info
	err = o.stage("parse", func() (err error) {
		prog, info, err = syntax.NewParser(filename, src).Parse()
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(pipeline) > 0 {
		err = o.stage("passes", func() (err error) {
			cfg := passes.Config{DumpBefore: o.DumpBefore, DumpAfter: o.DumpAfter, Verify: o.Verify, Out: o.Dump}
			prog, err = passes.Run(prog, info, pipeline, cfg)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPass, err)
		}
	}

	var c string
	err = o.stage("codegen", func() (err error) {
		c, err = codegen.Generate(prog, info, o.Codegen)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{C: c, Program: prog, Info: info}, nil
}

// String translates source text held in memory.
func String(filename, src string, opt *Options) (*Result, error) {
	return Translate(filename, strings.NewReader(src), opt)
}

// ExitCode maps an error from Translate or the toolchain to the
// process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ce *codegen.Error
	var te *toolchain.CompileError
	switch {
	case errors.Is(err, syntax.ErrLex), errors.Is(err, syntax.ErrParse):
		return ExitSyntax
	case errors.As(err, &ce), errors.Is(err, ErrPass):
		return ExitCodegen
	case errors.As(err, &te):
		return ExitCompile
	}
	return ExitSyntax
}

// normalize normalizes the Options.
func (o *Options) normalize() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// passes returns the enabled passes in execution order.
func (o *Options) passes() ([]passes.Pass, error) {
	var pipeline []passes.Pass
	if o.Fold {
		p, _ := passes.Lookup("fold")
		pipeline = append(pipeline, p)
	}

	for _, name := range []string{o.DumpBefore, o.DumpAfter} {
		if name == "" || name == "*" {
			continue
		}
		if _, ok := passes.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown pass %q (have: %s)", name, strings.Join(passes.Names(), ", "))
		}
	}
	return pipeline, nil
}

// stage runs fn and reports its duration to the trace writer.
func (o *Options) stage(name string, fn func() error) error {
	if o.Trace == nil {
		return fn()
	}
	start := time.Now()
	err := fn()
	status := "ok"
	if err != nil {
		status = "failed"
	}
	fmt.Fprintf(o.Trace, "trace: %-8s %-6s %v\n", name, status, time.Since(start))
	return err
}
