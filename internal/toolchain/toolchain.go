// Package toolchain wraps the external programs a translated program
// needs: a C compiler to build it and the OS to run it.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Config selects the C compiler.
type Config struct {
	// CC is the compiler command. Default is $CC, then "cc".
	CC string
	// Flags are passed before the output and input arguments.
	// Default is -std=c99.
	Flags []string
}

// normalize normalizes the Config.
func (c *Config) normalize() Config {
	var out Config
	if c != nil {
		out = *c
	}
	if out.CC == "" {
		out.CC = os.Getenv("CC")
	}
	if out.CC == "" {
		out.CC = "cc"
	}
	if out.Flags == nil {
		out.Flags = []string{"-std=c99"}
	}
	return out
}

// CompileError reports a failed compiler invocation.
type CompileError struct {
	CC         string
	ExitStatus int    // compiler exit status, -1 if it did not run
	Output     string // combined compiler output
	Err        error
}

func (e *CompileError) Error() string {
	var b strings.Builder
	if e.ExitStatus < 0 {
		fmt.Fprintf(&b, "%s: %v", e.CC, e.Err)
	} else {
		fmt.Fprintf(&b, "%s failed with exit status %d", e.CC, e.ExitStatus)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile writes cSource to a temporary file and compiles it to the
// executable outputPath. A compiler failure is a *CompileError.
func Compile(ctx context.Context, cSource, outputPath string, cfg *Config) error {
	c := cfg.normalize()

	dir, err := os.MkdirTemp("", "vera-*")
	if err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(dir)

	cFile := filepath.Join(dir, "main.c")
	if err := os.WriteFile(cFile, []byte(cSource), 0o600); err != nil {
		return fmt.Errorf("write C source: %w", err)
	}

	args := append(append([]string{}, c.Flags...), "-o", outputPath, cFile)
	cmd := exec.CommandContext(ctx, c.CC, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		status := -1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			status = ee.ExitCode()
		}
		return &CompileError{CC: c.CC, ExitStatus: status, Output: string(out), Err: err}
	}
	return nil
}

// RunResult is the captured outcome of running a program.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes exe and captures its output. A non-zero exit is
// reported in the result, not as an error.
func Run(ctx context.Context, exe string) (*RunResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &RunResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			return nil, fmt.Errorf("run %s: %w", exe, err)
		}
		res.ExitCode = ee.ExitCode()
	}
	return res, nil
}

// Lookup reports where name resolves on PATH.
func Lookup(name string) (string, error) {
	return exec.LookPath(name)
}

// Compiler returns the compiler command Compile would use for cfg.
func Compiler(cfg *Config) string {
	return cfg.normalize().CC
}

// Version runs "name --version" and returns the first line of output.
func Version(ctx context.Context, name string) (string, bool) {
	out, err := exec.CommandContext(ctx, name, "--version").Output()
	if err != nil {
		return "", false
	}
	return firstLine(string(out)), true
}

// firstLine returns the first line of s, trimmed and truncated for
// display.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	line = strings.TrimSpace(line)
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line
}
