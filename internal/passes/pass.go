// Package passes runs opt-in transformations over a parsed program.
// Passes never modify the tree they are given; they return a new one.
package passes

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/you-not-fish/vera/internal/syntax"
)

// Pass describes a single AST pass. Fn returns the rewritten program;
// it may add entries to info for the nodes it creates.
type Pass struct {
	Name string
	Fn   func(prog *syntax.Program, info *syntax.Info) *syntax.Program
}

// Config controls pass execution behavior.
type Config struct {
	DumpBefore string    // dump the AST before this pass ("*" for all)
	DumpAfter  string    // dump the AST after this pass ("*" for all)
	Verify     bool      // check identifier resolution before/after each pass
	Out        io.Writer // dump destination, default os.Stderr
}

var registry = map[string]Pass{
	"fold": {Name: "fold", Fn: ConstFold},
}

// Lookup returns the registered pass called name.
func Lookup(name string) (Pass, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists the registered passes, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the given passes on prog in order and returns the final
// program.
func Run(prog *syntax.Program, info *syntax.Info, passes []Pass, cfg Config) (*syntax.Program, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) {
			fmt.Fprintf(out, "--- before %s ---\n", p.Name)
			syntax.Fprint(out, prog)
			fmt.Fprintln(out)
		}

		if cfg.Verify {
			if err := Verify(prog, info); err != nil {
				return nil, fmt.Errorf("verify before %s: %w", p.Name, err)
			}
		}

		next := p.Fn(prog, info)
		if next == nil {
			return nil, fmt.Errorf("pass %s returned no program", p.Name)
		}
		prog = next

		if cfg.Verify {
			if err := Verify(prog, info); err != nil {
				return nil, fmt.Errorf("verify after %s: %w", p.Name, err)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) {
			fmt.Fprintf(out, "--- after %s ---\n", p.Name)
			syntax.Fprint(out, prog)
			fmt.Fprintln(out)
		}
	}
	return prog, nil
}

// Verify checks that every identifier in prog resolves through info.
func Verify(prog *syntax.Program, info *syntax.Info) error {
	var err error
	syntax.Inspect(prog, func(n syntax.Node) bool {
		if err != nil {
			return false
		}
		if name, ok := n.(*syntax.Name); ok && info.SymbolOf(name) == nil {
			err = fmt.Errorf("%s: identifier %s has no symbol", name.Pos(), name.Value)
		}
		return true
	})
	return err
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}
