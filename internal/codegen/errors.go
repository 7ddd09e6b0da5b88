package codegen

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/vera/internal/syntax"
)

var (
	// ErrUnsupported indicates a tree shape with no C emission rule.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrSymbol indicates an identifier missing from the symbol table.
	ErrSymbol = errors.New("symbol lookup failed")
)

// Error is a code generation failure at a specific node.
type Error struct {
	Node syntax.Node // offending node, may be nil
	Msg  string
	Kind error // ErrUnsupported or ErrSymbol
}

func (e *Error) Error() string {
	if e.Node != nil && e.Node.Pos().IsValid() {
		return fmt.Sprintf("%s: codegen error: %s", e.Node.Pos(), e.Msg)
	}
	return "codegen error: " + e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func unsupported(n syntax.Node, format string, args ...interface{}) *Error {
	return &Error{Node: n, Msg: fmt.Sprintf(format, args...), Kind: ErrUnsupported}
}

func missingSymbol(n *syntax.Name) *Error {
	return &Error{Node: n, Msg: "no symbol for " + n.Value, Kind: ErrSymbol}
}
