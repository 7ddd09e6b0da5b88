package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrLex indicates a lexer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a parser failure.
	ErrParse = errors.New("parse error")
)

// LexError reports a character the lexer cannot turn into a token.
type LexError struct {
	Pos  Pos
	Char rune // offending character, -1 at end of input
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Pos, ErrLex, e.Msg)
}

func (e *LexError) Unwrap() error { return ErrLex }

// ParseError reports the first grammar violation found by the parser.
type ParseError struct {
	Pos      Pos
	Expected string // construct the parser was looking for, if any
	Found    string // the token actually present
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Pos, ErrParse, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }
