// Package syntax implements lexical and syntactic analysis for the vera
// teaching language, together with the symbol table built while parsing.
package syntax

import "fmt"

// Token represents the kind of a lexical token.
type Token uint

const (
	_EOF Token = iota // end of input

	// Literals
	_Name   // identifier: x, total, i
	_IntLit // decimal integer, kept as text
	_StrLit // double-quoted text, no escapes

	// Arithmetic operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /

	// Relational operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	_Assign // =
	_Inc    // ++
	_Dec    // --

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;

	// Keywords
	_Array
	_Boolean
	_Else
	_ElseIf
	_False
	_For
	_If
	_Integer
	_Main
	_Print
	_String
	_True

	tokenCount
)

var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:   "NAME",
	_IntLit: "INT",
	_StrLit: "STRING",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Assign: "=",
	_Inc:    "++",
	_Dec:    "--",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",

	_Array:   "array",
	_Boolean: "boolean",
	_Else:    "else",
	_ElseIf:  "elseif",
	_False:   "false",
	_For:     "for",
	_If:      "if",
	_Integer: "integer",
	_Main:    "main",
	_Print:   "print",
	_String:  "string",
	_True:    "true",
}

// String returns the source spelling of t, or its class name for
// literals and identifiers.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a reserved word.
func (t Token) IsKeyword() bool {
	return t >= _Array && t <= _True
}

// IsRelational reports whether t compares two operands.
func (t Token) IsRelational() bool {
	return t >= _Eql && t <= _Geq
}

func (t Token) isArith() bool {
	return t >= _Add && t <= _Div
}

// IsTypeName reports whether t names one of the primitive types.
func (t Token) IsTypeName() bool {
	return t == _Integer || t == _String || t == _Boolean
}

var keywords = map[string]Token{
	"array":   _Array,
	"boolean": _Boolean,
	"else":    _Else,
	"elseif":  _ElseIf,
	"false":   _False,
	"for":     _For,
	"if":      _If,
	"integer": _Integer,
	"main":    _Main,
	"print":   _Print,
	"string":  _String,
	"true":    _True,
}

// LookupKeyword returns the keyword token for ident, or _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// Lexeme is one token of a tokenized source together with its text and
// start position. For identifiers and literals Lit holds the name or
// the literal text; for everything else it is the token spelling.
type Lexeme struct {
	Tok Token
	Lit string
	Pos Pos
}

func (l Lexeme) String() string {
	switch l.Tok {
	case _Name, _IntLit:
		return fmt.Sprintf("%s(%s)", l.Tok, l.Lit)
	case _StrLit:
		return fmt.Sprintf("%s(%q)", l.Tok, l.Lit)
	}
	return l.Tok.String()
}
