package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on vera source text.
type Scanner struct {
	source

	tok    Token
	lit    string
	tokPos Pos

	first *LexError // first lexical error, if any

	litBuf strings.Builder
}

// NewScanner returns a Scanner reading src. errh, if not nil, is called
// for every lexical error; the scanner skips the offending character and
// keeps going, so callers that stop at the first error should check Err.
func NewScanner(filename string, src io.Reader, errh func(err *LexError)) *Scanner {
	s := &Scanner{}
	report := func(pos Pos, ch rune, msg string) {
		e := &LexError{Pos: pos, Char: ch, Msg: msg}
		if s.first == nil {
			s.first = e
		}
		if errh != nil {
			errh(e)
		}
	}
	s.source = *newSource(filename, src, report)
	return s
}

// Tokenize splits src into lexemes, ending with an EOF lexeme. It stops
// at the first lexical error and returns it as a *LexError.
func Tokenize(filename, src string) ([]Lexeme, error) {
	s := NewScanner(filename, strings.NewReader(src), nil)
	var out []Lexeme
	for {
		s.Next()
		if err := s.Err(); err != nil {
			return nil, err
		}
		out = append(out, Lexeme{Tok: s.tok, Lit: s.lit, Pos: s.tokPos})
		if s.tok == _EOF {
			return out, nil
		}
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	default:
		if !s.scanOperator() {
			goto redo
		}
	}
}

// Token returns the current token kind.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's text.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Err returns the first lexical error seen so far, or nil.
func (s *Scanner) Err() error {
	if s.first == nil {
		return nil
	}
	return s.first
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = _IntLit
}

// scanString scans a double-quoted literal. The content is kept
// verbatim: backslashes have no special meaning.
func (s *Scanner) scanString() {
	start := s.pos()
	s.nextch() // opening "
	s.litBuf.Reset()

	for s.ch != '"' {
		if s.ch == '\n' || s.ch < 0 {
			s.errorAt(start, '"', "string literal not terminated")
			break
		}
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	if s.ch == '"' {
		s.nextch()
	}

	s.lit = s.litBuf.String()
	s.tok = _StrLit
}

// scanOperator scans an operator or delimiter. It reports false when
// the character was skipped, either as a comment or after an error.
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	pos := s.pos()
	s.nextch()

	switch ch {
	case '+':
		if s.ch == '+' {
			s.nextch()
			s.tok = _Inc
		} else {
			s.tok = _Add
		}
	case '-':
		if s.ch == '-' {
			s.nextch()
			s.tok = _Dec
		} else {
			s.tok = _Sub
		}
	case '*':
		s.tok = _Mul
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return false
		}
		s.tok = _Div
	case '<':
		s.tok = s.pick('=', _Leq, _Lss)
	case '>':
		s.tok = s.pick('=', _Geq, _Gtr)
	case '=':
		s.tok = s.pick('=', _Eql, _Assign)
	case '!':
		if s.ch != '=' {
			s.errorAt(pos, ch, fmt.Sprintf("unexpected character %q (did you mean \"!=\"?)", ch))
			return false
		}
		s.nextch()
		s.tok = _Neq
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	default:
		s.errorAt(pos, ch, fmt.Sprintf("unexpected character %q", ch))
		return false
	}

	s.lit = s.tok.String()
	return true
}

// pick consumes next and returns yes if the current character is next,
// otherwise it returns no without consuming anything.
func (s *Scanner) pick(next rune, yes, no Token) Token {
	if s.ch == next {
		s.nextch()
		return yes
	}
	return no
}

func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
