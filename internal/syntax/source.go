package syntax

import (
	"io"
	"unicode/utf8"
)

// source reads UTF-8 text one character at a time and tracks the
// line and column of the current character.
type source struct {
	buf      []byte
	filename string
	line     uint32
	col      uint32

	ch   rune // current character, -1 at EOF
	offs int  // byte offset of the next character

	errh func(pos Pos, ch rune, msg string)
}

// newSource reads all of src into memory and positions the reader on
// the first character. errh may be nil.
func newSource(filename string, src io.Reader, errh func(pos Pos, ch rune, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		col:      0,  // becomes 1 on the first nextch
		ch:       -1, // "before the first character"
		errh:     errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		s.ch = -1
		return s
	}

	s.nextch()
	return s
}

// nextch advances to the next character. After it returns, (line, col)
// is the position of s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// error reports a lexical error at the current character.
func (s *source) error(msg string) {
	s.errorAt(s.pos(), s.ch, msg)
}

func (s *source) errorAt(pos Pos, ch rune, msg string) {
	if s.errh != nil {
		s.errh(pos, ch, msg)
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r separates tokens. Newlines carry no
// meaning in the language and are skipped like any other blank.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
