package syntax

import (
	"strings"
	"testing"
)

func TestSourceNewline(t *testing.T) {
	src := newSource("t.vera", strings.NewReader("a\nb"), nil)

	steps := []struct {
		ch        rune
		line, col uint32
	}{
		{'a', 1, 1},
		{'\n', 1, 2},
		{'b', 2, 1},
		{-1, 2, 2},
	}
	for i, want := range steps {
		if i > 0 {
			src.nextch()
		}
		if src.ch != want.ch || src.line != want.line || src.col != want.col {
			t.Errorf("step %d: got %q at %d:%d, want %q at %d:%d",
				i, src.ch, src.line, src.col, want.ch, want.line, want.col)
		}
	}
}

func TestSourceUTF8Columns(t *testing.T) {
	src := newSource("t.vera", strings.NewReader("a中b"), nil)
	src.nextch()
	src.nextch()
	if src.ch != 'b' || src.col != 3 {
		t.Errorf("got %q at col %d, want 'b' at col 3", src.ch, src.col)
	}
}

func TestSourceEmpty(t *testing.T) {
	src := newSource("t.vera", strings.NewReader(""), nil)
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1", src.ch)
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	var got string
	var gotPos Pos
	errh := func(pos Pos, ch rune, msg string) {
		gotPos, got = pos, msg
	}
	newSource("t.vera", strings.NewReader("\xff"), errh)
	if got != "invalid UTF-8 encoding" {
		t.Errorf("msg = %q", got)
	}
	if gotPos.String() != "t.vera:1:1" {
		t.Errorf("pos = %s, want t.vera:1:1", gotPos)
	}
}

func TestIsWhitespace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\r', '\n'} {
		if !isWhitespace(r) {
			t.Errorf("isWhitespace(%q) = false", r)
		}
	}
	for _, r := range []rune{'a', '0', '"', '!'} {
		if isWhitespace(r) {
			t.Errorf("isWhitespace(%q) = true", r)
		}
	}
}
