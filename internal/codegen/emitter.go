package codegen

import (
	"fmt"
	"io"
)

// emitter wraps an io.Writer with helpers for emitting C source text.
// Writes after the first failure are dropped; err holds that failure.
type emitter struct {
	w      io.Writer
	err    error  // first write error
	indent string // one level of indentation
	level  int    // current nesting depth
}

// emit writes a formatted line at column zero.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// emitStmt writes a formatted line at the current nesting depth.
func (e *emitter) emitStmt(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	for i := 0; i < e.level && e.err == nil; i++ {
		_, e.err = io.WriteString(e.w, e.indent)
	}
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

func (e *emitter) push() { e.level++ }
func (e *emitter) pop()  { e.level-- }
