package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper.
func (p *printer) field(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) block(label string, b *Block) {
	if b == nil {
		return
	}
	p.field(label, b)
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *Number:
		p.printf("Number %s\n", n.Value)

	case *StringLit:
		p.printf("StringLit %q\n", n.Value)

	case *BoolLit:
		p.printf("BoolLit %t\n", n.Value)

	case *Name:
		p.printf("Name %s (%s)\n", n.Value, n.Type)

	case *BinaryOp:
		p.printf("BinaryOp %s\n", n.Op)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *Declaration:
		p.printf("Declaration %s %s %s\n", n.pos, n.Type, n.Name.Value)
		p.indent++
		p.field("Value", n.Value)
		p.indent--

	case *ArrayLit:
		elems := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = e.Value
		}
		p.printf("ArrayLit %s array<%s> %s [%s]\n", n.pos, n.Elem, n.Name.Value, strings.Join(elems, ", "))

	case *UniqueOp:
		p.printf("UniqueOp %s %s%s\n", n.pos, n.Name.Value, n.Op)

	case *Assign:
		p.printf("Assign %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.field("Value", n.Value)
		p.indent--

	case *Print:
		p.printf("Print %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.block("Body", n.Body)
		for _, e := range n.ElseIfs {
			p.print(e)
		}
		if n.Else != nil {
			p.print(n.Else)
		}
		p.indent--

	case *ElseIfStmt:
		p.printf("ElseIfStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.block("Body", n.Body)
		p.indent--

	case *ElseStmt:
		p.printf("ElseStmt %s\n", n.pos)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		p.field("Cond", n.Cond)
		if n.Post != nil {
			p.field("Post", n.Post)
		}
		p.block("Body", n.Body)
		p.indent--

	default:
		p.printf("%T\n", n)
	}
}
