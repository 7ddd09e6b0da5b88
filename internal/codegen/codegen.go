// Package codegen turns a parsed vera program into C99 source text.
package codegen

import (
	"bytes"
	"io"
	"strings"

	"github.com/you-not-fish/vera/internal/syntax"
)

// Generate returns the C translation of prog. info must be the table
// produced when prog was parsed.
func Generate(prog *syntax.Program, info *syntax.Info, opt *Options) (string, error) {
	var buf bytes.Buffer
	if err := generate(&buf, prog, info, opt); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fprint writes the C translation of prog to w. Nothing is written if
// generation fails.
func Fprint(w io.Writer, prog *syntax.Program, info *syntax.Info, opt *Options) error {
	var buf bytes.Buffer
	if err := generate(&buf, prog, info, opt); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type generator struct {
	e    *emitter
	info *syntax.Info
}

func generate(w io.Writer, prog *syntax.Program, info *syntax.Info, opt *Options) error {
	if prog == nil || prog.Body == nil {
		return unsupported(nil, "no program to translate")
	}
	if info == nil {
		return &Error{Msg: "no symbol table", Kind: ErrSymbol}
	}

	o := opt.normalize()
	g := &generator{
		e:    &emitter{w: w, indent: o.Indent},
		info: info,
	}

	g.e.emit("#include <stdio.h>")
	g.e.emitLine()
	g.e.emit("int main(void) {")
	g.e.push()
	if err := g.stmts(prog.Body.Stmts); err != nil {
		return err
	}
	g.e.emitStmt("return 0;")
	g.e.pop()
	g.e.emit("}")
	return g.e.err
}

func (g *generator) stmts(list []syntax.Stmt) error {
	for _, s := range list {
		if err := g.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// body emits the statements of a block one level deeper.
func (g *generator) body(b *syntax.Block) error {
	if b == nil {
		return nil
	}
	g.e.push()
	defer g.e.pop()
	return g.stmts(b.Stmts)
}

func (g *generator) stmt(s syntax.Stmt) error {
	switch s := s.(type) {
	case *syntax.Declaration:
		decl, err := g.declaration(s, true)
		if err != nil {
			return err
		}
		g.e.emitStmt("%s;", decl)

	case *syntax.ArrayLit:
		return g.arrayLit(s)

	case *syntax.Assign:
		return g.assign(s)

	case *syntax.UniqueOp:
		step, err := g.step(s)
		if err != nil {
			return err
		}
		g.e.emitStmt("%s;", step)

	case *syntax.Print:
		return g.print(s)

	case *syntax.IfStmt:
		return g.ifStmt(s)

	case *syntax.ForStmt:
		return g.forStmt(s)

	case nil:
		return unsupported(nil, "missing statement")

	default:
		return unsupported(s, "no C translation for %T", s)
	}
	return nil
}

// declaration renders "ctype name = value" without the semicolon, so
// the same text serves as a for-loop initializer.
func (g *generator) declaration(d *syntax.Declaration, paren bool) (string, error) {
	ctype, ok := cType(d.Type)
	if !ok {
		return "", unsupported(d, "declaration of %s has no C type", d.Type)
	}
	if d.Name == nil {
		return "", unsupported(d, "declaration without a name")
	}
	value, err := g.expr(d.Value, paren)
	if err != nil {
		return "", err
	}
	return declarator(ctype, cName(d.Name.Value)) + " = " + value, nil
}

func (g *generator) arrayLit(a *syntax.ArrayLit) error {
	ctype, ok := cType(a.Elem)
	if !ok || a.Elem == syntax.TypeString {
		return unsupported(a, "array of %s has no C translation", a.Elem)
	}
	if len(a.Elems) == 0 {
		return unsupported(a, "empty array %s", a.Name.Value)
	}

	elems := make([]string, len(a.Elems))
	for i, n := range a.Elems {
		elems[i] = cNumber(n.Value)
	}
	g.e.emitStmt("%s[%d] = { %s };", declarator(ctype, cName(a.Name.Value)), len(a.Elems), strings.Join(elems, ", "))
	return nil
}

func (g *generator) assign(a *syntax.Assign) error {
	if a.Name == nil {
		return unsupported(a, "assignment without a target")
	}
	sym := g.info.SymbolOf(a.Name)
	if sym == nil {
		return missingSymbol(a.Name)
	}
	if sym.Array {
		return unsupported(a, "cannot assign to array %s", a.Name.Value)
	}
	value, err := g.expr(a.Value, true)
	if err != nil {
		return err
	}
	g.e.emitStmt("%s = %s;", cName(a.Name.Value), value)
	return nil
}

// step renders "name++" or "name--" without the semicolon.
func (g *generator) step(u *syntax.UniqueOp) (string, error) {
	op, ok := stepOps[u.Op]
	if !ok {
		return "", unsupported(u, "unknown step operator %s", u.Op)
	}
	return cName(u.Name.Value) + op, nil
}

func (g *generator) print(p *syntax.Print) error {
	switch x := p.X.(type) {
	case *syntax.StringLit:
		g.e.emitStmt(`printf("%%s", %s);`, cQuote(x.Value))

	case *syntax.Number:
		g.e.emitStmt(`printf("%%d", %s);`, cNumber(x.Value))

	case *syntax.Name:
		sym := g.info.SymbolOf(x)
		if sym == nil {
			return missingSymbol(x)
		}
		if sym.Array {
			return unsupported(x, "cannot print array %s", x.Value)
		}
		name := cName(x.Value)
		switch sym.Type {
		case syntax.TypeInteger:
			g.e.emitStmt(`printf("%%d", %s);`, name)
		case syntax.TypeString:
			g.e.emitStmt(`printf("%%s", %s);`, name)
		case syntax.TypeBoolean:
			g.e.emitStmt(`printf("%%s", %s ? "true" : "false");`, name)
		default:
			return unsupported(x, "no print format for %s", sym.Type)
		}

	default:
		return unsupported(p, "print of %T", p.X)
	}
	return nil
}

func (g *generator) ifStmt(s *syntax.IfStmt) error {
	cond, err := g.expr(s.Cond, false)
	if err != nil {
		return err
	}
	g.e.emitStmt("if (%s) {", cond)
	if err := g.body(s.Body); err != nil {
		return err
	}

	for _, e := range s.ElseIfs {
		cond, err := g.expr(e.Cond, false)
		if err != nil {
			return err
		}
		g.e.emitStmt("} else if (%s) {", cond)
		if err := g.body(e.Body); err != nil {
			return err
		}
	}

	if s.Else != nil {
		g.e.emitStmt("} else {")
		if err := g.body(s.Else.Body); err != nil {
			return err
		}
	}
	g.e.emitStmt("}")
	return nil
}

func (g *generator) forStmt(s *syntax.ForStmt) error {
	if s.Init == nil || s.Post == nil {
		return unsupported(s, "for loop without initializer or step")
	}
	init, err := g.declaration(s.Init, false)
	if err != nil {
		return err
	}
	cond, err := g.expr(s.Cond, false)
	if err != nil {
		return err
	}
	step, err := g.step(s.Post)
	if err != nil {
		return err
	}

	g.e.emitStmt("for (%s; %s; %s) {", init, cond, step)
	if err := g.body(s.Body); err != nil {
		return err
	}
	g.e.emitStmt("}")
	return nil
}

// expr renders e. When paren is set an outermost BinaryOp is wrapped in
// parentheses; nested operations always are.
func (g *generator) expr(e syntax.Expr, paren bool) (string, error) {
	switch e := e.(type) {
	case *syntax.Number:
		return cNumber(e.Value), nil

	case *syntax.StringLit:
		return cQuote(e.Value), nil

	case *syntax.BoolLit:
		if e.Value {
			return "1", nil
		}
		return "0", nil

	case *syntax.Name:
		if sym := g.info.SymbolOf(e); sym != nil && sym.Array {
			return "", unsupported(e, "array %s cannot be used as a value", e.Value)
		}
		return cName(e.Value), nil

	case *syntax.BinaryOp:
		op, ok := binaryOps[e.Op]
		if !ok {
			return "", unsupported(e, "unknown operator %s", e.Op)
		}
		x, err := g.expr(e.X, true)
		if err != nil {
			return "", err
		}
		y, err := g.expr(e.Y, true)
		if err != nil {
			return "", err
		}
		s := x + " " + op + " " + y
		if paren {
			s = "(" + s + ")"
		}
		return s, nil

	case nil:
		return "", unsupported(nil, "missing expression")

	default:
		return "", unsupported(e, "no C translation for %T", e)
	}
}
