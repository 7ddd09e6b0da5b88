package passes

import (
	"math"
	"strconv"

	"github.com/you-not-fish/vera/internal/syntax"
)

// ConstFold folds arithmetic and comparisons over integer literals.
// It also replaces a reference to an integer or string variable with
// the literal it was declared with, provided nothing in the program
// assigns, increments or decrements that variable. Results that would overflow
// a 32-bit int and divisions by zero are left alone.
func ConstFold(prog *syntax.Program, info *syntax.Info) *syntax.Program {
	f := &folder{info: info, mutated: mutatedSymbols(prog, info)}
	return f.program(prog)
}

type folder struct {
	info    *syntax.Info
	mutated map[*syntax.Symbol]bool
}

// mutatedSymbols collects every symbol that is assigned to or is the
// target of ++ or --.
func mutatedSymbols(prog *syntax.Program, info *syntax.Info) map[*syntax.Symbol]bool {
	m := make(map[*syntax.Symbol]bool)
	mark := func(n *syntax.Name) {
		if sym := info.SymbolOf(n); sym != nil {
			m[sym] = true
		}
	}
	syntax.Inspect(prog, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.UniqueOp:
			mark(n.Name)
		case *syntax.Assign:
			mark(n.Name)
		}
		return true
	})
	return m
}

func (f *folder) program(prog *syntax.Program) *syntax.Program {
	cp := *prog
	cp.Body = f.block(prog.Body)
	f.inherit(&cp, prog)
	return &cp
}

func (f *folder) block(b *syntax.Block) *syntax.Block {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Stmts = make([]syntax.Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		cp.Stmts[i] = f.stmt(s)
	}
	f.inherit(&cp, b)
	return &cp
}

// inherit gives a rebuilt node the scope of the node it replaces.
func (f *folder) inherit(to, from syntax.Node) {
	if s := f.info.Scopes[from]; s != nil {
		f.info.Scopes[to] = s
	}
}

func (f *folder) stmt(s syntax.Stmt) syntax.Stmt {
	switch s := s.(type) {
	case *syntax.Declaration:
		cp := *s
		cp.Value = f.expr(s.Value)
		return &cp

	case *syntax.Assign:
		cp := *s
		cp.Value = f.expr(s.Value)
		return &cp

	case *syntax.Print:
		cp := *s
		cp.X = f.expr(s.X)
		return &cp

	case *syntax.IfStmt:
		cp := *s
		cp.Cond = f.expr(s.Cond)
		cp.Body = f.block(s.Body)
		cp.ElseIfs = make([]*syntax.ElseIfStmt, len(s.ElseIfs))
		for i, e := range s.ElseIfs {
			ecp := *e
			ecp.Cond = f.expr(e.Cond)
			ecp.Body = f.block(e.Body)
			cp.ElseIfs[i] = &ecp
		}
		if s.Else != nil {
			ecp := *s.Else
			ecp.Body = f.block(s.Else.Body)
			cp.Else = &ecp
		}
		return &cp

	case *syntax.ForStmt:
		cp := *s
		if s.Init != nil {
			init := *s.Init
			init.Value = f.expr(s.Init.Value)
			cp.Init = &init
		}
		cp.Cond = f.expr(s.Cond)
		cp.Body = f.block(s.Body)
		f.inherit(&cp, s)
		return &cp
	}

	// ArrayLit and UniqueOp hold nothing foldable.
	return s
}

func (f *folder) expr(e syntax.Expr) syntax.Expr {
	switch e := e.(type) {
	case *syntax.Name:
		return f.substitute(e)

	case *syntax.BinaryOp:
		x, y := f.expr(e.X), f.expr(e.Y)
		if v, ok := evalBinary(e.Op, x, y); ok {
			n := &syntax.Number{Value: v}
			n.SetPos(e.Pos())
			return n
		}
		cp := *e
		cp.X, cp.Y = x, y
		return &cp
	}
	return e
}

// substitute replaces n with a copy of its declared literal when that
// is safe. The Name node itself is shared, not copied, so the tables
// keep resolving it.
func (f *folder) substitute(n *syntax.Name) syntax.Expr {
	sym := f.info.Uses[n]
	if sym == nil || sym.Array || f.mutated[sym] {
		return n
	}
	switch lit := f.info.Values[sym].(type) {
	case *syntax.Number:
		if sym.Type == syntax.TypeInteger {
			cp := *lit
			cp.SetPos(n.Pos())
			return &cp
		}
	case *syntax.StringLit:
		if sym.Type == syntax.TypeString {
			cp := *lit
			cp.SetPos(n.Pos())
			return &cp
		}
	}
	return n
}

// evalBinary computes x op y when both are integer literals, using C
// int semantics.
func evalBinary(op syntax.Token, x, y syntax.Expr) (string, bool) {
	a, ok := intValue(x)
	if !ok {
		return "", false
	}
	b, ok := intValue(y)
	if !ok {
		return "", false
	}

	var r int64
	switch op {
	case syntax.Add:
		r = a + b
	case syntax.Sub:
		r = a - b
	case syntax.Mul:
		r = a * b
	case syntax.Div:
		if b == 0 {
			return "", false
		}
		r = a / b
	case syntax.Eql:
		r = boolInt(a == b)
	case syntax.Neq:
		r = boolInt(a != b)
	case syntax.Lss:
		r = boolInt(a < b)
	case syntax.Leq:
		r = boolInt(a <= b)
	case syntax.Gtr:
		r = boolInt(a > b)
	case syntax.Geq:
		r = boolInt(a >= b)
	default:
		return "", false
	}

	if r < math.MinInt32 || r > math.MaxInt32 {
		return "", false
	}
	return strconv.FormatInt(r, 10), true
}

func intValue(e syntax.Expr) (int64, bool) {
	n, ok := e.(*syntax.Number)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(n.Value, 10, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
