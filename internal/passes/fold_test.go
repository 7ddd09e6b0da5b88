package passes

import (
	"bytes"
	"testing"

	"github.com/you-not-fish/vera/internal/syntax"
)

func summary(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Number:
		return e.Value
	case *syntax.StringLit:
		return `"` + e.Value + `"`
	case *syntax.Name:
		return e.Value
	case *syntax.BinaryOp:
		return "(" + summary(e.X) + " " + e.Op.String() + " " + summary(e.Y) + ")"
	}
	return "?"
}

func dump(n syntax.Node) string {
	var buf bytes.Buffer
	syntax.Fprint(&buf, n)
	return buf.String()
}

func TestConstFoldDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // value of the last declaration
	}{
		{"add", "integer r = 2 + 3", "5"},
		{"precedence", "integer r = 2 + 3 * 4", "14"},
		{"nested parens", "integer r = (10 - 4) / (1 + 2)", "2"},
		{"truncating division", "integer r = 7 / 2", "3"},
		{"negative result", "integer r = 1 - 4", "-3"},
		{"division by zero", "integer r = 1 / 0", "(1 / 0)"},
		{"partial", "integer r = 1 / 0 + 2 * 2", "((1 / 0) + 4)"},
		{"overflow", "integer r = 2147483647 + 1", "(2147483647 + 1)"},
		{"literal out of range", "integer r = 99999999999 * 1", "(99999999999 * 1)"},
		{"substitute constant", "integer k = 4 integer r = k * k", "16"},
		{"computed initializer", "integer k = 4 + 0 integer r = k", "k"},
		{"mutated variable", "integer k = 4 k++ integer r = k + 1", "(k + 1)"},
		{"mutated later", "integer k = 4 integer r = k + 1 k--", "(k + 1)"},
		{"string constant", `string s = "hi" string r = s`, `"hi"`},
		{"boolean kept", "boolean b = true boolean r = b", "b"},
		{"assigned variable", "integer k = 4 k = 5 integer r = k + 1", "(k + 1)"},
		{"assigned later", "integer k = 4 integer r = k * 2 k = 0", "(k * 2)"},
		{"assigned string", `string s = "a" s = "b" string r = s`, "s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, info := mustParse(t, "main() { "+tt.src+" }")
			out := ConstFold(prog, info)

			var last *syntax.Declaration
			for _, s := range out.Body.Stmts {
				if d, ok := s.(*syntax.Declaration); ok {
					last = d
				}
			}
			if got := summary(last.Value); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConstFoldConditions(t *testing.T) {
	src := `main() {
	integer n = 3
	if (1 < 2) { print(1) } elseif (n == 3) { print(2) } else { print(3) }
	for(integer i = 0; i < n; i++) { print(i) }
}`
	prog, info := mustParse(t, src)
	out := ConstFold(prog, info)

	ifs := out.Body.Stmts[1].(*syntax.IfStmt)
	if got := summary(ifs.Cond); got != "1" {
		t.Errorf("if cond = %s, want 1", got)
	}
	if got := summary(ifs.ElseIfs[0].Cond); got != "1" {
		t.Errorf("elseif cond = %s, want 1", got)
	}

	loop := out.Body.Stmts[2].(*syntax.ForStmt)
	if got := summary(loop.Cond); got != "(i < 3)" {
		t.Errorf("for cond = %s, want (i < 3)", got)
	}
	if got := summary(loop.Body.Stmts[0].(*syntax.Print).X); got != "i" {
		t.Errorf("loop body print = %s, want i", got)
	}
	if info.Scopes[loop] == nil || info.Scopes[loop.Body] == nil {
		t.Error("rebuilt loop lost its scopes")
	}
}

func TestConstFoldPrint(t *testing.T) {
	prog, info := mustParse(t, `main() { integer x = 6 string s = "yo" print(x) print(s) }`)
	out := ConstFold(prog, info)

	px := out.Body.Stmts[2].(*syntax.Print).X
	ps := out.Body.Stmts[3].(*syntax.Print).X
	if summary(px) != "6" || summary(ps) != `"yo"` {
		t.Errorf("prints = %s, %s", summary(px), summary(ps))
	}
	if got := px.Pos().String(); got != "test.vera:1:46" {
		t.Errorf("substituted literal pos = %s, want the use site", got)
	}
}

func TestConstFoldDoesNotMutate(t *testing.T) {
	src := `main() {
	integer x = 2 * 3
	integer y = x + 1
	if (x > y) { print(x) }
	for(integer i = 0; i < x; i++) { print(i) }
}`
	prog, info := mustParse(t, src)
	before := dump(prog)

	out := ConstFold(prog, info)
	if out == prog {
		t.Fatal("ConstFold returned its input")
	}
	if after := dump(prog); after != before {
		t.Errorf("input tree changed:\nbefore:\n%s\nafter:\n%s", before, after)
	}
	if dump(out) == before {
		t.Error("nothing was folded")
	}
}

func TestConstFoldAssignThenPrint(t *testing.T) {
	src := `main() {
	integer n = 1
	integer k = 2
	n = 2 * 5
	print(n)
	print(k)
}`
	prog, info := mustParse(t, src)
	out := ConstFold(prog, info)

	a := out.Body.Stmts[2].(*syntax.Assign)
	if got := summary(a.Value); got != "10" {
		t.Errorf("assigned value = %s, want 10", got)
	}
	if got := summary(out.Body.Stmts[3].(*syntax.Print).X); got != "n" {
		t.Errorf("print(n) = %s, want the variable kept", got)
	}
	if got := summary(out.Body.Stmts[4].(*syntax.Print).X); got != "2" {
		t.Errorf("print(k) = %s, want 2", got)
	}
	if a == prog.Body.Stmts[2] {
		t.Error("assignment should be rebuilt, not shared")
	}
}

func TestConstFoldKeepsArraysAndSteps(t *testing.T) {
	prog, info := mustParse(t, "main() { array<integer> a = [1, 2] integer n = 1 n++ }")
	out := ConstFold(prog, info)
	if out.Body.Stmts[0] != prog.Body.Stmts[0] {
		t.Error("array literal should be shared unchanged")
	}
	if out.Body.Stmts[2] != prog.Body.Stmts[2] {
		t.Error("increment should be shared unchanged")
	}
}
