package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopeInsertAndLookup(t *testing.T) {
	outer := NewScope(nil, NewPos("t.vera", 1, 1), "main")
	x := &Symbol{Name: "x", Type: TypeInteger}
	if prev := outer.Insert(x); prev != nil {
		t.Fatalf("Insert into empty scope returned %v", prev)
	}
	if x.Scope() != outer {
		t.Error("Insert did not record the owning scope")
	}

	dup := &Symbol{Name: "x", Type: TypeString}
	if prev := outer.Insert(dup); prev != x {
		t.Errorf("duplicate Insert returned %v, want existing symbol", prev)
	}
	if outer.Lookup("x") != x {
		t.Error("duplicate Insert replaced the original symbol")
	}
}

func TestScopeLookupParent(t *testing.T) {
	outer := NewScope(nil, Pos{}, "main")
	inner := NewScope(outer, Pos{}, "if")
	x := &Symbol{Name: "x", Type: TypeInteger}
	outer.Insert(x)

	if inner.Lookup("x") != nil {
		t.Error("Lookup should not search parents")
	}
	sym, scope := inner.LookupParent("x")
	if sym != x || scope != outer {
		t.Errorf("LookupParent = %v, %v", sym, scope)
	}
	if sym, scope := inner.LookupParent("y"); sym != nil || scope != nil {
		t.Error("LookupParent found an undeclared name")
	}

	shadow := &Symbol{Name: "x", Type: TypeBoolean}
	inner.Insert(shadow)
	if sym, _ := inner.LookupParent("x"); sym != shadow {
		t.Error("inner declaration should shadow the outer one")
	}
}

func TestScopeTree(t *testing.T) {
	root := NewScope(nil, Pos{}, "main")
	a := NewScope(root, Pos{}, "if")
	b := NewScope(root, Pos{}, "for")

	want := "scope main {\n  scope if {\n  }\n  scope for {\n  }\n}\n"
	if diff := cmp.Diff(want, root.String()); diff != "" {
		t.Errorf("scope tree mismatch (-want +got):\n%s", diff)
	}
	if a.Parent() != root || root.Parent() != nil {
		t.Error("parent links broken")
	}
	if b.Comment() != "for" {
		t.Errorf("comment = %q", b.Comment())
	}
}

func TestScopeNamesSorted(t *testing.T) {
	s := NewScope(nil, Pos{}, "main")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.Insert(&Symbol{Name: name, Type: TypeInteger})
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, s.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
