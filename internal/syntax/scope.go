package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is a declared variable.
type Symbol struct {
	Name  string
	Type  BasicType // element type for arrays
	Array bool
	Len   int // number of elements, arrays only
	Pos   Pos // position of the declaring identifier

	scope *Scope
}

// Scope returns the scope the symbol was declared in.
func (s *Symbol) Scope() *Scope {
	return s.scope
}

func (s *Symbol) String() string {
	if s.Array {
		return fmt.Sprintf("array<%s>[%d]", s.Type, s.Len)
	}
	return s.Type.String()
}

// Scope maps names to symbols for one block. Scopes form a tree rooted
// at the program body; lookups walk outwards through the parents.
type Scope struct {
	parent   *Scope
	children []*Scope
	elems    map[string]*Symbol
	pos      Pos
	comment  string // "main", "if", "for", ...
}

// NewScope creates a scope nested in parent, which may be nil.
func NewScope(parent *Scope, pos Pos, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]*Symbol),
		pos:     pos,
		comment: comment,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the enclosing scope, or nil for the outermost one.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Pos returns the position where the scope begins.
func (s *Scope) Pos() Pos {
	return s.pos
}

// Comment describes the construct that opened the scope.
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the symbol named name in s itself, or nil.
func (s *Scope) Lookup(name string) *Symbol {
	return s.elems[name]
}

// LookupParent searches s and then its parents for name and returns
// the symbol and the scope it was found in, or (nil, nil).
func (s *Scope) LookupParent(name string) (*Symbol, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.elems[name]; sym != nil {
			return sym, scope
		}
	}
	return nil, nil
}

// Insert adds sym to s. If s already holds a symbol with the same name,
// Insert leaves s unchanged and returns the existing symbol.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing := s.elems[sym.Name]; existing != nil {
		return existing
	}
	s.elems[sym.Name] = sym
	sym.scope = s
	return nil
}

// Names returns the names declared directly in s, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the scope tree for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s {\n", prefix, s.comment)
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, s.elems[name])
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}

// ValueTable records, per symbol, the literal it was initialized with.
// The parser fills it but never substitutes from it; it is input for
// explicit analysis passes only.
type ValueTable map[*Symbol]Expr

// Info holds the tables built while parsing one program. It is owned by
// a single translation and must not be shared between parses.
type Info struct {
	Defs    map[*Name]*Symbol // declaring identifiers
	Uses    map[*Name]*Symbol // referencing identifiers
	Scopes  map[Node]*Scope   // *Program, *Block and *ForStmt to their scope
	Symbols []*Symbol         // all symbols in declaration order
	Values  ValueTable
}

// NewInfo returns an Info with all maps allocated.
func NewInfo() *Info {
	return &Info{
		Defs:   make(map[*Name]*Symbol),
		Uses:   make(map[*Name]*Symbol),
		Scopes: make(map[Node]*Scope),
		Values: make(ValueTable),
	}
}

// SymbolOf returns the symbol an identifier declares or refers to.
func (info *Info) SymbolOf(n *Name) *Symbol {
	if sym := info.Defs[n]; sym != nil {
		return sym
	}
	return info.Uses[n]
}
