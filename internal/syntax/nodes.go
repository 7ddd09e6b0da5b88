package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// Every node implements Node. Expressions and statements further
// implement Expr and Stmt; the marker methods keep the set of node
// types closed to this package.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the first character of the node
	aNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	aStmt()
}

type node struct {
	pos Pos
}

func (n *node) Pos() Pos        { return n.pos }
func (n *node) SetPos(pos Pos) { n.pos = pos }
func (n *node) aNode()         {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// BasicType is the type tag carried by declarations and identifiers.
type BasicType uint8

const (
	InvalidType BasicType = iota
	TypeInteger
	TypeString
	TypeBoolean
)

var basicTypeNames = [...]string{
	InvalidType: "invalid",
	TypeInteger: "integer",
	TypeString:  "string",
	TypeBoolean: "boolean",
}

func (t BasicType) String() string {
	if int(t) < len(basicTypeNames) {
		return basicTypeNames[t]
	}
	return "invalid"
}

// basicTypeOf maps a type keyword to its tag.
func basicTypeOf(tok Token) BasicType {
	switch tok {
	case _Integer:
		return TypeInteger
	case _String:
		return TypeString
	case _Boolean:
		return TypeBoolean
	}
	return InvalidType
}

// Operator tokens used by BinaryOp and UniqueOp, exported for the code
// generator and passes.
const (
	Add Token = _Add // +
	Sub Token = _Sub // -
	Mul Token = _Mul // *
	Div Token = _Div // /
	Eql Token = _Eql // ==
	Neq Token = _Neq // !=
	Lss Token = _Lss // <
	Leq Token = _Leq // <=
	Gtr Token = _Gtr // >
	Geq Token = _Geq // >=
	Inc Token = _Inc // ++
	Dec Token = _Dec // --
)

// ----------------------------------------------------------------------------
// Program

// Program is the root of the tree: main() { Body... }
type Program struct {
	node
	Body *Block
}

// Block is a brace-delimited statement list. Each block opens a scope.
type Block struct {
	node
	Stmts  []Stmt
	Rbrace Pos
}

// ----------------------------------------------------------------------------
// Expressions

// Number is an integer literal, kept as source text.
type Number struct {
	expr
	Value string
}

// StringLit is a string literal. Value is the text between the quotes.
type StringLit struct {
	expr
	Value string
}

// BoolLit is a boolean literal: true or false.
type BoolLit struct {
	expr
	Value bool
}

// Name is a reference to a declared identifier. Type is the declared
// type of the symbol it resolved to.
type Name struct {
	expr
	Value string
	Type  BasicType
}

// BinaryOp is an arithmetic or relational operation: X Op Y.
type BinaryOp struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// ----------------------------------------------------------------------------
// Statements

// Declaration declares and initializes a variable: Type Name = Value.
type Declaration struct {
	stmt
	Type  BasicType
	Name  *Name
	Value Expr
}

// ArrayLit declares an initialized array: array<Elem> Name = [Elems...].
type ArrayLit struct {
	stmt
	Elem  BasicType
	Name  *Name
	Elems []*Number
}

// UniqueOp increments or decrements a variable in place: Name++ or Name--.
type UniqueOp struct {
	stmt
	Name *Name
	Op   Token // Inc or Dec
}

// Assign stores a new value in an existing variable: Name = Value.
type Assign struct {
	stmt
	Name  *Name
	Value Expr
}

// Print writes a single value: print(X). X is a *StringLit, *Number or *Name.
type Print struct {
	stmt
	X Expr
}

// IfStmt is the head of a conditional chain:
// if Cond { Body } [elseif ...]* [else { ... }]
type IfStmt struct {
	stmt
	Cond    Expr
	Body    *Block
	ElseIfs []*ElseIfStmt
	Else    *ElseStmt // nil if absent
}

// ElseIfStmt is one elseif branch of an IfStmt.
type ElseIfStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// ElseStmt is the final else branch of an IfStmt.
type ElseStmt struct {
	stmt
	Body *Block
}

// ForStmt is a counted loop: for(Init; Cond; Post) { Body }
type ForStmt struct {
	stmt
	Init *Declaration
	Cond Expr
	Post *UniqueOp
	Body *Block
}
