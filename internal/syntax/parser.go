package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Parser is a single-token-lookahead recursive descent parser. It
// resolves identifiers against a stack of scopes as it goes and stops
// at the first error.
type Parser struct {
	scanner *Scanner

	// Current token
	tok Token
	lit string
	pos Pos

	first error // first error encountered
	abort bool  // set once first is recorded

	info  *Info
	scope *Scope

	// name being declared while its initializer is parsed
	initializing string
}

// NewParser returns a parser for src. A Parser owns its tables and
// parses exactly one program.
func NewParser(filename string, src io.Reader) *Parser {
	p := &Parser{
		scanner: NewScanner(filename, src, nil),
		info:    NewInfo(),
	}
	p.next()
	return p
}

// ParseString parses src and returns the tree and its tables.
func ParseString(filename, src string) (*Program, *Info, error) {
	return NewParser(filename, strings.NewReader(src)).Parse()
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	if p.abort {
		return
	}
	p.scanner.Next()
	if err := p.scanner.Err(); err != nil {
		p.fail(err)
		return
	}
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got consumes the current token if it is tok.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes tok or reports what was found instead.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.errorExpected(describe(tok))
	}
}

// ----------------------------------------------------------------------------
// Error handling

// fail records err as the parse result and forces EOF so every loop in
// the parser unwinds.
func (p *Parser) fail(err error) {
	if p.abort {
		return
	}
	p.first = err
	p.abort = true
	p.tok = _EOF
}

func (p *Parser) errorExpected(what string) {
	found := p.found()
	p.fail(&ParseError{
		Pos:      p.pos,
		Expected: what,
		Found:    found,
		Msg:      fmt.Sprintf("expected %s, found %s", what, found),
	})
}

func (p *Parser) errorAt(pos Pos, format string, args ...interface{}) {
	p.fail(&ParseError{
		Pos:   pos,
		Found: p.found(),
		Msg:   fmt.Sprintf(format, args...),
	})
}

// found describes the current token for diagnostics.
func (p *Parser) found() string {
	switch p.tok {
	case _EOF:
		return "end of input"
	case _Name:
		return "identifier " + p.lit
	case _IntLit:
		return "number " + p.lit
	case _StrLit:
		return fmt.Sprintf("string %q", p.lit)
	}
	return describe(p.tok)
}

func describe(tok Token) string {
	if tok == _Name {
		return "identifier"
	}
	return "'" + tok.String() + "'"
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete program:
//
//	main ( ) { statement* }
//
// On failure it returns a *ParseError or *LexError and no tree.
func (p *Parser) Parse() (*Program, *Info, error) {
	prog := &Program{}
	prog.pos = p.pos

	p.want(_Main)
	p.want(_Lparen)
	p.want(_Rparen)
	prog.Body = p.block("main")

	if !p.abort && p.tok != _EOF {
		p.errorExpected("end of input")
	}
	if p.first != nil {
		return nil, nil, p.first
	}
	p.info.Scopes[prog] = p.info.Scopes[prog.Body]
	return prog, p.info, nil
}

// ----------------------------------------------------------------------------
// Scopes and identifiers

func (p *Parser) openScope(n Node, comment string) {
	p.scope = NewScope(p.scope, n.Pos(), comment)
	p.info.Scopes[n] = p.scope
}

func (p *Parser) closeScope() {
	p.scope = p.scope.Parent()
}

// declName parses the identifier introduced by a declaration.
func (p *Parser) declName() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.errorExpected("identifier")
		n.Value = "_"
		return n
	}
	p.next()
	return n
}

// declare enters sym into the current scope and binds n to it.
func (p *Parser) declare(n *Name, sym *Symbol) {
	if p.abort {
		return
	}
	if prev := p.scope.Insert(sym); prev != nil {
		p.errorAt(n.pos, "%s redeclared in this block (previous declaration at %s)", n.Value, prev.Pos)
		return
	}
	n.Type = sym.Type
	p.info.Defs[n] = sym
	p.info.Symbols = append(p.info.Symbols, sym)
}

// useName parses an identifier reference and resolves it. The result
// is always a symbolic reference, never the declared value.
func (p *Parser) useName() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.errorExpected("identifier")
		n.Value = "_"
		return n
	}

	if n.Value == p.initializing {
		p.errorAt(n.pos, "%s used in its own initializer", n.Value)
		return n
	}
	sym, _ := p.scope.LookupParent(n.Value)
	if sym == nil {
		p.fail(&ParseError{
			Pos:      n.pos,
			Expected: "declared identifier",
			Found:    p.found(),
			Msg:      "undeclared identifier " + n.Value,
		})
		return n
	}
	n.Type = sym.Type
	p.info.Uses[n] = sym
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Statements

// block parses { statement* } in a fresh scope.
func (p *Parser) block(comment string) *Block {
	b := &Block{}
	b.pos = p.pos

	p.want(_Lbrace)
	p.openScope(b, comment)
	defer p.closeScope()

	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		b.Stmts = append(b.Stmts, p.stmt())
	}

	b.Rbrace = p.pos
	p.want(_Rbrace)
	return b
}

// stmt parses one statement. There is no recovery: anything that does
// not start a statement ends the parse.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Print:
		return p.printStmt()
	case _For:
		return p.forStmt()
	case _If:
		return p.ifStmt()
	case _Integer, _String, _Boolean:
		return p.declaration()
	case _Array:
		return p.arrayDecl()
	case _Name:
		return p.simpleStmt()
	case _ElseIf, _Else:
		p.errorAt(p.pos, "'%s' without a preceding 'if'", p.tok)
		return nil
	default:
		p.errorExpected("statement")
		return nil
	}
}

// declaration parses: type identifier = expression
func (p *Parser) declaration() *Declaration {
	d := &Declaration{}
	d.pos = p.pos

	if !p.tok.IsTypeName() {
		p.errorExpected("type name")
		return d
	}
	d.Type = basicTypeOf(p.tok)
	p.next()

	d.Name = p.declName()
	p.want(_Assign)

	p.initializing = d.Name.Value
	d.Value = p.value(d.Type)
	p.initializing = ""

	sym := &Symbol{Name: d.Name.Value, Type: d.Type, Pos: d.Name.pos}
	p.declare(d.Name, sym)
	switch d.Value.(type) {
	case *Number, *StringLit, *BoolLit:
		p.info.Values[sym] = d.Value
	}
	return d
}

// value parses the right-hand side of a declaration or assignment and
// checks it against typ. String and boolean literals must make up the
// whole value.
func (p *Parser) value(typ BasicType) Expr {
	var x Expr
	switch p.tok {
	case _StrLit:
		x = p.stringLit()
	case _True, _False:
		x = p.boolLit()
	default:
		x = p.expr()
	}
	if p.abort {
		return x
	}
	if p.tok.isArith() {
		p.operand(p.tok, x)
		return x
	}
	if got := typeOf(x); got != typ {
		p.errorAt(x.Pos(), "cannot use %s as %s value", describeExpr(x), typ)
	}
	return x
}

// arrayDecl parses: array < type > identifier = [ number (, number)* ]
func (p *Parser) arrayDecl() *ArrayLit {
	a := &ArrayLit{}
	a.pos = p.pos

	p.want(_Array)
	p.want(_Lss)
	if !p.tok.IsTypeName() {
		p.errorExpected("element type")
		return a
	}
	if p.tok == _String {
		p.errorAt(p.pos, "array elements must be numbers; array<string> is not supported")
		return a
	}
	a.Elem = basicTypeOf(p.tok)
	p.next()
	p.want(_Gtr)

	a.Name = p.declName()
	p.want(_Assign)
	p.want(_Lbrack)
	for !p.abort {
		if p.tok != _IntLit {
			p.errorExpected("number")
			break
		}
		n := &Number{Value: p.lit}
		n.pos = p.pos
		a.Elems = append(a.Elems, n)
		p.next()
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rbrack)

	p.declare(a.Name, &Symbol{Name: a.Name.Value, Type: a.Elem, Array: true, Len: len(a.Elems), Pos: a.Name.pos})
	return a
}

// simpleStmt parses the statements that start with an identifier:
//
//	identifier = expression
//	identifier ( ++ | -- )
func (p *Parser) simpleStmt() Stmt {
	name := p.useName()
	if p.abort {
		return nil
	}
	switch p.tok {
	case _Assign:
		return p.assign(name)
	case _Inc, _Dec:
		return p.incDec(name)
	}
	p.errorExpected("'=', '++' or '--'")
	return nil
}

// assign parses the rest of: identifier = expression
func (p *Parser) assign(name *Name) *Assign {
	s := &Assign{Name: name}
	s.pos = name.pos

	sym := p.info.Uses[name]
	if sym.Array {
		p.errorAt(name.pos, "cannot assign to array %s", name.Value)
		return s
	}
	p.want(_Assign)
	s.Value = p.value(sym.Type)
	return s
}

// incDec parses the rest of: identifier ( ++ | -- )
func (p *Parser) incDec(name *Name) *UniqueOp {
	s := &UniqueOp{Name: name}
	s.pos = name.pos

	if p.abort {
		return s
	}
	if sym := p.info.Uses[s.Name]; sym.Array {
		p.errorAt(s.Name.pos, "cannot apply %s to array %s", p.tok, s.Name.Value)
		return s
	}

	switch p.tok {
	case _Inc, _Dec:
		s.Op = p.tok
		p.next()
	default:
		p.errorExpected("'++' or '--'")
	}
	return s
}

// printStmt parses: print ( string | number | identifier )
func (p *Parser) printStmt() *Print {
	s := &Print{}
	s.pos = p.pos

	p.want(_Print)
	p.want(_Lparen)
	switch p.tok {
	case _StrLit:
		s.X = p.stringLit()
	case _IntLit:
		s.X = p.number()
	case _Name:
		s.X = p.useName()
	default:
		p.errorExpected("string, number or identifier")
		return s
	}
	p.want(_Rparen)
	return s
}

// ifStmt parses an if chain:
//
//	if cond { ... } (elseif cond { ... })* (else { ... })?
func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.logicExpr()
	s.Body = p.block("if")

	for p.tok == _ElseIf {
		e := &ElseIfStmt{}
		e.pos = p.pos
		p.next()
		e.Cond = p.logicExpr()
		e.Body = p.block("elseif")
		s.ElseIfs = append(s.ElseIfs, e)
	}

	if p.tok == _Else {
		e := &ElseStmt{}
		e.pos = p.pos
		p.next()
		e.Body = p.block("else")
		s.Else = e
	}
	return s
}

// forStmt parses: for ( declaration ; cond ; incDec ) { ... }
// The loop variable lives in a scope enclosing the body.
func (p *Parser) forStmt() *ForStmt {
	s := &ForStmt{}
	s.pos = p.pos

	p.want(_For)
	p.want(_Lparen)

	p.openScope(s, "for")
	defer p.closeScope()

	if !p.tok.IsTypeName() {
		p.errorExpected("loop variable declaration")
		return s
	}
	s.Init = p.declaration()
	p.want(_Semi)
	s.Cond = p.logicExpr()
	p.want(_Semi)
	if p.tok != _Name {
		p.errorExpected("loop step (identifier ++ or --)")
		return s
	}
	s.Post = p.incDec(p.useName())
	p.want(_Rparen)

	s.Body = p.block("for body")
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses: term (( + | - ) term)*
func (p *Parser) expr() Expr {
	x := p.term()
	for p.tok == _Add || p.tok == _Sub {
		op := &BinaryOp{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.operand(op.Op, x)
		p.next()
		op.Y = p.term()
		p.operand(op.Op, op.Y)
		x = op
	}
	return x
}

// term parses: factor (( * | / ) factor)*
func (p *Parser) term() Expr {
	x := p.factor()
	for p.tok == _Mul || p.tok == _Div {
		op := &BinaryOp{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.operand(op.Op, x)
		p.next()
		op.Y = p.factor()
		p.operand(op.Op, op.Y)
		x = op
	}
	return x
}

// operand reports an error unless x is an integer operand of op.
func (p *Parser) operand(op Token, x Expr) {
	if p.abort {
		return
	}
	if typeOf(x) != TypeInteger {
		p.errorAt(x.Pos(), "operator %s not defined on %s", op, describeExpr(x))
	}
}

// factor parses: ( expr ) | number | identifier
func (p *Parser) factor() Expr {
	switch p.tok {
	case _Lparen:
		p.next()
		x := p.expr()
		p.want(_Rparen)
		return x
	case _IntLit:
		return p.number()
	case _Name:
		return p.useName()
	case _StrLit, _True, _False:
		p.errorAt(p.pos, "%s cannot be used in arithmetic", p.found())
		return p.bad()
	default:
		p.errorExpected("expression")
		return p.bad()
	}
}

// logicExpr parses: logicFactor (relop logicFactor)*
func (p *Parser) logicExpr() Expr {
	x := p.logicFactor()
	for p.tok.IsRelational() {
		op := &BinaryOp{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()
		op.Y = p.logicFactor()
		x = op
	}
	return x
}

// logicFactor parses: ( logicExpr ) | identifier | number | true | false
func (p *Parser) logicFactor() Expr {
	switch p.tok {
	case _Lparen:
		p.next()
		x := p.logicExpr()
		p.want(_Rparen)
		return x
	case _Name:
		n := p.useName()
		if !p.abort && n.Type == TypeString {
			p.errorAt(n.pos, "cannot use %s in a condition", describeExpr(n))
		}
		return n
	case _IntLit:
		return p.number()
	case _True, _False:
		return p.boolLit()
	default:
		p.errorExpected("condition operand")
		return p.bad()
	}
}

func (p *Parser) number() *Number {
	n := &Number{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

func (p *Parser) stringLit() *StringLit {
	lit := &StringLit{Value: p.lit}
	lit.pos = p.pos
	p.next()
	return lit
}

func (p *Parser) boolLit() *BoolLit {
	lit := &BoolLit{Value: p.tok == _True}
	lit.pos = p.pos
	p.next()
	return lit
}

// typeOf returns the type of a parsed expression.
func typeOf(x Expr) BasicType {
	switch x := x.(type) {
	case *Number:
		return TypeInteger
	case *StringLit:
		return TypeString
	case *BoolLit:
		return TypeBoolean
	case *Name:
		return x.Type
	case *BinaryOp:
		if x.Op.IsRelational() {
			return TypeBoolean
		}
		return TypeInteger
	}
	return InvalidType
}

// describeExpr names x for diagnostics.
func describeExpr(x Expr) string {
	switch x := x.(type) {
	case *Number:
		return "number " + x.Value
	case *StringLit:
		return fmt.Sprintf("string %q", x.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", x.Value)
	case *Name:
		return fmt.Sprintf("%s (%s)", x.Value, x.Type)
	}
	return typeOf(x).String() + " expression"
}

// bad returns a placeholder operand after an error.
func (p *Parser) bad() Expr {
	n := &Name{Value: "_"}
	n.pos = p.pos
	return n
}
