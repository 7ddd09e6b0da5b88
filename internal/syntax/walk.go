package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, in source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkBlock(n.Body, v)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *BinaryOp:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Declaration:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *ArrayLit:
		Walk(n.Name, v)
		for _, e := range n.Elems {
			Walk(e, v)
		}

	case *UniqueOp:
		Walk(n.Name, v)

	case *Assign:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *Print:
		Walk(n.X, v)

	case *IfStmt:
		Walk(n.Cond, v)
		walkBlock(n.Body, v)
		for _, e := range n.ElseIfs {
			Walk(e, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *ElseIfStmt:
		Walk(n.Cond, v)
		walkBlock(n.Body, v)

	case *ElseStmt:
		walkBlock(n.Body, v)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		Walk(n.Cond, v)
		if n.Post != nil {
			Walk(n.Post, v)
		}
		walkBlock(n.Body, v)

	// Leaf nodes: Number, StringLit, BoolLit, Name
	}
}

// walkBlock avoids handing Walk a typed nil *Block.
func walkBlock(b *Block, v Visitor) {
	if b != nil {
		Walk(b, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
