package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type object = map[string]interface{}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return object{
			"type": "Program",
			"pos":  n.pos.String(),
			"body": blockJSON(n.Body),
		}

	case *Block:
		return object{
			"type":  "Block",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *Number:
		return object{"type": "Number", "pos": n.pos.String(), "value": n.Value}

	case *StringLit:
		return object{"type": "StringLit", "pos": n.pos.String(), "value": n.Value}

	case *BoolLit:
		return object{"type": "BoolLit", "pos": n.pos.String(), "value": n.Value}

	case *Name:
		return object{
			"type":     "Name",
			"pos":      n.pos.String(),
			"name":     n.Value,
			"declared": n.Type.String(),
		}

	case *BinaryOp:
		return object{
			"type": "BinaryOp",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Declaration:
		return object{
			"type":     "Declaration",
			"pos":      n.pos.String(),
			"declared": n.Type.String(),
			"name":     n.Name.Value,
			"value":    toJSON(n.Value),
		}

	case *ArrayLit:
		return object{
			"type":  "ArrayLit",
			"pos":   n.pos.String(),
			"elem":  n.Elem.String(),
			"name":  n.Name.Value,
			"elems": mapSlice(n.Elems, func(e *Number) interface{} { return e.Value }),
		}

	case *UniqueOp:
		return object{
			"type": "UniqueOp",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
			"op":   n.Op.String(),
		}

	case *Assign:
		return object{
			"type":  "Assign",
			"pos":   n.pos.String(),
			"name":  n.Name.Value,
			"value": toJSON(n.Value),
		}

	case *Print:
		return object{"type": "Print", "pos": n.pos.String(), "x": toJSON(n.X)}

	case *IfStmt:
		m := object{
			"type":    "IfStmt",
			"pos":     n.pos.String(),
			"cond":    toJSON(n.Cond),
			"body":    blockJSON(n.Body),
			"elseifs": mapSlice(n.ElseIfs, func(e *ElseIfStmt) interface{} { return toJSON(e) }),
		}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *ElseIfStmt:
		return object{
			"type": "ElseIfStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": blockJSON(n.Body),
		}

	case *ElseStmt:
		return object{"type": "ElseStmt", "pos": n.pos.String(), "body": blockJSON(n.Body)}

	case *ForStmt:
		m := object{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": blockJSON(n.Body),
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		if n.Post != nil {
			m["post"] = toJSON(n.Post)
		}
		return m

	default:
		return object{"type": "Unknown"}
	}
}

func blockJSON(b *Block) interface{} {
	if b == nil {
		return nil
	}
	return toJSON(b)
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
