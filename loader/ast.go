package loader

import (
	"github.com/dop251/goja/ast"

	"github.com/mna/chaosvm/hash"
)

// fromProgram walks a parsed goja program into the generic estree-shaped
// Node tree the hash package operates on. The JS parser itself is treated
// as a black-box AST provider (only its shape matters, never its own
// internals), so this file is the single seam that knows about goja's
// concrete node types.
func fromProgram(prog *ast.Program) []hash.Node {
	return fromStatements(prog.Body)
}

func fromStatements(stmts []ast.Statement) []hash.Node {
	out := make([]hash.Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, fromStatement(s))
	}
	return out
}

func fromStatement(s ast.Statement) hash.Node {
	switch n := s.(type) {
	case nil:
		return nil
	case *ast.EmptyStatement:
		return hash.Node{"type": "EmptyStatement"}
	case *ast.ExpressionStatement:
		return hash.Node{"type": "ExpressionStatement", "expression": fromExpression(n.Expression)}
	case *ast.VariableStatement:
		return hash.Node{
			"type":         "VariableDeclaration",
			"kind":         "var",
			"declarations": fromBindings(n.List),
		}
	case *ast.LexicalDeclaration:
		return hash.Node{
			"type":         "VariableDeclaration",
			"kind":         n.Token.String(),
			"declarations": fromBindings(n.List),
		}
	case *ast.ReturnStatement:
		return hash.Node{"type": "ReturnStatement", "argument": fromExpression(n.Argument)}
	case *ast.ThrowStatement:
		return hash.Node{"type": "ThrowStatement", "argument": fromExpression(n.Argument)}
	case *ast.ForStatement:
		return hash.Node{"type": "ForStatement"}
	case *ast.ForInStatement:
		return hash.Node{"type": "ForInStatement"}
	case *ast.BlockStatement:
		return hash.Node{"type": "BlockStatement", "body": fromStatements(n.List)}
	case *ast.FunctionDeclaration:
		return fromFunctionDeclaration(n)
	default:
		return hash.Node{"type": ""}
	}
}

func fromFunctionDeclaration(n *ast.FunctionDeclaration) hash.Node {
	fn := n.Function
	var name string
	if fn.Name != nil {
		name = string(fn.Name.Name)
	}
	params := fromParameterList(fn.ParameterList)
	var body []hash.Node
	if fn.Body != nil {
		body = fromStatements(fn.Body.List)
	}
	return hash.Node{
		"type":   "FunctionDeclaration",
		"id":     hash.Node{"type": "Identifier", "name": name},
		"params": params,
		"body":   hash.Node{"type": "BlockStatement", "body": body},
	}
}

func fromParameterList(pl *ast.ParameterList) []hash.Node {
	if pl == nil {
		return nil
	}
	out := make([]hash.Node, 0, len(pl.List))
	for _, p := range pl.List {
		if id, ok := p.Target.(*ast.Identifier); ok {
			out = append(out, hash.Node{"type": "Identifier", "name": string(id.Name)})
		}
	}
	return out
}

func fromBindings(list []*ast.Binding) []hash.Node {
	out := make([]hash.Node, 0, len(list))
	for _, b := range list {
		d := hash.Node{"type": "VariableDeclarator", "id": fromBindingTarget(b.Target)}
		if b.Initializer != nil {
			d["init"] = fromExpression(b.Initializer)
		}
		out = append(out, d)
	}
	return out
}

func fromBindingTarget(t ast.BindingTarget) hash.Node {
	if id, ok := t.(*ast.Identifier); ok {
		return hash.Node{"type": "Identifier", "name": string(id.Name)}
	}
	return hash.Node{"type": ""}
}

func fromExpression(e ast.Expression) hash.Node {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return hash.Node{"type": "Identifier", "name": string(n.Name)}
	case *ast.NumberLiteral:
		return hash.Node{"type": "Literal", "raw": n.Literal}
	case *ast.StringLiteral:
		return hash.Node{"type": "Literal", "raw": n.Literal}
	case *ast.BooleanLiteral:
		return hash.Node{"type": "Literal", "raw": n.Literal}
	case *ast.NullLiteral:
		return hash.Node{"type": "Literal", "raw": "null"}
	case *ast.AssignExpression:
		return hash.Node{
			"type":     "AssignmentExpression",
			"operator": n.Operator.String(),
			"left":     fromExpression(n.Left),
			"right":    fromExpression(n.Right),
		}
	case *ast.BinaryExpression:
		return hash.Node{
			"type":     "BinaryExpression",
			"operator": n.Operator.String(),
			"left":     fromExpression(n.Left),
			"right":    fromExpression(n.Right),
		}
	case *ast.UnaryExpression:
		return hash.Node{
			"type":     "UnaryExpression",
			"operator": n.Operator.String(),
			"argument": fromExpression(n.Operand),
		}
	case *ast.UpdateExpression:
		return hash.Node{
			"type":     "UpdateExpression",
			"operator": n.Operator.String(),
			"prefix":   !n.Postfix,
			"argument": fromExpression(n.Operand),
		}
	case *ast.ArrayLiteral:
		elems := make([]hash.Node, len(n.Value))
		for i, el := range n.Value {
			elems[i] = fromExpression(el)
		}
		return hash.Node{"type": "ArrayExpression", "elements": elems}
	case *ast.CallExpression:
		args := make([]hash.Node, len(n.ArgumentList))
		for i, a := range n.ArgumentList {
			args[i] = fromExpression(a)
		}
		return hash.Node{
			"type":      "CallExpression",
			"callee":    fromExpression(n.Callee),
			"arguments": args,
		}
	case *ast.DotExpression:
		return hash.Node{
			"type":     "MemberExpression",
			"object":   fromExpression(n.Left),
			"property": hash.Node{"type": "Identifier", "name": string(n.Identifier.Name)},
		}
	case *ast.BracketExpression:
		return hash.Node{
			"type":     "MemberExpression",
			"object":   fromExpression(n.Left),
			"property": fromExpression(n.Member),
		}
	case *ast.SequenceExpression:
		exprs := make([]hash.Node, len(n.Sequence))
		for i, e := range n.Sequence {
			exprs[i] = fromExpression(e)
		}
		return hash.Node{"type": "SequenceExpression", "expressions": exprs}
	case *ast.ConditionalExpression:
		return hash.Node{
			"type":        "ConditionalExpression",
			"test":        fromExpression(n.Test),
			"consequent":  fromExpression(n.Consequent),
			"alternate":   fromExpression(n.Alternate),
		}
	case *ast.FunctionLiteral:
		var body []hash.Node
		if n.Body != nil {
			body = fromStatements(n.Body.List)
		}
		return hash.Node{
			"type":   "FunctionExpression",
			"params": fromParameterList(n.ParameterList),
			"body":   hash.Node{"type": "BlockStatement", "body": body},
		}
	default:
		return hash.Node{"type": ""}
	}
}
