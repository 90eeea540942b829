// Package decode implements the realization of the "external parser"
// boundary this module assumes: it decodes a YAML document using a "kind:"
// discriminator per node into internal/mast nodes, using a kind-switch-
// and-dispatch shape over gopkg.in/yaml.v3's generic
// *yaml.Node tree instead of a tree-sitter parse tree.
package decode

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

// Decode parses data as a YAML document describing a single MAST forest and
// returns its decoded nodes.
func Decode(data []byte) ([]mast.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("decode: empty document")
	}
	root, err := decodeNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return []mast.Node{root}, nil
}

// field returns the mapping value for key in n, or nil if absent. n must be
// a mapping node.
func field(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func stringField(n *yaml.Node, key string) string {
	f := field(n, key)
	if f == nil {
		return ""
	}
	return f.Value
}

func boolField(n *yaml.Node, key string) bool {
	f := field(n, key)
	return f != nil && f.Value == "true"
}

func listField(n *yaml.Node, key string) []*yaml.Node {
	f := field(n, key)
	if f == nil || f.Kind != yaml.SequenceNode {
		return nil
	}
	return f.Content
}

func kindOf(n *yaml.Node) string {
	return stringField(n, "kind")
}

func decodeIdentifier(n *yaml.Node) (*mast.Identifier, error) {
	if n == nil {
		return nil, nil
	}
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*mast.Identifier)
	if !ok {
		return nil, fmt.Errorf("decode: expected identifier, got kind %q", kindOf(n))
	}
	return id, nil
}

func decodeExpr(n *yaml.Node) (mast.Expression, error) {
	if n == nil {
		return nil, nil
	}
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(mast.Expression)
	if !ok {
		return nil, fmt.Errorf("decode: expected expression, got kind %q", kindOf(n))
	}
	return expr, nil
}

func decodeExprList(nodes []*yaml.Node) ([]mast.Expression, error) {
	out := make([]mast.Expression, 0, len(nodes))
	for _, n := range nodes {
		e, err := decodeExpr(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeStmt(n *yaml.Node) (mast.Statement, error) {
	if n == nil {
		return nil, nil
	}
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(mast.Statement)
	if !ok {
		return nil, fmt.Errorf("decode: expected statement, got kind %q", kindOf(n))
	}
	return stmt, nil
}

func decodeStmtList(nodes []*yaml.Node) ([]mast.Statement, error) {
	out := make([]mast.Statement, 0, len(nodes))
	for _, n := range nodes {
		s, err := decodeStmt(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeDecl(n *yaml.Node) (mast.Declaration, error) {
	if n == nil {
		return nil, nil
	}
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	decl, ok := node.(mast.Declaration)
	if !ok {
		return nil, fmt.Errorf("decode: expected declaration, got kind %q", kindOf(n))
	}
	return decl, nil
}

func decodeDeclList(nodes []*yaml.Node) ([]mast.Declaration, error) {
	out := make([]mast.Declaration, 0, len(nodes))
	for _, n := range nodes {
		d, err := decodeDecl(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// decodeNode dispatches on the node's "kind" discriminator, using a
// switch-and-delegate shape.
func decodeNode(n *yaml.Node) (mast.Node, error) {
	if n == nil {
		return nil, nil
	}
	kind := kindOf(n)
	switch kind {
	case "root":
		decls, err := decodeDeclList(listField(n, "declarations"))
		if err != nil {
			return nil, err
		}
		return &mast.Root{Declarations: decls}, nil
	case "block":
		stmts, err := decodeStmtList(listField(n, "statements"))
		if err != nil {
			return nil, err
		}
		return &mast.Block{Statements: stmts}, nil
	case "package":
		name, err := decodeExpr(field(n, "name"))
		if err != nil {
			return nil, err
		}
		return &mast.PackageDeclaration{Name: name}, nil
	case "import":
		alias, err := decodeIdentifier(field(n, "alias"))
		if err != nil {
			return nil, err
		}
		pkg, err := decodeExpr(field(n, "package"))
		if err != nil {
			return nil, err
		}
		return &mast.ImportDeclaration{Alias: alias, Package: pkg}, nil
	case "class":
		return decodeClass(n)
	case "typeParameter":
		name, err := decodeExpr(field(n, "name"))
		if err != nil {
			return nil, err
		}
		extends, err := decodeExprList(listField(n, "extends"))
		if err != nil {
			return nil, err
		}
		return &mast.TypeParameter{Name: name, Extends: extends}, nil
	case "field":
		return decodeField(n)
	case "function":
		return decodeFunction(n)
	case "constructor":
		return decodeConstructor(n)
	case "parameter":
		typ, err := decodeExpr(field(n, "type"))
		if err != nil {
			return nil, err
		}
		name, err := decodeIdentifier(field(n, "name"))
		if err != nil {
			return nil, err
		}
		return &mast.ParameterDeclaration{IsVariadic: boolField(n, "variadic"), Type: typ, Name: name}, nil
	case "variable":
		return decodeVariable(n)
	case "modifier":
		return &mast.LiteralModifier{Modifier: stringField(n, "name")}, nil
	case "empty":
		return &mast.EmptyStatement{}, nil
	case "exprStmt":
		expr, err := decodeExpr(field(n, "expr"))
		if err != nil {
			return nil, err
		}
		return &mast.ExpressionStatement{Expr: expr}, nil
	case "declStmt":
		decl, err := decodeDecl(field(n, "decl"))
		if err != nil {
			return nil, err
		}
		return &mast.DeclarationStatement{Decl: decl}, nil
	case "assignStmt":
		expr, err := decodeExpr(field(n, "expr"))
		if err != nil {
			return nil, err
		}
		ae, ok := expr.(*mast.AssignmentExpression)
		if !ok {
			return nil, fmt.Errorf("decode: assignStmt's expr must be an assignExpr, got kind %q", kindOf(field(n, "expr")))
		}
		return &mast.AssignmentStatement{Expr: ae}, nil
	case "return":
		val, err := decodeExpr(field(n, "value"))
		if err != nil {
			return nil, err
		}
		return &mast.ReturnStatement{Value: val}, nil
	case "break":
		return &mast.BreakStatement{}, nil
	case "continue":
		return &mast.ContinueStatement{}, nil
	case "if":
		cond, err := decodeExpr(field(n, "condition"))
		if err != nil {
			return nil, err
		}
		cons, err := decodeStmt(field(n, "consequence"))
		if err != nil {
			return nil, err
		}
		alt, err := decodeStmt(field(n, "alternative"))
		if err != nil {
			return nil, err
		}
		return &mast.IfStatement{Condition: cond, Consequence: cons, Alternative: alt}, nil
	case "while":
		cond, err := decodeExpr(field(n, "condition"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(field(n, "body"))
		if err != nil {
			return nil, err
		}
		return &mast.WhileStatement{Condition: cond, Body: body}, nil
	case "forEach":
		typ, err := decodeExpr(field(n, "type"))
		if err != nil {
			return nil, err
		}
		name, err := decodeIdentifier(field(n, "name"))
		if err != nil {
			return nil, err
		}
		iterable, err := decodeExpr(field(n, "iterable"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(field(n, "body"))
		if err != nil {
			return nil, err
		}
		return &mast.ForEachStatement{Type: typ, Name: name, Iterable: iterable, Body: body}, nil
	case "for":
		init, err := decodeStmt(field(n, "initializer"))
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(field(n, "condition"))
		if err != nil {
			return nil, err
		}
		update, err := decodeStmt(field(n, "update"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(field(n, "body"))
		if err != nil {
			return nil, err
		}
		return &mast.ForStatement{Initializer: init, Condition: cond, Update: update, Body: body}, nil
	case "switch":
		value, err := decodeExpr(field(n, "value"))
		if err != nil {
			return nil, err
		}
		var cases []*mast.SwitchCase
		for _, cn := range listField(n, "cases") {
			c, err := decodeNode(cn)
			if err != nil {
				return nil, err
			}
			sc, ok := c.(*mast.SwitchCase)
			if !ok {
				return nil, fmt.Errorf("decode: switch case has kind %q, expected switchCase", kindOf(cn))
			}
			cases = append(cases, sc)
		}
		return &mast.SwitchStatement{Value: value, Cases: cases}, nil
	case "switchCase":
		values, err := decodeExprList(listField(n, "values"))
		if err != nil {
			return nil, err
		}
		stmts, err := decodeStmtList(listField(n, "statements"))
		if err != nil {
			return nil, err
		}
		return &mast.SwitchCase{Values: values, Statements: stmts}, nil
	case "identifier":
		return &mast.Identifier{Name: stringField(n, "name")}, nil
	case "accessPath":
		operand, err := decodeExpr(field(n, "operand"))
		if err != nil {
			return nil, err
		}
		fieldID, err := decodeIdentifier(field(n, "field"))
		if err != nil {
			return nil, err
		}
		return &mast.AccessPath{Operand: operand, Field: fieldID}, nil
	case "paren":
		inner, err := decodeExpr(field(n, "expr"))
		if err != nil {
			return nil, err
		}
		return &mast.ParenthesizedExpression{Expr: inner}, nil
	case "unary":
		inner, err := decodeExpr(field(n, "expr"))
		if err != nil {
			return nil, err
		}
		return &mast.UnaryExpression{Operator: stringField(n, "operator"), Expr: inner}, nil
	case "binary":
		left, err := decodeExpr(field(n, "left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(field(n, "right"))
		if err != nil {
			return nil, err
		}
		return &mast.BinaryExpression{Operator: stringField(n, "operator"), Left: left, Right: right}, nil
	case "assignExpr":
		left, err := decodeExpr(field(n, "left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(field(n, "right"))
		if err != nil {
			return nil, err
		}
		return &mast.AssignmentExpression{Operator: stringField(n, "operator"), Left: left, Right: right}, nil
	case "call":
		receiver, err := decodeExpr(field(n, "receiver"))
		if err != nil {
			return nil, err
		}
		function, err := decodeExpr(field(n, "function"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(listField(n, "arguments"))
		if err != nil {
			return nil, err
		}
		return &mast.CallExpression{Receiver: receiver, Function: function, Arguments: args}, nil
	case "new":
		typ, err := decodeExpr(field(n, "type"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(listField(n, "arguments"))
		if err != nil {
			return nil, err
		}
		return &mast.EntityCreationExpression{Type: typ, Arguments: args}, nil
	case "genericType":
		name, err := decodeExpr(field(n, "name"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(listField(n, "arguments"))
		if err != nil {
			return nil, err
		}
		return &mast.GenericType{Name: name, Arguments: args}, nil
	case "null":
		return &mast.NullLiteral{}, nil
	case "bool":
		return &mast.BooleanLiteral{Value: boolField(n, "value")}, nil
	case "int":
		return &mast.IntLiteral{Value: stringField(n, "value")}, nil
	case "float":
		return &mast.FloatLiteral{Value: stringField(n, "value")}, nil
	case "string":
		return &mast.StringLiteral{Value: stringField(n, "value")}, nil
	case "":
		return nil, fmt.Errorf("decode: node is missing a \"kind\" field")
	default:
		return nil, fmt.Errorf("decode: not implemented: unknown node kind %q", kind)
	}
}

func decodeClass(n *yaml.Node) (mast.Node, error) {
	mods, err := decodeExprList(listField(n, "modifiers"))
	if err != nil {
		return nil, err
	}
	name, err := decodeIdentifier(field(n, "name"))
	if err != nil {
		return nil, err
	}
	var typeParams []*mast.TypeParameter
	for _, tn := range listField(n, "typeParameters") {
		node, err := decodeNode(tn)
		if err != nil {
			return nil, err
		}
		tp, ok := node.(*mast.TypeParameter)
		if !ok {
			return nil, fmt.Errorf("decode: class type parameter has kind %q, expected typeParameter", kindOf(tn))
		}
		typeParams = append(typeParams, tp)
	}
	supers, err := decodeExprList(listField(n, "supers"))
	if err != nil {
		return nil, err
	}
	interfaces, err := decodeExprList(listField(n, "interfaces"))
	if err != nil {
		return nil, err
	}
	body, err := decodeDeclList(listField(n, "body"))
	if err != nil {
		return nil, err
	}
	return &mast.ClassDeclaration{
		Modifiers:      mods,
		Name:           name,
		TypeParameters: typeParams,
		Supers:         supers,
		Interfaces:     interfaces,
		Body:           body,
	}, nil
}

func decodeField(n *yaml.Node) (mast.Node, error) {
	mods, err := decodeExprList(listField(n, "modifiers"))
	if err != nil {
		return nil, err
	}
	name, err := decodeIdentifier(field(n, "name"))
	if err != nil {
		return nil, err
	}
	typ, err := decodeExpr(field(n, "type"))
	if err != nil {
		return nil, err
	}
	value, err := decodeExpr(field(n, "value"))
	if err != nil {
		return nil, err
	}
	return &mast.FieldDeclaration{Modifiers: mods, Name: name, Type: typ, Value: value}, nil
}

func decodeFunction(n *yaml.Node) (mast.Node, error) {
	mods, err := decodeExprList(listField(n, "modifiers"))
	if err != nil {
		return nil, err
	}
	name, err := decodeIdentifier(field(n, "name"))
	if err != nil {
		return nil, err
	}
	returns, err := decodeDeclList(listField(n, "returns"))
	if err != nil {
		return nil, err
	}
	params, err := decodeDeclList(listField(n, "parameters"))
	if err != nil {
		return nil, err
	}
	stmts, err := decodeStmtList(listField(n, "statements"))
	if err != nil {
		return nil, err
	}
	return &mast.FunctionDeclaration{
		Modifiers:  mods,
		Name:       name,
		Returns:    returns,
		Parameters: params,
		Statements: stmts,
	}, nil
}

func decodeConstructor(n *yaml.Node) (mast.Node, error) {
	mods, err := decodeExprList(listField(n, "modifiers"))
	if err != nil {
		return nil, err
	}
	name, err := decodeIdentifier(field(n, "name"))
	if err != nil {
		return nil, err
	}
	params, err := decodeDeclList(listField(n, "parameters"))
	if err != nil {
		return nil, err
	}
	stmts, err := decodeStmtList(listField(n, "statements"))
	if err != nil {
		return nil, err
	}
	return &mast.ConstructorDeclaration{Modifiers: mods, Name: name, Parameters: params, Statements: stmts}, nil
}

func decodeVariable(n *yaml.Node) (mast.Node, error) {
	mods, err := decodeExprList(listField(n, "modifiers"))
	if err != nil {
		return nil, err
	}
	typ, err := decodeExpr(field(n, "type"))
	if err != nil {
		return nil, err
	}
	name, err := decodeIdentifier(field(n, "name"))
	if err != nil {
		return nil, err
	}
	value, err := decodeExpr(field(n, "value"))
	if err != nil {
		return nil, err
	}
	return &mast.VariableDeclaration{Modifiers: mods, Type: typ, Name: name, Value: value}, nil
}
