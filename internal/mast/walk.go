package mast

// Visitor is the interface that all MAST node visitors must implement. It
// contains a Pre(Node) and a Post(Node) method that is called before and
// after the traversal of each node.
type Visitor struct {
	Pre  func(Node) error
	Post func(Node) error
}

// Walk performs a nil-guarded, recursive pre/post-order traversal of node
// and its children in the node's natural field order. The numbering stage
// builds on it; the other stages use their own kind-switch rewriters.
// Returning an error from Pre or Post aborts the whole traversal and Walk
// returns that error; Post is not called for a node whose Pre failed.
func Walk(v Visitor, node Node) error {
	if node == nil {
		return nil
	}
	if v.Pre != nil {
		if err := v.Pre(node); err != nil {
			return err
		}
	}

	switch n := node.(type) {
	case *Root:
		for _, d := range n.Declarations {
			if err := Walk(v, d); err != nil {
				return err
			}
		}
	case *Block:
		for _, s := range n.Statements {
			if err := Walk(v, s); err != nil {
				return err
			}
		}
	case *PackageDeclaration:
		if err := Walk(v, n.Name); err != nil {
			return err
		}
	case *ImportDeclaration:
		if err := Walk(v, n.Alias); err != nil {
			return err
		}
		if err := Walk(v, n.Package); err != nil {
			return err
		}
	case *ClassDeclaration:
		if err := walkExprSlice(v, n.Modifiers); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		for _, tp := range n.TypeParameters {
			if err := Walk(v, tp); err != nil {
				return err
			}
		}
		if err := walkExprSlice(v, n.Supers); err != nil {
			return err
		}
		if err := walkExprSlice(v, n.Interfaces); err != nil {
			return err
		}
		for _, d := range n.Body {
			if err := Walk(v, d); err != nil {
				return err
			}
		}
	case *TypeParameter:
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		if err := walkExprSlice(v, n.Extends); err != nil {
			return err
		}
	case *FieldDeclaration:
		if err := walkExprSlice(v, n.Modifiers); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		if err := Walk(v, n.Type); err != nil {
			return err
		}
		if err := Walk(v, n.Value); err != nil {
			return err
		}
	case *FunctionDeclaration:
		if err := walkExprSlice(v, n.Modifiers); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		for _, r := range n.Returns {
			if err := Walk(v, r); err != nil {
				return err
			}
		}
		for _, p := range n.Parameters {
			if err := Walk(v, p); err != nil {
				return err
			}
		}
		if err := walkStmtSlice(v, n.Statements); err != nil {
			return err
		}
	case *ConstructorDeclaration:
		if err := walkExprSlice(v, n.Modifiers); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		for _, p := range n.Parameters {
			if err := Walk(v, p); err != nil {
				return err
			}
		}
		if err := walkStmtSlice(v, n.Statements); err != nil {
			return err
		}
	case *ParameterDeclaration:
		if err := Walk(v, n.Type); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
	case *VariableDeclaration:
		if err := walkExprSlice(v, n.Modifiers); err != nil {
			return err
		}
		if err := Walk(v, n.Type); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		if err := Walk(v, n.Value); err != nil {
			return err
		}
	case *EmptyStatement:
	case *ExpressionStatement:
		if err := Walk(v, n.Expr); err != nil {
			return err
		}
	case *DeclarationStatement:
		if err := Walk(v, n.Decl); err != nil {
			return err
		}
	case *AssignmentStatement:
		if err := Walk(v, n.Expr); err != nil {
			return err
		}
	case *ReturnStatement:
		if err := Walk(v, n.Value); err != nil {
			return err
		}
	case *BreakStatement:
	case *ContinueStatement:
	case *IfStatement:
		if err := Walk(v, n.Condition); err != nil {
			return err
		}
		if err := Walk(v, n.Consequence); err != nil {
			return err
		}
		if err := Walk(v, n.Alternative); err != nil {
			return err
		}
	case *WhileStatement:
		if err := Walk(v, n.Condition); err != nil {
			return err
		}
		if err := Walk(v, n.Body); err != nil {
			return err
		}
	case *ForEachStatement:
		if err := Walk(v, n.Type); err != nil {
			return err
		}
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		if err := Walk(v, n.Iterable); err != nil {
			return err
		}
		if err := Walk(v, n.Body); err != nil {
			return err
		}
	case *ForStatement:
		if err := Walk(v, n.Initializer); err != nil {
			return err
		}
		if err := Walk(v, n.Condition); err != nil {
			return err
		}
		if err := Walk(v, n.Update); err != nil {
			return err
		}
		if err := Walk(v, n.Body); err != nil {
			return err
		}
	case *SwitchStatement:
		if err := Walk(v, n.Value); err != nil {
			return err
		}
		for _, c := range n.Cases {
			if err := Walk(v, c); err != nil {
				return err
			}
		}
	case *SwitchCase:
		if err := walkExprSlice(v, n.Values); err != nil {
			return err
		}
		if err := walkStmtSlice(v, n.Statements); err != nil {
			return err
		}
	case *Identifier:
	case *AccessPath:
		if err := Walk(v, n.Operand); err != nil {
			return err
		}
		if err := Walk(v, n.Field); err != nil {
			return err
		}
	case *ParenthesizedExpression:
		if err := Walk(v, n.Expr); err != nil {
			return err
		}
	case *UnaryExpression:
		if err := Walk(v, n.Expr); err != nil {
			return err
		}
	case *BinaryExpression:
		if err := Walk(v, n.Left); err != nil {
			return err
		}
		if err := Walk(v, n.Right); err != nil {
			return err
		}
	case *AssignmentExpression:
		if err := Walk(v, n.Left); err != nil {
			return err
		}
		if err := Walk(v, n.Right); err != nil {
			return err
		}
	case *CallExpression:
		if err := Walk(v, n.Receiver); err != nil {
			return err
		}
		if err := Walk(v, n.Function); err != nil {
			return err
		}
		if err := walkExprSlice(v, n.Arguments); err != nil {
			return err
		}
	case *EntityCreationExpression:
		if err := Walk(v, n.Type); err != nil {
			return err
		}
		if err := walkExprSlice(v, n.Arguments); err != nil {
			return err
		}
	case *GenericType:
		if err := Walk(v, n.Name); err != nil {
			return err
		}
		if err := walkExprSlice(v, n.Arguments); err != nil {
			return err
		}
	case *NullLiteral, *BooleanLiteral, *IntLiteral, *FloatLiteral, *StringLiteral, *LiteralModifier:
	}

	if v.Post != nil {
		if err := v.Post(node); err != nil {
			return err
		}
	}
	return nil
}

func walkStmtSlice(v Visitor, stmts []Statement) error {
	for _, s := range stmts {
		if err := Walk(v, s); err != nil {
			return err
		}
	}
	return nil
}

func walkExprSlice(v Visitor, exprs []Expression) error {
	for _, e := range exprs {
		if err := Walk(v, e); err != nil {
			return err
		}
	}
	return nil
}
