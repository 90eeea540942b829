// Package printer implements the straightforward structural walk needed to
// turn a MAST forest back into concrete syntax so the CLI has something to
// write out. It is glue, not
// part of the transformation algorithm, loosely modeled on the detailed/
// compact printer styles referenced elsewhere in the retrieval pack.
package printer

import (
	"fmt"
	"strings"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

// Printer renders a MAST forest with a configurable indent width.
type Printer struct {
	indentWidth int
}

// New returns a Printer using width spaces per nesting level.
func New(width int) *Printer {
	if width <= 0 {
		width = 2
	}
	return &Printer{indentWidth: width}
}

// Print renders forest to a single string, one top-level declaration per
// line group, each followed by a trailing newline.
func (p *Printer) Print(forest []mast.Node) (string, error) {
	var sb strings.Builder
	for _, n := range forest {
		if err := p.printNode(&sb, n, 0); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (p *Printer) indent(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat(" ", level*p.indentWidth))
}

func (p *Printer) printNode(sb *strings.Builder, n mast.Node, level int) error {
	switch node := n.(type) {
	case *mast.Root:
		for _, d := range node.Declarations {
			if err := p.printDecl(sb, d, level); err != nil {
				return err
			}
		}
		return nil
	default:
		if d, ok := n.(mast.Declaration); ok {
			return p.printDecl(sb, d, level)
		}
		return fmt.Errorf("printer: not implemented: unsupported top-level node %T", n)
	}
}

func (p *Printer) printDecl(sb *strings.Builder, d mast.Declaration, level int) error {
	switch n := d.(type) {
	case *mast.PackageDeclaration:
		p.indent(sb, level)
		sb.WriteString("package ")
		if err := p.printExpr(sb, n.Name); err != nil {
			return err
		}
		sb.WriteString(";\n")
	case *mast.ImportDeclaration:
		p.indent(sb, level)
		sb.WriteString("import ")
		if err := p.printExpr(sb, n.Package); err != nil {
			return err
		}
		if n.Alias != nil {
			sb.WriteString(" as ")
			sb.WriteString(n.Alias.Name)
		}
		sb.WriteString(";\n")
	case *mast.ClassDeclaration:
		return p.printClass(sb, n, level)
	case *mast.FieldDeclaration:
		p.indent(sb, level)
		p.printModifiers(sb, n.Modifiers)
		if err := p.printExpr(sb, n.Type); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Name.Name)
		if n.Value != nil {
			sb.WriteString(" = ")
			if err := p.printExpr(sb, n.Value); err != nil {
				return err
			}
		}
		sb.WriteString(";\n")
	case *mast.FunctionDeclaration:
		return p.printFunction(sb, n, level)
	case *mast.ConstructorDeclaration:
		return p.printConstructor(sb, n, level)
	case *mast.ParameterDeclaration:
		if err := p.printExpr(sb, n.Type); err != nil {
			return err
		}
		if n.Name != nil {
			sb.WriteString(" ")
			if n.IsVariadic {
				sb.WriteString("...")
			}
			sb.WriteString(n.Name.Name)
		}
	case *mast.VariableDeclaration:
		p.printModifiers(sb, n.Modifiers)
		if err := p.printExpr(sb, n.Type); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Name.Name)
		if n.Value != nil {
			sb.WriteString(" = ")
			if err := p.printExpr(sb, n.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("printer: not implemented: unsupported declaration node %T", d)
	}
	return nil
}

func (p *Printer) printModifiers(sb *strings.Builder, mods []mast.Expression) {
	for _, m := range mods {
		if lit, ok := m.(*mast.LiteralModifier); ok {
			sb.WriteString(lit.Modifier)
			sb.WriteString(" ")
		}
	}
}

func (p *Printer) printClass(sb *strings.Builder, n *mast.ClassDeclaration, level int) error {
	p.indent(sb, level)
	p.printModifiers(sb, n.Modifiers)
	sb.WriteString("class ")
	sb.WriteString(n.Name.Name)
	if len(n.TypeParameters) > 0 {
		sb.WriteString("<")
		for i, tp := range n.TypeParameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := p.printExpr(sb, tp.Name); err != nil {
				return err
			}
		}
		sb.WriteString(">")
	}
	for _, s := range n.Supers {
		sb.WriteString(" extends ")
		if err := p.printExpr(sb, s); err != nil {
			return err
		}
	}
	for i, iface := range n.Interfaces {
		if i == 0 {
			sb.WriteString(" implements ")
		} else {
			sb.WriteString(", ")
		}
		if err := p.printExpr(sb, iface); err != nil {
			return err
		}
	}
	sb.WriteString(" {\n")
	for _, d := range n.Body {
		if err := p.printDecl(sb, d, level+1); err != nil {
			return err
		}
	}
	p.indent(sb, level)
	sb.WriteString("}\n")
	return nil
}

func (p *Printer) printParams(sb *strings.Builder, params []mast.Declaration) error {
	sb.WriteString("(")
	for i, param := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := p.printDecl(sb, param, 0); err != nil {
			return err
		}
	}
	sb.WriteString(")")
	return nil
}

func (p *Printer) printFunction(sb *strings.Builder, n *mast.FunctionDeclaration, level int) error {
	p.indent(sb, level)
	p.printModifiers(sb, n.Modifiers)
	if len(n.Returns) == 1 {
		if err := p.printDecl(sb, n.Returns[0], 0); err != nil {
			return err
		}
	} else {
		sb.WriteString("void")
	}
	sb.WriteString(" ")
	sb.WriteString(n.Name.Name)
	if err := p.printParams(sb, n.Parameters); err != nil {
		return err
	}
	sb.WriteString(" {\n")
	if err := p.printStatements(sb, n.Statements, level+1); err != nil {
		return err
	}
	p.indent(sb, level)
	sb.WriteString("}\n")
	return nil
}

func (p *Printer) printConstructor(sb *strings.Builder, n *mast.ConstructorDeclaration, level int) error {
	p.indent(sb, level)
	p.printModifiers(sb, n.Modifiers)
	sb.WriteString(n.Name.Name)
	if err := p.printParams(sb, n.Parameters); err != nil {
		return err
	}
	sb.WriteString(" {\n")
	if err := p.printStatements(sb, n.Statements, level+1); err != nil {
		return err
	}
	p.indent(sb, level)
	sb.WriteString("}\n")
	return nil
}

func (p *Printer) printStatements(sb *strings.Builder, stmts []mast.Statement, level int) error {
	for _, s := range stmts {
		if err := p.printStmt(sb, s, level); err != nil {
			return err
		}
	}
	return nil
}

// printStmt prints s as a complete, indented, newline-terminated statement.
// It is used for every statement except the body of an if/while, which
// printBody renders as a nested block regardless of whether it was already
// a Block: if/while bodies always print as nested indented blocks.
func (p *Printer) printStmt(sb *strings.Builder, s mast.Statement, level int) error {
	switch n := s.(type) {
	case nil, *mast.EmptyStatement:
		p.indent(sb, level)
		sb.WriteString(";\n")
	case *mast.Block:
		return p.printStatements(sb, n.Statements, level)
	case *mast.ExpressionStatement:
		p.indent(sb, level)
		if err := p.printExpr(sb, n.Expr); err != nil {
			return err
		}
		sb.WriteString(";\n")
	case *mast.DeclarationStatement:
		p.indent(sb, level)
		if err := p.printDecl(sb, n.Decl, 0); err != nil {
			return err
		}
		sb.WriteString(";\n")
	case *mast.AssignmentStatement:
		p.indent(sb, level)
		if err := p.printExpr(sb, n.Expr); err != nil {
			return err
		}
		sb.WriteString(";\n")
	case *mast.ReturnStatement:
		p.indent(sb, level)
		sb.WriteString("return")
		if n.Value != nil {
			sb.WriteString(" ")
			if err := p.printExpr(sb, n.Value); err != nil {
				return err
			}
		}
		sb.WriteString(";\n")
	case *mast.BreakStatement:
		p.indent(sb, level)
		sb.WriteString("break;\n")
	case *mast.ContinueStatement:
		p.indent(sb, level)
		sb.WriteString("continue;\n")
	case *mast.IfStatement:
		p.indent(sb, level)
		sb.WriteString("if (")
		if err := p.printExpr(sb, n.Condition); err != nil {
			return err
		}
		sb.WriteString(") {\n")
		if err := p.printBody(sb, n.Consequence, level+1); err != nil {
			return err
		}
		p.indent(sb, level)
		if n.Alternative != nil {
			sb.WriteString("} else {\n")
			if err := p.printBody(sb, n.Alternative, level+1); err != nil {
				return err
			}
			p.indent(sb, level)
		}
		sb.WriteString("}\n")
	case *mast.WhileStatement:
		p.indent(sb, level)
		sb.WriteString("while (")
		if err := p.printExpr(sb, n.Condition); err != nil {
			return err
		}
		sb.WriteString(") {\n")
		if err := p.printBody(sb, n.Body, level+1); err != nil {
			return err
		}
		p.indent(sb, level)
		sb.WriteString("}\n")
	case *mast.ForEachStatement:
		p.indent(sb, level)
		sb.WriteString("for (")
		if err := p.printExpr(sb, n.Type); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Name.Name)
		sb.WriteString(" : ")
		if err := p.printExpr(sb, n.Iterable); err != nil {
			return err
		}
		sb.WriteString(") {\n")
		if err := p.printBody(sb, n.Body, level+1); err != nil {
			return err
		}
		p.indent(sb, level)
		sb.WriteString("}\n")
	case *mast.ForStatement:
		p.indent(sb, level)
		sb.WriteString("for (")
		if err := p.printStmtInline(sb, n.Initializer); err != nil {
			return err
		}
		sb.WriteString("; ")
		if err := p.printExpr(sb, n.Condition); err != nil {
			return err
		}
		sb.WriteString("; ")
		if err := p.printStmtInline(sb, n.Update); err != nil {
			return err
		}
		sb.WriteString(") {\n")
		if err := p.printBody(sb, n.Body, level+1); err != nil {
			return err
		}
		p.indent(sb, level)
		sb.WriteString("}\n")
	case *mast.SwitchStatement:
		p.indent(sb, level)
		sb.WriteString("switch (")
		if err := p.printExpr(sb, n.Value); err != nil {
			return err
		}
		sb.WriteString(") {\n")
		for _, c := range n.Cases {
			p.indent(sb, level+1)
			if len(c.Values) == 0 {
				sb.WriteString("default:\n")
			} else {
				sb.WriteString("case ")
				for i, v := range c.Values {
					if i > 0 {
						sb.WriteString(", ")
					}
					if err := p.printExpr(sb, v); err != nil {
						return err
					}
				}
				sb.WriteString(":\n")
			}
			if err := p.printStatements(sb, c.Statements, level+2); err != nil {
				return err
			}
		}
		p.indent(sb, level)
		sb.WriteString("}\n")
	default:
		return fmt.Errorf("printer: not implemented: unsupported statement node %T", s)
	}
	return nil
}

// printBody renders a nested if/while/for body as an indented sequence of
// statements, flattening a Block wrapper so the braces around it aren't
// doubled.
func (p *Printer) printBody(sb *strings.Builder, s mast.Statement, level int) error {
	if block, ok := s.(*mast.Block); ok {
		return p.printStatements(sb, block.Statements, level)
	}
	return p.printStmt(sb, s, level)
}

// printStmtInline renders a statement without its own indentation or
// trailing newline, for the initializer/update clauses of a for loop.
func (p *Printer) printStmtInline(sb *strings.Builder, s mast.Statement) error {
	switch n := s.(type) {
	case nil, *mast.EmptyStatement:
		return nil
	case *mast.AssignmentStatement:
		return p.printExpr(sb, n.Expr)
	case *mast.DeclarationStatement:
		return p.printDecl(sb, n.Decl, 0)
	case *mast.ExpressionStatement:
		return p.printExpr(sb, n.Expr)
	default:
		return fmt.Errorf("printer: not implemented: unsupported for-clause statement node %T", s)
	}
}

func (p *Printer) printExpr(sb *strings.Builder, e mast.Expression) error {
	switch n := e.(type) {
	case nil:
		return nil
	case *mast.Identifier:
		sb.WriteString(n.Name)
	case *mast.AccessPath:
		if err := p.printExpr(sb, n.Operand); err != nil {
			return err
		}
		sb.WriteString(".")
		sb.WriteString(n.Field.Name)
	case *mast.ParenthesizedExpression:
		sb.WriteString("(")
		if err := p.printExpr(sb, n.Expr); err != nil {
			return err
		}
		sb.WriteString(")")
	case *mast.UnaryExpression:
		sb.WriteString(n.Operator)
		if err := p.printExpr(sb, n.Expr); err != nil {
			return err
		}
	case *mast.BinaryExpression:
		if err := p.printExpr(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Operator)
		sb.WriteString(" ")
		if err := p.printExpr(sb, n.Right); err != nil {
			return err
		}
	case *mast.AssignmentExpression:
		if err := p.printExpr(sb, n.Left); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Operator)
		sb.WriteString(" ")
		if err := p.printExpr(sb, n.Right); err != nil {
			return err
		}
	case *mast.CallExpression:
		if n.Receiver != nil {
			if err := p.printExpr(sb, n.Receiver); err != nil {
				return err
			}
			sb.WriteString(".")
		}
		if err := p.printExpr(sb, n.Function); err != nil {
			return err
		}
		sb.WriteString("(")
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := p.printExpr(sb, a); err != nil {
				return err
			}
		}
		sb.WriteString(")")
	case *mast.EntityCreationExpression:
		sb.WriteString("new ")
		if err := p.printExpr(sb, n.Type); err != nil {
			return err
		}
		sb.WriteString("(")
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := p.printExpr(sb, a); err != nil {
				return err
			}
		}
		sb.WriteString(")")
	case *mast.GenericType:
		if err := p.printExpr(sb, n.Name); err != nil {
			return err
		}
		sb.WriteString("<")
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := p.printExpr(sb, a); err != nil {
				return err
			}
		}
		sb.WriteString(">")
	case *mast.NullLiteral:
		sb.WriteString("null")
	case *mast.BooleanLiteral:
		if n.Value {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case *mast.IntLiteral:
		sb.WriteString(n.Value)
	case *mast.FloatLiteral:
		sb.WriteString(n.Value)
	case *mast.StringLiteral:
		sb.WriteString(fmt.Sprintf("%q", n.Value))
	case *mast.LiteralModifier:
		sb.WriteString(n.Modifier)
	default:
		return fmt.Errorf("printer: not implemented: unsupported expression node %T", e)
	}
	return nil
}
