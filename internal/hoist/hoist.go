// Package hoist implements the declaration hoister: it lifts local variable
// declarations out of a generator body into fields of the class under
// construction, rewriting each declaration as a plain assignment to a
// freshly named identifier.
package hoist

import (
	"fmt"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

// Hoister walks a generator body, replacing every VariableDeclaration with
// an assignment to a freshly allocated field, using a rename-table-plus-
// counter pattern adapted from diff-equivalence renaming to field-lifting.
type Hoister struct {
	prefix  string
	counter int
	rename  map[string]string
	fields  []*mast.FieldDeclaration
	seen    map[string]bool
}

// New returns a Hoister that allocates fresh names of the form
// "<prefix><base>_<n>". existingNames seeds the shadow-collision assertion
// with names already bound in the enclosing
// scope (constructor parameters), so a freshly generated name can never
// silently shadow one of them.
func New(prefix string, existingNames []string) *Hoister {
	seen := make(map[string]bool, len(existingNames))
	for _, n := range existingNames {
		seen[n] = true
	}
	return &Hoister{
		prefix: prefix,
		rename: make(map[string]string),
		seen:   seen,
	}
}

// Fields returns the field declarations emitted so far, in allocation
// order.
func (h *Hoister) Fields() []*mast.FieldDeclaration {
	out := make([]*mast.FieldDeclaration, len(h.fields))
	copy(out, h.fields)
	return out
}

func (h *Hoister) fresh(base string) (string, error) {
	name := fmt.Sprintf("%s%s_%d", h.prefix, base, h.counter)
	h.counter++
	if h.seen[name] {
		return "", fmt.Errorf("hoist: internal invariant violation: freshly generated name %q collides with an existing name", name)
	}
	h.seen[name] = true
	return name, nil
}

// Transform rewrites body, replacing local declarations with assignments
// and emitting their field declarations to Fields().
func (h *Hoister) Transform(body *mast.Block) (*mast.Block, error) {
	stmts, err := h.visitStatements(body.Statements)
	if err != nil {
		return nil, err
	}
	return &mast.Block{Statements: stmts}, nil
}

func (h *Hoister) visitStatements(stmts []mast.Statement) ([]mast.Statement, error) {
	out := make([]mast.Statement, 0, len(stmts))
	for _, s := range stmts {
		rewritten, err := h.visitStatement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, rewritten)
	}
	return out, nil
}

func (h *Hoister) visitStatement(s mast.Statement) (mast.Statement, error) {
	switch n := s.(type) {
	case nil:
		return nil, nil
	case *mast.EmptyStatement:
		return n, nil
	case *mast.Block:
		stmts, err := h.visitStatements(n.Statements)
		if err != nil {
			return nil, err
		}
		return &mast.Block{Statements: stmts}, nil
	case *mast.DeclarationStatement:
		vdecl, ok := n.Decl.(*mast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("hoist: not implemented: unsupported declaration statement %T", n.Decl)
		}
		return h.hoistVariable(vdecl)
	case *mast.ExpressionStatement:
		expr, err := h.visitExpression(n.Expr)
		if err != nil {
			return nil, err
		}
		return &mast.ExpressionStatement{Expr: expr}, nil
	case *mast.AssignmentStatement:
		expr, err := h.visitExpression(n.Expr)
		if err != nil {
			return nil, err
		}
		ae, ok := expr.(*mast.AssignmentExpression)
		if !ok {
			return nil, fmt.Errorf("hoist: internal invariant violation: rewriting an assignment statement produced %T", expr)
		}
		return &mast.AssignmentStatement{Expr: ae}, nil
	case *mast.ReturnStatement:
		val, err := h.visitExpressionMaybe(n.Value)
		if err != nil {
			return nil, err
		}
		return &mast.ReturnStatement{Value: val}, nil
	case *mast.BreakStatement:
		return n, nil
	case *mast.ContinueStatement:
		return nil, fmt.Errorf("hoist: not implemented: continue is not supported inside a generator body")
	case *mast.IfStatement:
		cond, err := h.visitExpression(n.Condition)
		if err != nil {
			return nil, err
		}
		cons, err := h.visitStatement(n.Consequence)
		if err != nil {
			return nil, err
		}
		alt, err := h.visitStatement(n.Alternative)
		if err != nil {
			return nil, err
		}
		return &mast.IfStatement{Condition: cond, Consequence: cons, Alternative: alt}, nil
	case *mast.WhileStatement:
		cond, err := h.visitExpression(n.Condition)
		if err != nil {
			return nil, err
		}
		body, err := h.visitStatement(n.Body)
		if err != nil {
			return nil, err
		}
		return &mast.WhileStatement{Condition: cond, Body: body}, nil
	case *mast.ForEachStatement:
		return h.desugarForEach(n)
	case *mast.ForStatement:
		return nil, fmt.Errorf("hoist: not implemented: three-part for loops are not supported")
	case *mast.SwitchStatement:
		return nil, fmt.Errorf("hoist: not implemented: switch is not supported inside a generator body")
	default:
		return nil, fmt.Errorf("hoist: not implemented: unsupported statement node %T", s)
	}
}

// desugarForEach rewrites a for-each loop into the equivalent
// explicit-iterator while loop before visiting it:
//
//	{ T v; Iterator<T> it = visit(iter).iterator();
//	  while (it.hasNext()) { v = it.next(); body } }
func (h *Hoister) desugarForEach(n *mast.ForEachStatement) (mast.Statement, error) {
	iterable, err := h.visitExpression(n.Iterable)
	if err != nil {
		return nil, err
	}
	// "it" is a plain base name here, not yet a fresh one: the recursive
	// visitStatement call below hoists this desugared declaration just like
	// any other, allocating and tracking its fresh name the normal way.
	itBase := &mast.Identifier{Name: "it"}
	desugared := &mast.Block{
		Statements: []mast.Statement{
			&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{Type: n.Type, Name: n.Name}},
			&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
				Type: &mast.GenericType{Name: &mast.Identifier{Name: "Iterator"}, Arguments: []mast.Expression{n.Type}},
				Name: itBase,
				Value: &mast.CallExpression{
					Receiver: iterable,
					Function: &mast.Identifier{Name: "iterator"},
				},
			}},
			&mast.WhileStatement{
				Condition: &mast.CallExpression{
					Receiver: itBase,
					Function: &mast.Identifier{Name: "hasNext"},
				},
				Body: &mast.Block{Statements: []mast.Statement{
					&mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
						Operator: mast.AssignOperator,
						Left:     n.Name,
						Right: &mast.CallExpression{
							Receiver: itBase,
							Function: &mast.Identifier{Name: "next"},
						},
					}},
					n.Body,
				}},
			},
		},
	}
	return h.visitStatement(desugared)
}

func (h *Hoister) hoistVariable(vdecl *mast.VariableDeclaration) (mast.Statement, error) {
	fresh, err := h.fresh(vdecl.Name.Name)
	if err != nil {
		return nil, err
	}
	h.rename[vdecl.Name.Name] = fresh
	fieldType, err := h.visitExpression(vdecl.Type)
	if err != nil {
		return nil, err
	}
	h.fields = append(h.fields, &mast.FieldDeclaration{
		Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
		Name:      &mast.Identifier{Name: fresh},
		Type:      fieldType,
	})
	if vdecl.Value == nil {
		return &mast.EmptyStatement{}, nil
	}
	value, err := h.visitExpression(vdecl.Value)
	if err != nil {
		return nil, err
	}
	return &mast.AssignmentStatement{
		Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.Identifier{Name: fresh},
			Right:    value,
		},
	}, nil
}

func (h *Hoister) visitExpressionMaybe(e mast.Expression) (mast.Expression, error) {
	if e == nil {
		return nil, nil
	}
	return h.visitExpression(e)
}

func (h *Hoister) visitExpressions(exprs []mast.Expression) ([]mast.Expression, error) {
	out := make([]mast.Expression, 0, len(exprs))
	for _, e := range exprs {
		v, err := h.visitExpression(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// visitExpression substitutes renamed identifiers and
// otherwise reconstructs structurally.
func (h *Hoister) visitExpression(e mast.Expression) (mast.Expression, error) {
	switch n := e.(type) {
	case nil:
		return nil, nil
	case *mast.Identifier:
		if fresh, ok := h.rename[n.Name]; ok {
			return &mast.Identifier{Name: fresh}, nil
		}
		return n, nil
	case *mast.AccessPath:
		operand, err := h.visitExpression(n.Operand)
		if err != nil {
			return nil, err
		}
		return &mast.AccessPath{Operand: operand, Field: n.Field}, nil
	case *mast.ParenthesizedExpression:
		inner, err := h.visitExpression(n.Expr)
		if err != nil {
			return nil, err
		}
		return &mast.ParenthesizedExpression{Expr: inner}, nil
	case *mast.UnaryExpression:
		inner, err := h.visitExpression(n.Expr)
		if err != nil {
			return nil, err
		}
		return &mast.UnaryExpression{Operator: n.Operator, Expr: inner}, nil
	case *mast.BinaryExpression:
		left, err := h.visitExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := h.visitExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return &mast.BinaryExpression{Operator: n.Operator, Left: left, Right: right}, nil
	case *mast.AssignmentExpression:
		left, err := h.visitExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := h.visitExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return &mast.AssignmentExpression{Operator: n.Operator, Left: left, Right: right}, nil
	case *mast.CallExpression:
		receiver, err := h.visitExpressionMaybe(n.Receiver)
		if err != nil {
			return nil, err
		}
		function, err := h.visitExpression(n.Function)
		if err != nil {
			return nil, err
		}
		args, err := h.visitExpressions(n.Arguments)
		if err != nil {
			return nil, err
		}
		return &mast.CallExpression{Receiver: receiver, Function: function, Arguments: args}, nil
	case *mast.EntityCreationExpression:
		typ, err := h.visitExpression(n.Type)
		if err != nil {
			return nil, err
		}
		args, err := h.visitExpressions(n.Arguments)
		if err != nil {
			return nil, err
		}
		return &mast.EntityCreationExpression{Type: typ, Arguments: args}, nil
	case *mast.GenericType:
		name, err := h.visitExpression(n.Name)
		if err != nil {
			return nil, err
		}
		args, err := h.visitExpressions(n.Arguments)
		if err != nil {
			return nil, err
		}
		return &mast.GenericType{Name: name, Arguments: args}, nil
	case *mast.NullLiteral, *mast.BooleanLiteral, *mast.IntLiteral, *mast.FloatLiteral, *mast.StringLiteral:
		return n, nil
	default:
		return nil, fmt.Errorf("hoist: not implemented: unsupported expression node %T", e)
	}
}
