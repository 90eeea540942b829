// Package rtfy implements the run-to-first-yield rewriter: it compiles a
// structured statement into straight-line code that executes up to and
// including its first dynamically reached yield, saving resumption state
// before returning, using a kind-switch reconstruction style: switch on
// concrete statement type, reconstruct, recurse.
package rtfy

import (
	"fmt"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

// Fields names the three control fields RTFY references when emitting a
// state-save trailer. State is empty when the body has at most one yield,
// in which case no state assignment is emitted.
type Fields struct {
	HasNext string
	Next    string
	State   string
}

// Rewriter runs RTFY against a fixed set of control fields and the yield
// tag table produced by numbering.Number.
type Rewriter struct {
	fields Fields
	tags   *mast.YieldTags
	dead   bool
}

// New returns a Rewriter over the given control fields and yield tags.
func New(fields Fields, tags *mast.YieldTags) *Rewriter {
	return &Rewriter{fields: fields, tags: tags}
}

// Run rewrites s into a single statement, optionally
// appending continuation k if the rewritten statement may complete
// normally (i.e. is not "dead": every straight-line path yielded).
func (r *Rewriter) Run(s mast.Statement, k mast.Statement) (mast.Statement, error) {
	r.dead = false
	rewritten, err := r.visit(s)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return rewritten, nil
	}
	if r.dead {
		return rewritten, nil
	}
	return &mast.Block{Statements: []mast.Statement{rewritten, k}}, nil
}

func (r *Rewriter) visit(s mast.Statement) (mast.Statement, error) {
	switch n := s.(type) {
	case nil:
		return &mast.EmptyStatement{}, nil
	case *mast.EmptyStatement:
		return n, nil
	case *mast.ExpressionStatement:
		if call, ok := n.Expr.(*mast.CallExpression); ok {
			if id, ok := call.Function.(*mast.Identifier); ok && id.Name == "yield" && call.Receiver == nil && len(call.Arguments) == 1 {
				return r.visitYield(call)
			}
		}
		r.dead = false
		return n, nil
	case *mast.Block:
		return r.visitBlock(n)
	case *mast.WhileStatement:
		return r.visitWhile(n)
	case *mast.IfStatement:
		return r.visitIf(n)
	case *mast.BreakStatement, *mast.ContinueStatement, *mast.ReturnStatement,
		*mast.AssignmentStatement, *mast.DeclarationStatement:
		r.dead = false
		return n, nil
	default:
		return nil, fmt.Errorf("rtfy: not implemented: unsupported statement node %T", s)
	}
}

// visitYield emits the state-save trailer for a yield site and marks the
// current straight-line path dead.
func (r *Rewriter) visitYield(call *mast.CallExpression) (mast.Statement, error) {
	id, ok := r.tags.IDFor(call)
	if !ok {
		return nil, fmt.Errorf("rtfy: internal invariant violation: yield site without a tag")
	}
	stmts := []mast.Statement{
		&mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.Identifier{Name: r.fields.HasNext},
			Right:    &mast.BooleanLiteral{Value: true},
		}},
		&mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.Identifier{Name: r.fields.Next},
			Right:    call.Arguments[0],
		}},
	}
	if r.fields.State != "" {
		stmts = append(stmts, &mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.Identifier{Name: r.fields.State},
			Right:    &mast.IntLiteral{Value: fmt.Sprintf("%d", id)},
		}})
	}
	stmts = append(stmts, &mast.ReturnStatement{})
	r.dead = true
	return &mast.Block{Statements: stmts}, nil
}

// visitBlock visits statements in order; once dead becomes true the
// remaining statements on this straight-line path are replaced with empty
// statements since they are unreachable here,
// though they remain reachable via continuations enumerated separately.
func (r *Rewriter) visitBlock(b *mast.Block) (*mast.Block, error) {
	out := make([]mast.Statement, len(b.Statements))
	for i, s := range b.Statements {
		if r.dead {
			out[i] = &mast.EmptyStatement{}
			continue
		}
		rewritten, err := r.visit(s)
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return &mast.Block{Statements: out}, nil
}

func (r *Rewriter) visitWhile(n *mast.WhileStatement) (mast.Statement, error) {
	body, err := r.visit(n.Body)
	if err != nil {
		return nil, err
	}
	if !r.dead {
		return &mast.WhileStatement{Condition: n.Condition, Body: body}, nil
	}
	if isLiteralTrue(n.Condition) {
		// The loop is degenerate: the first iteration always yields, so
		// the rewritten body alone replaces the whole loop.
		return body, nil
	}
	r.dead = false
	return &mast.IfStatement{Condition: n.Condition, Consequence: body}, nil
}

func (r *Rewriter) visitIf(n *mast.IfStatement) (mast.Statement, error) {
	cons, err := r.visit(n.Consequence)
	if err != nil {
		return nil, err
	}
	dt := r.dead
	r.dead = false

	// An absent else branch is represented as nil, not as an EmptyStatement
	// (see the printer's "nil means omit" convention); it is, by
	// definition, never dead.
	var alt mast.Statement
	de := false
	if n.Alternative != nil {
		alt, err = r.visit(n.Alternative)
		if err != nil {
			return nil, err
		}
		de = r.dead
	}
	r.dead = dt && de
	return &mast.IfStatement{Condition: n.Condition, Consequence: cons, Alternative: alt}, nil
}

func isLiteralTrue(e mast.Expression) bool {
	b, ok := e.(*mast.BooleanLiteral)
	return ok && b.Value
}
