// Package continuation implements the continuation enumerator: it produces,
// for each yield site, the statement to execute upon resumption from that
// site until the generator body completes.
package continuation

import (
	"fmt"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

// Pair is one (yield-id, continuation) entry. Continuations are returned as
// an ordered slice rather than a map, in enumeration order; the assembler
// still sorts them by YieldID before building its switch.
type Pair struct {
	YieldID      int
	Continuation mast.Statement
}

// Enumerator enumerates continuations against a fixed yield tag table.
type Enumerator struct {
	tags *mast.YieldTags
}

// New returns an Enumerator over the given yield tags.
func New(tags *mast.YieldTags) *Enumerator {
	return &Enumerator{tags: tags}
}

// Enumerate returns the (yield-id, continuation) pairs for s, via
// structural recursion over its shape.
func (en *Enumerator) Enumerate(s mast.Statement) ([]Pair, error) {
	switch n := s.(type) {
	case nil, *mast.EmptyStatement:
		return nil, nil
	case *mast.Block:
		return en.enumerateBlock(n)
	case *mast.ExpressionStatement:
		if call, ok := n.Expr.(*mast.CallExpression); ok {
			if id, ok := call.Function.(*mast.Identifier); ok && id.Name == "yield" && call.Receiver == nil && len(call.Arguments) == 1 {
				yieldID, ok := en.tags.IDFor(call)
				if !ok {
					return nil, fmt.Errorf("continuation: internal invariant violation: yield site without a tag")
				}
				return []Pair{{YieldID: yieldID, Continuation: &mast.EmptyStatement{}}}, nil
			}
		}
		return nil, nil
	case *mast.WhileStatement:
		inner, err := en.Enumerate(n.Body)
		if err != nil {
			return nil, err
		}
		out := make([]Pair, len(inner))
		for i, p := range inner {
			out[i] = Pair{
				YieldID: p.YieldID,
				Continuation: &mast.Block{Statements: []mast.Statement{
					p.Continuation,
					n,
				}},
			}
		}
		return out, nil
	case *mast.IfStatement:
		cons, err := en.Enumerate(n.Consequence)
		if err != nil {
			return nil, err
		}
		alt, err := en.Enumerate(n.Alternative)
		if err != nil {
			return nil, err
		}
		return append(cons, alt...), nil
	case *mast.BreakStatement, *mast.ContinueStatement, *mast.ReturnStatement,
		*mast.AssignmentStatement, *mast.DeclarationStatement:
		return nil, nil
	default:
		return nil, fmt.Errorf("continuation: not implemented: unsupported statement node %T", s)
	}
}

// enumerateBlock implements the block rule: for each statement
// s_i in order, for each (y, k) produced by enumerating s_i, yield
// (y, {k; s_{i+1}; ...; s_m}).
func (en *Enumerator) enumerateBlock(b *mast.Block) ([]Pair, error) {
	var out []Pair
	for i, s := range b.Statements {
		pairs, err := en.Enumerate(s)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			continue
		}
		rest := b.Statements[i+1:]
		for _, p := range pairs {
			stmts := make([]mast.Statement, 0, 1+len(rest))
			if kb, ok := p.Continuation.(*mast.Block); ok {
				stmts = append(stmts, kb.Statements...)
			} else {
				stmts = append(stmts, p.Continuation)
			}
			stmts = append(stmts, rest...)
			out = append(out, Pair{YieldID: p.YieldID, Continuation: &mast.Block{Statements: stmts}})
		}
	}
	return out, nil
}
