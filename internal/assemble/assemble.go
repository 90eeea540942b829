// Package assemble implements the iterator assembler: it combines the
// hoisted body, the yield tag table, RTFY and the continuation enumerator
// into the final iterator class declaration.
package assemble

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/corvid-lang/genit2iter/internal/continuation"
	"github.com/corvid-lang/genit2iter/internal/mast"
	"github.com/corvid-lang/genit2iter/internal/rtfy"
)

// Fields names the control fields and the next() temporary to use in the
// assembled class.
type Fields struct {
	HasNext string
	Next    string
	// State is empty when the generator has at most one yield: no state
	// field is emitted and advance() skips the switch.
	State string
	// Tmp names the local next() uses to snapshot the next field before
	// calling advance().
	Tmp string
}

// Input collects everything the assembler needs beyond what a structural
// walk of the rewritten body already gives it.
type Input struct {
	// Name, Modifiers, TypeParameters, Supers and Interfaces are carried
	// over verbatim from the original class declaration.
	Name           *mast.Identifier
	Modifiers      []mast.Expression
	TypeParameters []*mast.TypeParameter
	Supers         []mast.Expression
	Interfaces     []mast.Expression

	// OtherMembers are the original class's declarations other than the
	// generate method, copied through unchanged (point 3a).
	OtherMembers []mast.Declaration

	// Parameters are the generate method's formal parameters, which become
	// the constructor's parameters and one field each (points 3b, 4).
	Parameters []*mast.ParameterDeclaration

	// ElementType is the generator's declared return element type, used as
	// the type of the next field (point 3d).
	ElementType mast.Expression

	// HoistedFields are the fields emitted by the hoister for the
	// generator's local declarations (point 3c).
	HoistedFields []*mast.FieldDeclaration

	// HoistedBody is the generator body after hoisting, with yield sites
	// already tagged by the numberer (in Tags). RTFY has not been applied to
	// it yet; the assembler applies RTFY itself, once for the constructor and
	// once per continuation.
	HoistedBody *mast.Block

	Tags   *mast.YieldTags
	Fields Fields
}

// Assemble builds the iterator class declaration: control fields, a
// constructor, hasNext()/next() accessors and advance().
func Assemble(in Input) (*mast.ClassDeclaration, error) {
	pairs, err := continuation.New(in.Tags).Enumerate(in.HoistedBody)
	if err != nil {
		return nil, fmt.Errorf("assemble: enumerating continuations: %w", err)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].YieldID < pairs[j].YieldID })

	hasState := in.Fields.State != ""
	if hasState != (in.Tags.Count() >= 2) {
		return nil, fmt.Errorf("assemble: internal invariant violation: state field presence (%v) does not match yield count (%d)", hasState, in.Tags.Count())
	}

	body := make([]mast.Declaration, 0, len(in.OtherMembers)+len(in.Parameters)+len(in.HoistedFields)+6)
	body = append(body, in.OtherMembers...)

	for _, p := range in.Parameters {
		body = append(body, &mast.FieldDeclaration{
			Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
			Name:      p.Name,
			Type:      p.Type,
		})
	}
	for _, f := range in.HoistedFields {
		body = append(body, f)
	}

	body = append(body,
		&mast.FieldDeclaration{
			Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
			Name:      &mast.Identifier{Name: in.Fields.HasNext},
			Type:      &mast.Identifier{Name: "boolean"},
			Value:     &mast.BooleanLiteral{Value: false},
		},
		&mast.FieldDeclaration{
			Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
			Name:      &mast.Identifier{Name: in.Fields.Next},
			Type:      in.ElementType,
			Value:     &mast.NullLiteral{},
		},
	)
	if hasState {
		body = append(body, &mast.FieldDeclaration{
			Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
			Name:      &mast.Identifier{Name: in.Fields.State},
			Type:      &mast.Identifier{Name: "int"},
			Value:     &mast.IntLiteral{Value: "0"},
		})
	}

	ctor, err := buildConstructor(in)
	if err != nil {
		return nil, fmt.Errorf("assemble: building constructor: %w", err)
	}
	body = append(body, ctor)
	body = append(body, buildHasNext(in.Fields))
	body = append(body, buildNext(in))
	advance, err := buildAdvance(in, pairs)
	if err != nil {
		return nil, fmt.Errorf("assemble: building advance: %w", err)
	}
	body = append(body, advance)

	return &mast.ClassDeclaration{
		Modifiers:      in.Modifiers,
		Name:           in.Name,
		TypeParameters: in.TypeParameters,
		Supers:         in.Supers,
		Interfaces:     in.Interfaces,
		Body:           body,
	}, nil
}

func rtfyFields(f Fields) rtfy.Fields {
	return rtfy.Fields{HasNext: f.HasNext, Next: f.Next, State: f.State}
}

// buildConstructor assigns every formal parameter to its field, then runs
// RTFY over the whole hoisted body. A trailing "break;" sentinel marking
// "nothing further happens" when the body completes without yielding is
// explicitly elidable, so it is omitted here rather than emitted as a break
// outside any loop or switch.
func buildConstructor(in Input) (*mast.ConstructorDeclaration, error) {
	stmts := make([]mast.Statement, 0, len(in.Parameters)+1)
	for _, p := range in.Parameters {
		stmts = append(stmts, &mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.AccessPath{Operand: &mast.Identifier{Name: "this"}, Field: p.Name},
			Right:    p.Name,
		}})
	}

	rewriter := rtfy.New(rtfyFields(in.Fields), in.Tags)
	body, err := rewriter.Run(in.HoistedBody, nil)
	if err != nil {
		return nil, err
	}
	if block, ok := body.(*mast.Block); ok {
		stmts = append(stmts, block.Statements...)
	} else {
		stmts = append(stmts, body)
	}

	params := make([]mast.Declaration, len(in.Parameters))
	for i, p := range in.Parameters {
		params[i] = p
	}
	return &mast.ConstructorDeclaration{
		Modifiers:  []mast.Expression{&mast.LiteralModifier{Modifier: mast.PublicMod}},
		Name:       in.Name,
		Parameters: params,
		Statements: stmts,
	}, nil
}

func buildHasNext(f Fields) *mast.FunctionDeclaration {
	return &mast.FunctionDeclaration{
		Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PublicMod}},
		Name:      &mast.Identifier{Name: "hasNext"},
		Returns: []mast.Declaration{&mast.ParameterDeclaration{Type: &mast.Identifier{Name: "boolean"}}},
		Statements: []mast.Statement{
			&mast.ReturnStatement{Value: &mast.Identifier{Name: f.HasNext}},
		},
	}
}

// buildNext snapshots the next field into a fresh local, advances, and
// returns the snapshot. The assembled body is unconditional: next() has no
// exhausted-iterator guard and throws no error, so calling it when
// hasNext() is false returns whatever the next field still holds and runs
// advance() once more.
func buildNext(in Input) *mast.FunctionDeclaration {
	tmp := &mast.Identifier{Name: in.Fields.Tmp}
	return &mast.FunctionDeclaration{
		Modifiers: []mast.Expression{&mast.LiteralModifier{Modifier: mast.PublicMod}},
		Name:      &mast.Identifier{Name: "next"},
		Returns:   []mast.Declaration{&mast.ParameterDeclaration{Type: in.ElementType}},
		Statements: []mast.Statement{
			&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
				Type:  in.ElementType,
				Name:  tmp,
				Value: &mast.Identifier{Name: in.Fields.Next},
			}},
			&mast.ExpressionStatement{Expr: &mast.CallExpression{Function: &mast.Identifier{Name: "advance"}}},
			&mast.ReturnStatement{Value: tmp},
		},
	}
}

// buildAdvance builds advance(): a single RTFY body for one yield, or a
// switch(state) dispatch over the continuation pairs for two or more.
func buildAdvance(in Input, pairs []continuation.Pair) (*mast.FunctionDeclaration, error) {
	stmts := []mast.Statement{
		&mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignOperator,
			Left:     &mast.Identifier{Name: in.Fields.HasNext},
			Right:    &mast.BooleanLiteral{Value: false},
		}},
	}

	switch len(pairs) {
	case 0:
		stmts = append(stmts, &mast.EmptyStatement{})
	case 1:
		rewriter := rtfy.New(rtfyFields(in.Fields), in.Tags)
		body, err := rewriter.Run(pairs[0].Continuation, nil)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, body)
	default:
		cases := make([]*mast.SwitchCase, len(pairs))
		for i, p := range pairs {
			rewriter := rtfy.New(rtfyFields(in.Fields), in.Tags)
			body, err := rewriter.Run(p.Continuation, &mast.BreakStatement{})
			if err != nil {
				return nil, err
			}
			cases[i] = &mast.SwitchCase{
				Values:     []mast.Expression{&mast.IntLiteral{Value: strconv.Itoa(p.YieldID)}},
				Statements: []mast.Statement{body},
			}
		}
		stmts = append(stmts, &mast.SwitchStatement{
			Value: &mast.Identifier{Name: in.Fields.State},
			Cases: cases,
		})
	}

	return &mast.FunctionDeclaration{
		Modifiers:  []mast.Expression{&mast.LiteralModifier{Modifier: mast.PrivateMod}},
		Name:       &mast.Identifier{Name: "advance"},
		Statements: stmts,
	}, nil
}
