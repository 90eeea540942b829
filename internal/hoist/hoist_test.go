package hoist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-lang/genit2iter/internal/mast"
)

func TestHoistVariableEmitsFieldAndAssignment(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
			Type:  &mast.Identifier{Name: "int"},
			Name:  &mast.Identifier{Name: "total"},
			Value: &mast.IntLiteral{Value: "0"},
		}},
	}}

	h := New("$_gen_", nil)
	out, err := h.Transform(body)
	require.NoError(t, err)

	require.Len(t, h.Fields(), 1)
	field := h.Fields()[0]
	require.Equal(t, "$_gen_total_0", field.Name.Name)

	require.Len(t, out.Statements, 1)
	assign, ok := out.Statements[0].(*mast.AssignmentStatement)
	require.True(t, ok)
	require.Equal(t, "$_gen_total_0", assign.Expr.Left.(*mast.Identifier).Name)
}

func TestHoistVariableWithoutInitializerEmitsEmptyStatement(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
			Type: &mast.Identifier{Name: "int"},
			Name: &mast.Identifier{Name: "total"},
		}},
	}}

	h := New("$_gen_", nil)
	out, err := h.Transform(body)
	require.NoError(t, err)
	_, ok := out.Statements[0].(*mast.EmptyStatement)
	require.True(t, ok)
}

func TestHoistRenamesSubsequentReferences(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
			Type:  &mast.Identifier{Name: "int"},
			Name:  &mast.Identifier{Name: "total"},
			Value: &mast.IntLiteral{Value: "0"},
		}},
		&mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
			Operator: mast.AssignAddOperator,
			Left:     &mast.Identifier{Name: "total"},
			Right:    &mast.IntLiteral{Value: "1"},
		}},
	}}

	h := New("$_gen_", nil)
	out, err := h.Transform(body)
	require.NoError(t, err)

	add, ok := out.Statements[1].(*mast.AssignmentStatement)
	require.True(t, ok)
	require.Equal(t, "$_gen_total_0", add.Expr.Left.(*mast.Identifier).Name)
}

func TestHoistRejectsCollidingFreshName(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.DeclarationStatement{Decl: &mast.VariableDeclaration{
			Type:  &mast.Identifier{Name: "int"},
			Name:  &mast.Identifier{Name: "total"},
			Value: &mast.IntLiteral{Value: "0"},
		}},
	}}

	h := New("$_gen_", []string{"$_gen_total_0"})
	_, err := h.Transform(body)
	require.Error(t, err)
	require.Contains(t, err.Error(), "internal invariant violation")
}

func TestHoistDesugarsForEach(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.ForEachStatement{
			Type:     &mast.Identifier{Name: "int"},
			Name:     &mast.Identifier{Name: "v"},
			Iterable: &mast.Identifier{Name: "items"},
			Body: &mast.ExpressionStatement{Expr: &mast.CallExpression{
				Function:  &mast.Identifier{Name: "yield"},
				Arguments: []mast.Expression{&mast.Identifier{Name: "v"}},
			}},
		},
	}}

	h := New("$_gen_", nil)
	out, err := h.Transform(body)
	require.NoError(t, err)

	require.Len(t, out.Statements, 1)
	block, ok := out.Statements[0].(*mast.Block)
	require.True(t, ok)
	// v and it are both hoisted to fields, then the while loop remains.
	require.Len(t, block.Statements, 3)
	_, ok = block.Statements[2].(*mast.WhileStatement)
	require.True(t, ok)
	require.Len(t, h.Fields(), 2)
}

func TestHoistRejectsForStatement(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{&mast.ForStatement{}}}
	h := New("$_gen_", nil)
	_, err := h.Transform(body)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not implemented")
}

func TestHoistRejectsSwitchStatement(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{&mast.SwitchStatement{}}}
	h := New("$_gen_", nil)
	_, err := h.Transform(body)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not implemented")
}

func TestFreshNamesAreUniqueAcrossCalls(t *testing.T) {
	h := New("$_gen_", nil)
	a, err := h.fresh("x")
	require.NoError(t, err)
	b, err := h.fresh("x")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
