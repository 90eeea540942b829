package rtfy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-lang/genit2iter/internal/mast"
	"github.com/corvid-lang/genit2iter/internal/numbering"
)

func yieldStmt(arg mast.Expression) *mast.ExpressionStatement {
	return &mast.ExpressionStatement{Expr: &mast.CallExpression{
		Function:  &mast.Identifier{Name: "yield"},
		Arguments: []mast.Expression{arg},
	}}
}

func assignStmt(name string) *mast.AssignmentStatement {
	return &mast.AssignmentStatement{Expr: &mast.AssignmentExpression{
		Operator: mast.AssignOperator,
		Left:     &mast.Identifier{Name: name},
		Right:    &mast.IntLiteral{Value: "0"},
	}}
}

func testFields() Fields {
	return Fields{HasNext: "hn", Next: "next", State: "state"}
}

func TestRunYieldStatement(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "7"})
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{y}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(y, nil)
	require.NoError(t, err)

	block, ok := out.(*mast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 4)

	hn, ok := block.Statements[0].(*mast.AssignmentStatement)
	require.True(t, ok)
	require.Equal(t, "hn", hn.Expr.Left.(*mast.Identifier).Name)
	require.Equal(t, true, hn.Expr.Right.(*mast.BooleanLiteral).Value)

	next, ok := block.Statements[1].(*mast.AssignmentStatement)
	require.True(t, ok)
	require.Equal(t, "next", next.Expr.Left.(*mast.Identifier).Name)
	require.Equal(t, "7", next.Expr.Right.(*mast.IntLiteral).Value)

	state, ok := block.Statements[2].(*mast.AssignmentStatement)
	require.True(t, ok)
	require.Equal(t, "state", state.Expr.Left.(*mast.Identifier).Name)
	require.Equal(t, "1", state.Expr.Right.(*mast.IntLiteral).Value)

	_, ok = block.Statements[3].(*mast.ReturnStatement)
	require.True(t, ok)
}

func TestRunOmitsStateWhenFieldsStateEmpty(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{y}})
	require.NoError(t, err)

	fields := Fields{HasNext: "hn", Next: "next"}
	r := New(fields, tags)
	out, err := r.Run(y, nil)
	require.NoError(t, err)

	block := out.(*mast.Block)
	require.Len(t, block.Statements, 3)
	_, ok := block.Statements[2].(*mast.ReturnStatement)
	require.True(t, ok)
}

func TestRunAppendsContinuationWhenNotDead(t *testing.T) {
	s := assignStmt("x")
	k := &mast.BreakStatement{}
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{s}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(s, k)
	require.NoError(t, err)

	block, ok := out.(*mast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	require.Same(t, s, block.Statements[0])
	require.Same(t, k, block.Statements[1])
}

func TestRunDoesNotAppendContinuationWhenDead(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{y}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(y, &mast.BreakStatement{})
	require.NoError(t, err)

	block := out.(*mast.Block)
	last := block.Statements[len(block.Statements)-1]
	_, ok := last.(*mast.ReturnStatement)
	require.True(t, ok, "the rewritten yield statement itself should be the final statement, not followed by the break sentinel")
}

func TestRunWhileDegenerateCollapsesToBody(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	loop := &mast.WhileStatement{Condition: &mast.BooleanLiteral{Value: true}, Body: y}
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{loop}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(loop, nil)
	require.NoError(t, err)

	_, ok := out.(*mast.Block)
	require.True(t, ok, "a while(true){yield...} body always yields on its first pass, so RTFY should collapse the loop to its rewritten body")
}

func TestRunWhileNonTrivialConditionBecomesIf(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	cond := &mast.Identifier{Name: "hasMore"}
	loop := &mast.WhileStatement{Condition: cond, Body: y}
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{loop}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(loop, nil)
	require.NoError(t, err)

	ifStmt, ok := out.(*mast.IfStatement)
	require.True(t, ok)
	require.Same(t, cond, ifStmt.Condition)
	require.Nil(t, ifStmt.Alternative)
}

func TestRunIfBothBranchesDeadIsDead(t *testing.T) {
	y1 := yieldStmt(&mast.IntLiteral{Value: "1"})
	y2 := yieldStmt(&mast.IntLiteral{Value: "2"})
	ifStmt := &mast.IfStatement{Condition: &mast.BooleanLiteral{Value: true}, Consequence: y1, Alternative: y2}
	k := &mast.BreakStatement{}
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{ifStmt}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(ifStmt, k)
	require.NoError(t, err)

	_, ok := out.(*mast.IfStatement)
	require.True(t, ok, "when both branches yield unconditionally, the if statement itself is dead and k must not be appended")
}

func TestRunIfAbsentElseIsNeverDead(t *testing.T) {
	y1 := yieldStmt(&mast.IntLiteral{Value: "1"})
	ifStmt := &mast.IfStatement{Condition: &mast.BooleanLiteral{Value: true}, Consequence: y1}
	k := &mast.BreakStatement{}
	tags, err := numbering.Number(&mast.Block{Statements: []mast.Statement{ifStmt}})
	require.NoError(t, err)

	r := New(testFields(), tags)
	out, err := r.Run(ifStmt, k)
	require.NoError(t, err)

	block, ok := out.(*mast.Block)
	require.True(t, ok, "an absent else branch is never dead, so the continuation must be appended after the if")
	rewrittenIf, ok := block.Statements[0].(*mast.IfStatement)
	require.True(t, ok)
	require.Nil(t, rewrittenIf.Alternative)
	require.Same(t, k, block.Statements[1])
}

func TestRunUnsupportedStatementErrors(t *testing.T) {
	tags := mast.NewYieldTags()
	r := New(testFields(), tags)
	_, err := r.Run(&mast.ForStatement{}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not implemented")
}
