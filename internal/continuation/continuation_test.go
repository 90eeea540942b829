package continuation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
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

func TestEnumerateSingleYield(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	log := &mast.ExpressionStatement{Expr: &mast.CallExpression{Function: &mast.Identifier{Name: "log"}}}
	body := &mast.Block{Statements: []mast.Statement{y, log}}

	tags, err := numbering.Number(body)
	require.NoError(t, err)

	pairs, err := New(tags).Enumerate(body)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, 1, pairs[0].YieldID)

	block, ok := pairs[0].Continuation.(*mast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	_, ok = block.Statements[0].(*mast.EmptyStatement)
	require.True(t, ok)
	require.Same(t, log, block.Statements[1])
}

func TestEnumerateIfCollectsBothBranches(t *testing.T) {
	y1 := yieldStmt(&mast.IntLiteral{Value: "1"})
	y2 := yieldStmt(&mast.IntLiteral{Value: "2"})
	ifStmt := &mast.IfStatement{Condition: &mast.BooleanLiteral{Value: true}, Consequence: y1, Alternative: y2}
	body := &mast.Block{Statements: []mast.Statement{ifStmt}}

	tags, err := numbering.Number(body)
	require.NoError(t, err)

	pairs, err := New(tags).Enumerate(body)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	ids := map[int]bool{}
	for _, p := range pairs {
		ids[p.YieldID] = true
	}
	require.True(t, ids[1])
	require.True(t, ids[2])
}

func TestEnumerateWhileReentersLoop(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	loop := &mast.WhileStatement{Condition: &mast.Identifier{Name: "more"}, Body: y}
	body := &mast.Block{Statements: []mast.Statement{loop}}

	tags, err := numbering.Number(body)
	require.NoError(t, err)

	pairs, err := New(tags).Enumerate(body)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	block, ok := pairs[0].Continuation.(*mast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
	require.Same(t, loop, block.Statements[1], "resuming from inside a while loop must re-enter the same loop node")
}

func TestEnumerateStatementsWithoutYieldsProduceNoPairs(t *testing.T) {
	body := &mast.Block{Statements: []mast.Statement{
		&mast.ReturnStatement{},
	}}
	tags, err := numbering.Number(body)
	require.NoError(t, err)

	pairs, err := New(tags).Enumerate(body)
	require.NoError(t, err)
	require.Empty(t, pairs)
}

// TestEnumerateIfContinuationMatchesExpectedShape compares the whole
// continuation subtree against an expected tree with cmp.Diff rather than
// field-by-field require assertions, since the shape under test (an if's
// consequence continuation wrapping its own trailing statements) has enough
// nested structure that a diff is more legible than a chain of type
// assertions.
func TestEnumerateIfContinuationMatchesExpectedShape(t *testing.T) {
	y := yieldStmt(&mast.IntLiteral{Value: "1"})
	tail := &mast.ExpressionStatement{Expr: &mast.CallExpression{Function: &mast.Identifier{Name: "log"}}}
	ifStmt := &mast.IfStatement{Condition: &mast.BooleanLiteral{Value: true}, Consequence: y}
	body := &mast.Block{Statements: []mast.Statement{ifStmt, tail}}

	tags, err := numbering.Number(body)
	require.NoError(t, err)

	pairs, err := New(tags).Enumerate(body)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	want := &mast.Block{Statements: []mast.Statement{&mast.EmptyStatement{}, tail}}
	if diff := cmp.Diff(want, pairs[0].Continuation); diff != "" {
		t.Errorf("continuation shape mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateUnsupportedStatementErrors(t *testing.T) {
	tags := mast.NewYieldTags()
	_, err := New(tags).Enumerate(&mast.ForStatement{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not implemented")
}
