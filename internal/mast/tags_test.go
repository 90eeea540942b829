package mast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYieldTagsAssignAndLookup(t *testing.T) {
	tags := NewYieldTags()
	c1 := &CallExpression{Function: &Identifier{Name: "yield"}}
	c2 := &CallExpression{Function: &Identifier{Name: "yield"}}

	tags.Assign(c1, 1)
	tags.Assign(c2, 2)

	id, ok := tags.IDFor(c1)
	require.True(t, ok)
	require.Equal(t, 1, id)

	id, ok = tags.IDFor(c2)
	require.True(t, ok)
	require.Equal(t, 2, id)

	require.Equal(t, 2, tags.Count())
	require.Equal(t, []*CallExpression{c1, c2}, tags.Sites())
}

func TestYieldTagsUnknownCallIsNotFound(t *testing.T) {
	tags := NewYieldTags()
	_, ok := tags.IDFor(&CallExpression{})
	require.False(t, ok)
}

func TestYieldTagsReassignDoesNotDuplicateSite(t *testing.T) {
	tags := NewYieldTags()
	c := &CallExpression{}
	tags.Assign(c, 1)
	tags.Assign(c, 5)

	require.Equal(t, 1, tags.Count())
	id, ok := tags.IDFor(c)
	require.True(t, ok)
	require.Equal(t, 5, id)
}

func TestYieldTagsSitesReturnsACopy(t *testing.T) {
	tags := NewYieldTags()
	c := &CallExpression{}
	tags.Assign(c, 1)

	sites := tags.Sites()
	sites[0] = nil
	_, ok := tags.IDFor(c)
	require.True(t, ok, "mutating the returned slice must not affect the table's internal state")
}
