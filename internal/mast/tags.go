package mast

// YieldTags is an identity-keyed side table mapping each yield-site
// CallExpression to its assigned yield id (1..Y in pre-order). It exists
// because the yield id is metadata *about* a node produced by the numbering
// stage, not an intrinsic field every CallExpression needs to carry -
// using an identity-keyed map plus an ordered key slice for deterministic
// iteration instead of mutating the CallExpression nodes
// themselves.
//
// A YieldTags value is built once by the numbering stage via Assign and
// then only read by later stages.
type YieldTags struct {
	ids   map[*CallExpression]int
	sites []*CallExpression
}

// NewYieldTags returns an empty YieldTags ready for Assign calls.
func NewYieldTags() *YieldTags {
	return &YieldTags{ids: make(map[*CallExpression]int)}
}

// Assign records that call is the yield site with the given id. Ids are
// expected to be assigned in increasing order starting at 1, but YieldTags
// itself does not enforce that; the numbering stage is responsible for the
// pre-order traversal that makes it true.
func (t *YieldTags) Assign(call *CallExpression, id int) {
	if _, ok := t.ids[call]; !ok {
		t.sites = append(t.sites, call)
	}
	t.ids[call] = id
}

// IDFor returns the yield id assigned to call, and false if call was never
// registered as a yield site.
func (t *YieldTags) IDFor(call *CallExpression) (int, bool) {
	id, ok := t.ids[call]
	return id, ok
}

// Count returns the number of distinct yield sites recorded.
func (t *YieldTags) Count() int {
	return len(t.sites)
}

// Sites returns the registered yield-site CallExpressions in assignment
// order, i.e. ordered by ascending yield id.
func (t *YieldTags) Sites() []*CallExpression {
	out := make([]*CallExpression, len(t.sites))
	copy(out, t.sites)
	return out
}
