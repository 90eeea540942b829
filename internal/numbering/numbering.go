// Package numbering implements the yield numberer: a pre-order walk that
// tags every yield site with a unique positive integer, using the
// mast.Visitor/Walk traversal.
package numbering

import "github.com/corvid-lang/genit2iter/internal/mast"

// Number walks body in pre-order and assigns each yield site (a
// receiver-less call named "yield" with exactly one argument) the next
// integer from a counter starting at 1. It returns the populated tag table;
// state 0 is reserved for the pre-first-yield entry and is never assigned
// here.
func Number(body *mast.Block) (*mast.YieldTags, error) {
	tags := mast.NewYieldTags()
	next := 1
	err := mast.Walk(mast.Visitor{
		Pre: func(n mast.Node) error {
			call, ok := n.(*mast.CallExpression)
			if !ok || !IsYieldSite(call) {
				return nil
			}
			tags.Assign(call, next)
			next++
			return nil
		},
	}, body)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// IsYieldSite reports whether call is a yield site: a receiver-less call
// named "yield" with exactly one argument.
func IsYieldSite(call *mast.CallExpression) bool {
	if call == nil || call.Receiver != nil || len(call.Arguments) != 1 {
		return false
	}
	id, ok := call.Function.(*mast.Identifier)
	return ok && id.Name == "yield"
}
