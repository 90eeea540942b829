// Package mastutil provides small structural helpers over mast trees.
package mastutil

import "github.com/corvid-lang/genit2iter/internal/mast"

// HasModifier reports whether modifiers contains the given literal
// modifier keyword, generalized from a Java-specific modifier lookup.
func HasModifier(modifiers []mast.Expression, modifier string) bool {
	for _, m := range modifiers {
		if lit, ok := m.(*mast.LiteralModifier); ok && lit.Modifier == modifier {
			return true
		}
	}
	return false
}
