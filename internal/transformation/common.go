// Package transformation defines the forest-to-forest rewriter interface
// implemented by the compiler driver.
package transformation

import "github.com/corvid-lang/genit2iter/internal/mast"

// Transformer is the interface of a whole-forest MAST rewriter, which
// produces a new forest rather than mutating the one it is given.
// internal/compiler.Compiler implements it; the individual stages (the
// hoister, the RTFY rewriter, the continuation enumerator and the
// assembler) work on narrower units and do not.
type Transformer interface {
	// Transform transforms the MAST forest into another MAST forest.
	Transform(forest []mast.Node) ([]mast.Node, error)
}
