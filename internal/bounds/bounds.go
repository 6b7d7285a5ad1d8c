// Package bounds implements the standard bounds engine: the standard lower
// bound (SLB, "DOWN") and standard upper bound (SUB, "UP") of two types,
// parameterized by a client context that selects nullability-aware or
// nullability-oblivious semantics and by the external oracles the engine
// consumes but never implements (internal/oracle).
//
// The engine is a pure function of its inputs and the supplied oracle: no
// mutable state, safe to call concurrently from many goroutines as long as
// the oracle itself is safe to call concurrently. Its only I/O is the
// warning printed when the oblivious SUB reaches its defensive fallthrough.
package bounds

import (
	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// Engine ties a types.ClientContext to the oracle.Subtyper it is checked
// against. Every exported entry point hangs off Engine so that callers
// never have to thread the oracle through by hand.
type Engine struct {
	Client *types.ClientContext
	Oracle oracle.Subtyper
}

// NewEngine builds an Engine from a client context and subtype oracle.
func NewEngine(client *types.ClientContext, o oracle.Subtyper) *Engine {
	return &Engine{Client: client, Oracle: o}
}

// StandardLowerBound computes SLB(t1, t2): the greatest type below both
// operands in the subtype lattice. It dispatches to the nullability-aware
// or nullability-oblivious family based on e.Client.NonNullableByDefault,
// component F of the engine.
func (e *Engine) StandardLowerBound(t1, t2 types.Type) types.Type {
	if e.Client.NonNullableByDefault {
		return e.down(t1, t2)
	}
	return e.obliviousDown(t1, t2)
}

// StandardUpperBound computes SUB(t1, t2): the least type above both
// operands in the subtype lattice.
func (e *Engine) StandardUpperBound(t1, t2 types.Type) types.Type {
	if e.Client.NonNullableByDefault {
		return e.up(t1, t2)
	}
	return e.obliviousUp(t1, t2)
}
