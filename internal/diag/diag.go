// Package diag provides structured diagnostic reporting for the bounds
// engine and its surrounding tooling, in the same spirit as the teacher
// compiler's report package: leaf packages never print or exit directly,
// they raise a typed value that the caller decides how to surface.
package diag

import (
	"fmt"

	"github.com/google/uuid"
)

// Unsupported is raised when a precondition of an internal comparator
// (MORETOP, MOREBOTTOM) is violated. The oblivious SUB fallthrough does not
// raise it; that branch prints a DisplayWarning and returns dynamic. It
// carries the operand printouts the caller needs to construct a useful
// internal-compiler-error message.
type Unsupported struct {
	// ID correlates repeated reports of what looks like the same failure
	// back to the specific call that produced them. The teacher's reporter
	// has no equivalent because it only ever serves one compiler run; this
	// engine is a library that may be driven concurrently by many callers.
	ID string

	// Operation names the comparator or rule that failed its precondition,
	// e.g. "MORETOP" or "MOREBOTTOM".
	Operation string

	// Operands are the Repr() strings of the operand types involved.
	Operands []string
}

func (u *Unsupported) Error() string {
	return fmt.Sprintf("internal error [%s]: %s precondition violated for %v", u.ID, u.Operation, u.Operands)
}

// RaiseUnsupported panics with a freshly minted *Unsupported. It mirrors the
// teacher's report.Raise: the value is meant to propagate via panic/recover
// up to a boundary (CatchUnsupported, or the cmd driver) rather than being
// handled locally.
func RaiseUnsupported(operation string, operands ...string) {
	panic(&Unsupported{
		ID:        uuid.NewString(),
		Operation: operation,
		Operands:  operands,
	})
}

// CatchUnsupported recovers an *Unsupported panic raised by the bounds
// engine and hands it to handler. Any other panic value is re-raised. This
// must always be deferred, mirroring report.CatchErrors.
func CatchUnsupported(handler func(*Unsupported)) {
	if r := recover(); r != nil {
		if u, ok := r.(*Unsupported); ok {
			handler(u)
			return
		}
		panic(r)
	}
}
