// Package oracle declares the external collaborators the bounds engine
// consumes but never implements: the general subtype relation, the
// legacy-LUB class-hierarchy walk, and the handful of class descriptors the
// engine special-cases (Object, Function, Future, FutureOr, Null). A
// concrete implementation lives in internal/oracle/hierarchy; the engine
// itself only ever sees this package's interfaces.
package oracle

import "github.com/chai-lang/typebounds/internal/types"

// Mode selects whether a subtype check considers nullability tags.
type Mode int

const (
	// WithNullabilities requires the full nullability-aware subtype rules.
	WithNullabilities Mode = iota
	// IgnoringNullabilities drops nullability tags before comparing, the
	// mode the oblivious engine (component J) uses, including when it runs
	// component H's function-type rules.
	IgnoringNullabilities
)

// Subtyper is the general subtype oracle: the bounds engine never walks
// class hierarchies or checks structural compatibility itself, it always
// asks a Subtyper.
type Subtyper interface {
	// IsSubtype reports whether sub <: sup under mode.
	IsSubtype(sub, sup types.Type, mode Mode) bool

	// AreMutualSubtypes reports whether a <: b and b <: a under mode. It is
	// a convenience equivalent to two IsSubtype calls, kept as its own
	// method because callers (component H's alpha-renamed bound check,
	// component G's invariant type-argument check) only ever want the
	// combined answer.
	AreMutualSubtypes(a, b types.Type, mode Mode) bool

	// LegacyLeastUpperBound walks the class hierarchy to find the nearest
	// common supertype of two interface types. It is called only when the
	// structural rules of components G and J fall through — it never
	// drives the engine's own recursion.
	LegacyLeastUpperBound(a, b *types.InterfaceType, client *types.ClientContext) *types.InterfaceType
}

// Classes exposes the class descriptors and canonical instantiations the
// engine special-cases. A concrete Classes value is usually carried
// alongside a Subtyper by whatever wires the two into a types.ClientContext
// (see internal/oracle/hierarchy.Environment).
type Classes struct {
	Object   *types.ClassDesc
	Function *types.ClassDesc
	Future   *types.ClassDesc
	FutureOr *types.ClassDesc
	Null     *types.ClassDesc
}

// ObjectNonNull returns the canonical `Object` (non-nullable, no type
// arguments) instantiation, invariant 1 of the data model.
func (c Classes) ObjectNonNull() *types.InterfaceType {
	return types.NewInterface(c.Object, types.NonNullable)
}

// NullNonNull returns the canonical `Null` (non-nullable) instantiation.
func (c Classes) NullNonNull() *types.InterfaceType {
	return types.NewInterface(c.Null, types.NonNullable)
}

// FunctionRaw returns the legacy raw `Function` interface at the given
// nullability, used as the SUB fallback for mismatched generic function
// types and for the oblivious engine's Function/Interface mixing rule.
func (c Classes) FunctionRaw(n types.Nullability) *types.InterfaceType {
	return types.NewInterface(c.Function, n)
}

// ClientContext builds a types.ClientContext from these class descriptors
// and the given default-nullability flag.
func (c Classes) ClientContext(nonNullableByDefault bool) *types.ClientContext {
	return &types.ClientContext{
		NonNullableByDefault: nonNullableByDefault,
		ObjectClass:          c.Object,
		FunctionClass:        c.Function,
		FutureClass:          c.Future,
		FutureOrClass:        c.FutureOr,
		NullClass:            c.Null,
	}
}
