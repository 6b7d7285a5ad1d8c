// Package types defines the tagged-variant type representation the bounds
// engine operates over: the nullary top/bottom/placeholder types, nominal
// interface types, structural function types, and type-parameter uses --
// plus the nullability tag and the class/type-parameter descriptors the
// engine's oracles key off of.
//
// Types are immutable values constructed once and never mutated in place;
// every function in this package and in internal/bounds that needs a
// "modified" type builds and returns a fresh value.
package types

import "strings"

// Type is the interface implemented by every type-system node.
type Type interface {
	// Repr returns a representative string for error messages and tests.
	Repr() string

	// equals is strict, non-aliasing structural equality. It should only be
	// called through Equals.
	equals(other Type) bool
}

// Equals reports whether a and b are structurally identical: same variant,
// same nullability, same nested types. This is stricter than the subtype
// relation -- it is used only for the engine's own "DOWN(T, T) = T" identity
// fast path and for comparing already-substituted bounds.
func Equals(a, b Type) bool {
	return a.equals(b)
}

// -----------------------------------------------------------------------------

// Nullability is the nullability tag carried by Never, Interface, Function,
// and TypeParameter nodes.
type Nullability int

const (
	// NonNullable is the default, unsuffixed nullability.
	NonNullable Nullability = iota
	// Nullable is the `?` suffix.
	Nullable
	// Legacy is the `*` suffix: pre-migration, nullability-oblivious code.
	Legacy
	// Undetermined may appear on intermediate representations but is never
	// produced as the result of SLB or SUB.
	Undetermined
)

func (n Nullability) String() string {
	switch n {
	case NonNullable:
		return ""
	case Nullable:
		return "?"
	case Legacy:
		return "*"
	default:
		return "<undetermined>"
	}
}

func suffixed(name string, n Nullability) string {
	return name + n.String()
}

// -----------------------------------------------------------------------------
// Nullary types.

type dynamicType struct{}

// Dynamic is the `dynamic` type: unsound escape hatch, always TOP.
var Dynamic Type = dynamicType{}

func (dynamicType) Repr() string           { return "dynamic" }
func (dynamicType) equals(other Type) bool { _, ok := other.(dynamicType); return ok }

type voidType struct{}

// Void is the `void` type: always TOP, ranked above Dynamic.
var Void Type = voidType{}

func (voidType) Repr() string           { return "void" }
func (voidType) equals(other Type) bool { _, ok := other.(voidType); return ok }

type invalidType struct{}

// Invalid represents a type that failed elaboration upstream. It matches
// none of TOP/OBJECT/BOTTOM/NULL.
var Invalid Type = invalidType{}

func (invalidType) Repr() string           { return "<invalid>" }
func (invalidType) equals(other Type) bool { _, ok := other.(invalidType); return ok }

type unknownType struct{}

// Unknown is the inference placeholder `?`, distinct from the `Nullable`
// suffix -- it is absorbed by both DOWN and UP.
var Unknown Type = unknownType{}

func (unknownType) Repr() string           { return "_" }
func (unknownType) equals(other Type) bool { _, ok := other.(unknownType); return ok }

type bottomType struct{}

// Bottom is the nullability-oblivious bottom type.
var Bottom Type = bottomType{}

func (bottomType) Repr() string           { return "Bottom" }
func (bottomType) equals(other Type) bool { _, ok := other.(bottomType); return ok }

// -----------------------------------------------------------------------------

// NeverType is the nullability-aware bottom type.
type NeverType struct {
	Nullability Nullability
}

// NewNever builds a Never type carrying the given nullability.
func NewNever(n Nullability) *NeverType {
	return &NeverType{Nullability: n}
}

func (t *NeverType) Repr() string { return suffixed("Never", t.Nullability) }

func (t *NeverType) equals(other Type) bool {
	o, ok := other.(*NeverType)
	return ok && o.Nullability == t.Nullability
}

// -----------------------------------------------------------------------------

// ClassDesc describes a nominal class: its name and the variance/bound of
// each of its declared type parameters. Two interface types refer to "the
// same class" iff they share a ClassDesc pointer.
type ClassDesc struct {
	Name       string
	TypeParams []*TypeParameterDecl
}

// InterfaceType is a nominal class type, possibly generic.
type InterfaceType struct {
	Class         *ClassDesc
	Nullability   Nullability
	TypeArguments []Type
}

// NewInterface builds an InterfaceType.
func NewInterface(class *ClassDesc, n Nullability, args ...Type) *InterfaceType {
	return &InterfaceType{Class: class, Nullability: n, TypeArguments: args}
}

func (t *InterfaceType) Repr() string {
	if len(t.TypeArguments) == 0 {
		return suffixed(t.Class.Name, t.Nullability)
	}

	sb := strings.Builder{}
	sb.WriteString(t.Class.Name)
	sb.WriteRune('<')
	for i, arg := range t.TypeArguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Repr())
	}
	sb.WriteRune('>')
	return suffixed(sb.String(), t.Nullability)
}

func (t *InterfaceType) equals(other Type) bool {
	o, ok := other.(*InterfaceType)
	if !ok || o.Class != t.Class || o.Nullability != t.Nullability || len(o.TypeArguments) != len(t.TypeArguments) {
		return false
	}

	for i, arg := range t.TypeArguments {
		if !Equals(arg, o.TypeArguments[i]) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// Variance classifies how a class type parameter's use in members relates
// to the subtype relation on the class itself.
type Variance int

const (
	// Covariant is the default variance when a class does not declare one.
	Covariant Variance = iota
	Contravariant
	Invariant
)

// TypeParameterDecl is the declaration site of a type parameter: its name,
// its upper bound, and (for class type parameters) its declared variance.
type TypeParameterDecl struct {
	Name     string
	Bound    Type
	Variance Variance
}

// TypeParameterType is a use of a type parameter, optionally carrying a
// promoted bound `X & T` recorded by flow analysis.
type TypeParameterType struct {
	Param         *TypeParameterDecl
	Nullability   Nullability
	PromotedBound Type
}

// NewTypeParameterUse builds an unpromoted use `X` of a type parameter.
func NewTypeParameterUse(param *TypeParameterDecl, n Nullability) *TypeParameterType {
	return &TypeParameterType{Param: param, Nullability: n}
}

// NewPromotedTypeParameter builds a promoted use `X & bound`.
func NewPromotedTypeParameter(param *TypeParameterDecl, n Nullability, bound Type) *TypeParameterType {
	return &TypeParameterType{Param: param, Nullability: n, PromotedBound: bound}
}

func (t *TypeParameterType) Repr() string {
	if t.PromotedBound != nil {
		return suffixed(t.Param.Name+" & "+t.PromotedBound.Repr(), t.Nullability)
	}
	return suffixed(t.Param.Name, t.Nullability)
}

func (t *TypeParameterType) equals(other Type) bool {
	o, ok := other.(*TypeParameterType)
	if !ok || o.Param != t.Param || o.Nullability != t.Nullability {
		return false
	}

	if (t.PromotedBound == nil) != (o.PromotedBound == nil) {
		return false
	}

	if t.PromotedBound == nil {
		return true
	}

	return Equals(t.PromotedBound, o.PromotedBound)
}

// -----------------------------------------------------------------------------

// Named is a named parameter in a function type. Named sequences are
// maintained sorted lexicographically by Name. Nothing in this package
// checks or enforces the order; it is an unchecked precondition of the
// bounds engine.
type Named struct {
	Name       string
	Type       Type
	IsRequired bool
}

// FunctionType is a structural function type.
type FunctionType struct {
	TypeParameters          []*TypeParameterDecl
	RequiredPositionalCount int
	Positional              []Type
	Named                   []Named
	ReturnType              Type
	Nullability             Nullability
}

func (t *FunctionType) Repr() string {
	sb := strings.Builder{}

	if len(t.TypeParameters) > 0 {
		sb.WriteRune('<')
		for i, tp := range t.TypeParameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tp.Name)
			sb.WriteString(" extends ")
			sb.WriteString(tp.Bound.Repr())
		}
		sb.WriteRune('>')
	}

	sb.WriteRune('(')
	for i, p := range t.Positional {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == t.RequiredPositionalCount {
			sb.WriteRune('[')
		}
		sb.WriteString(p.Repr())
	}
	if t.RequiredPositionalCount < len(t.Positional) {
		sb.WriteRune(']')
	}

	if len(t.Named) > 0 {
		if len(t.Positional) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteRune('{')
		for i, n := range t.Named {
			if i > 0 {
				sb.WriteString(", ")
			}
			if n.IsRequired {
				sb.WriteString("required ")
			}
			sb.WriteString(n.Type.Repr())
			sb.WriteRune(' ')
			sb.WriteString(n.Name)
		}
		sb.WriteRune('}')
	}

	sb.WriteString(") -> ")
	sb.WriteString(t.ReturnType.Repr())

	return suffixed(sb.String(), t.Nullability)
}

func (t *FunctionType) equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok ||
		o.Nullability != t.Nullability ||
		o.RequiredPositionalCount != t.RequiredPositionalCount ||
		len(o.Positional) != len(t.Positional) ||
		len(o.Named) != len(t.Named) ||
		len(o.TypeParameters) != len(t.TypeParameters) {
		return false
	}

	for i, p := range t.Positional {
		if !Equals(p, o.Positional[i]) {
			return false
		}
	}

	for i, n := range t.Named {
		on := o.Named[i]
		if n.Name != on.Name || n.IsRequired != on.IsRequired || !Equals(n.Type, on.Type) {
			return false
		}
	}

	for i, tp := range t.TypeParameters {
		otp := o.TypeParameters[i]
		if tp.Name != otp.Name || tp.Variance != otp.Variance || !Equals(tp.Bound, otp.Bound) {
			return false
		}
	}

	return Equals(t.ReturnType, o.ReturnType)
}

// -----------------------------------------------------------------------------

// ClientContext carries the flags and class descriptors the engine needs
// but does not itself own: whether the caller operates under
// nullability-aware or nullability-oblivious semantics, and the identities
// of the handful of classes (Object, Function, Future, FutureOr, Null) the
// predicates and structural rules special-case.
type ClientContext struct {
	// NonNullableByDefault selects nullability-aware semantics (DOWN/UP of
	// §4.2-§4.5) when true, nullability-oblivious semantics (§4.6) when
	// false.
	NonNullableByDefault bool

	ObjectClass   *ClassDesc
	FunctionClass *ClassDesc
	FutureClass   *ClassDesc
	FutureOrClass *ClassDesc
	NullClass     *ClassDesc
}

// IsFutureOr reports whether t is an (possibly nullable/legacy) use of the
// client's FutureOr class with exactly one type argument.
func (c *ClientContext) IsFutureOr(t Type) (*InterfaceType, bool) {
	it, ok := t.(*InterfaceType)
	if !ok || it.Class != c.FutureOrClass || len(it.TypeArguments) != 1 {
		return nil, false
	}
	return it, true
}

// NonNull returns t with its nullability forced to NonNullable. Types that
// carry no nullability tag (Dynamic, Void, Invalid, Unknown, Bottom) are
// returned unchanged.
func NonNull(t Type) Type {
	return WithNullability(t, NonNullable)
}

// NullabilityOf returns the nullability tag carried by t, and whether t
// carries one at all.
func NullabilityOf(t Type) (Nullability, bool) {
	switch v := t.(type) {
	case *NeverType:
		return v.Nullability, true
	case *InterfaceType:
		return v.Nullability, true
	case *FunctionType:
		return v.Nullability, true
	case *TypeParameterType:
		return v.Nullability, true
	default:
		return NonNullable, false
	}
}

// WithNullability returns a copy of t carrying nullability n. Types with no
// nullability tag are returned unchanged.
func WithNullability(t Type, n Nullability) Type {
	switch v := t.(type) {
	case *NeverType:
		c := *v
		c.Nullability = n
		return &c
	case *InterfaceType:
		c := *v
		c.Nullability = n
		return &c
	case *FunctionType:
		c := *v
		c.Nullability = n
		return &c
	case *TypeParameterType:
		c := *v
		c.Nullability = n
		return &c
	default:
		return t
	}
}
