package types

// This file implements component D: capture-avoiding substitution of type
// parameters by concrete types, the alpha renaming the function-type bound
// rules (component H) apply before comparing two generic signatures'
// type-parameter bounds through the subtype oracle, and a syntactic
// bound-equality check up to consistent renaming (BoundsEqualUnderRenaming,
// which component H does not call).

// Substitution maps a TypeParameterDecl to its replacement Type.
type Substitution map[*TypeParameterDecl]Type

// Substitute replaces every free occurrence of a type parameter bound in
// sub within t, rebuilding composite types structurally. Type parameters
// introduced by t itself (e.g. a FunctionType's own TypeParameters) shadow
// sub for the scope of their declaration, so this never captures a bound
// variable the way a naive substitution would.
func Substitute(t Type, sub Substitution) Type {
	if len(sub) == 0 {
		return t
	}

	switch v := t.(type) {
	case *TypeParameterType:
		if repl, ok := sub[v.Param]; ok {
			return WithNullability(repl, Unite(v.Nullability, mustNullabilityOf(repl)))
		}
		if v.PromotedBound != nil {
			nb := Substitute(v.PromotedBound, sub)
			if nb == v.PromotedBound {
				return v
			}
			return &TypeParameterType{Param: v.Param, Nullability: v.Nullability, PromotedBound: nb}
		}
		return v

	case *InterfaceType:
		args := substituteAll(v.TypeArguments, sub)
		if sameTypes(args, v.TypeArguments) {
			return v
		}
		return &InterfaceType{Class: v.Class, Nullability: v.Nullability, TypeArguments: args}

	case *NeverType:
		return v

	case *FunctionType:
		inner := shadow(sub, v.TypeParameters)

		params := make([]*TypeParameterDecl, len(v.TypeParameters))
		for i, p := range v.TypeParameters {
			nb := p.Bound
			if nb != nil {
				nb = Substitute(nb, sub)
			}
			params[i] = &TypeParameterDecl{Name: p.Name, Bound: nb, Variance: p.Variance}
		}

		positional := substituteAll(v.Positional, inner)

		named := make([]Named, len(v.Named))
		for i, n := range v.Named {
			named[i] = Named{Name: n.Name, Type: Substitute(n.Type, inner), IsRequired: n.IsRequired}
		}

		return &FunctionType{
			TypeParameters:          params,
			RequiredPositionalCount: v.RequiredPositionalCount,
			Positional:              positional,
			Named:                   named,
			ReturnType:              Substitute(v.ReturnType, inner),
			Nullability:             v.Nullability,
		}

	default:
		return t
	}
}

func mustNullabilityOf(t Type) Nullability {
	if n, ok := NullabilityOf(t); ok {
		return n
	}
	return NonNullable
}

func substituteAll(ts []Type, sub Substitution) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, sub)
	}
	return out
}

func sameTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// shadow returns a copy of sub with every parameter in params removed, so
// that a FunctionType's own type parameters are never rewritten by an
// outer substitution meant for a different scope.
func shadow(sub Substitution, params []*TypeParameterDecl) Substitution {
	if len(params) == 0 {
		return sub
	}
	out := make(Substitution, len(sub))
	for k, v := range sub {
		out[k] = v
	}
	for _, p := range params {
		delete(out, p)
	}
	return out
}

// AlphaRenaming builds the substitution that renames each of from's type
// parameters to the corresponding parameter in to, positionally. It is used
// to test whether two generic function signatures have equal bounds up to a
// consistent renaming of their type parameters (spec component H).
func AlphaRenaming(from, to []*TypeParameterDecl) Substitution {
	sub := make(Substitution, len(from))
	for i, p := range from {
		if i >= len(to) {
			break
		}
		sub[p] = NewTypeParameterUse(to[i], NonNullable)
	}
	return sub
}

// BoundsEqualUnderRenaming reports whether from and to declare the same
// number of type parameters and, after renaming from's parameters onto
// to's positionally, have pairwise-equal bounds (treating a nil bound as
// equal only to another nil bound).
func BoundsEqualUnderRenaming(from, to []*TypeParameterDecl) bool {
	if len(from) != len(to) {
		return false
	}

	ren := AlphaRenaming(from, to)
	for i, p := range from {
		fb := p.Bound
		tb := to[i].Bound
		if fb == nil || tb == nil {
			if fb != tb {
				return false
			}
			continue
		}
		if !Equals(Substitute(fb, ren), tb) {
			return false
		}
	}
	return true
}
