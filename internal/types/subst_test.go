package types

import "testing"

func TestSubstituteReplacesTypeParameterUse(t *testing.T) {
	ctx := testClientContext()
	decl := &TypeParameterDecl{Name: "X", Bound: NewInterface(ctx.ObjectClass, NonNullable)}
	use := NewTypeParameterUse(decl, NonNullable)

	listClass := &ClassDesc{Name: "List", TypeParams: []*TypeParameterDecl{decl}}
	listOfX := NewInterface(listClass, NonNullable, use)

	intClass := &ClassDesc{Name: "int"}
	intType := NewInterface(intClass, NonNullable)

	sub := Substitution{decl: intType}
	got := Substitute(listOfX, sub)

	want := NewInterface(listClass, NonNullable, intType)
	if !Equals(got, want) {
		t.Errorf("Substitute(List<X>, X->int) = %s, want %s", got.Repr(), want.Repr())
	}
}

func TestSubstituteCombinesNullabilityOfUseAndReplacement(t *testing.T) {
	ctx := testClientContext()
	decl := &TypeParameterDecl{Name: "X", Bound: NewInterface(ctx.ObjectClass, NonNullable)}
	use := NewTypeParameterUse(decl, Nullable)

	intClass := &ClassDesc{Name: "int"}
	intType := NewInterface(intClass, NonNullable)

	got := Substitute(use, Substitution{decl: intType})
	want := NewInterface(intClass, Nullable)
	if !Equals(got, want) {
		t.Errorf("Substitute(X?, X->int) = %s, want %s", got.Repr(), want.Repr())
	}
}

func TestSubstituteDoesNotCaptureFunctionsOwnTypeParameters(t *testing.T) {
	outer := &TypeParameterDecl{Name: "X", Bound: nil}
	inner := &TypeParameterDecl{Name: "X", Bound: nil}

	intClass := &ClassDesc{Name: "int"}
	intType := NewInterface(intClass, NonNullable)

	fn := &FunctionType{
		TypeParameters:          []*TypeParameterDecl{inner},
		RequiredPositionalCount: 1,
		Positional:              []Type{NewTypeParameterUse(inner, NonNullable)},
		ReturnType:              NewTypeParameterUse(outer, NonNullable),
		Nullability:             NonNullable,
	}

	sub := Substitution{outer: intType}
	got := Substitute(fn, sub).(*FunctionType)

	if !Equals(got.Positional[0], NewTypeParameterUse(inner, NonNullable)) {
		t.Errorf("fn's own type parameter X should shadow outer substitution, got %s", got.Positional[0].Repr())
	}
	if !Equals(got.ReturnType, intType) {
		t.Errorf("return type referencing outer X should be substituted, got %s", got.ReturnType.Repr())
	}
}

func TestAlphaRenamingAndBoundsEqualUnderRenaming(t *testing.T) {
	ctx := testClientContext()
	objectNonNull := NewInterface(ctx.ObjectClass, NonNullable)

	from := []*TypeParameterDecl{{Name: "X", Bound: objectNonNull}}
	to := []*TypeParameterDecl{{Name: "Y", Bound: objectNonNull}}

	if !BoundsEqualUnderRenaming(from, to) {
		t.Error("BoundsEqualUnderRenaming should hold for identically-bounded, differently-named parameters")
	}

	intClass := &ClassDesc{Name: "int"}
	mismatched := []*TypeParameterDecl{{Name: "Z", Bound: NewInterface(intClass, NonNullable)}}
	if BoundsEqualUnderRenaming(from, mismatched) {
		t.Error("BoundsEqualUnderRenaming should not hold for differently-bounded parameters")
	}

	if BoundsEqualUnderRenaming(from, nil) {
		t.Error("BoundsEqualUnderRenaming should not hold when parameter counts differ")
	}
}

func TestBoundsEqualUnderRenamingFollowsSelfReferencingBounds(t *testing.T) {
	// X extends Comparable<X>, Y extends Comparable<Y> -- equal up to
	// renaming only if the renaming is applied inside the bound itself.
	comparable := &ClassDesc{Name: "Comparable", TypeParams: []*TypeParameterDecl{{Name: "T"}}}

	x := &TypeParameterDecl{Name: "X"}
	x.Bound = NewInterface(comparable, NonNullable, NewTypeParameterUse(x, NonNullable))

	y := &TypeParameterDecl{Name: "Y"}
	y.Bound = NewInterface(comparable, NonNullable, NewTypeParameterUse(y, NonNullable))

	if !BoundsEqualUnderRenaming([]*TypeParameterDecl{x}, []*TypeParameterDecl{y}) {
		t.Error("BoundsEqualUnderRenaming should hold for self-referencing bounds up to renaming")
	}
}
