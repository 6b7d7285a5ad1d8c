package types

import "testing"

func TestTOP(t *testing.T) {
	ctx := testClientContext()

	if !TOP(ctx, Dynamic) {
		t.Error("TOP(dynamic) should hold")
	}
	if !TOP(ctx, Void) {
		t.Error("TOP(void) should hold")
	}
	if TOP(ctx, Invalid) {
		t.Error("TOP(<invalid>) should not hold")
	}

	nullableObject := WithNullability(NewInterface(ctx.ObjectClass, NonNullable), Nullable)
	if !TOP(ctx, nullableObject) {
		t.Error("TOP(Object?) should hold via the nullable-wrapper rule")
	}

	objectNonNull := NewInterface(ctx.ObjectClass, NonNullable)
	if !TOP(ctx, WithNullability(objectNonNull, Legacy)) {
		t.Error("TOP(Object*) should hold: legacy wrapper of OBJECT")
	}
	if TOP(ctx, objectNonNull) {
		t.Error("TOP(Object) should not hold: OBJECT itself is not TOP")
	}

	futureOrOfVoid := NewInterface(ctx.FutureOrClass, NonNullable, Void)
	if !TOP(ctx, futureOrOfVoid) {
		t.Error("TOP(FutureOr<void>) should hold")
	}
}

func TestOBJECT(t *testing.T) {
	ctx := testClientContext()

	objectNonNull := NewInterface(ctx.ObjectClass, NonNullable)
	if !OBJECT(ctx, objectNonNull) {
		t.Error("OBJECT(Object) should hold")
	}
	if OBJECT(ctx, WithNullability(objectNonNull, Nullable)) {
		t.Error("OBJECT(Object?) should not hold: nullable wrapper disqualifies")
	}

	futureOrOfObject := NewInterface(ctx.FutureOrClass, NonNullable, objectNonNull)
	if !OBJECT(ctx, futureOrOfObject) {
		t.Error("OBJECT(FutureOr<Object>) should hold")
	}
}

func TestBOTTOM(t *testing.T) {
	ctx := testClientContext()

	if !BOTTOM(ctx, NewNever(NonNullable)) {
		t.Error("BOTTOM(Never) should hold")
	}
	if BOTTOM(ctx, NewNever(Nullable)) {
		t.Error("BOTTOM(Never?) should not hold")
	}
	if !BOTTOM(ctx, Bottom) {
		t.Error("BOTTOM(Bottom) should hold")
	}

	decl := &TypeParameterDecl{Name: "X", Bound: NewNever(NonNullable)}
	unpromoted := NewTypeParameterUse(decl, NonNullable)
	if !BOTTOM(ctx, unpromoted) {
		t.Error("BOTTOM(X extends Never) should hold: unpromoted bound is BOTTOM")
	}

	promoted := NewPromotedTypeParameter(decl, NonNullable, NewNever(NonNullable))
	if !BOTTOM(ctx, promoted) {
		t.Error("BOTTOM(X & Never) should hold: promoted bound is BOTTOM")
	}
}

func TestNULL(t *testing.T) {
	ctx := testClientContext()

	canonicalNull := NewInterface(ctx.NullClass, NonNullable)
	if !NULL(ctx, canonicalNull) {
		t.Error("NULL(Null) should hold")
	}

	wrappedBottom := WithNullability(NewNever(NonNullable), Nullable)
	if !NULL(ctx, wrappedBottom) {
		t.Error("NULL(Never?) should hold: nullable wrapper of BOTTOM")
	}

	objectNonNull := NewInterface(ctx.ObjectClass, NonNullable)
	if NULL(ctx, WithNullability(objectNonNull, Nullable)) {
		t.Error("NULL(Object?) should not hold: Object is not BOTTOM")
	}
}

func TestMoreTopRanksVoidAboveDynamicAboveObjectAboveFutureOr(t *testing.T) {
	ctx := testClientContext()
	objectNonNull := NewInterface(ctx.ObjectClass, NonNullable)
	futureOrOfObject := NewInterface(ctx.FutureOrClass, NonNullable, objectNonNull)

	if !MoreTop(ctx, Void, Dynamic) {
		t.Error("MoreTop(void, dynamic) should hold")
	}
	if !MoreTop(ctx, Dynamic, objectNonNull) {
		t.Error("MoreTop(dynamic, Object) should hold")
	}
	if !MoreTop(ctx, objectNonNull, futureOrOfObject) {
		t.Error("MoreTop(Object, FutureOr<Object>) should hold")
	}
	if MoreTop(ctx, futureOrOfObject, objectNonNull) {
		t.Error("MoreTop(FutureOr<Object>, Object) should not hold")
	}
}

func TestMoreTopNullabilityTieBreakIsNonNullableThenNullableThenLegacy(t *testing.T) {
	ctx := testClientContext()

	nonNull := NewInterface(ctx.ObjectClass, NonNullable)
	nullable := WithNullability(nonNull, Nullable)
	legacy := WithNullability(nonNull, Legacy)

	if !MoreTop(ctx, nonNull, nullable) {
		t.Error("MoreTop(Object, Object?) should hold: nonNullable ranks above nullable")
	}
	if !MoreTop(ctx, nullable, legacy) {
		t.Error("MoreTop(Object?, Object*) should hold: nullable ranks above legacy")
	}
}

func TestMoreBottomAmongBottomNeverOutranksTypeParameter(t *testing.T) {
	ctx := testClientContext()

	decl := &TypeParameterDecl{Name: "X", Bound: NewNever(NonNullable)}
	tp := NewTypeParameterUse(decl, NonNullable)
	never := NewNever(NonNullable)

	if !MoreBottomAmongBottom(ctx, never, tp) {
		t.Error("MoreBottomAmongBottom(Never, X extends Never) should hold")
	}
	if MoreBottomAmongBottom(ctx, tp, never) {
		t.Error("MoreBottomAmongBottom(X extends Never, Never) should not hold")
	}
}

func TestMoreBottomAmongNullCanonicalOutranksWrapped(t *testing.T) {
	ctx := testClientContext()

	canonical := NewInterface(ctx.NullClass, NonNullable)
	wrapped := WithNullability(NewNever(NonNullable), Nullable)

	if !MoreBottomAmongNull(ctx, canonical, wrapped) {
		t.Error("MoreBottomAmongNull(Null, Never?) should hold")
	}
	if MoreBottomAmongNull(ctx, wrapped, canonical) {
		t.Error("MoreBottomAmongNull(Never?, Null) should not hold")
	}
}

func TestMoreBottomAmongNullLegacyOutranksNullable(t *testing.T) {
	ctx := testClientContext()

	legacy := WithNullability(NewNever(NonNullable), Legacy)
	nullable := WithNullability(NewNever(NonNullable), Nullable)

	if !MoreBottomAmongNull(ctx, legacy, nullable) {
		t.Error("MoreBottomAmongNull(Never*, Never?) should hold: legacy is more bottom than nullable")
	}
}
