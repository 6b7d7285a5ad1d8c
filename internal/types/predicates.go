package types

import "github.com/chai-lang/typebounds/internal/diag"

// This file implements component C of the bounds engine: the extremal
// predicates TOP/OBJECT/BOTTOM/NULL and the tie-breaking total orders
// MORETOP/MOREBOTTOM used to disambiguate among them. Exactly one of
// TOP/OBJECT/BOTTOM/NULL holds for a given type (or none); MoreTop and
// MoreBottom assume their precondition has already been checked by the
// caller and raise an Unsupported diagnostic if it has not.

// TOP reports whether t is one of the syntactic top forms: `dynamic`,
// `void`, a nullable/legacy wrapper of something TOP or OBJECT, or a
// non-nullable `FutureOr<S>` with TOP(S).
func TOP(ctx *ClientContext, t Type) bool {
	switch t.(type) {
	case dynamicType, voidType:
		return true
	case invalidType:
		return false
	}

	if n, ok := NullabilityOf(t); ok && (n == Nullable || n == Legacy) {
		nn := NonNull(t)
		return TOP(ctx, nn) || OBJECT(ctx, nn)
	}

	if it, ok := ctx.IsFutureOr(t); ok && it.Nullability == NonNullable {
		return TOP(ctx, it.TypeArguments[0])
	}

	return false
}

// OBJECT reports whether t is the non-nullable Object class, or a
// non-nullable `FutureOr<S>` with OBJECT(S).
func OBJECT(ctx *ClientContext, t Type) bool {
	it, ok := t.(*InterfaceType)
	if !ok || it.Nullability != NonNullable {
		return false
	}

	if it.Class == ctx.ObjectClass {
		return true
	}

	if fo, ok := ctx.IsFutureOr(t); ok {
		return OBJECT(ctx, fo.TypeArguments[0])
	}

	return false
}

// BOTTOM reports whether t is the non-nullable Never type, a non-nullable
// promoted type parameter `X & S` with BOTTOM(S), a non-nullable unpromoted
// type parameter `X extends S` with BOTTOM(S), or the oblivious-mode Bottom
// type.
func BOTTOM(ctx *ClientContext, t Type) bool {
	switch v := t.(type) {
	case *NeverType:
		return v.Nullability == NonNullable
	case bottomType:
		return true
	case invalidType:
		return false
	case *TypeParameterType:
		if v.Nullability != NonNullable {
			return false
		}
		if v.PromotedBound != nil {
			return BOTTOM(ctx, v.PromotedBound)
		}
		return BOTTOM(ctx, v.Param.Bound)
	default:
		return false
	}
}

// NULL reports whether t is the canonical Null interface, or a
// nullable/legacy wrapper of something BOTTOM.
func NULL(ctx *ClientContext, t Type) bool {
	if it, ok := t.(*InterfaceType); ok && it.Class == ctx.NullClass && it.Nullability == NonNullable {
		return true
	}

	if n, ok := NullabilityOf(t); ok && (n == Nullable || n == Legacy) {
		return BOTTOM(ctx, NonNull(t))
	}

	return false
}

// -----------------------------------------------------------------------------
// MORETOP

// topKind ranks the syntactic shape of a TOP/OBJECT operand, highest first:
// void > dynamic > Object(-ish) > FutureOr(-ish).
const (
	topKindOther = iota
	topKindFutureOr
	topKindObject
	topKindDynamic
	topKindVoid
)

func topKind(ctx *ClientContext, t Type) int {
	switch t.(type) {
	case voidType:
		return topKindVoid
	case dynamicType:
		return topKindDynamic
	}

	nn := NonNull(t)
	if it, ok := nn.(*InterfaceType); ok {
		if it.Class == ctx.ObjectClass {
			return topKindObject
		}
		if _, ok := ctx.IsFutureOr(nn); ok {
			return topKindFutureOr
		}
	}

	return topKindOther
}

// topNullabilityRank implements the source's known, intentionally-preserved
// tie-break for MORETOP: nonNullable > nullable > legacy (see DESIGN.md for
// the open question this is pinned against).
func topNullabilityRank(t Type) int {
	n, ok := NullabilityOf(t)
	if !ok {
		return 2 // no tag: behaves like non-nullable
	}
	switch n {
	case NonNullable:
		return 2
	case Nullable:
		return 1
	default: // Legacy
		return 0
	}
}

// MoreTop reports whether s ranks strictly higher than t in the MORETOP
// total order. Both operands must satisfy TOP(ctx, ·) || OBJECT(ctx, ·).
func MoreTop(ctx *ClientContext, s, t Type) bool {
	sk, tk := topKind(ctx, s), topKind(ctx, t)
	if sk != tk {
		return sk > tk
	}

	sn, tn := topNullabilityRank(s), topNullabilityRank(t)
	if sn != tn {
		return sn > tn
	}

	if sk == topKindFutureOr {
		sArg := NonNull(s).(*InterfaceType).TypeArguments[0]
		tArg := NonNull(t).(*InterfaceType).TypeArguments[0]
		return MoreTop(ctx, sArg, tArg)
	}

	diag.RaiseUnsupported("MORETOP", s.Repr(), t.Repr())
	return false
}

// -----------------------------------------------------------------------------
// MOREBOTTOM

func isNonNullableNever(t Type) bool {
	v, ok := t.(*NeverType)
	return ok && v.Nullability == NonNullable
}

// MoreBottomAmongBottom reports whether s ranks strictly lower (more
// bottom) than t in the MOREBOTTOM total order. Both operands must satisfy
// BOTTOM(ctx, ·).
func MoreBottomAmongBottom(ctx *ClientContext, s, t Type) bool {
	sNever, tNever := isNonNullableNever(s), isNonNullableNever(t)
	if sNever || tNever {
		return sNever && !tNever
	}

	sp, sok := s.(*TypeParameterType)
	tp, tok := t.(*TypeParameterType)
	if sok && tok {
		sPromoted, tPromoted := sp.PromotedBound != nil, tp.PromotedBound != nil
		if sPromoted != tPromoted {
			// X & S < Y when Y has no promotion.
			return sPromoted
		}

		sBound := sp.PromotedBound
		if sBound == nil {
			sBound = sp.Param.Bound
		}
		tBound := tp.PromotedBound
		if tBound == nil {
			tBound = tp.Param.Bound
		}
		return MoreBottomAmongBottom(ctx, sBound, tBound)
	}

	diag.RaiseUnsupported("MOREBOTTOM", s.Repr(), t.Repr())
	return false
}

func isCanonicalNull(ctx *ClientContext, t Type) bool {
	it, ok := t.(*InterfaceType)
	return ok && it.Class == ctx.NullClass && it.Nullability == NonNullable
}

// bottomNullabilityRank implements the source's intentionally-preserved
// tie-break for MOREBOTTOM: legacy > nullable (swapped polarity relative to
// MORETOP's nonNullable > nullable > legacy).
func bottomNullabilityRank(n Nullability) int {
	switch n {
	case Legacy:
		return 0
	case Nullable:
		return 1
	default:
		return 2
	}
}

// MoreBottomAmongNull reports whether s ranks strictly lower (more bottom)
// than t in the MOREBOTTOM total order. Both operands must satisfy
// NULL(ctx, ·).
func MoreBottomAmongNull(ctx *ClientContext, s, t Type) bool {
	sCanon, tCanon := isCanonicalNull(ctx, s), isCanonicalNull(ctx, t)
	if sCanon || tCanon {
		return sCanon && !tCanon
	}

	sn, sok := NullabilityOf(s)
	tn, tok := NullabilityOf(t)
	if sok && tok {
		return bottomNullabilityRank(sn) < bottomNullabilityRank(tn)
	}

	diag.RaiseUnsupported("MOREBOTTOM", s.Repr(), t.Repr())
	return false
}
