package types

// This file implements component B of the bounds engine: the nullability
// algebra. `Intersect` and `Unite` form the meet and join of the lattice
// `legacy <= nonNullable <= nullable` (invariant 6): legacy is the
// least-informative nullability, nonNullable sits strictly below nullable.

var nullabilityRank = map[Nullability]int{
	Legacy:      0,
	NonNullable: 1,
	Nullable:    2,
}

// Intersect computes the meet (greatest lower bound) of two nullabilities.
func Intersect(a, b Nullability) Nullability {
	if nullabilityRank[a] <= nullabilityRank[b] {
		return a
	}
	return b
}

// Unite computes the join (least upper bound) of two nullabilities.
func Unite(a, b Nullability) Nullability {
	if nullabilityRank[a] >= nullabilityRank[b] {
		return a
	}
	return b
}

// ComputeNullabilityOfFutureOr computes the nullability of `FutureOr<T>`
// given the nullability of the wrapper itself (the suffix written on the
// FutureOr use) and the nullability of T, per invariant 5:
//
//   - non-nullable iff T is non-nullable and the wrapper is non-nullable.
//   - nullable if either the wrapper or T is nullable.
//   - legacy otherwise.
func ComputeNullabilityOfFutureOr(wrapper, argument Nullability) Nullability {
	if wrapper == Nullable || argument == Nullable {
		return Nullable
	}

	if wrapper == NonNullable && argument == NonNullable {
		return NonNullable
	}

	return Legacy
}

// ComputeNullability resolves the effective nullability of t, reducing
// `FutureOr<T>` per ComputeNullabilityOfFutureOr. For every other type this
// is simply the type's own nullability tag (NonNullable if it carries
// none).
func ComputeNullability(ctx *ClientContext, t Type) Nullability {
	n, ok := NullabilityOf(t)
	if !ok {
		return NonNullable
	}

	if it, isFutureOr := ctx.IsFutureOr(t); isFutureOr {
		return ComputeNullabilityOfFutureOr(n, ComputeNullability(ctx, it.TypeArguments[0]))
	}

	return n
}
