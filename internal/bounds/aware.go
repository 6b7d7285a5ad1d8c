package bounds

import (
	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// down is the nullability-aware SLB core, component G. Rules are applied in
// strict priority; the first match returns.
func (e *Engine) down(t1, t2 types.Type) types.Type {
	if types.Equals(t1, t2) {
		return t1
	}

	if types.Equals(t1, types.Unknown) {
		return t2
	}
	if types.Equals(t2, types.Unknown) {
		return t1
	}

	t1Top, t2Top := types.TOP(e.Client, t1), types.TOP(e.Client, t2)
	switch {
	case t1Top && t2Top:
		return e.downBothExtremal(t1, t2)
	case t1Top:
		return t2
	case t2Top:
		return t1
	}

	t1Bottom, t2Bottom := types.BOTTOM(e.Client, t1), types.BOTTOM(e.Client, t2)
	switch {
	case t1Bottom && t2Bottom:
		if types.MoreBottomAmongBottom(e.Client, t1, t2) {
			return t1
		}
		return t2
	case t1Bottom:
		return t1
	case t2Bottom:
		return t2
	}

	t1Null, t2Null := types.NULL(e.Client, t1), types.NULL(e.Client, t2)
	if t1Null && t2Null {
		if types.MoreBottomAmongNull(e.Client, t1, t2) {
			return t1
		}
		return t2
	}
	if t1Null || t2Null {
		nullOperand, other := t1, t2
		if t2Null {
			nullOperand, other = t2, t1
		}
		if n, ok := types.NullabilityOf(other); ok && isPotentiallyNullable(n) {
			return nullOperand
		}
		return types.NewNever(types.NonNullable)
	}

	t1Object, t2Object := types.OBJECT(e.Client, t1), types.OBJECT(e.Client, t2)
	if t1Object && t2Object {
		if types.MoreTop(e.Client, t1, t2) {
			return t1
		}
		return t2
	}
	if t1Object || t2Object {
		other := t1
		if t1Object {
			other = t2
		}
		if n, ok := types.NullabilityOf(other); ok && n == types.NonNullable {
			return other
		}
		nn := types.NonNull(other)
		if n, ok := types.NullabilityOf(nn); !ok || n == types.NonNullable {
			return nn
		}
		return types.NewNever(types.NonNullable)
	}

	f1, ok1 := t1.(*types.FunctionType)
	f2, ok2 := t2.(*types.FunctionType)
	if ok1 && ok2 {
		return e.downFunction(f1, f2)
	}

	n1 := nullabilityOf(t1)
	n2 := nullabilityOf(t2)

	if e.Oracle.IsSubtype(types.NonNull(t1), types.NonNull(t2), oracle.WithNullabilities) {
		return types.WithNullability(t1, types.Intersect(n1, n2))
	}
	if e.Oracle.IsSubtype(types.NonNull(t2), types.NonNull(t1), oracle.WithNullabilities) {
		return types.WithNullability(t2, types.Intersect(n1, n2))
	}

	return types.NewNever(types.Intersect(n1, n2))
}

// up is the nullability-aware SUB core, component G's dual.
func (e *Engine) up(t1, t2 types.Type) types.Type {
	if types.Equals(t1, t2) {
		return t1
	}

	if types.Equals(t1, types.Unknown) {
		return t2
	}
	if types.Equals(t2, types.Unknown) {
		return t1
	}

	t1Top, t2Top := types.TOP(e.Client, t1), types.TOP(e.Client, t2)
	switch {
	case t1Top && t2Top:
		return e.upBothExtremal(t1, t2)
	case t1Top:
		return t1
	case t2Top:
		return t2
	}

	t1Bottom, t2Bottom := types.BOTTOM(e.Client, t1), types.BOTTOM(e.Client, t2)
	if t1Bottom && t2Bottom {
		if types.MoreBottomAmongBottom(e.Client, t1, t2) {
			return t2
		}
		return t1
	}
	if t1Bottom || t2Bottom {
		if t1Bottom {
			return t2
		}
		return t1
	}

	t1Null, t2Null := types.NULL(e.Client, t1), types.NULL(e.Client, t2)
	if t1Null && t2Null {
		if types.MoreBottomAmongNull(e.Client, t1, t2) {
			return t2
		}
		return t1
	}
	if t1Null || t2Null {
		other := t2
		if t2Null {
			other = t1
		}
		return types.WithNullability(other, types.Nullable)
	}

	t1Object, t2Object := types.OBJECT(e.Client, t1), types.OBJECT(e.Client, t2)
	if t1Object && t2Object {
		if types.MoreTop(e.Client, t1, t2) {
			return t1
		}
		return t2
	}
	if t1Object || t2Object {
		other := t2
		if t2Object {
			other = t1
		}
		if n, ok := types.NullabilityOf(other); ok && n == types.NonNullable {
			return e.oracleClasses().ObjectNonNull()
		}
		return types.WithNullability(e.oracleClasses().ObjectNonNull(), types.Nullable)
	}

	if result, ok := e.upTypeParameterDispatch(t1, t2); ok {
		return result
	}

	if result, ok := e.upFunctionDispatch(t1, t2); ok {
		return result
	}

	n1 := nullabilityOf(t1)
	n2 := nullabilityOf(t2)

	if e.Oracle.IsSubtype(t1, t2, oracle.WithNullabilities) {
		return types.WithNullability(t2, types.Unite(n1, n2))
	}
	if e.Oracle.IsSubtype(t2, t1, oracle.WithNullabilities) {
		return types.WithNullability(t1, types.Unite(n1, n2))
	}

	i1, ok1 := t1.(*types.InterfaceType)
	i2, ok2 := t2.(*types.InterfaceType)
	if ok1 && ok2 {
		if i1.Class == i2.Class {
			return e.upSameClassInterface(i1, i2)
		}
		return e.Oracle.LegacyLeastUpperBound(i1, i2, e.Client)
	}

	return e.oracleClasses().ObjectNonNull()
}

// downBothExtremal resolves the "both TOP" case of DOWN: higher MORETOP
// wins.
func (e *Engine) downBothExtremal(t1, t2 types.Type) types.Type {
	if types.MoreTop(e.Client, t1, t2) {
		return t1
	}
	return t2
}

// upBothExtremal resolves the "both TOP" case of UP: higher MORETOP wins,
// same comparator as downBothExtremal -- the tie-break is identical in both
// directions, only the surrounding cases differ.
func (e *Engine) upBothExtremal(t1, t2 types.Type) types.Type {
	if types.MoreTop(e.Client, t1, t2) {
		return t1
	}
	return t2
}

// upSameClassInterface implements UP's pointwise recursion over two
// interface types of the same class: covariant parameters use SUB,
// contravariant use SLB, invariant parameters require mutual subtyping and
// fall back to the legacy-LUB oracle otherwise.
func (e *Engine) upSameClassInterface(i1, i2 *types.InterfaceType) types.Type {
	n1 := i1.Nullability
	n2 := i2.Nullability

	if len(i1.TypeArguments) != len(i2.TypeArguments) {
		return e.Oracle.LegacyLeastUpperBound(i1, i2, e.Client)
	}

	params := i1.Class.TypeParams
	args := make([]types.Type, len(i1.TypeArguments))
	for idx, a1 := range i1.TypeArguments {
		a2 := i2.TypeArguments[idx]
		variance := types.Covariant
		if idx < len(params) {
			variance = params[idx].Variance
		}

		switch variance {
		case types.Covariant:
			args[idx] = e.up(a1, a2)
		case types.Contravariant:
			args[idx] = e.down(a1, a2)
		default: // Invariant
			if !e.Oracle.AreMutualSubtypes(a1, a2, oracle.WithNullabilities) {
				return e.Oracle.LegacyLeastUpperBound(i1, i2, e.Client)
			}
			args[idx] = a1
		}
	}

	return types.NewInterface(i1.Class, types.Unite(n1, n2), args...)
}

func (e *Engine) oracleClasses() oracle.Classes {
	return oracle.Classes{
		Object:   e.Client.ObjectClass,
		Function: e.Client.FunctionClass,
		Future:   e.Client.FutureClass,
		FutureOr: e.Client.FutureOrClass,
		Null:     e.Client.NullClass,
	}
}

func isPotentiallyNullable(n types.Nullability) bool {
	return n == types.Legacy || n == types.Nullable
}

func nullabilityOf(t types.Type) types.Nullability {
	if n, ok := types.NullabilityOf(t); ok {
		return n
	}
	return types.NonNullable
}
