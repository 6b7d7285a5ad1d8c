package bounds

import (
	"github.com/chai-lang/typebounds/internal/diag"
	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// obliviousDown implements the SLB half of component J, the simpler
// lattice used when the client library predates nullability (no `?`/`*`
// suffixes; `Null` and structural `Bottom` stand in for the nullable and
// bottom cases).
func (e *Engine) obliviousDown(t1, t2 types.Type) types.Type {
	if types.Equals(t1, t2) {
		return t1
	}
	if types.Equals(t1, types.Unknown) {
		return t2
	}
	if types.Equals(t2, types.Unknown) {
		return t1
	}

	// Void/Dynamic/legacy-Object are neutral downward: DOWN(top, X) = X.
	if types.Equals(t1, types.Void) {
		return t2
	}
	if types.Equals(t2, types.Void) {
		return t1
	}
	if types.Equals(t1, types.Dynamic) {
		return t2
	}
	if types.Equals(t2, types.Dynamic) {
		return t1
	}
	if e.isObliviousObject(t1) {
		return t2
	}
	if e.isObliviousObject(t2) {
		return t1
	}

	// Bottom/Null are absorbing downward: DOWN(bottom-ish, X) = bottom-ish,
	// with structural Bottom out-ranking Null.
	if types.Equals(t1, types.Bottom) || types.Equals(t2, types.Bottom) {
		return types.Bottom
	}
	t1Null, t2Null := e.isObliviousNull(t1), e.isObliviousNull(t2)
	if t1Null {
		return t1
	}
	if t2Null {
		return t2
	}

	if result, handled := e.obliviousFutureOrDown(t1, t2); handled {
		return result
	}

	f1, ok1 := t1.(*types.FunctionType)
	f2, ok2 := t2.(*types.FunctionType)
	if ok1 && ok2 {
		return e.downFunctionCore(f1, f2, oracle.IgnoringNullabilities, e.obliviousDown, e.obliviousUp, types.Bottom, types.NonNullable)
	}

	i1, ok1 := t1.(*types.InterfaceType)
	i2, ok2 := t2.(*types.InterfaceType)
	if ok1 && ok2 && i1.Class == i2.Class {
		if e.Oracle.IsSubtype(t1, t2, oracle.IgnoringNullabilities) {
			return t1
		}
		if e.Oracle.IsSubtype(t2, t1, oracle.IgnoringNullabilities) {
			return t2
		}
		return types.Bottom
	}

	if e.Oracle.IsSubtype(t1, t2, oracle.IgnoringNullabilities) {
		return t1
	}
	if e.Oracle.IsSubtype(t2, t1, oracle.IgnoringNullabilities) {
		return t2
	}

	return types.Bottom
}

// obliviousUp implements the SUB half of component J.
func (e *Engine) obliviousUp(t1, t2 types.Type) types.Type {
	if types.Equals(t1, t2) {
		return t1
	}
	if types.Equals(t1, types.Unknown) {
		return t2
	}
	if types.Equals(t2, types.Unknown) {
		return t1
	}

	// Void/Dynamic/legacy-Object are absorbing upward: UP(top, X) = top.
	if types.Equals(t1, types.Void) || types.Equals(t2, types.Void) {
		return types.Void
	}
	if types.Equals(t1, types.Dynamic) || types.Equals(t2, types.Dynamic) {
		return types.Dynamic
	}
	if e.isObliviousObject(t1) || e.isObliviousObject(t2) {
		return e.oracleClasses().ObjectNonNull()
	}

	// Bottom/Null are neutral upward: UP(bottom-ish, X) = X.
	if types.Equals(t1, types.Bottom) {
		return t2
	}
	if types.Equals(t2, types.Bottom) {
		return t1
	}
	if e.isObliviousNull(t1) {
		return t2
	}
	if e.isObliviousNull(t2) {
		return t1
	}

	f1, ok1 := t1.(*types.FunctionType)
	f2, ok2 := t2.(*types.FunctionType)
	switch {
	case ok1 && ok2:
		return e.upFunctionCore(f1, f2, oracle.IgnoringNullabilities, e.obliviousDown, e.obliviousUp, e.oracleClasses().FunctionRaw(types.NonNullable), types.NonNullable)
	case ok1:
		return e.obliviousUp(e.oracleClasses().FunctionRaw(types.NonNullable), t2)
	case ok2:
		return e.obliviousUp(t1, e.oracleClasses().FunctionRaw(types.NonNullable))
	}

	i1, ok1 := t1.(*types.InterfaceType)
	i2, ok2 := t2.(*types.InterfaceType)
	if ok1 && ok2 && i1.Class == i2.Class {
		if len(i1.TypeArguments) == len(i2.TypeArguments) {
			args := make([]types.Type, len(i1.TypeArguments))
			params := i1.Class.TypeParams
			mismatch := false
			for idx, a1 := range i1.TypeArguments {
				a2 := i2.TypeArguments[idx]
				variance := types.Covariant
				if idx < len(params) {
					variance = params[idx].Variance
				}
				switch variance {
				case types.Covariant:
					args[idx] = e.obliviousUp(a1, a2)
				case types.Contravariant:
					args[idx] = e.obliviousDown(a1, a2)
				default:
					if !e.Oracle.AreMutualSubtypes(a1, a2, oracle.IgnoringNullabilities) {
						mismatch = true
					} else {
						args[idx] = a1
					}
				}
			}
			if !mismatch {
				return types.NewInterface(i1.Class, types.NonNullable, args...)
			}
		}
		return e.Oracle.LegacyLeastUpperBound(i1, i2, e.Client)
	}

	if ok1 && ok2 {
		return e.Oracle.LegacyLeastUpperBound(i1, i2, e.Client)
	}

	if e.Oracle.IsSubtype(t1, t2, oracle.IgnoringNullabilities) {
		return t2
	}
	if e.Oracle.IsSubtype(t2, t1, oracle.IgnoringNullabilities) {
		return t1
	}

	diag.DisplayWarning("oblivious SUB", "reached unreachable fallthrough for "+t1.Repr()+" and "+t2.Repr())
	return types.Dynamic
}

func (e *Engine) isObliviousObject(t types.Type) bool {
	it, ok := t.(*types.InterfaceType)
	return ok && it.Class == e.Client.ObjectClass && len(it.TypeArguments) == 0
}

func (e *Engine) isObliviousNull(t types.Type) bool {
	it, ok := t.(*types.InterfaceType)
	return ok && it.Class == e.Client.NullClass
}

func (e *Engine) asFuture(t types.Type) (*types.InterfaceType, bool) {
	it, ok := t.(*types.InterfaceType)
	if !ok || it.Class != e.Client.FutureClass || len(it.TypeArguments) != 1 {
		return nil, false
	}
	return it, true
}

// obliviousFutureOrDown implements the special-cased FutureOr handling that
// applies to SLB only: `SLB(FutureOr<A>, FutureOr<B>) = FutureOr<SLB(A,B)>`,
// `SLB(FutureOr<A>, Future<B>) = Future<SLB(A,B)>`, and
// `SLB(FutureOr<A>, B) = SLB(A, B)` when B is neither -- with the symmetric
// rules for swapped operands.
func (e *Engine) obliviousFutureOrDown(t1, t2 types.Type) (types.Type, bool) {
	fo1, isFo1 := e.Client.IsFutureOr(t1)
	fo2, isFo2 := e.Client.IsFutureOr(t2)

	if isFo1 && isFo2 {
		inner := e.obliviousDown(fo1.TypeArguments[0], fo2.TypeArguments[0])
		n := types.Intersect(types.ComputeNullability(e.Client, t1), types.ComputeNullability(e.Client, t2))
		return types.WithNullability(types.NewInterface(e.Client.FutureOrClass, types.NonNullable, inner), n), true
	}

	if isFo1 {
		if fut2, ok := e.asFuture(t2); ok {
			inner := e.obliviousDown(fo1.TypeArguments[0], fut2.TypeArguments[0])
			n := types.Intersect(types.ComputeNullability(e.Client, t1), types.ComputeNullability(e.Client, t2))
			return types.WithNullability(types.NewInterface(e.Client.FutureClass, types.NonNullable, inner), n), true
		}
		return e.obliviousDown(fo1.TypeArguments[0], t2), true
	}

	if isFo2 {
		if fut1, ok := e.asFuture(t1); ok {
			inner := e.obliviousDown(fut1.TypeArguments[0], fo2.TypeArguments[0])
			n := types.Intersect(types.ComputeNullability(e.Client, t1), types.ComputeNullability(e.Client, t2))
			return types.WithNullability(types.NewInterface(e.Client.FutureClass, types.NonNullable, inner), n), true
		}
		return e.obliviousDown(t1, fo2.TypeArguments[0]), true
	}

	return nil, false
}
