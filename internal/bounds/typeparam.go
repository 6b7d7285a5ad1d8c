package bounds

import (
	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// upTypeParameterDispatch implements component I: when either UP operand is
// a type-parameter use, the bound-expansion rule applies instead of the
// generic subtype/interface rules. It reports ok=false when neither
// operand is a TypeParameterType.
func (e *Engine) upTypeParameterDispatch(t1, t2 types.Type) (types.Type, bool) {
	if tp1, ok := t1.(*types.TypeParameterType); ok {
		return e.upTypeParameter(tp1, t2), true
	}
	if tp2, ok := t2.(*types.TypeParameterType); ok {
		return e.upTypeParameter(tp2, t1), true
	}
	return nil, false
}

// upTypeParameter computes SUB(tp, other) for a type-parameter operand.
// Both the promoted (`X & B`) and unpromoted (`X extends B`) shapes share
// this outline, differing only in where the working bound comes from.
func (e *Engine) upTypeParameter(tp *types.TypeParameterType, other types.Type) types.Type {
	n1 := tp.Nullability
	n2 := nullabilityOf(other)

	var self types.Type
	var bound types.Type
	if tp.PromotedBound != nil {
		self = types.NewTypeParameterUse(tp.Param, n1)
		bound = tp.PromotedBound
	} else {
		self = tp
		bound = tp.Param.Bound
	}

	if e.Oracle.IsSubtype(self, other, oracle.WithNullabilities) {
		return types.WithNullability(other, types.Unite(n1, n2))
	}
	if e.Oracle.IsSubtype(other, self, oracle.WithNullabilities) {
		return types.WithNullability(self, types.Unite(n1, n2))
	}

	// Termination device: substituting X with Object strictly shrinks the
	// set of free bounds a recursive call could chase back to tp.Param.
	objectSub := types.Substitution{tp.Param: e.oracleClasses().ObjectNonNull()}
	expanded := types.Substitute(bound, objectSub)

	result := e.up(expanded, other)
	return types.WithNullability(result, types.Unite(n1, n2))
}
