package bounds

import (
	"testing"

	"github.com/chai-lang/typebounds/internal/types"
)

func plainFunction(w *testWorld, positional []types.Type, required int, ret types.Type) *types.FunctionType {
	return &types.FunctionType{
		RequiredPositionalCount: required,
		Positional:              positional,
		ReturnType:              ret,
		Nullability:             types.NonNullable,
	}
}

func TestUpFunctionNarrowsParametersContravariantlyAndWidensReturnCovariantly(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	numberT := w.iface(w.number, types.NonNullable)
	objectT := w.iface(w.object, types.NonNullable)
	intT := w.iface(w.int_, types.NonNullable)
	doubleT := w.iface(w.double, types.NonNullable)

	// (Number) -> Int  SUB  (Object) -> Double  =  (Number) -> Number
	// parameters narrow via SLB (Number is the narrower of Number/Object),
	// return widens via SUB (Number is the wider of Int/Double).
	f := plainFunction(w, []types.Type{numberT}, 1, intT)
	g := plainFunction(w, []types.Type{objectT}, 1, doubleT)

	got := e.StandardUpperBound(f, g)
	if got.Repr() != "(Number) -> Number" {
		t.Errorf("SUB of function types = %s, want (Number) -> Number", got.Repr())
	}
}

func TestDownFunctionWidensParametersCovariantlyAndNarrowsReturn(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	numberT := w.iface(w.number, types.NonNullable)
	intT := w.iface(w.int_, types.NonNullable)
	doubleT := w.iface(w.double, types.NonNullable)

	// (Int) -> Number  SLB  (Double) -> Int  =  (Number) -> Int
	f := plainFunction(w, []types.Type{intT}, 1, numberT)
	g := plainFunction(w, []types.Type{doubleT}, 1, intT)

	got := e.StandardLowerBound(f, g)
	if got.Repr() != "(Number) -> Int" {
		t.Errorf("SLB of function types = %s, want (Number) -> Int", got.Repr())
	}
}

func TestUpFunctionRequiredNamedOnlyOnOneSideFallsBackToRawFunction(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	intT := w.iface(w.int_, types.NonNullable)

	f := &types.FunctionType{
		Named:       []types.Named{{Name: "x", Type: intT, IsRequired: true}},
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}
	g := &types.FunctionType{
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}

	got := e.StandardUpperBound(f, g)
	if got.Repr() != "Function" {
		t.Errorf("SUB should fall back to raw Function when a required named parameter is exclusive to one side, got %s", got.Repr())
	}
}

func TestDownFunctionNamedUnionRequiresBothSidesToKeepRequired(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	intT := w.iface(w.int_, types.NonNullable)
	numberT := w.iface(w.number, types.NonNullable)

	f := &types.FunctionType{
		Named:       []types.Named{{Name: "x", Type: numberT, IsRequired: true}},
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}
	g := &types.FunctionType{
		Named:       []types.Named{{Name: "x", Type: intT, IsRequired: false}},
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}

	got := e.StandardLowerBound(f, g).(*types.FunctionType)
	if len(got.Named) != 1 || got.Named[0].IsRequired {
		t.Errorf("SLB's named union should drop required-ness when only one side requires it, got %#v", got.Named)
	}
	if got.Named[0].Type.Repr() != "Number" {
		t.Errorf("SLB's named union should widen the shared parameter's type via SUB, got %s", got.Named[0].Type.Repr())
	}
}

func TestUpFunctionNamedIntersectionDropsNamesNotSharedByBothSides(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	intT := w.iface(w.int_, types.NonNullable)

	f := &types.FunctionType{
		Named:       []types.Named{{Name: "x", Type: intT}, {Name: "y", Type: intT}},
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}
	g := &types.FunctionType{
		Named:       []types.Named{{Name: "x", Type: intT}},
		ReturnType:  intT,
		Nullability: types.NonNullable,
	}

	got := e.StandardUpperBound(f, g).(*types.FunctionType)
	if len(got.Named) != 1 || got.Named[0].Name != "x" {
		t.Errorf("SUB's named intersection should keep only shared names, got %#v", got.Named)
	}
}

func TestUpFunctionMixedWithFunctionInterfaceYieldsRawFunction(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	intT := w.iface(w.int_, types.NonNullable)
	f := plainFunction(w, nil, 0, intT)
	rawFunction := w.iface(w.classes.Function, types.NonNullable)

	got := e.StandardUpperBound(f, rawFunction)
	if got.Repr() != "Function" {
		t.Errorf("SUB(function, Function) = %s, want Function", got.Repr())
	}
}

func TestUpFunctionMixedWithUnrelatedInterfaceYieldsNonNullObject(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	intT := w.iface(w.int_, types.NonNullable)
	f := plainFunction(w, nil, 0, intT)

	got := e.StandardUpperBound(f, intT)
	if got.Repr() != "Object" {
		t.Errorf("SUB(function, Int) = %s, want Object", got.Repr())
	}
}

func TestMutuallySubtypedBoundsGateGenericFunctionBounds(t *testing.T) {
	w := newTestWorld()
	e := w.engine(true)

	objectT := w.iface(w.object, types.NonNullable)
	numberT := w.iface(w.number, types.NonNullable)
	intT := w.iface(w.int_, types.NonNullable)

	xObject := &types.TypeParameterDecl{Name: "X", Bound: objectT}
	yNumber := &types.TypeParameterDecl{Name: "Y", Bound: numberT}

	f := &types.FunctionType{
		TypeParameters: []*types.TypeParameterDecl{xObject},
		Positional:     []types.Type{types.NewTypeParameterUse(xObject, types.NonNullable)},
		RequiredPositionalCount: 1,
		ReturnType:              intT,
		Nullability:             types.NonNullable,
	}
	g := &types.FunctionType{
		TypeParameters: []*types.TypeParameterDecl{yNumber},
		Positional:     []types.Type{types.NewTypeParameterUse(yNumber, types.NonNullable)},
		RequiredPositionalCount: 1,
		ReturnType:              intT,
		Nullability:             types.NonNullable,
	}

	// X extends Object is not a mutual subtype of Y extends Number, so the
	// structural merge never applies and SUB falls back to raw Function.
	got := e.StandardUpperBound(f, g)
	if got.Repr() != "Function" {
		t.Errorf("SUB of incompatibly-bounded generic functions = %s, want Function", got.Repr())
	}
}
