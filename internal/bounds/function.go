package bounds

import (
	"sort"

	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// upFunctionDispatch implements the part of UP's priority list that
// handles a Function operand mixed with something other than a plain
// structural-subtype check: Function paired with the Function interface
// itself, Function paired with an unrelated interface, and Function paired
// with Function (component H). It reports ok=false when neither operand is
// a FunctionType, letting the caller fall through to the generic rules.
func (e *Engine) upFunctionDispatch(t1, t2 types.Type) (types.Type, bool) {
	f1, ok1 := t1.(*types.FunctionType)
	f2, ok2 := t2.(*types.FunctionType)

	if ok1 && ok2 {
		return e.upFunction(f1, f2), true
	}
	if !ok1 && !ok2 {
		return nil, false
	}

	fn, other := f1, t2
	if !ok1 {
		fn, other = f2, t1
	}

	iface, isIface := types.NonNull(other).(*types.InterfaceType)
	if !isIface {
		return nil, false
	}

	n := types.Unite(nullabilityOf(fn), nullabilityOf(other))
	if iface.Class == e.Client.FunctionClass {
		return e.oracleClasses().FunctionRaw(n), true
	}
	return types.WithNullability(e.oracleClasses().ObjectNonNull(), n), true
}

// renamingSubstitution builds the substitution mapping g's type parameters
// onto f's, preserving structure, the "alpha renaming" device §4.4/§9 call
// for making two generic function signatures comparable.
func renamingSubstitution(f, g *types.FunctionType) types.Substitution {
	return types.AlphaRenaming(g.TypeParameters, f.TypeParameters)
}

// boundsCompatible is the shared precondition of §4.4: f and g must declare
// the same number of type parameters, and each of g's bounds, rewritten
// through the alpha renaming, must be a mutual subtype of the
// corresponding bound of f.
func (e *Engine) boundsCompatible(f, g *types.FunctionType, mode oracle.Mode) bool {
	if len(f.TypeParameters) != len(g.TypeParameters) {
		return false
	}

	ren := renamingSubstitution(f, g)
	for i, fp := range f.TypeParameters {
		gBound := types.Substitute(g.TypeParameters[i].Bound, ren)
		if !e.Oracle.AreMutualSubtypes(fp.Bound, gBound, mode) {
			return false
		}
	}

	return true
}

func hasNamed(f *types.FunctionType) bool { return len(f.Named) > 0 }
func hasOptionalPositional(f *types.FunctionType) bool {
	return f.RequiredPositionalCount < len(f.Positional)
}

// downFunction implements the SLB half of component H, under
// nullability-aware semantics.
func (e *Engine) downFunction(f, g *types.FunctionType) types.Type {
	return e.downFunctionCore(f, g, oracle.WithNullabilities, e.down, e.up,
		types.NewNever(types.Intersect(f.Nullability, g.Nullability)),
		types.Intersect(f.Nullability, g.Nullability))
}

// upFunction implements the SUB half of component H, under
// nullability-aware semantics.
func (e *Engine) upFunction(f, g *types.FunctionType) types.Type {
	n := types.Unite(f.Nullability, g.Nullability)
	return e.upFunctionCore(f, g, oracle.WithNullabilities, e.down, e.up,
		e.oracleClasses().FunctionRaw(n), n)
}

// downFunctionCore is component H's SLB shared between the nullability-aware
// engine (which recurses via e.down/e.up and compares bounds with
// nullabilities) and the oblivious engine (which recurses via
// e.obliviousDown/e.obliviousUp, ignoring nullabilities, and whose fallback
// has no nullability algebra to combine).
func (e *Engine) downFunctionCore(f, g *types.FunctionType, mode oracle.Mode, down, up func(a, b types.Type) types.Type, fallback types.Type, resultNullability types.Nullability) types.Type {
	if !e.boundsCompatible(f, g, mode) {
		return fallback
	}

	namedEither := hasNamed(f) || hasNamed(g)
	optionalEither := hasOptionalPositional(f) || hasOptionalPositional(g)
	if namedEither && optionalEither {
		return fallback
	}
	if namedEither && len(f.Positional) != len(g.Positional) {
		return fallback
	}

	ren := renamingSubstitution(f, g)

	minPos := len(f.Positional)
	if len(g.Positional) < minPos {
		minPos = len(g.Positional)
	}
	maxPos := len(f.Positional)
	if len(g.Positional) > maxPos {
		maxPos = len(g.Positional)
	}

	positional := make([]types.Type, maxPos)
	for i := 0; i < maxPos; i++ {
		switch {
		case i < minPos:
			positional[i] = up(f.Positional[i], types.Substitute(g.Positional[i], ren))
		case i < len(f.Positional):
			positional[i] = f.Positional[i]
		default:
			positional[i] = types.Substitute(g.Positional[i], ren)
		}
	}

	requiredPositionalCount := f.RequiredPositionalCount
	if g.RequiredPositionalCount < requiredPositionalCount {
		requiredPositionalCount = g.RequiredPositionalCount
	}

	named := mergeNamedUnion(f.Named, g.Named, ren, up)

	return &types.FunctionType{
		TypeParameters:          f.TypeParameters,
		RequiredPositionalCount: requiredPositionalCount,
		Positional:              positional,
		Named:                   named,
		ReturnType:              down(f.ReturnType, types.Substitute(g.ReturnType, ren)),
		Nullability:             resultNullability,
	}
}

// upFunctionCore is component H's SUB, shared the same way as
// downFunctionCore.
func (e *Engine) upFunctionCore(f, g *types.FunctionType, mode oracle.Mode, down, up func(a, b types.Type) types.Type, fallback types.Type, resultNullability types.Nullability) types.Type {
	if !e.boundsCompatible(f, g, mode) {
		return fallback
	}

	namedEither := hasNamed(f) || hasNamed(g)
	optionalEither := hasOptionalPositional(f) || hasOptionalPositional(g)
	if namedEither && optionalEither {
		return fallback
	}
	if namedEither {
		if len(f.Positional) != len(g.Positional) || hasExclusiveRequiredNamed(f, g) {
			return fallback
		}
	} else if f.RequiredPositionalCount != g.RequiredPositionalCount {
		return fallback
	}

	ren := renamingSubstitution(f, g)

	minPos := len(f.Positional)
	if len(g.Positional) < minPos {
		minPos = len(g.Positional)
	}

	positional := make([]types.Type, minPos)
	for i := 0; i < minPos; i++ {
		positional[i] = down(f.Positional[i], types.Substitute(g.Positional[i], ren))
	}

	named := mergeNamedIntersection(f.Named, g.Named, ren, down)

	return &types.FunctionType{
		TypeParameters:          f.TypeParameters,
		RequiredPositionalCount: f.RequiredPositionalCount,
		Positional:              positional,
		Named:                   named,
		ReturnType:              up(f.ReturnType, types.Substitute(g.ReturnType, ren)),
		Nullability:             resultNullability,
	}
}

// hasExclusiveRequiredNamed reports whether some named parameter appears in
// exactly one of f or g and is required there -- one of SUB's applicability
// gates.
func hasExclusiveRequiredNamed(f, g *types.FunctionType) bool {
	gByName := namedIndex(g.Named)
	for _, n := range f.Named {
		if _, ok := gByName[n.Name]; !ok && n.IsRequired {
			return true
		}
	}
	fByName := namedIndex(f.Named)
	for _, n := range g.Named {
		if _, ok := fByName[n.Name]; !ok && n.IsRequired {
			return true
		}
	}
	return false
}

func namedIndex(named []types.Named) map[string]types.Named {
	idx := make(map[string]types.Named, len(named))
	for _, n := range named {
		idx[n.Name] = n
	}
	return idx
}

// mergeNamedUnion implements SLB's named-parameter merge: every name from
// either side is present in the result; a name in both sides widens via
// up (SLB of functions widens parameter types via SUB, the usual
// contravariance of function parameters) and is required only if both
// sides required it.
func mergeNamedUnion(fNamed, gNamed []types.Named, ren types.Substitution, up func(a, b types.Type) types.Type) []types.Named {
	fIdx := namedIndex(fNamed)
	gIdx := namedIndex(gNamed)

	names := make(map[string]struct{}, len(fNamed)+len(gNamed))
	for _, n := range fNamed {
		names[n.Name] = struct{}{}
	}
	for _, n := range gNamed {
		names[n.Name] = struct{}{}
	}

	result := make([]types.Named, 0, len(names))
	for name := range names {
		fn, fok := fIdx[name]
		gn, gok := gIdx[name]
		switch {
		case fok && gok:
			result = append(result, types.Named{
				Name:       name,
				Type:       up(fn.Type, types.Substitute(gn.Type, ren)),
				IsRequired: fn.IsRequired && gn.IsRequired,
			})
		case fok:
			result = append(result, types.Named{Name: name, Type: fn.Type, IsRequired: false})
		default:
			result = append(result, types.Named{Name: name, Type: types.Substitute(gn.Type, ren), IsRequired: false})
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// mergeNamedIntersection implements SUB's named-parameter merge: only names
// present on both sides survive, narrowing via down and required if either
// side required it.
func mergeNamedIntersection(fNamed, gNamed []types.Named, ren types.Substitution, down func(a, b types.Type) types.Type) []types.Named {
	gIdx := namedIndex(gNamed)

	result := make([]types.Named, 0, len(fNamed))
	for _, fn := range fNamed {
		gn, ok := gIdx[fn.Name]
		if !ok {
			continue
		}
		result = append(result, types.Named{
			Name:       fn.Name,
			Type:       down(fn.Type, types.Substitute(gn.Type, ren)),
			IsRequired: fn.IsRequired || gn.IsRequired,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
