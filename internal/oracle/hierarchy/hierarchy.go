// Package hierarchy implements the oracle interfaces of internal/oracle
// over an explicit, in-memory class hierarchy: each class records its
// direct supertype instantiation (possibly nil for Object itself), the way
// the teacher's NamedTypeBase records a ParentID for the same reason --
// walking to a common ancestor needs a parent link, not just a name.
//
// This package is deliberately kept out of internal/bounds: the spec names
// the subtype relation and the legacy-LUB walk as external collaborators,
// consumed, never implemented, by the engine. It exists so that
// cmd/boundscheck and the engine's own tests have a real oracle to run
// against instead of a hand-rolled stub per test.
package hierarchy

import (
	"fmt"

	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/types"
)

// Node describes one class's place in the hierarchy: its descriptor and,
// for every concrete instantiation it needs to be comparable against, the
// direct supertype instantiation. Object's Parent is nil.
type Node struct {
	Class  *types.ClassDesc
	Parent *types.InterfaceType
}

// Environment is a closed-world class hierarchy plus the canonical class
// descriptors the engine special-cases. It implements oracle.Subtyper.
type Environment struct {
	oracle.Classes
	nodes map[*types.ClassDesc]*Node
}

// NewEnvironment builds an Environment from the canonical classes and a set
// of additional nodes describing the rest of the hierarchy. Object,
// Function, Future, FutureOr, and Null are registered automatically as
// roots (Parent == nil) unless overridden in nodes.
func NewEnvironment(classes oracle.Classes, nodes ...*Node) *Environment {
	env := &Environment{Classes: classes, nodes: make(map[*types.ClassDesc]*Node)}

	for _, root := range []*types.ClassDesc{classes.Object, classes.Function, classes.Future, classes.FutureOr, classes.Null} {
		if root != nil {
			env.nodes[root] = &Node{Class: root}
		}
	}

	for _, n := range nodes {
		env.nodes[n.Class] = n
	}

	return env
}

func (e *Environment) ancestors(it *types.InterfaceType) []*types.InterfaceType {
	chain := []*types.InterfaceType{it}
	current := it
	for {
		node, ok := e.nodes[current.Class]
		if !ok || node.Parent == nil {
			return chain
		}
		parent := substituteTypeArgs(node, current)
		chain = append(chain, parent)
		current = parent
	}
}

// substituteTypeArgs rewrites a node's declared parent instantiation by
// substituting the node's own class's type parameters with the concrete
// arguments carried by use.
func substituteTypeArgs(node *Node, use *types.InterfaceType) *types.InterfaceType {
	if len(node.Class.TypeParams) == 0 || len(use.TypeArguments) == 0 {
		return node.Parent
	}

	sub := make(types.Substitution, len(node.Class.TypeParams))
	for i, p := range node.Class.TypeParams {
		if i < len(use.TypeArguments) {
			sub[p] = use.TypeArguments[i]
		}
	}

	rewritten := types.Substitute(node.Parent, sub)
	parent, ok := rewritten.(*types.InterfaceType)
	if !ok {
		return node.Parent
	}
	return parent
}

// IsSubtype implements oracle.Subtyper. For interfaces it walks sub's
// ancestor chain looking for sup's class, checking type arguments
// pointwise by declared variance once found; nullability is checked first
// unless mode is IgnoringNullabilities.
func (e *Environment) IsSubtype(sub, sup types.Type, mode oracle.Mode) bool {
	if types.Equals(sub, sup) {
		return true
	}

	if mode == oracle.WithNullabilities {
		if !e.nullabilityAllows(sub, sup) {
			return false
		}
	}

	subIface, subOK := types.NonNull(sub).(*types.InterfaceType)
	supIface, supOK := types.NonNull(sup).(*types.InterfaceType)
	if !subOK || !supOK {
		return false
	}

	for _, ancestor := range e.ancestors(subIface) {
		if ancestor.Class != supIface.Class {
			continue
		}
		return e.argsCompatible(ancestor, supIface, mode)
	}

	return false
}

func (e *Environment) nullabilityAllows(sub, sup types.Type) bool {
	sn, sok := types.NullabilityOf(sub)
	tn, tok := types.NullabilityOf(sup)
	if !sok || !tok {
		return true
	}
	if tn == types.Nullable || tn == types.Legacy {
		return true
	}
	return sn == types.NonNullable
}

func (e *Environment) argsCompatible(sub, sup *types.InterfaceType, mode oracle.Mode) bool {
	if len(sub.TypeArguments) != len(sup.TypeArguments) {
		return len(sub.TypeArguments) == 0 || len(sup.TypeArguments) == 0
	}

	params := sup.Class.TypeParams
	for i, subArg := range sub.TypeArguments {
		supArg := sup.TypeArguments[i]
		variance := types.Covariant
		if i < len(params) {
			variance = params[i].Variance
		}

		switch variance {
		case types.Covariant:
			if !e.IsSubtype(subArg, supArg, mode) {
				return false
			}
		case types.Contravariant:
			if !e.IsSubtype(supArg, subArg, mode) {
				return false
			}
		default: // Invariant
			if !e.AreMutualSubtypes(subArg, supArg, mode) {
				return false
			}
		}
	}

	return true
}

// AreMutualSubtypes implements oracle.Subtyper.
func (e *Environment) AreMutualSubtypes(a, b types.Type, mode oracle.Mode) bool {
	return e.IsSubtype(a, b, mode) && e.IsSubtype(b, a, mode)
}

// LegacyLeastUpperBound implements oracle.Subtyper by walking both
// ancestor chains and returning the first common class found scanning a's
// chain outward, the same linear-scan strategy a small closed-world
// hierarchy needs no smarter algorithm for.
func (e *Environment) LegacyLeastUpperBound(a, b *types.InterfaceType, client *types.ClientContext) *types.InterfaceType {
	bChain := e.ancestors(b)

	for _, aAncestor := range e.ancestors(a) {
		for _, bAncestor := range bChain {
			if aAncestor.Class == bAncestor.Class {
				n := types.Unite(a.Nullability, b.Nullability)
				return types.NewInterface(aAncestor.Class, n, aAncestor.TypeArguments...)
			}
		}
	}

	return e.Classes.ObjectNonNull()
}

// Lookup returns the registered node for a class, or an error if the
// hierarchy has no entry for it -- a fixture bug, since every class used in
// a scenario must be registered with NewEnvironment or AddNode first.
func (e *Environment) Lookup(class *types.ClassDesc) (*Node, error) {
	node, ok := e.nodes[class]
	if !ok {
		return nil, fmt.Errorf("hierarchy: class %q is not registered", class.Name)
	}
	return node, nil
}

// AddNode registers an additional class after construction.
func (e *Environment) AddNode(n *Node) {
	e.nodes[n.Class] = n
}
