// Package fixture loads YAML class-hierarchy and scenario documents into
// the types the bounds engine operates on, the way the teacher's own
// integration tests load a small Chai source fixture rather than building
// an AST by hand. It is the one place in this repository that parses the
// Repr()-based textual type grammar (internal/types/parse.go) on the way
// in from a file.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chai-lang/typebounds/internal/oracle"
	"github.com/chai-lang/typebounds/internal/oracle/hierarchy"
	"github.com/chai-lang/typebounds/internal/types"
)

// TypeParamDoc is the YAML shape of one declared type parameter.
type TypeParamDoc struct {
	Name     string `yaml:"name"`
	Bound    string `yaml:"bound"`
	Variance string `yaml:"variance"`
}

// ClassDoc is the YAML shape of one declared class: its name, its direct
// parent instantiation (empty for a root class), and its type parameters.
type ClassDoc struct {
	Name       string         `yaml:"name"`
	Parent     string         `yaml:"parent"`
	TypeParams []TypeParamDoc `yaml:"type_params"`
}

// HierarchyDoc is the top-level YAML document describing a class hierarchy.
// The five canonical role fields name which declared class plays each
// special role the engine hard-codes (Object, Function, Future, FutureOr,
// Null); they default to the identically-named class when left blank.
type HierarchyDoc struct {
	Classes      []ClassDoc `yaml:"classes"`
	ObjectClass  string     `yaml:"object_class"`
	FunctionClass string    `yaml:"function_class"`
	FutureClass  string     `yaml:"future_class"`
	FutureOrClass string    `yaml:"future_or_class"`
	NullClass    string     `yaml:"null_class"`
}

// registry implements types.Resolver over the classes declared so far.
type registry map[string]*types.ClassDesc

func (r registry) Class(name string) (*types.ClassDesc, bool) {
	c, ok := r[name]
	return c, ok
}

// Environment is a loaded hierarchy: the class registry, the canonical
// class roles, and the oracle.Subtyper implementation built over it.
type Environment struct {
	Registry registry
	Classes  oracle.Classes
	Oracle   *hierarchy.Environment
}

// LoadHierarchyFile reads and builds an Environment from a YAML file.
func LoadHierarchyFile(path string) (*Environment, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %q: %w", path, err)
	}
	return LoadHierarchy(buf)
}

// LoadHierarchy builds an Environment from a YAML document's raw bytes.
func LoadHierarchy(buf []byte) (*Environment, error) {
	var doc HierarchyDoc
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("fixture: parsing hierarchy: %w", err)
	}

	reg := registry{}
	for _, c := range doc.Classes {
		if _, exists := reg[c.Name]; exists {
			return nil, fmt.Errorf("fixture: duplicate class %q", c.Name)
		}
		reg[c.Name] = &types.ClassDesc{Name: c.Name}
	}

	varianceByName := map[string]types.Variance{
		"":              types.Covariant,
		"covariant":     types.Covariant,
		"contravariant": types.Contravariant,
		"invariant":     types.Invariant,
	}

	nodes := make([]*hierarchy.Node, 0, len(doc.Classes))
	for _, c := range doc.Classes {
		class := reg[c.Name]

		params := make([]*types.TypeParameterDecl, len(c.TypeParams))
		for i, tp := range c.TypeParams {
			variance, ok := varianceByName[tp.Variance]
			if !ok {
				return nil, fmt.Errorf("fixture: class %q: invalid variance %q", c.Name, tp.Variance)
			}
			params[i] = &types.TypeParameterDecl{Name: tp.Name, Variance: variance}
		}

		for i, tp := range c.TypeParams {
			bound, err := types.ParseWithParams(tp.Bound, reg, params[:i+1])
			if err != nil {
				return nil, fmt.Errorf("fixture: class %q: type parameter %q bound: %w", c.Name, tp.Name, err)
			}
			params[i].Bound = bound
		}
		class.TypeParams = params

		var parent *types.InterfaceType
		if c.Parent != "" {
			pt, err := types.ParseWithParams(c.Parent, reg, params)
			if err != nil {
				return nil, fmt.Errorf("fixture: class %q: parent %q: %w", c.Name, c.Parent, err)
			}
			it, ok := pt.(*types.InterfaceType)
			if !ok {
				return nil, fmt.Errorf("fixture: class %q: parent %q is not an interface type", c.Name, c.Parent)
			}
			parent = it
		}

		nodes = append(nodes, &hierarchy.Node{Class: class, Parent: parent})
	}

	classes, err := resolveRoles(reg, doc)
	if err != nil {
		return nil, err
	}

	env := hierarchy.NewEnvironment(classes, nodes...)

	return &Environment{Registry: reg, Classes: classes, Oracle: env}, nil
}

func resolveRoles(reg registry, doc HierarchyDoc) (oracle.Classes, error) {
	role := func(name, fallback string) (*types.ClassDesc, error) {
		if name == "" {
			name = fallback
		}
		class, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("fixture: role class %q is not declared", name)
		}
		return class, nil
	}

	object, err := role(doc.ObjectClass, "Object")
	if err != nil {
		return oracle.Classes{}, err
	}
	function, err := role(doc.FunctionClass, "Function")
	if err != nil {
		return oracle.Classes{}, err
	}
	future, err := role(doc.FutureClass, "Future")
	if err != nil {
		return oracle.Classes{}, err
	}
	futureOr, err := role(doc.FutureOrClass, "FutureOr")
	if err != nil {
		return oracle.Classes{}, err
	}
	null, err := role(doc.NullClass, "Null")
	if err != nil {
		return oracle.Classes{}, err
	}

	return oracle.Classes{Object: object, Function: function, Future: future, FutureOr: futureOr, Null: null}, nil
}

// ScenarioDoc is the YAML shape of one end-to-end bounds scenario: two
// input types, which operation to run, and the expected textual result.
type ScenarioDoc struct {
	Name                 string `yaml:"name"`
	Op                   string `yaml:"op"` // "slb" or "sub"
	A                    string `yaml:"a"`
	B                    string `yaml:"b"`
	Expect               string `yaml:"expect"`
	NonNullableByDefault bool   `yaml:"non_nullable_by_default"`
}

// ScenarioFile is the top-level YAML document listing scenarios.
type ScenarioFile struct {
	Scenarios []ScenarioDoc `yaml:"scenarios"`
}

// LoadScenarioFile reads a scenario list from a YAML file.
func LoadScenarioFile(path string) ([]ScenarioDoc, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %q: %w", path, err)
	}

	var doc ScenarioFile
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("fixture: parsing scenarios: %w", err)
	}

	return doc.Scenarios, nil
}

// ParseType parses a type expression against this environment's class
// registry.
func (e *Environment) ParseType(s string) (types.Type, error) {
	return types.Parse(s, e.Registry)
}
