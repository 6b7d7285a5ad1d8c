// Command boundscheck exposes the bounds engine as a small standalone tool:
// `slb` and `sub` compute a single bound between two type expressions, and
// `check` runs every scenario in a YAML fixture file against a YAML class
// hierarchy and reports mismatches. It replaces the teacher's hand-rolled
// argParser with cobra, the way the rest of this repository favors a real
// ecosystem library over a bespoke one wherever the teacher pack offers one.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chai-lang/typebounds/internal/bounds"
	"github.com/chai-lang/typebounds/internal/config"
	"github.com/chai-lang/typebounds/internal/diag"
	"github.com/chai-lang/typebounds/internal/fixture"
	"github.com/chai-lang/typebounds/internal/types"
)

var (
	flagNonNullableByDefault bool
	flagHierarchyFile        string
	flagLogLevel             string
	flagDebug                bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boundscheck",
		Short:         "boundscheck computes standard lower/upper bounds over a type lattice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// pflag shorthands are a single rune, so the teacher's two-letter "-ll"
	// survives only as the long flag name here; "-d" does double as both.
	root.PersistentFlags().StringVar(&flagLogLevel, "loglevel", "", "log level: error, warn, info, debug")
	root.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "print the resolved client context before running")
	root.PersistentFlags().StringVar(&flagHierarchyFile, "hierarchy", "", "path to a YAML class-hierarchy fixture")
	root.PersistentFlags().BoolVar(&flagNonNullableByDefault, "non-nullable-by-default", false, "override the loaded config's client default")

	root.AddCommand(newSLBCmd(), newSUBCmd(), newCheckCmd())
	return root
}

func loadProject() (*config.Config, *fixture.Environment, error) {
	cfg, err := config.Load(config.FileName)
	if err != nil {
		return nil, nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	hierarchyPath := cfg.HierarchyFile
	if flagHierarchyFile != "" {
		hierarchyPath = flagHierarchyFile
	}

	env, err := fixture.LoadHierarchyFile(hierarchyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading hierarchy %q: %w", hierarchyPath, err)
	}

	return cfg, env, nil
}

func runBound(args []string, compute func(e *bounds.Engine, a, b types.Type) types.Type) error {
	cfg, env, err := loadProject()
	if err != nil {
		return err
	}

	nonNullableByDefault := cfg.NonNullableByDefault
	if flagNonNullableByDefault {
		nonNullableByDefault = true
	}
	client := env.Classes.ClientContext(nonNullableByDefault)

	if flagDebug {
		diag.Banner("client context")
		fmt.Printf("  non-nullable-by-default: %v\n", client.NonNullableByDefault)
	}

	a, err := env.ParseType(args[0])
	if err != nil {
		return fmt.Errorf("parsing first type: %w", err)
	}
	b, err := env.ParseType(args[1])
	if err != nil {
		return fmt.Errorf("parsing second type: %w", err)
	}

	engine := bounds.NewEngine(client, env.Oracle)
	result := compute(engine, a, b)
	fmt.Println(result.Repr())
	return nil
}

func newSLBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slb <type-a> <type-b>",
		Short: "compute the standard lower bound of two types",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBound(args, (*bounds.Engine).StandardLowerBound)
		},
	}
}

func newSUBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sub <type-a> <type-b>",
		Short: "compute the standard upper bound of two types",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBound(args, (*bounds.Engine).StandardUpperBound)
		},
	}
}

func newCheckCmd() *cobra.Command {
	var scenarioFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "run every scenario in a YAML fixture file against the bounds engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(scenarioFile)
		},
	}
	cmd.Flags().StringVar(&scenarioFile, "scenarios", "scenarios.yaml", "path to a YAML scenario fixture")
	return cmd
}

func runCheck(scenarioFile string) error {
	_, env, err := loadProject()
	if err != nil {
		return err
	}

	scenarios, err := fixture.LoadScenarioFile(scenarioFile)
	if err != nil {
		return err
	}

	diag.Banner("check")

	failures := 0
	for _, sc := range scenarios {
		client := env.Classes.ClientContext(sc.NonNullableByDefault)
		engine := bounds.NewEngine(client, env.Oracle)

		a, err := env.ParseType(sc.A)
		if err != nil {
			return fmt.Errorf("scenario %q: parsing a: %w", sc.Name, err)
		}
		b, err := env.ParseType(sc.B)
		if err != nil {
			return fmt.Errorf("scenario %q: parsing b: %w", sc.Name, err)
		}

		var got types.Type
		switch sc.Op {
		case "slb":
			got = engine.StandardLowerBound(a, b)
		case "sub":
			got = engine.StandardUpperBound(a, b)
		default:
			return fmt.Errorf("scenario %q: unknown op %q", sc.Name, sc.Op)
		}

		if got.Repr() != sc.Expect {
			failures++
			fmt.Printf("FAIL %s: %s(%s, %s) = %s, want %s\n", sc.Name, sc.Op, sc.A, sc.B, got.Repr(), sc.Expect)
		} else {
			fmt.Printf("ok   %s\n", sc.Name)
		}
	}

	fmt.Printf("\n%d/%d scenarios passed\n", len(scenarios)-failures, len(scenarios))
	if failures > 0 {
		return fmt.Errorf("%d scenario(s) failed", failures)
	}
	return nil
}
