package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/obf-format/go-obf"
	"github.com/obf-format/go-obf/ir"
)

// leafEnv is the expression environment for one leaf.
type leafEnv struct {
	Path  string `expr:"path"`
	Value any    `expr:"value"`
	Unit  string `expr:"unit"`
	Type  string `expr:"type"`
}

// selectLeaves prints every leaf whose environment satisfies the
// expression, e.g.
//
//	obf select 'unit == "ms" && value > 500' session.obf
func selectLeaves(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		cfg.Select.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires one argument, an expression", cli.ErrUsage)
	}
	program, err := expr.Compile(args[0], expr.Env(leafEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("error compiling %q: %w", args[0], err)
	}
	for _, arg := range argsOrStdin(args[1:]) {
		doc, err := loadArg(arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		if err := selectDoc(cc, doc, program); err != nil {
			return err
		}
	}
	return nil
}

func selectDoc(cc *cli.Context, doc *obf.Document, program *vm.Program) error {
	var failure error
	doc.Root.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || !y.Type.IsLeaf() {
			return true, nil
		}
		env := leafEnv{
			Path:  y.KeyPath(),
			Value: ir.ToAny(y),
			Unit:  y.Unit,
			Type:  y.Type.String(),
		}
		res, err := expr.Run(program, env)
		if err != nil {
			// record the first evaluation failure, keep scanning
			if failure == nil {
				failure = fmt.Errorf("error evaluating at %q: %w", env.Path, err)
			}
			return true, nil
		}
		if res == true {
			fmt.Fprintf(cc.Out, "%s: %v\n", env.Path, env.Value)
		}
		return true, nil
	})
	return failure
}
