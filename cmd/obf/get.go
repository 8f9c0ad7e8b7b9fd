package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/obf-format/go-obf/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an OBF key path", cli.ErrUsage)
	}
	path := args[0]
	for _, arg := range argsOrStdin(args[1:]) {
		doc, err := loadArg(arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		node, err := doc.Get(path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
		if node == nil {
			// nothing at that path, and nothing to yell about
			continue
		}
		if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
