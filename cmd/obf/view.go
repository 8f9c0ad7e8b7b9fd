package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/obf-format/go-obf/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for i, arg := range argsOrStdin(args) {
		doc, err := loadArg(arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(doc.Root, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
