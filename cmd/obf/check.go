package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/obf-format/go-obf/parse"
)

// check parses each argument and reports warnings. The exit code
// distinguishes failure classes for scripting: 1 for malformed keys,
// 2 for ambiguous structure, 3 for directive conflicts.
func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range argsOrStdin(args) {
		doc, err := loadArg(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			return cli.ExitCodeErr(exitCode(err))
		}
		if cfg.Quiet {
			continue
		}
		for _, w := range doc.Warnings {
			fmt.Fprintf(cc.Out, "%s: warning: %s\n", arg, w)
		}
	}
	return nil
}

// exitCode maps a parse failure onto the documented exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, parse.ErrConfigConflict):
		return 3
	case errors.Is(err, parse.ErrAmbiguousStructure):
		return 2
	case errors.Is(err, parse.ErrInvalidKey),
		errors.Is(err, parse.ErrUnknownDirective),
		errors.Is(err, parse.ErrDuplicateKey),
		errors.Is(err, parse.ErrUnresolvedUnits):
		return 1
	}
	return 1
}
