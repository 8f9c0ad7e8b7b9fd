package main

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/obf-format/go-obf/encode"
)

// diff compares the canonical encodings of two session files, so
// differences in key spelling (case folding, zero padding, auto
// indexing) wash out and only reconstructed content differences show.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	texts := make([]string, 2)
	for i, arg := range args {
		doc, err := loadArg(arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(doc.Root, buf); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		texts[i] = buf.String()
	}

	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(texts[0], texts[1], true)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			fmt.Fprint(cc.Out, color.RedString("%s", d.Text))
		case diffpatch.DiffInsert:
			fmt.Fprint(cc.Out, color.GreenString("%s", d.Text))
		case diffpatch.DiffEqual:
			fmt.Fprint(cc.Out, d.Text)
		}
	}
	return nil
}
