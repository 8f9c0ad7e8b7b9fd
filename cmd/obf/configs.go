package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/obf-format/go-obf"
	"github.com/obf-format/go-obf/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Quiet bool `cli:"name=q aliases=quiet desc='suppress warnings'"`

	Main *cli.Command
}

// encOpts enables colors when requested or when writing to a terminal.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// loadArg parses one OBF source argument; "-" reads stdin.
func loadArg(arg string, opts ...obf.LoadOption) (*obf.Document, error) {
	if arg == "-" {
		return obf.Load(os.Stdin, append([]obf.LoadOption{obf.WithSource("<stdin>")}, opts...)...)
	}
	return obf.LoadFile(arg, opts...)
}

func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SelectConfig struct {
	*MainConfig
	Select *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}
