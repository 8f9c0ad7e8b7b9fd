package encode

import (
	"github.com/fatih/color"

	"github.com/obf-format/go-obf/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	UnitColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: SepColor}
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
		able.Attr = UnitColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	colors.Map[Colorable{Type: ir.MappingType, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()

	able := Colorable{Attr: ValueColor}
	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString
	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = ir.MissingType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	return colors
}

func colorDefault(f string, args ...any) string {
	return color.WhiteString(f, args...)
}

func (c *Colors) Colorize(t ir.Type, attr ColorAttr, s string) string {
	fn, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if !ok {
		fn = c.Default
	}
	return fn("%s", s)
}
