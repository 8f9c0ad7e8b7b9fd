package encode

type EncodeOption func(*EncState)

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeUnits controls whether unit annotations re-emit as sibling
// "label.units" keys. On by default.
func EncodeUnits(v bool) EncodeOption {
	return func(es *EncState) { es.units = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		es.Color = c.Colorize
	}
}
