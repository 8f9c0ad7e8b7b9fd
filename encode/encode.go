// Package encode emits reconstructed OBF documents as YAML-shaped
// text.
package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/obf-format/go-obf/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	units bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node as indented key/value text. Mapping fields render
// as "key: value" lines, sequences as "- value" blocks, and Missing
// sentinels as tagged nulls. Unit annotations re-emit as sibling
// "label.units" keys so the output round-trips through the parser.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 4, units: true}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.MappingType:
		return encodeMapping(node, w, es)
	case ir.SequenceType:
		return encodeSequence(node, w, es)
	default:
		return writeString(w, es.color(node.Type, ValueColor, scalarText(node)))
	}
}

func encodeMapping(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}")
	}
	for i := range node.Fields {
		field, val := node.Fields[i].String, node.Values[i]
		if i > 0 {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		key := es.color(ir.MappingType, FieldColor, quoteKey(field)) +
			es.color(ir.MappingType, SepColor, ":")
		if err := writeString(w, key); err != nil {
			return err
		}
		if err := encodeValueBlock(val, w, es); err != nil {
			return err
		}
		if es.units && val.Unit != "" && val.Type != ir.MappingType {
			if err := writeNL(w, es); err != nil {
				return err
			}
			unitKey := es.color(ir.MappingType, FieldColor, field+".units") +
				es.color(ir.MappingType, SepColor, ":")
			line := unitKey + " " + es.color(ir.StringType, UnitColor, val.Unit)
			if err := writeString(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeValueBlock writes a mapping value or sequence element: inline
// for scalars, an indented block for containers.
func encodeValueBlock(val *ir.Node, w io.Writer, es *EncState) error {
	if val.Type.IsLeaf() || len(val.Values) == 0 {
		if err := writeString(w, " "); err != nil {
			return err
		}
		return encode(val, w, es)
	}
	es.depth++
	defer func() { es.depth-- }()
	if err := writeNL(w, es); err != nil {
		return err
	}
	return encode(val, w, es)
}

func encodeSequence(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	for i, val := range node.Values {
		if i > 0 {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		if err := writeString(w, es.color(ir.SequenceType, SepColor, "-")); err != nil {
			return err
		}
		if err := encodeValueBlock(val, w, es); err != nil {
			return err
		}
	}
	return nil
}

func writeNL(w io.Writer, es *EncState) error {
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func scalarText(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.MissingType:
		return "null # ~missing~"
	case ir.BoolType:
		if node.Bool {
			return "true"
		}
		return "false"
	case ir.NumberType:
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10)
		}
		if node.Float64 != nil {
			return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
		}
		return "0"
	case ir.StringType:
		return quoteString(node.String)
	}
	return fmt.Sprintf("<err: cannot encode %s>", node.Type)
}

// quoteString quotes strings the YAML scanner would otherwise retype.
func quoteString(s string) string {
	if s == "" {
		return `""`
	}
	plain := func() bool {
		if strings.ContainsAny(s, ":#\n'\"") {
			return false
		}
		if s != strings.TrimSpace(s) {
			return false
		}
		switch strings.ToLower(s) {
		case "null", "true", "false", "yes", "no", "~":
			return false
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return false
		}
		return true
	}()
	if plain {
		return s
	}
	return strconv.Quote(s)
}

func quoteKey(s string) string {
	if strings.ContainsAny(s, ":#\n'\" ") {
		return strconv.Quote(s)
	}
	return s
}
