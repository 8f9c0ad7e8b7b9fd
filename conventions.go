package obf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/obf-format/go-obf/ir"
	"github.com/obf-format/go-obf/parse"
)

// Convention is a hot-key action applied while walking the values of a
// parsed document. Pattern is matched against mapping field names; the
// first matching convention for a key is the only one applied.
// Conventions are not formally part of OBF; they capture producer
// habits like tagging nested values with units.
type Convention struct {
	Name    string
	Pattern *regexp.Regexp
	Apply   func(doc *Document, m *ir.Node, key string)
}

// DefaultConventions returns the standard hot-key actions:
//
//   - "label.unit" keys inside values become leaf "label" with a unit
//     annotation ("start.utime: 1303844359" → start with unit "utime")
//   - "label.units: u" keys attach u to the sibling "label" leaf
//   - "_123_" keys become the string key "123", allowing digit strings
//     as mapping keys
//   - ambiguous "random_seed: None" values are flagged
//   - "mouse" mappings lacking both x/y and a 2-element pos are flagged
func DefaultConventions(units []string) []Convention {
	known := make(map[string]bool, len(units))
	for _, u := range units {
		known[strings.ToLower(u)] = true
	}
	return []Convention{
		{
			Name:    "digit-keys",
			Pattern: regexp.MustCompile(`^_\d+_$`),
			Apply: func(doc *Document, m *ir.Node, key string) {
				newKey := strings.Trim(key, "_")
				if ir.Get(m, newKey) != nil {
					doc.warnf(parse.WarnUnitsConflict,
						"cannot rename %q: key %q already exists", key, newKey)
					return
				}
				v := ir.Get(m, key)
				m.Delete(key)
				m.Set(newKey, v)
			},
		},
		{
			Name:    "units",
			Pattern: regexp.MustCompile(`^[A-Za-z_][^.]*\..+$`),
			Apply: func(doc *Document, m *ir.Node, key string) {
				applyUnitsConvention(doc, m, key, known)
			},
		},
		{
			Name:    "random-seed",
			Pattern: regexp.MustCompile(`^random_seed$`),
			Apply: func(doc *Document, m *ir.Node, key string) {
				v := ir.Get(m, key)
				if v.Type == ir.StringType && v.String == "None" {
					doc.warnf(parse.WarnAmbiguousValue,
						"ambiguous random_seed 'None'")
				}
			},
		},
		{
			Name:    "mouse",
			Pattern: regexp.MustCompile(`^mouse$`),
			Apply: func(doc *Document, m *ir.Node, key string) {
				v := ir.Get(m, key)
				if v.Type != ir.MappingType {
					return
				}
				if ir.Get(v, "x") != nil || ir.Get(v, "y") != nil {
					return
				}
				pos := ir.Get(v, "pos")
				if pos != nil && pos.Type == ir.SequenceType && len(pos.Values) == 2 {
					return
				}
				doc.warnf(parse.WarnAmbiguousValue, "mouse lacks (x,y) or pos[]")
			},
		},
	}
}

// applyUnitsConvention interprets a nested "label.rest" mapping key as
// label with units rest. The literal rest "units" instead annotates
// the sibling label leaf with the key's value. Known units are
// canonicalized to lower case; unknown unit text is kept verbatim.
func applyUnitsConvention(doc *Document, m *ir.Node, key string, known map[string]bool) {
	label, unit, _ := strings.Cut(key, ".")
	v := ir.Get(m, key)

	if strings.EqualFold(unit, "units") {
		sib := ir.Get(m, label)
		if sib == nil {
			doc.warnf(parse.WarnUnresolvedUnits,
				"%q has units %q but no sibling %q", key, scalarText(v), label)
			return
		}
		sib.Unit = strings.ToLower(scalarText(v))
		m.Delete(key)
		return
	}

	if ir.Get(m, label) != nil {
		doc.warnf(parse.WarnUnitsConflict,
			"%q has units %q, but key conflicts with existing key %q", key, unit, label)
		return
	}
	if known[strings.ToLower(unit)] {
		unit = strings.ToLower(unit)
	}
	m.Delete(key)
	v.Unit = unit
	m.Set(label, v)
}

// applyConventions walks every mapping in the tree, trying each
// convention in order against each field name.
func applyConventions(doc *Document, conventions []Convention) {
	if len(conventions) == 0 {
		return
	}
	var walk func(y *ir.Node)
	walk = func(y *ir.Node) {
		if y.Type == ir.MappingType {
			keys := make([]string, len(y.Fields))
			for i := range y.Fields {
				keys[i] = y.Fields[i].String
			}
			for _, key := range keys {
				for _, c := range conventions {
					if !c.Pattern.MatchString(key) {
						continue
					}
					c.Apply(doc, y, key)
					break
				}
			}
		}
		for _, v := range y.Values {
			walk(v)
		}
	}
	walk(doc.Root)
}

// scalarText renders a scalar node as annotation text.
func scalarText(y *ir.Node) string {
	switch y.Type {
	case ir.StringType:
		return y.String
	case ir.NumberType:
		if y.Int64 != nil {
			return fmt.Sprintf("%d", *y.Int64)
		}
		if y.Float64 != nil {
			return fmt.Sprintf("%g", *y.Float64)
		}
	case ir.BoolType:
		return fmt.Sprintf("%t", y.Bool)
	}
	return ""
}
