package parse

import (
	"fmt"
	"strings"

	"github.com/obf-format/go-obf/debug"
	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
	"github.com/obf-format/go-obf/ir/keypath"
)

// unitsAnnotation is a pending *.units-style annotation, resolved
// against the finished tree by the units extractor.
type unitsAnnotation struct {
	target *keypath.KeyPath
	unit   string
}

// builder inserts (path, value) pairs in file order into one shared
// tree rooted at a mapping. It owns the tree exclusively until the
// pass completes.
type builder struct {
	dirs       directive.Set
	knownUnits map[string]bool
	root       *ir.Node
	// assigned tracks fully-resolved leaf paths for duplicate-path
	// detection; positions created implicitly by key grammar are not
	// in it.
	assigned map[string]bool
	units    []unitsAnnotation
	warnings []Warning
}

func newBuilder(dirs directive.Set, knownUnits map[string]bool) *builder {
	return &builder{
		dirs:       dirs,
		knownUnits: knownUnits,
		root:       ir.NewMapping(),
		assigned:   map[string]bool{},
	}
}

func (b *builder) insert(path *keypath.KeyPath, value *ir.Node) error {
	// a literal .units key annotates its sibling leaf instead of
	// inserting a node; the unit text is the pair's value
	if target, ok := path.UnitsTarget(); ok {
		b.units = append(b.units, unitsAnnotation{target: target, unit: valueText(value)})
		if debug.Units() {
			debug.Logf("units: %q <- %q", target.String(), valueText(value))
		}
		return nil
	}

	// known-unit shorthand: "rt.ms: 765" assigns rt = 765 with a
	// pending unit "ms"
	if b.knownUnits != nil {
		last := path.Last()
		if last.Mod == keypath.ModName && b.knownUnits[strings.ToLower(last.Name)] {
			target := path.DropModifier()
			b.units = append(b.units, unitsAnnotation{target: target, unit: last.Name})
			path = target
		}
	}

	if debug.Build() {
		debug.Logf("build: %s = %s", path.String(), value.Type)
	}

	cur := b.root
	canon := ""
	for seg := path; seg != nil; seg = seg.Next {
		final := seg.Next == nil
		if canon != "" {
			canon += "+"
		}
		canon += seg.Label

		// section keys are opaque labels; they never decompose but may
		// prefix a longer path
		if seg.Special {
			if final {
				return b.assignField(cur, seg.Label, value, canon)
			}
			next, err := b.fieldMapping(cur, seg.Label, canon)
			if err != nil {
				return err
			}
			cur = next
			continue
		}

		switch seg.Mod {
		case keypath.ModNone:
			if !final {
				return fmt.Errorf("%w: group %q lacks a modifier in complex key %q",
					ErrInvalidKey, seg.Label, path.String())
			}
			return b.assignField(cur, seg.Label, value, canon)

		case keypath.ModIndex:
			node, err := b.container(cur, seg.Label, ir.SequenceType, canon)
			if err != nil {
				return err
			}
			if seg.Index < b.dirs.IndexBase.Int() {
				b.warnings = append(b.warnings, warningf(WarnBelowBaseIndex,
					"%s requested, but index %d received for %q",
					b.dirs.IndexBase, seg.Index, canon))
			}
			canon += fmt.Sprintf(".%d", seg.Index)
			if final {
				return b.assignElem(node, seg.Index, value, canon)
			}
			next, err := b.elemMapping(node, seg.Index, canon)
			if err != nil {
				return err
			}
			cur = next

		case keypath.ModName:
			node, err := b.container(cur, seg.Label, ir.MappingType, canon)
			if err != nil {
				return err
			}
			canon += "." + seg.Name
			if final {
				return b.assignField(node, seg.Name, value, canon)
			}
			next, err := b.fieldMapping(node, seg.Name, canon)
			if err != nil {
				return err
			}
			cur = next
		}
	}
	return nil
}

// container returns the node at cur[label], creating it with the
// wanted kind if absent, and failing with ErrAmbiguousStructure if it
// already exists with a conflicting kind. No inference is attempted
// for conflicts; there is no safe way to guess.
func (b *builder) container(cur *ir.Node, label string, want ir.Type, canon string) (*ir.Node, error) {
	node := ir.Get(cur, label)
	if node == nil {
		node = &ir.Node{Type: want}
		cur.Set(label, node)
		return node, nil
	}
	if node.Type != want {
		return nil, fmt.Errorf("%w: %q is addressed as %s but already exists as %s",
			ErrAmbiguousStructure, canon, want, node.Type)
	}
	return node, nil
}

// elemMapping returns the mapping at sequence index i, creating it if
// the slot is empty.
func (b *builder) elemMapping(seq *ir.Node, i int, canon string) (*ir.Node, error) {
	elem := seq.At(i)
	if elem == nil {
		elem = ir.NewMapping()
		seq.Put(i, elem)
		return elem, nil
	}
	if elem.Type != ir.MappingType {
		return nil, fmt.Errorf("%w: %q is descended as a mapping but already exists as %s",
			ErrAmbiguousStructure, canon, elem.Type)
	}
	return elem, nil
}

// fieldMapping returns the mapping at m[field], creating it if absent.
func (b *builder) fieldMapping(m *ir.Node, field string, canon string) (*ir.Node, error) {
	node := ir.Get(m, field)
	if node == nil {
		node = ir.NewMapping()
		m.Set(field, node)
		return node, nil
	}
	if node.Type != ir.MappingType {
		return nil, fmt.Errorf("%w: %q is descended as a mapping but already exists as %s",
			ErrAmbiguousStructure, canon, node.Type)
	}
	return node, nil
}

// assignField writes value at m[field], applying the duplicate-path
// policy. Assigning over a position the key grammar created as a
// container is fatal regardless of strictness.
func (b *builder) assignField(m *ir.Node, field string, value *ir.Node, canon string) error {
	existing := ir.Get(m, field)
	if existing != nil {
		if err := b.reassign(existing, canon); err != nil {
			return err
		}
	}
	m.Set(field, value)
	b.assigned[canon] = true
	return nil
}

// assignElem writes value at sequence index i under the same policy as
// assignField.
func (b *builder) assignElem(seq *ir.Node, i int, value *ir.Node, canon string) error {
	existing := seq.At(i)
	if existing != nil {
		if err := b.reassign(existing, canon); err != nil {
			return err
		}
	}
	seq.Put(i, value)
	b.assigned[canon] = true
	return nil
}

func (b *builder) reassign(existing *ir.Node, canon string) error {
	if !b.assigned[canon] {
		// the position exists only because the key grammar built
		// structure through it
		return fmt.Errorf("%w: %q is assigned directly but already exists as %s",
			ErrAmbiguousStructure, canon, existing.Type)
	}
	if b.dirs.Strictness == directive.Strict {
		return fmt.Errorf("%w: %q assigned twice", ErrDuplicateKey, canon)
	}
	b.warnings = append(b.warnings, warningf(WarnDuplicateOverwrite,
		"%q assigned twice; keeping the later value", canon))
	return nil
}

// valueText renders an already-typed value as annotation text.
func valueText(y *ir.Node) string {
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
