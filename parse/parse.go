// Package parse reconstructs nested OBF session data from a flat,
// ordered list of key/value pairs.
//
// The reconstruction runs as six strictly sequential stages, each a
// full pass over the previous stage's output:
//
//  1. directive extraction from the =Header= preprocess key
//  2. key normalization (case folding, auto-indexing)
//  3. key tokenization into paths (keypath.Parse)
//  4. tree building with ambiguity and duplicate detection
//  5. missing-value filling of sequence gaps
//  6. units annotation resolution
//
// A parse is atomic: the first fatal error aborts the whole document
// and no partial tree is returned. Non-fatal conditions are collected
// as warnings on the result; quiet mode suppresses warnings but never
// downgrades a fatal error.
package parse

import (
	"fmt"

	"github.com/obf-format/go-obf/debug"
	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
	"github.com/obf-format/go-obf/ir/keypath"
)

// RawPair is one already-typed key/value pair, in file order. Value
// holds the output of the external scalar collaborator; the key text
// alone decides where it lands in the tree.
type RawPair struct {
	Key   string
	Value *ir.Node
}

// Result is a fully reconstructed document tree.
type Result struct {
	Root       *ir.Node
	Directives directive.Set
	Warnings   []Warning
}

// Pairs reconstructs one tree from the ordered pair list.
func Pairs(pairs []RawPair, opts ...ParseOption) (*Result, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}

	res := &Result{}

	// stage 1: directives gate everything after them
	var err error
	if pOpts.directives != nil {
		res.Directives = *pOpts.directives
	} else {
		res.Directives, err = extractDirectives(pairs, res)
		if err != nil {
			return nil, err
		}
	}

	// stage 2: whole-list key normalization
	normalized := normalize(pairs, res.Directives)
	if debug.Normalize() {
		for _, p := range normalized {
			debug.Logf("normalize: %q", p.Key)
		}
	}

	// stages 3+4: tokenize each key, build the shared tree
	b := newBuilder(res.Directives, pOpts.knownUnits)
	for _, pair := range normalized {
		path, err := keypath.Parse(pair.Key)
		if err != nil {
			return nil, err
		}
		if err := b.insert(path, pair.Value); err != nil {
			return nil, err
		}
	}
	res.Root = b.root
	res.Warnings = append(res.Warnings, b.warnings...)

	// stage 5: explicit sentinels for unfilled sequence slots
	fillMissing(res.Root, res.Directives.IndexBase)

	// stage 6: units annotations onto sibling leaves
	if err := resolveUnits(b, res); err != nil {
		return nil, err
	}

	if res.Directives.Strictness == directive.Quiet {
		res.Warnings = nil
	}
	return res, nil
}

// extractDirectives finds the preprocess key under =Header= and
// resolves it. The header value is an already-parsed sub-structure;
// the key grammar is never applied inside it.
func extractDirectives(pairs []RawPair, res *Result) (directive.Set, error) {
	var header *ir.Node
	for _, pair := range pairs {
		if pair.Key == "=Header=" {
			header = pair.Value
			break
		}
	}
	if header == nil || header.Type != ir.MappingType {
		return directive.Default(), nil
	}
	pre := ir.Get(header, "preprocess")
	if pre == nil {
		return directive.Default(), nil
	}
	var tokens []string
	switch pre.Type {
	case ir.NullType:
	case ir.StringType:
		tokens = directive.SplitTokens(pre.String)
	case ir.SequenceType:
		for _, elt := range pre.Values {
			if elt.Type != ir.StringType {
				res.Warnings = append(res.Warnings, warningf(WarnBadPreprocess,
					"preprocess list element is %s, not a string; ignored", elt.Type))
				continue
			}
			tokens = append(tokens, elt.String)
		}
	default:
		res.Warnings = append(res.Warnings, warningf(WarnBadPreprocess,
			"preprocess value is %s, not a string or list; ignored", pre.Type))
		return directive.Default(), nil
	}
	ds, err := directive.Parse(tokens)
	if err != nil {
		return directive.Set{}, fmt.Errorf("preprocess: %w", err)
	}
	return ds, nil
}
