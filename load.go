package obf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/obf-format/go-obf/debug"
	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
	"github.com/obf-format/go-obf/parse"
)

type loadOpts struct {
	source      string
	units       []string
	conventions []Convention
	noDefaults  bool
	parseOpts   []parse.ParseOption
}

type LoadOption func(*loadOpts)

// WithSource names the data source in the Document (and in error
// text); LoadFile sets it to the file path.
func WithSource(name string) LoadOption {
	return func(o *loadOpts) { o.source = name }
}

// WithUnits replaces the known-unit vocabulary used for the
// "label.unit" key shorthand.
func WithUnits(units []string) LoadOption {
	return func(o *loadOpts) { o.units = units }
}

// WithConvention appends a custom value convention, tried before the
// defaults.
func WithConvention(c Convention) LoadOption {
	return func(o *loadOpts) { o.conventions = append(o.conventions, c) }
}

// WithoutDefaultConventions disables the default value conventions
// (units shorthand inside values, _123_ digit keys, random_seed and
// mouse screens).
func WithoutDefaultConventions() LoadOption {
	return func(o *loadOpts) { o.noDefaults = true }
}

// WithParseOptions forwards options to the reconstruction pipeline.
func WithParseOptions(opts ...parse.ParseOption) LoadOption {
	return func(o *loadOpts) { o.parseOpts = append(o.parseOpts, opts...) }
}

// Load reads OBF text from r and reconstructs one Document.
func Load(r io.Reader, opts ...LoadOption) (*Document, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadBytes(d, opts...)
}

// LoadFile reads OBF text from the named file.
func LoadFile(path string, opts ...LoadOption) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(d, append([]LoadOption{WithSource(path)}, opts...)...)
}

// LoadBytes scans d with the YAML collaborator, validates the reserved
// sections, runs the reconstruction pipeline, and applies value
// conventions.
func LoadBytes(d []byte, opts ...LoadOption) (*Document, error) {
	lOpts := &loadOpts{source: "<bytes>", units: KnownUnits()}
	for _, f := range opts {
		f(lOpts)
	}

	// duplicate keys must reach the pipeline, which adjudicates them by
	// strictness; the scanner is not allowed to reject or merge them
	var ms yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(d, &ms, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%s: %w", lOpts.source, err)
	}
	if debug.Load() {
		debug.Logf("load %s: %d top-level pairs", lOpts.source, len(ms))
	}

	pairs := make([]parse.RawPair, 0, len(ms))
	for _, item := range ms {
		pairs = append(pairs, parse.RawPair{
			Key:   fmt.Sprint(item.Key),
			Value: fromYAML(item.Value),
		})
	}

	var preWarnings []parse.Warning
	pairs, preWarnings = screenSpecial(pairs)
	if err := validateSections(pairs, lOpts.source); err != nil {
		return nil, err
	}

	pOpts := append([]parse.ParseOption{parse.WithKnownUnits(lOpts.units)}, lOpts.parseOpts...)
	res, err := parse.Pairs(pairs, pOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lOpts.source, err)
	}

	doc := &Document{
		Root:       res.Root,
		Directives: res.Directives,
		Warnings:   append(preWarnings, res.Warnings...),
		Source:     lOpts.source,
	}

	conventions := lOpts.conventions
	if !lOpts.noDefaults {
		conventions = append(conventions, DefaultConventions(lOpts.units)...)
	}
	applyConventions(doc, conventions)

	if doc.Footer() == nil {
		doc.warnf(parse.WarnMissingFooter, "no %s section", FooterKey)
	}
	if doc.Directives.Strictness == directive.Quiet {
		doc.Warnings = nil
	}
	return doc, nil
}

// warnf appends a warning unless the document parses in quiet mode.
func (d *Document) warnf(code parse.WarnCode, format string, args ...any) {
	if d.Directives.Strictness == directive.Quiet {
		return
	}
	d.Warnings = append(d.Warnings, parse.Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// screenSpecial drops keys that look like section keys but name no
// known section, so a stray "=Whatever=" reads as an ignorable note
// rather than data.
func screenSpecial(pairs []parse.RawPair) ([]parse.RawPair, []parse.Warning) {
	var warnings []parse.Warning
	res := pairs[:0]
	for _, p := range pairs {
		if isSpecialText(p.Key) && !isKnownSpecial(p.Key) {
			warnings = append(warnings, parse.Warning{
				Code:    parse.WarnIgnoredKey,
				Message: fmt.Sprintf("ignoring key %q", p.Key),
			})
			continue
		}
		res = append(res, p)
	}
	return res, warnings
}

// validateSections enforces the reserved-section structure: exactly
// one =Header=, exactly one =Session=, and exactly one group of
// =Subject=/=Participant= sections.
func validateSections(pairs []parse.RawPair, source string) error {
	headers, sessions, subjects := 0, 0, 0
	for _, p := range pairs {
		switch {
		case p.Key == HeaderKey:
			headers++
		case p.Key == SessionKey:
			sessions++
		case isSubjectKey(p.Key):
			subjects++
		}
	}
	if headers != 1 {
		return fmt.Errorf("%w: %s: must be one %s section, have %d",
			ErrBadDocument, source, HeaderKey, headers)
	}
	if sessions != 1 {
		return fmt.Errorf("%w: %s: must be one %s section, have %d",
			ErrBadDocument, source, SessionKey, sessions)
	}
	if subjects == 0 {
		return fmt.Errorf("%w: %s: must be at least one %s or %s section",
			ErrBadDocument, source, SubjectKey, ParticipantKey)
	}
	return nil
}

// fromYAML converts a goccy/go-yaml value into an ir node. The scalar
// typing is the collaborator's: this function only maps Go types onto
// node tags. Plain yes/no strings coerce to booleans per the OBF input
// contract.
func fromYAML(v any) *ir.Node {
	switch x := v.(type) {
	case nil:
		return ir.Null()
	case bool:
		return ir.FromBool(x)
	case int:
		return ir.FromInt(int64(x))
	case int64:
		return ir.FromInt(x)
	case uint64:
		return ir.FromInt(int64(x))
	case float64:
		return ir.FromFloat(x)
	case string:
		switch {
		case strings.EqualFold(x, "yes") || strings.EqualFold(x, "true"):
			return ir.FromBool(true)
		case strings.EqualFold(x, "no") || strings.EqualFold(x, "false"):
			return ir.FromBool(false)
		}
		return ir.FromString(x)
	case []any:
		elems := make([]*ir.Node, len(x))
		for i, e := range x {
			elems[i] = fromYAML(e)
		}
		return ir.FromSlice(elems)
	case yaml.MapSlice:
		res := ir.NewMapping()
		for _, item := range x {
			res.Set(fmt.Sprint(item.Key), fromYAML(item.Value))
		}
		return res
	case map[string]any:
		res := ir.NewMapping()
		for k, val := range x {
			res.Set(k, fromYAML(val))
		}
		return res
	default:
		return ir.FromString(fmt.Sprint(x))
	}
}
