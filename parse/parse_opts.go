package parse

import (
	"strings"

	"github.com/obf-format/go-obf/directive"
)

type parseOpts struct {
	directives *directive.Set
	knownUnits map[string]bool
}

type ParseOption func(*parseOpts)

// WithDirectives bypasses directive extraction from the =Header=
// section and uses ds for every stage instead.
func WithDirectives(ds directive.Set) ParseOption {
	return func(o *parseOpts) { o.directives = &ds }
}

// WithKnownUnits enables the known-unit key shorthand: a final name
// modifier found (case-insensitively) in units is recorded as a units
// annotation on the group's label, and the pair's value is assigned to
// that label. "rt.ms: 765" then yields leaf rt = 765 with unit "ms".
func WithKnownUnits(units []string) ParseOption {
	return func(o *parseOpts) {
		o.knownUnits = make(map[string]bool, len(units))
		for _, u := range units {
			o.knownUnits[strings.ToLower(u)] = true
		}
	}
}
