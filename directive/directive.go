// Package directive resolves OBF preprocess directives into a Set of
// parsing flags threaded through every pipeline stage.
package directive

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknown reports a preprocess token outside the directive
	// vocabulary.
	ErrUnknown = errors.New("unknown directive")
	// ErrConflict reports two directives from the same exclusive group.
	ErrConflict = errors.New("conflicting directives")
)

// Strictness governs whether non-ambiguity violations abort or warn.
type Strictness int

const (
	Strict Strictness = iota
	Warn
	Quiet
)

func (s Strictness) String() string {
	switch s {
	case Strict:
		return "strict"
	case Warn:
		return "warn"
	case Quiet:
		return "quiet"
	}
	return "<unknown strictness>"
}

func (s Strictness) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strictness) UnmarshalText(d []byte) error {
	v, ok := map[string]Strictness{
		"strict": Strict,
		"warn":   Warn,
		"quiet":  Quiet,
	}[string(d)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, d)
	}
	*s = v
	return nil
}

// IndexBase is the first index of reconstructed sequences.
type IndexBase int

const (
	One IndexBase = iota
	Zero
)

func (b IndexBase) Int() int {
	if b == Zero {
		return 0
	}
	return 1
}

func (b IndexBase) String() string {
	if b == Zero {
		return "zero_indexed"
	}
	return "one_indexed"
}

// CaseFold selects key case normalization.
type CaseFold int

const (
	FoldNone CaseFold = iota
	FoldLower
	FoldUpper
)

func (c CaseFold) String() string {
	switch c {
	case FoldLower:
		return "keys_lower"
	case FoldUpper:
		return "keys_upper"
	}
	return "none"
}

// Set is a fully-resolved directive configuration. The zero value is
// the default configuration: strict, one-indexed, no auto-index, no
// case folding.
type Set struct {
	Strictness Strictness
	IndexBase  IndexBase
	AutoIndex  bool
	CaseFold   CaseFold
}

// Default returns the directive set used when no preprocess key is
// present.
func Default() Set {
	return Set{}
}

// exclusive groups of the directive vocabulary
const (
	groupStrictness = iota
	groupIndexBase
	groupAutoIndex
	groupCaseFold
)

type directive struct {
	group int
	apply func(*Set)
}

var vocabulary = map[string]directive{
	"strict": {groupStrictness, func(s *Set) { s.Strictness = Strict }},
	"warn":   {groupStrictness, func(s *Set) { s.Strictness = Warn }},
	"quiet":  {groupStrictness, func(s *Set) { s.Strictness = Quiet }},
	// legacy spelling of quiet
	"not_strict":   {groupStrictness, func(s *Set) { s.Strictness = Quiet }},
	"one_indexed":  {groupIndexBase, func(s *Set) { s.IndexBase = One }},
	"zero_indexed": {groupIndexBase, func(s *Set) { s.IndexBase = Zero }},
	"auto_index":   {groupAutoIndex, func(s *Set) { s.AutoIndex = true }},
	"keys_lower":   {groupCaseFold, func(s *Set) { s.CaseFold = FoldLower }},
	"keys_upper":   {groupCaseFold, func(s *Set) { s.CaseFold = FoldUpper }},
}

// Parse resolves preprocess tokens into a Set, filling defaults for
// unspecified groups. Tokens are matched case-insensitively. An
// unknown token fails with ErrUnknown; two tokens from the same
// exclusive group fail with ErrConflict.
func Parse(tokens []string) (Set, error) {
	res := Default()
	seen := map[int]string{}
	for _, tok := range tokens {
		norm := strings.ToLower(strings.TrimSpace(tok))
		if norm == "" {
			continue
		}
		d, ok := vocabulary[norm]
		if !ok {
			return Set{}, fmt.Errorf("%w: %q", ErrUnknown, tok)
		}
		if prev, dup := seen[d.group]; dup && prev != norm {
			return Set{}, fmt.Errorf("%w: %q and %q", ErrConflict, prev, norm)
		}
		seen[d.group] = norm
		d.apply(&res)
	}
	return res, nil
}

// SplitTokens splits a comma- or semicolon-separated preprocess string
// into tokens.
func SplitTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			res = append(res, f)
		}
	}
	return res
}
