package parse

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir/keypath"
)

// normalize applies case folding and auto-indexing across the full
// ordered pair list. Key grammar is not interpreted here; only key
// text is rewritten.
func normalize(pairs []RawPair, ds directive.Set) []RawPair {
	res := make([]RawPair, len(pairs))
	copy(res, pairs)

	if ds.CaseFold != directive.FoldNone {
		for i := range res {
			res[i].Key = foldKey(res[i].Key, ds.CaseFold)
		}
	}

	if ds.AutoIndex {
		autoIndex(res, ds.IndexBase)
	}
	return res
}

// foldKey rewrites the label characters of a non-special key to the
// requested case. Digits and the '.', '+', ',' separators are left
// alone, as are special keys in their entirety. Folding is idempotent.
func foldKey(key string, fold directive.CaseFold) string {
	if keypath.IsSpecialKey(key) {
		return key
	}
	conv := unicode.ToLower
	if fold == directive.FoldUpper {
		conv = unicode.ToUpper
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return conv(r)
		}
		return r
	}, key)
}

// autoIndex rewrites repeated bare keys by occurrence count: for any
// post-fold key string occurring more than once, the i-th occurrence
// (counted in file order from the index base) becomes "key.i". This is
// purely occurrence counting; repeated bare keys are trusted to be the
// fastest-varying loop in producer-writing order.
func autoIndex(pairs []RawPair, base directive.IndexBase) {
	counts := map[string]int{}
	for _, p := range pairs {
		counts[p.Key]++
	}
	next := map[string]int{}
	for i := range pairs {
		key := pairs[i].Key
		if keypath.IsSpecialKey(key) || counts[key] < 2 {
			continue
		}
		n, seen := next[key]
		if !seen {
			n = base.Int()
		}
		next[key] = n + 1
		pairs[i].Key = key + "." + strconv.Itoa(n)
	}
}
