package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
)

func pair(key string, v *ir.Node) RawPair {
	return RawPair{Key: key, Value: v}
}

func header(preprocess string) RawPair {
	return pair("=Header=", ir.FromKeyVals([]ir.KeyVal{
		{Key: "preprocess", Val: ir.FromString(preprocess)},
	}))
}

// seqAt builds a sequence with explicit indices.
func seqAt(base int, vals ...*ir.Node) *ir.Node {
	s := ir.NewSequence()
	for i, v := range vals {
		s.Put(base+i, v)
	}
	return s
}

func mustParse(t *testing.T, pairs []RawPair, opts ...ParseOption) *Result {
	t.Helper()
	res, err := Pairs(pairs, opts...)
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	return res
}

func checkTree(t *testing.T, got, want *ir.Node) {
	t.Helper()
	if !ir.Equal(got, want) {
		t.Errorf("tree mismatch (-want +got):\n%s", cmp.Diff(ir.ToAny(want), ir.ToAny(got)))
	}
}

func hasWarning(res *Result, code WarnCode) bool {
	for _, w := range res.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestSequenceReconstruction(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("trial.1", ir.FromString("a")),
		pair("trial.2", ir.FromString("b")),
		pair("trial.3", ir.FromString("c")),
	})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "trial", Val: seqAt(1, ir.FromString("a"), ir.FromString("b"), ir.FromString("c"))},
	})
	checkTree(t, res.Root, want)
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestOrderIndependence(t *testing.T) {
	forward := mustParse(t, []RawPair{
		pair("trial.1", ir.FromInt(1)),
		pair("trial.2", ir.FromInt(2)),
		pair("other", ir.FromBool(true)),
	})
	backward := mustParse(t, []RawPair{
		pair("other", ir.FromBool(true)),
		pair("trial.2", ir.FromInt(2)),
		pair("trial.1", ir.FromInt(1)),
	})
	checkTree(t, forward.Root, backward.Root)
}

func TestGapFilling(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("trial.1", ir.FromString("a")),
		pair("trial.3", ir.FromString("c")),
	})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "trial", Val: seqAt(1, ir.FromString("a"), ir.Missing(), ir.FromString("c"))},
	})
	checkTree(t, res.Root, want)

	trial := ir.Get(res.Root, "trial")
	if got := trial.At(2); got == nil || got.Type != ir.MissingType {
		t.Errorf("At(2) = %+v, want a Missing sentinel", got)
	}
	// nothing above the maximum is synthesized
	if got := trial.At(4); got != nil {
		t.Errorf("At(4) = %+v, want nil", got)
	}
}

func TestNestedGroups(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("loop.1+trial.1", ir.FromInt(11)),
		pair("loop.1+trial.2", ir.FromInt(12)),
		pair("loop.2+trial.1", ir.FromInt(21)),
	})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "loop", Val: seqAt(1,
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "trial", Val: seqAt(1, ir.FromInt(11), ir.FromInt(12))},
			}),
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "trial", Val: seqAt(1, ir.FromInt(21))},
			}),
		)},
	})
	checkTree(t, res.Root, want)
}

func TestNameModifiers(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("text.red", ir.FromInt(1)),
		pair("text.green", ir.FromInt(0)),
		pair("trial.1+stim.color", ir.FromString("red")),
	})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "text", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "red", Val: ir.FromInt(1)},
			{Key: "green", Val: ir.FromInt(0)},
		})},
		{Key: "trial", Val: seqAt(1, ir.FromKeyVals([]ir.KeyVal{
			{Key: "stim", Val: ir.FromKeyVals([]ir.KeyVal{
				{Key: "color", Val: ir.FromString("red")},
			})},
		}))},
	})
	checkTree(t, res.Root, want)
}

func TestAmbiguousStructure(t *testing.T) {
	tests := []struct {
		name  string
		pairs []RawPair
	}{
		{
			name: "scalar then sequence",
			pairs: []RawPair{
				pair("trial", ir.FromInt(5)),
				pair("trial.1", ir.FromInt(6)),
			},
		},
		{
			name: "sequence then scalar",
			pairs: []RawPair{
				pair("trial.1", ir.FromInt(6)),
				pair("trial", ir.FromInt(5)),
			},
		},
		{
			name: "sequence then mapping",
			pairs: []RawPair{
				pair("trial.1", ir.FromInt(1)),
				pair("trial.red", ir.FromInt(2)),
			},
		},
		{
			name: "mapping then sequence",
			pairs: []RawPair{
				pair("trial.red", ir.FromInt(2)),
				pair("trial.1", ir.FromInt(1)),
			},
		},
		{
			name: "element assigned then descended",
			pairs: []RawPair{
				pair("loop.1", ir.FromInt(5)),
				pair("loop.1+trial.1", ir.FromInt(6)),
			},
		},
		{
			name: "element descended then assigned",
			pairs: []RawPair{
				pair("loop.1+trial.1", ir.FromInt(6)),
				pair("loop.1", ir.FromInt(5)),
			},
		},
		{
			name: "field descended then assigned",
			pairs: []RawPair{
				pair("text.red", ir.FromInt(1)),
				pair("text", ir.FromInt(2)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pairs(tt.pairs)
			if !errors.Is(err, ErrAmbiguousStructure) {
				t.Errorf("Pairs error = %v, want ErrAmbiguousStructure", err)
			}
			// ambiguity is fatal regardless of strictness
			_, err = Pairs(tt.pairs, WithDirectives(directive.Set{Strictness: directive.Quiet}))
			if !errors.Is(err, ErrAmbiguousStructure) {
				t.Errorf("quiet Pairs error = %v, want ErrAmbiguousStructure", err)
			}
		})
	}
}

func TestDuplicateKey(t *testing.T) {
	dup := []RawPair{
		pair("x", ir.FromInt(1)),
		pair("x", ir.FromInt(2)),
	}
	if _, err := Pairs(dup); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("strict Pairs error = %v, want ErrDuplicateKey", err)
	}

	res := mustParse(t, dup, WithDirectives(directive.Set{Strictness: directive.Warn}))
	if got := ir.Get(res.Root, "x"); *got.Int64 != 2 {
		t.Errorf("warn mode kept %d, want the later value 2", *got.Int64)
	}
	if !hasWarning(res, WarnDuplicateOverwrite) {
		t.Errorf("warn mode produced no duplicate warning: %v", res.Warnings)
	}

	// same policy on sequence slots
	dupElem := []RawPair{
		pair("trial.1", ir.FromInt(1)),
		pair("trial.1", ir.FromInt(2)),
	}
	if _, err := Pairs(dupElem); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("strict Pairs error = %v, want ErrDuplicateKey", err)
	}
}

func TestQuietSuppressesWarnings(t *testing.T) {
	res := mustParse(t, []RawPair{
		header("quiet"),
		pair("x", ir.FromInt(1)),
		pair("x", ir.FromInt(2)),
	})
	if len(res.Warnings) != 0 {
		t.Errorf("quiet result has warnings: %v", res.Warnings)
	}
	if got := ir.Get(res.Root, "x"); *got.Int64 != 2 {
		t.Errorf("quiet mode kept %d, want 2", *got.Int64)
	}
}

func TestAutoIndex(t *testing.T) {
	auto := mustParse(t, []RawPair{
		header("auto_index"),
		pair("trial", ir.FromString("a")),
		pair("trial", ir.FromString("b")),
		pair("trial", ir.FromString("c")),
		pair("welcome", ir.FromString("hi")),
	})
	explicit := mustParse(t, []RawPair{
		pair("trial.1", ir.FromString("a")),
		pair("trial.2", ir.FromString("b")),
		pair("trial.3", ir.FromString("c")),
		pair("welcome", ir.FromString("hi")),
	})
	// directives differ; the data must not
	checkTree(t, ir.Get(auto.Root, "trial"), ir.Get(explicit.Root, "trial"))

	// a key occurring once is not indexed
	if got := ir.Get(auto.Root, "welcome"); got == nil || got.Type != ir.StringType {
		t.Errorf("welcome = %+v, want a bare string", got)
	}
}

func TestAutoIndexZeroBase(t *testing.T) {
	res := mustParse(t, []RawPair{
		header("auto_index, zero_indexed"),
		pair("trial", ir.FromInt(10)),
		pair("trial", ir.FromInt(20)),
	})
	want := seqAt(0, ir.FromInt(10), ir.FromInt(20))
	checkTree(t, ir.Get(res.Root, "trial"), want)
}

func TestZeroIndexed(t *testing.T) {
	res := mustParse(t, []RawPair{
		header("zero_indexed"),
		pair("trial.0", ir.FromString("a")),
		pair("trial.2", ir.FromString("c")),
	})
	want := seqAt(0, ir.FromString("a"), ir.Missing(), ir.FromString("c"))
	checkTree(t, ir.Get(res.Root, "trial"), want)
}

func TestBelowBaseIndex(t *testing.T) {
	res := mustParse(t, []RawPair{
		header("warn"),
		pair("trial.0", ir.FromString("a")),
		pair("trial.2", ir.FromString("c")),
	})
	if !hasWarning(res, WarnBelowBaseIndex) {
		t.Errorf("no below-base warning: %v", res.Warnings)
	}
	// filling starts at the observed minimum when below the base
	want := seqAt(0, ir.FromString("a"), ir.Missing(), ir.FromString("c"))
	checkTree(t, ir.Get(res.Root, "trial"), want)
}

func TestCaseFolding(t *testing.T) {
	res := mustParse(t, []RawPair{
		header("keys_lower"),
		pair("Trial.1", ir.FromInt(1)),
		pair("TRIAL.2", ir.FromInt(2)),
	})
	want := seqAt(1, ir.FromInt(1), ir.FromInt(2))
	checkTree(t, ir.Get(res.Root, "trial"), want)
	// the header key itself is exempt
	if ir.Get(res.Root, "=Header=") == nil {
		t.Error("=Header= was folded away")
	}
}

func TestFoldKeyIdempotent(t *testing.T) {
	for _, key := range []string{"Trial.1", "LOOP.1+Text.Red", "=Header=", "a_b.2"} {
		for _, fold := range []directive.CaseFold{directive.FoldLower, directive.FoldUpper} {
			once := foldKey(key, fold)
			if twice := foldKey(once, fold); twice != once {
				t.Errorf("foldKey(%q, %v) not idempotent: %q then %q", key, fold, once, twice)
			}
		}
	}
}

func TestLiteralUnitsAnnotation(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("rt", ir.FromInt(765)),
		pair("rt.units", ir.FromString("MS")),
	})
	rt := ir.Get(res.Root, "rt")
	if rt == nil || *rt.Int64 != 765 {
		t.Fatalf("rt = %+v", rt)
	}
	if rt.Unit != "ms" {
		t.Errorf("rt.Unit = %q, want %q", rt.Unit, "ms")
	}
	// the annotation key itself inserts nothing
	if len(res.Root.Fields) != 1 {
		t.Errorf("root has %d fields, want 1", len(res.Root.Fields))
	}
}

func TestNestedUnitsAnnotation(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("loop.1+rt", ir.FromFloat(0.5)),
		pair("loop.1+rt.units", ir.FromString("sec")),
	})
	rt := ir.Get(ir.Get(res.Root, "loop").At(1), "rt")
	if rt.Unit != "sec" {
		t.Errorf("rt.Unit = %q, want %q", rt.Unit, "sec")
	}
}

func TestKnownUnitShorthand(t *testing.T) {
	res := mustParse(t, []RawPair{
		pair("rt.ms", ir.FromInt(765)),
	}, WithKnownUnits([]string{"ms", "sec"}))
	rt := ir.Get(res.Root, "rt")
	if rt == nil || rt.Type != ir.NumberType || *rt.Int64 != 765 {
		t.Fatalf("rt = %+v", rt)
	}
	if rt.Unit != "ms" {
		t.Errorf("rt.Unit = %q, want %q", rt.Unit, "ms")
	}

	// without the vocabulary the same key is a plain name modifier
	plain := mustParse(t, []RawPair{
		pair("rt.ms", ir.FromInt(765)),
	})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "rt", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "ms", Val: ir.FromInt(765)}})},
	})
	checkTree(t, plain.Root, want)
}

func TestUnresolvedUnits(t *testing.T) {
	// no sibling leaf at all
	orphan := []RawPair{pair("rt.units", ir.FromString("ms"))}
	if _, err := Pairs(orphan); !errors.Is(err, ErrUnresolvedUnits) {
		t.Errorf("strict Pairs error = %v, want ErrUnresolvedUnits", err)
	}
	res := mustParse(t, orphan, WithDirectives(directive.Set{Strictness: directive.Warn}))
	if !hasWarning(res, WarnUnresolvedUnits) {
		t.Errorf("warn mode produced no unresolved-units warning: %v", res.Warnings)
	}

	// target exists but is not a scalar leaf
	container := []RawPair{
		pair("rt.1", ir.FromInt(1)),
		pair("rt.units", ir.FromString("ms")),
	}
	if _, err := Pairs(container); !errors.Is(err, ErrUnresolvedUnits) {
		t.Errorf("strict Pairs error = %v, want ErrUnresolvedUnits", err)
	}
}

func TestComplexKeyNeedsModifiers(t *testing.T) {
	_, err := Pairs([]RawPair{pair("loop+trial.1", ir.FromInt(1))})
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Pairs error = %v, want ErrInvalidKey", err)
	}
}

func TestDirectiveExtraction(t *testing.T) {
	t.Run("string preprocess", func(t *testing.T) {
		res := mustParse(t, []RawPair{header("warn, zero_indexed")})
		want := directive.Set{Strictness: directive.Warn, IndexBase: directive.Zero}
		if res.Directives != want {
			t.Errorf("Directives = %+v, want %+v", res.Directives, want)
		}
	})
	t.Run("list preprocess", func(t *testing.T) {
		res := mustParse(t, []RawPair{
			pair("=Header=", ir.FromKeyVals([]ir.KeyVal{
				{Key: "preprocess", Val: ir.FromSlice([]*ir.Node{
					ir.FromString("warn"),
					ir.FromString("auto_index"),
				})},
			})),
		})
		want := directive.Set{Strictness: directive.Warn, AutoIndex: true}
		if res.Directives != want {
			t.Errorf("Directives = %+v, want %+v", res.Directives, want)
		}
	})
	t.Run("no header means defaults", func(t *testing.T) {
		res := mustParse(t, []RawPair{pair("x", ir.FromInt(1))})
		if res.Directives != directive.Default() {
			t.Errorf("Directives = %+v, want defaults", res.Directives)
		}
	})
	t.Run("bad preprocess type warns and defaults", func(t *testing.T) {
		res := mustParse(t, []RawPair{
			pair("=Header=", ir.FromKeyVals([]ir.KeyVal{
				{Key: "preprocess", Val: ir.FromInt(42)},
			})),
		})
		if res.Directives != directive.Default() {
			t.Errorf("Directives = %+v, want defaults", res.Directives)
		}
		if !hasWarning(res, WarnBadPreprocess) {
			t.Errorf("no bad-preprocess warning: %v", res.Warnings)
		}
	})
	t.Run("unknown directive", func(t *testing.T) {
		_, err := Pairs([]RawPair{header("turbo")})
		if !errors.Is(err, ErrUnknownDirective) {
			t.Errorf("Pairs error = %v, want ErrUnknownDirective", err)
		}
	})
	t.Run("conflicting directives", func(t *testing.T) {
		_, err := Pairs([]RawPair{header("strict, warn")})
		if !errors.Is(err, ErrConfigConflict) {
			t.Errorf("Pairs error = %v, want ErrConfigConflict", err)
		}
	})
}

func TestSpecialKeysOpaque(t *testing.T) {
	session := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Elapsed.Time", Val: ir.FromFloat(12.5)},
	})
	res := mustParse(t, []RawPair{
		header("keys_lower"),
		pair("=Session=", session),
	})
	// the section key is not folded and its value is not decomposed
	got := ir.Get(res.Root, "=Session=")
	if got == nil {
		t.Fatal("=Session= missing")
	}
	if ir.Get(got, "Elapsed.Time") == nil {
		t.Error("section value was rewritten by the key grammar")
	}
}
