package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/obf-format/go-obf/ir"
)

func encodeString(t *testing.T, node *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.String()
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"int", ir.FromInt(42), "42"},
		{"float", ir.FromFloat(2.5), "2.5"},
		{"bool", ir.FromBool(true), "true"},
		{"null", ir.Null(), "null"},
		{"missing", ir.Missing(), "null # ~missing~"},
		{"plain string", ir.FromString("left"), "left"},
		{"quoted empty", ir.FromString(""), `""`},
		{"quoted numeric string", ir.FromString("12"), `"12"`},
		{"quoted yes", ir.FromString("yes"), `"yes"`},
		{"quoted colon", ir.FromString("a: b"), `"a: b"`},
		{"empty mapping", ir.NewMapping(), "{}"},
		{"empty sequence", ir.NewSequence(), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeString(t, tt.node); got != tt.want+"\n" {
				t.Errorf("Encode = %q, want %q", got, tt.want+"\n")
			}
		})
	}
}

func TestEncodeMapping(t *testing.T) {
	m := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("x")},
		{Key: "trial", Val: ir.FromSlice([]*ir.Node{
			ir.FromString("left"),
			ir.FromString("right"),
		})},
	})
	want := `name: x
trial:
    - left
    - right
`
	if got := encodeString(t, m); got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeIndent(t *testing.T) {
	m := ir.FromKeyVals([]ir.KeyVal{
		{Key: "s", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1)})},
	})
	want := "s:\n  - 1\n"
	if got := encodeString(t, m, Indent(2)); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeUnits(t *testing.T) {
	rt := ir.FromInt(765)
	rt.Unit = "ms"
	m := ir.FromKeyVals([]ir.KeyVal{{Key: "rt", Val: rt}})

	got := encodeString(t, m)
	want := "rt: 765\nrt.units: ms\n"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}

	// suppressed on request
	got = encodeString(t, m, EncodeUnits(false))
	if strings.Contains(got, "units") {
		t.Errorf("EncodeUnits(false) still emitted units: %q", got)
	}
}

func TestEncodeNestedMapping(t *testing.T) {
	m := ir.FromKeyVals([]ir.KeyVal{
		{Key: "text", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "red", Val: ir.FromInt(1)},
			{Key: "green", Val: ir.FromInt(0)},
		})},
	})
	want := `text:
    red: 1
    green: 0
`
	if got := encodeString(t, m); got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeColorized(t *testing.T) {
	m := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	marks := 0
	opt := func(es *EncState) {
		es.Color = func(t ir.Type, attr ColorAttr, s string) string {
			marks++
			return s
		}
	}
	got := encodeString(t, m, opt)
	if got != "a: 1\n" {
		t.Errorf("colorized text changed content: %q", got)
	}
	if marks == 0 {
		t.Error("color function never invoked")
	}
}

func TestMustString(t *testing.T) {
	if got := MustString(ir.FromInt(7)); got != "7" {
		t.Errorf("MustString = %q", got)
	}
}
