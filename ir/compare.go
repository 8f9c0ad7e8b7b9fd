package ir

import (
	"cmp"
	"sort"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Units participate in the comparison after the value itself.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	var c int
	switch a.Type {
	case NumberType:
		c = compareNumbers(a, b)
	case StringType:
		c = strings.Compare(a.String, b.String)
	case BoolType:
		switch {
		case a.Bool == b.Bool:
		case !a.Bool:
			c = -1
		default:
			c = 1
		}
	case SequenceType:
		c = compareSequences(a, b)
	case MappingType:
		c = compareMappings(a, b)
	case NullType, MissingType:
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.Unit, b.Unit)
}

func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Missing < Null < Bool < Number < String < Sequence < Mapping
func rank(t Type) int {
	switch t {
	case MissingType:
		return 0
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case SequenceType:
		return 5
	case MappingType:
		return 6
	}
	return 7
}

func compareNumbers(a, b *Node) int {
	af, bf := numFloat(a), numFloat(b)
	return cmp.Compare(af, bf)
}

func numFloat(y *Node) float64 {
	if y.Int64 != nil {
		return float64(*y.Int64)
	}
	if y.Float64 != nil {
		return *y.Float64
	}
	return 0
}

func compareSequences(a, b *Node) int {
	n := min(len(a.Values), len(b.Values))
	for i := range n {
		if c := cmp.Compare(a.Index[i], b.Index[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Values), len(b.Values))
}

// compareMappings compares by sorted field name; mapping insertion order
// is not significant.
func compareMappings(a, b *Node) int {
	aKeys := sortedFields(a)
	bKeys := sortedFields(b)
	n := min(len(aKeys), len(bKeys))
	for i := range n {
		if c := strings.Compare(aKeys[i], bKeys[i]); c != 0 {
			return c
		}
		if c := Compare(Get(a, aKeys[i]), Get(b, bKeys[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(aKeys), len(bKeys))
}

func sortedFields(y *Node) []string {
	res := make([]string, len(y.Fields))
	for i := range y.Fields {
		res[i] = y.Fields[i].String
	}
	sort.Strings(res)
	return res
}
