package ir

import (
	"sort"
	"strconv"
)

// Node is the tagged-union representation of a reconstructed OBF value.
// The Type field decides which of the remaining fields are meaningful:
//
//   - MappingType: Fields (StringType name nodes) parallel to Values
//   - SequenceType: Index (ascending, possibly sparse) parallel to Values
//   - StringType: String
//   - NumberType: exactly one of Int64, Float64
//   - BoolType: Bool
//   - NullType, MissingType: no payload
//
// Leaves may carry a Unit annotation, attached by the units extractor.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Fields []*Node
	Values []*Node
	Index  []int

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64

	Unit string
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func Missing() *Node {
	return &Node{Type: MissingType}
}

func NewMapping() *Node {
	return &Node{Type: MappingType}
}

func NewSequence() *Node {
	return &Node{Type: SequenceType}
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Unit = y.Unit
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Index != nil {
		dst.Index = make([]int, len(y.Index))
		copy(dst.Index, y.Index)
	}
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	return dst
}

// Get returns the value at field in a Mapping node, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set assigns v at field in a Mapping node, replacing any existing value
// and preserving the field's original position.
func (y *Node) Set(field string, v *Node) {
	for i := range y.Fields {
		if y.Fields[i].String != field {
			continue
		}
		v.Parent = y
		v.ParentIndex = i
		v.ParentField = field
		y.Values[i] = v
		return
	}
	yField := &Node{
		Parent:      y,
		ParentIndex: len(y.Fields),
		ParentField: field,
		Type:        StringType,
		String:      field,
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = field
	y.Fields = append(y.Fields, yField)
	y.Values = append(y.Values, v)
}

// Delete removes field from a Mapping node, preserving the order of the
// remaining fields. It reports whether the field was present.
func (y *Node) Delete(field string) bool {
	for i := range y.Fields {
		if y.Fields[i].String != field {
			continue
		}
		y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
		y.Values = append(y.Values[:i], y.Values[i+1:]...)
		for j := i; j < len(y.Values); j++ {
			y.Fields[j].ParentIndex = j
			y.Values[j].ParentIndex = j
		}
		return true
	}
	return false
}

// At returns the element at sequence index i, or nil if unpopulated.
func (y *Node) At(i int) *Node {
	k := sort.SearchInts(y.Index, i)
	if k < len(y.Index) && y.Index[k] == i {
		return y.Values[k]
	}
	return nil
}

// Put assigns v at sequence index i, keeping Index ascending.
func (y *Node) Put(i int, v *Node) {
	v.Parent = y
	v.ParentField = strconv.Itoa(i)
	k := sort.SearchInts(y.Index, i)
	if k < len(y.Index) && y.Index[k] == i {
		v.ParentIndex = k
		y.Values[k] = v
		return
	}
	y.Index = append(y.Index, 0)
	y.Values = append(y.Values, nil)
	copy(y.Index[k+1:], y.Index[k:])
	copy(y.Values[k+1:], y.Values[k:])
	y.Index[k] = i
	y.Values[k] = v
	for j := k; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
}

// MaxIndex returns the highest populated sequence index, or ok=false for
// an empty sequence.
func (y *Node) MaxIndex() (int, bool) {
	if len(y.Index) == 0 {
		return 0, false
	}
	return y.Index[len(y.Index)-1], true
}

// MinIndex returns the lowest populated sequence index, or ok=false for
// an empty sequence.
func (y *Node) MinIndex() (int, bool) {
	if len(y.Index) == 0 {
		return 0, false
	}
	return y.Index[0], true
}

func FromSlice(ys []*Node) *Node {
	res := NewSequence()
	res.Index = make([]int, len(ys))
	res.Values = make([]*Node, len(ys))
	for i, y := range ys {
		res.Index[i] = i
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = strconv.Itoa(i)
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewMapping()
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != MappingType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

// Visit walks the tree pre- and post-order. Returning dive=false from the
// pre-order call skips the node's children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
