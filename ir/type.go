package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	MappingType
	SequenceType
	// MissingType marks a sequence slot inside the observed index range
	// that was never explicitly assigned. It is distinct from NullType so
	// consumers can tell "absent" apart from "recorded as empty".
	MissingType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		MappingType:  "Mapping",
		SequenceType: "Sequence",
		StringType:   "String",
		NumberType:   "Number",
		BoolType:     "Bool",
		NullType:     "Null",
		MissingType:  "Missing",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Bool":     BoolType,
		"Number":   NumberType,
		"String":   StringType,
		"Mapping":  MappingType,
		"Sequence": SequenceType,
		"Missing":  MissingType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		MappingType,
		SequenceType,
		MissingType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case MappingType, SequenceType:
		return false
	default:
		return true
	}
}
