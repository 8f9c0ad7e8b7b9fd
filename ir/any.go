package ir

// ToAny converts a node to plain Go values: mappings to
// map[string]any, sequences to []any in index order with nil for
// Missing slots, numbers to int64 or float64.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType, MissingType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return int64(0)
	case SequenceType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case MappingType:
		res := make(map[string]any, len(y.Values))
		for i := range y.Fields {
			res[y.Fields[i].String] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}
