// Package ir provides the intermediate representation for reconstructed
// OBF (Open Behavioral Format) documents.
//
// An OBF document is a tree of nodes. A Node is a recursive tagged union:
// the Type field selects between the atomic types (null, bool, number,
// string), the composite types (mapping, sequence), and the Missing
// sentinel used for unfilled sequence slots.
//
// Sequences are sparse while a document is being reconstructed: the Index
// slice holds the populated indices in ascending order, parallel to
// Values. After the missing-value fill pass the range is contiguous and
// gaps hold MissingType nodes.
//
// Leaves may carry a Unit annotation (e.g. "ms", "utime"), attached by
// the units extraction pass. Units are stored lower-cased and are not
// interpreted further; no unit conversion is ever performed.
//
// # Creating Nodes
//
//	node := ir.FromString("press 2")
//	num := ir.FromFloat(0.654)
//	m := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "response", Val: ir.FromString("blue")},
//	})
//	seq := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
package ir
