package parse

import (
	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
)

// fillMissing completes every sequence node with explicit Missing
// sentinels for unfilled slots, making the index range contiguous from
// the configured base (or the lowest observed index, if lower) to the
// highest observed index. No index above the maximum is synthesized.
func fillMissing(root *ir.Node, base directive.IndexBase) {
	root.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || y.Type != ir.SequenceType {
			return true, nil
		}
		maxIdx, ok := y.MaxIndex()
		if !ok {
			return true, nil
		}
		lo := base.Int()
		if minIdx, _ := y.MinIndex(); minIdx < lo {
			lo = minIdx
		}
		for i := lo; i < maxIdx; i++ {
			if y.At(i) == nil {
				y.Put(i, ir.Missing())
			}
		}
		return true, nil
	})
}
