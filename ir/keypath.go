package ir

import (
	"github.com/obf-format/go-obf/ir/keypath"
)

// KeyPath returns the OBF key text addressing this node's position in
// the tree, e.g. "loop.1+trial.2". The root returns "". Group
// structure alternates label and modifier levels, so a node's depth
// decides whether its field starts a new group or modifies the
// previous label.
func (y *Node) KeyPath() string {
	if y.Parent == nil {
		return ""
	}
	prefix := y.Parent.KeyPath()
	switch y.Parent.Type {
	case MappingType:
		if prefix == "" {
			return y.ParentField
		}
		if y.depth()%2 == 1 {
			// label position: new group
			return prefix + "+" + y.ParentField
		}
		return prefix + "." + y.ParentField
	case SequenceType:
		return prefix + "." + y.ParentField
	default:
		return prefix
	}
}

// depth is the number of edges between y and the tree root.
func (y *Node) depth() int {
	n := 0
	for x := y; x.Parent != nil; x = x.Parent {
		n++
	}
	return n
}

// GetPath resolves an OBF key path against the tree rooted at y and
// returns the addressed node, or nil if any step is absent or of the
// wrong kind.
func (y *Node) GetPath(path *keypath.KeyPath) *Node {
	cur := y
	for seg := path; seg != nil; seg = seg.Next {
		if cur == nil {
			return nil
		}
		if seg.Special {
			if cur.Type != MappingType {
				return nil
			}
			cur = Get(cur, seg.Label)
			continue
		}
		if cur.Type != MappingType {
			return nil
		}
		cur = Get(cur, seg.Label)
		if cur == nil {
			return nil
		}
		switch seg.Mod {
		case keypath.ModIndex:
			if cur.Type != SequenceType {
				return nil
			}
			cur = cur.At(seg.Index)
		case keypath.ModName:
			if cur.Type != MappingType {
				return nil
			}
			cur = Get(cur, seg.Name)
		}
	}
	return cur
}

// GetPathString parses path as OBF key text and resolves it with
// GetPath.
func (y *Node) GetPathString(path string) (*Node, error) {
	p, err := keypath.Parse(path)
	if err != nil {
		return nil, err
	}
	return y.GetPath(p), nil
}
