// Package obf loads Open Behavioral Format session files into
// reconstructed document trees.
//
// OBF text is YAML-shaped: every line of interest is a "key: value"
// pair, where the key text encodes the position of the already-typed
// value in a nested structure of loops (sequences) and conditions
// (mappings). The scalar typing of values is delegated to the YAML
// collaborator (goccy/go-yaml); this package and the parse pipeline
// decide placement from key text only.
//
//	doc, err := obf.LoadFile("session.obf")
//	if err != nil {
//	    return err
//	}
//	rt, _ := doc.Get("trial.2+response")
package obf

import (
	"errors"
	"strings"

	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir"
	"github.com/obf-format/go-obf/parse"
)

// Reserved section keys, case-sensitive and exempt from case folding.
const (
	HeaderKey      = "=Header="
	SessionKey     = "=Session="
	SubjectKey     = "=Subject="
	ParticipantKey = "=Participant="
	CommentKey     = "=Comment="
	NotesKey       = "=Notes="
	FooterKey      = "=Footer="
)

// ErrBadDocument reports a document whose reserved sections violate
// the OBF structure (e.g. no =Header=, or two =Session= sections).
var ErrBadDocument = errors.New("bad obf document")

// Document is one fully parsed OBF record. It is built once per input
// and is a read-only artifact afterwards.
type Document struct {
	Root       *ir.Node
	Directives directive.Set
	Warnings   []parse.Warning
	Source     string
}

func (d *Document) Header() *ir.Node {
	return ir.Get(d.Root, HeaderKey)
}

func (d *Document) Session() *ir.Node {
	return ir.Get(d.Root, SessionKey)
}

func (d *Document) Comment() *ir.Node {
	return ir.Get(d.Root, CommentKey)
}

func (d *Document) Notes() *ir.Node {
	return ir.Get(d.Root, NotesKey)
}

func (d *Document) Footer() *ir.Node {
	return ir.Get(d.Root, FooterKey)
}

// Subjects returns the =Subject=/=Participant= sections in file order,
// including multi-participant records written as =Subject.1=,
// =Subject.2=, ...
func (d *Document) Subjects() []*ir.Node {
	var res []*ir.Node
	for i, f := range d.Root.Fields {
		if isSubjectKey(f.String) {
			res = append(res, d.Root.Values[i])
		}
	}
	return res
}

// Data returns the non-reserved portion of the document as a mapping.
func (d *Document) Data() *ir.Node {
	res := ir.NewMapping()
	for i, f := range d.Root.Fields {
		if isSpecialText(f.String) {
			continue
		}
		res.Set(f.String, d.Root.Values[i])
	}
	return res
}

// Get resolves an OBF key path (e.g. "loop.1+trial.2" or "=Session=")
// against the document root.
func (d *Document) Get(path string) (*ir.Node, error) {
	return d.Root.GetPathString(path)
}

func isSubjectKey(key string) bool {
	for _, base := range []string{SubjectKey, ParticipantKey} {
		if key == base {
			return true
		}
		// =Subject.N=
		prefix := base[:len(base)-1] + "."
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, "=") {
			rest := key[len(prefix) : len(key)-1]
			if rest != "" && isDigits(rest) {
				return true
			}
		}
	}
	return false
}

func isSpecialText(key string) bool {
	return len(key) > 2 && key[0] == '=' && key[len(key)-1] == '='
}

func isKnownSpecial(key string) bool {
	switch key {
	case HeaderKey, SessionKey, CommentKey, NotesKey, FooterKey:
		return true
	}
	return isSubjectKey(key)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
