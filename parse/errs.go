package parse

import (
	"errors"

	"github.com/obf-format/go-obf/directive"
	"github.com/obf-format/go-obf/ir/keypath"
)

var (
	// ErrConfigConflict: two preprocess directives from the same
	// exclusive group. Raised before any key is interpreted.
	ErrConfigConflict = directive.ErrConflict
	// ErrUnknownDirective: unrecognized preprocess token.
	ErrUnknownDirective = directive.ErrUnknown
	// ErrInvalidKey: a key segment fails the identifier or modifier
	// grammar.
	ErrInvalidKey = keypath.ErrInvalidKey
	// ErrAmbiguousStructure: a path is addressed as both mapping and
	// sequence. Fatal in every strictness mode; there is no safe way
	// to guess which structure was intended.
	ErrAmbiguousStructure = errors.New("ambiguous structure")
	// ErrDuplicateKey: the same resolved path assigned twice. Fatal
	// only under strict; otherwise the later value overwrites with a
	// warning.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnresolvedUnits: a .units annotation with no matching sibling
	// leaf. Fatal under strict, a warning under warn, silent under
	// quiet.
	ErrUnresolvedUnits = errors.New("unresolved units target")
)
