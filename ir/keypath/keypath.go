package keypath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidKey reports a key segment that fails the identifier or
// modifier grammar.
var ErrInvalidKey = errors.New("invalid key")

// Modifier classifies the part of a key group after the first '.'.
type Modifier int

const (
	// ModNone is a bare group with no '.' part.
	ModNone Modifier = iota
	// ModIndex is an all-digit modifier addressing a sequence slot.
	ModIndex
	// ModName is an identifier modifier addressing a mapping field.
	ModName
)

func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "None"
	case ModIndex:
		return "Index"
	case ModName:
		return "Name"
	}
	return "<unknown modifier>"
}

// KeyPath is one parsed key: a non-empty chain of label/modifier
// segments, one per '+'/','-joined group of the key text.
//
//	"welcome"          → {Label: "welcome", Mod: ModNone}
//	"trial.2"          → {Label: "trial", Mod: ModIndex, Index: 2}
//	"text.red"         → {Label: "text", Mod: ModName, Name: "red"}
//	"loop.1 + trial.2" → {loop{1}} → {trial{2}}
//
// A special key ("=Header=", "=Subject.1=", ...) parses to a single
// opaque segment with Special set; its text is never decomposed and
// never case-folded.
type KeyPath struct {
	Label   string
	Mod     Modifier
	Index   int
	Name    string
	Special bool
	Next    *KeyPath
}

// IsSpecialKey reports whether the key text is a reserved section key,
// wrapped in leading and trailing '='.
func IsSpecialKey(key string) bool {
	return len(key) > 2 && key[0] == '=' && key[len(key)-1] == '='
}

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse parses one normalized key string into a KeyPath. Parsing is
// independent of every other key in the document.
func Parse(key string) (*KeyPath, error) {
	if IsSpecialKey(key) {
		return &KeyPath{Label: key, Special: true}, nil
	}
	groups := strings.Split(strings.ReplaceAll(key, ",", "+"), "+")
	var root, last *KeyPath
	for _, group := range groups {
		group = strings.TrimSpace(group)
		if group == "" {
			return nil, fmt.Errorf("%w: empty group in key %q", ErrInvalidKey, key)
		}
		seg, err := parseGroup(group, key)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = seg
		} else {
			last.Next = seg
		}
		last = seg
	}
	return root, nil
}

func parseGroup(group, key string) (*KeyPath, error) {
	if IsSpecialKey(group) {
		// section-qualified query paths, e.g. "=Session=+start"
		return &KeyPath{Label: group, Special: true}, nil
	}
	label, mod, hasMod := strings.Cut(group, ".")
	label = strings.TrimSpace(label)
	if !IsIdentifier(label) {
		return nil, fmt.Errorf("%w: bad label %q in key %q", ErrInvalidKey, label, key)
	}
	seg := &KeyPath{Label: label}
	if !hasMod {
		return seg, nil
	}
	mod = strings.TrimSpace(mod)
	switch {
	case isDigits(mod):
		idx, err := strconv.Atoi(mod)
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q in key %q", ErrInvalidKey, mod, key)
		}
		seg.Mod = ModIndex
		seg.Index = idx
	case IsIdentifier(mod):
		seg.Mod = ModName
		seg.Name = mod
	default:
		return nil, fmt.Errorf("%w: bad modifier %q in key %q", ErrInvalidKey, mod, key)
	}
	return seg, nil
}

// UnitsTarget reports whether the path's final segment carries the
// literal (case-insensitive) "units" name modifier. If so it returns
// the annotation target: the same path with that final modifier
// stripped.
func (p *KeyPath) UnitsTarget() (*KeyPath, bool) {
	if p == nil || p.Special {
		return nil, false
	}
	last := p
	for last.Next != nil {
		last = last.Next
	}
	if last.Mod != ModName || !strings.EqualFold(last.Name, "units") {
		return nil, false
	}
	target := p.clonePath()
	tLast := target
	for tLast.Next != nil {
		tLast = tLast.Next
	}
	tLast.Mod = ModNone
	tLast.Name = ""
	return target, true
}

func (p *KeyPath) clonePath() *KeyPath {
	if p == nil {
		return nil
	}
	res := *p
	res.Next = p.Next.clonePath()
	return &res
}

// DropModifier returns a copy of the path with the final segment's
// modifier cleared, leaving its label addressed directly.
func (p *KeyPath) DropModifier() *KeyPath {
	target := p.clonePath()
	last := target
	for last.Next != nil {
		last = last.Next
	}
	last.Mod = ModNone
	last.Index = 0
	last.Name = ""
	return target
}

// Last returns the final segment of the path.
func (p *KeyPath) Last() *KeyPath {
	last := p
	for last.Next != nil {
		last = last.Next
	}
	return last
}

// Len returns the number of segments.
func (p *KeyPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// String returns the canonical key text for the path: groups joined by
// "+", numeric indices without leading zeros. Special keys render as
// their verbatim text.
func (p *KeyPath) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for x := p; x != nil; x = x.Next {
		if x != p {
			b.WriteByte('+')
		}
		b.WriteString(x.Label)
		switch x.Mod {
		case ModIndex:
			b.WriteByte('.')
			b.WriteString(strconv.Itoa(x.Index))
		case ModName:
			b.WriteByte('.')
			b.WriteString(x.Name)
		}
	}
	return b.String()
}

func (p *KeyPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KeyPath) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = *pp
	return nil
}
