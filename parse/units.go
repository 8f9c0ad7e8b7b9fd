package parse

import (
	"fmt"
	"strings"

	"github.com/obf-format/go-obf/directive"
)

// resolveUnits attaches each pending units annotation to its sibling
// leaf. Units are case-insensitive and canonicalized to lower case.
// An unresolvable target is fatal under strict, a warning under warn,
// and silently discarded under quiet. No unit is ever synthesized when
// absent.
func resolveUnits(b *builder, res *Result) error {
	for _, ann := range b.units {
		target := b.root.GetPath(ann.target)
		if target != nil && target.Type.IsLeaf() {
			target.Unit = strings.ToLower(ann.unit)
			continue
		}
		switch b.dirs.Strictness {
		case directive.Strict:
			return fmt.Errorf("%w: %q has units %q but no scalar leaf",
				ErrUnresolvedUnits, ann.target.String(), ann.unit)
		case directive.Warn:
			res.Warnings = append(res.Warnings, warningf(WarnUnresolvedUnits,
				"%q has units %q but no scalar leaf; annotation discarded",
				ann.target.String(), ann.unit))
		case directive.Quiet:
		}
	}
	return nil
}
