package parse

import "fmt"

// WarnCode identifies a class of non-fatal condition.
type WarnCode string

const (
	WarnDuplicateOverwrite WarnCode = "duplicate-overwrite"
	WarnUnresolvedUnits    WarnCode = "unresolved-units"
	WarnMissingFooter      WarnCode = "missing-footer"
	WarnBelowBaseIndex     WarnCode = "below-base-index"
	WarnBadPreprocess      WarnCode = "bad-preprocess"
	WarnIgnoredKey         WarnCode = "ignored-key"
	WarnUnitsConflict      WarnCode = "units-conflict"
	WarnAmbiguousValue     WarnCode = "ambiguous-value"
)

// Warning is a non-fatal condition collected, in file order, on the
// successful result.
type Warning struct {
	Code    WarnCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

func warningf(code WarnCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
