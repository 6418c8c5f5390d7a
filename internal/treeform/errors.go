package treeform

import (
	"sort"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

// Validation failure kinds.
const (
	KindMissingLocation     Kind = "missing_location"
	KindOutOfServiceArea    Kind = "out_of_service_area"
	KindImplausibleHeight   Kind = "implausible_height"
	KindCanopyExceedsHeight Kind = "canopy_exceeds_height"
	KindImpreciseLocation   Kind = "imprecise_location"
)

// ValidationError is a single user-facing rejection of a submission.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind, so the sentinel values below
// can be used with errors.Is regardless of the message.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrMissingLocation     = &ValidationError{Kind: KindMissingLocation}
	ErrOutOfServiceArea    = &ValidationError{Kind: KindOutOfServiceArea}
	ErrImplausibleHeight   = &ValidationError{Kind: KindImplausibleHeight}
	ErrCanopyExceedsHeight = &ValidationError{Kind: KindCanopyExceedsHeight}
	ErrImpreciseLocation   = &ValidationError{Kind: KindImpreciseLocation}
)

// FieldErrors maps a submitted field name to the reason its value was rejected.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("invalid form fields: ")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f + ": " + fe[f])
	}

	return sb.String()
}
