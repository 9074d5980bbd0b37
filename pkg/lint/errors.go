package lint

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule is returned when a selection names a rule the catalog does not know.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInternal marks violated engine invariants, such as a span outside the text.
	ErrInternal = errors.New("internal error")
)

// UnknownRuleError reports the unrecognized code from a selection.
type UnknownRuleError struct {
	// Code is the unrecognized identifier as given.
	Code string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownRule, e.Code)
}

// Unwrap allows errors.Is(err, ErrUnknownRule).
func (e *UnknownRuleError) Unwrap() error {
	return ErrUnknownRule
}
