package symgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateSymbol marks a record whose Symbol Name was already used
// earlier in the same batch
var ErrDuplicateSymbol = errors.New("symgen: duplicate symbol name")

// UnsupportedCategoryError is returned for a category with no template
type UnsupportedCategoryError struct {
	Category string
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("symgen: unsupported category %q", e.Category)
}

// InvalidAttributeError is returned when an attribute is present but cannot
// drive the template (non-numeric pin count, unknown transistor type, ...)
type InvalidAttributeError struct {
	Symbol    string
	Attribute string
	Value     string
	Reason    string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("symgen: %s: invalid %s %q: %s", e.Symbol, e.Attribute, e.Value, e.Reason)
}

// RecordError ties a render failure to its input row
type RecordError struct {
	Index      int // zero-based position in the input
	SymbolName string
	Err        error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index+1, e.SymbolName, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// BatchError collects every failed record of a Generate call
type BatchError struct {
	Failures []*RecordError
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		return "symgen: 1 record failed: " + e.Failures[0].Error()
	}
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("symgen: %d records failed:\n  %s", len(e.Failures), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
