package symlib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

var (
	// ErrNotSymbolLibrary is returned when the root node is not kicad_symbol_lib
	ErrNotSymbolLibrary = errors.New("symlib: not a KiCad symbol library")

	// ErrUnsupportedVersion is returned for files older than KiCad 6
	ErrUnsupportedVersion = errors.New("symlib: unsupported file version")
)

// SchemaError reports a well-formed block that does not describe a usable
// symbol: a missing name, or a property without key or value.
type SchemaError struct {
	Symbol string // empty when the block has no name
	Pos    kicadsexp.Pos
	Msg    string
}

func (e *SchemaError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("symlib: %s at %s", e.Msg, e.Pos)
	}
	return fmt.Sprintf("symlib: symbol %q: %s at %s", e.Symbol, e.Msg, e.Pos)
}

// DecodeError lists every symbol block of a library that could not be
// decoded. It is returned together with the symbols that did decode.
type DecodeError struct {
	Failures []*SchemaError
}

func (e *DecodeError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("symlib: %d symbols could not be decoded:\n  %s", len(e.Failures), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *DecodeError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
