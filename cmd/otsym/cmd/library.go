package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/schematic"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// openLibrary reads a symbol library, or the symbols embedded in a
// schematic when the file is a .kicad_sch. Symbols that fail to decode are
// reported on stderr and returned as a *symlib.DecodeError next to the
// library of the ones that did.
func openLibrary(path string, stripPrefix bool) (*symlib.Library, *symlib.DecodeError, error) {
	var (
		lib       *symlib.Library
		decodeErr *symlib.DecodeError
	)

	if strings.EqualFold(filepath.Ext(path), ".kicad_sch") {
		sch, err := schematic.ParseFile(path)
		if err != nil && !errors.As(err, &decodeErr) {
			return nil, nil, fmt.Errorf("failed to parse schematic: %w", err)
		}
		logf("%s: %d embedded symbols, %d placed", path, len(sch.LibSymbols), len(sch.Instances))
		lib = sch.Library(stripPrefix)
	} else {
		var err error
		lib, err = symlib.ParseFile(path)
		if err != nil && !errors.As(err, &decodeErr) {
			return nil, nil, fmt.Errorf("failed to parse library: %w", err)
		}
	}

	if decodeErr != nil {
		for _, f := range decodeErr.Failures {
			fmt.Fprintf(os.Stderr, "%s: skipped %v\n", path, f)
		}
	}
	return lib, decodeErr, nil
}
