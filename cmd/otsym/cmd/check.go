package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

var checkCmd = &cobra.Command{
	Use:   "check <library.kicad_sym>...",
	Short: "Validate symbol libraries",
	Long: `Parse each library and report syntax errors, malformed symbols, unknown
pin types and repeated symbol names. Exits with an error if any library has problems.

Examples:
  otsym check Resistors.kicad_sym
  otsym check lib/*.kicad_sym`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	bad := 0
	for _, filename := range args {
		problems := checkLibrary(filename)
		if len(problems) == 0 {
			fmt.Printf("%s: OK\n", filename)
			continue
		}
		bad++
		fmt.Printf("%s: %d problem(s)\n", filename, len(problems))
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d libraries failed the check", bad, len(args))
	}
	return nil
}

func checkLibrary(filename string) []string {
	var problems []string

	lib, err := symlib.ParseFile(filename)
	var decodeErr *symlib.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		for _, f := range decodeErr.Failures {
			problems = append(problems, f.Error())
		}
	case err != nil:
		return []string{err.Error()}
	}
	logf("%s: version %d, %d symbols", filename, lib.Header.Version, len(lib.Symbols))

	for _, d := range symlib.FindDuplicates(lib.Names()) {
		lines := make([]string, len(d.Indices))
		for i, n := range d.Indices {
			lines[i] = fmt.Sprint(lib.Symbols[n].Pos.Line)
		}
		problems = append(problems, fmt.Sprintf("duplicate symbol %q (lines %s)", d.Name, strings.Join(lines, ", ")))
	}
	for _, s := range lib.Symbols {
		for _, key := range []string{component.FieldReference, component.FieldValue} {
			if _, ok := s.Property(key); !ok {
				problems = append(problems, fmt.Sprintf("symbol %q has no %s property", s.Name, key))
			}
		}
		for _, p := range s.Pins() {
			if !symlib.IsPinType(p.Type) {
				problems = append(problems, fmt.Sprintf("symbol %q pin %s has unknown type %q", s.Name, p.Number.Number, p.Type))
			}
		}
	}
	if v := lib.Header.GeneratorVersion; v != "" && !lib.Header.AtLeast("6.0") {
		fmt.Fprintf(os.Stderr, "%s: warning: generator version %s predates KiCad 6\n", filename, v)
	}
	return problems
}
