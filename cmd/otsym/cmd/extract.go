package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/table"
)

var (
	extractOutput      string
	extractStripPrefix bool
	extractKeepGoing   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <library.kicad_sym|schematic.kicad_sch>",
	Short: "Extract component records from a symbol library",
	Long: `Read every symbol of a KiCad symbol library and write its properties as
one table row. The Symbol Name column comes first, followed by the KiCad
fields and then any other property in the order it first appears.

A schematic may be given instead of a library; the symbols embedded in it
are extracted, named "Library:Symbol" unless --strip-prefix is set.

Symbols that cannot be read are listed on stderr and left out; the rest are
still written. The command then fails unless --keep-going is set.

Examples:
  otsym extract Resistors.kicad_sym                  # CSV to stdout
  otsym extract Resistors.kicad_sym -o parts.xlsx
  otsym extract board.kicad_sch --strip-prefix`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "",
		"output table, .csv or .xlsx (default: CSV on stdout)")
	extractCmd.Flags().BoolVar(&extractStripPrefix, "strip-prefix", false,
		"drop the \"Library:\" part of schematic symbol names")
	extractCmd.Flags().BoolVar(&extractKeepGoing, "keep-going", false,
		"exit successfully when some symbols cannot be read")
}

func runExtract(cmd *cobra.Command, args []string) error {
	lib, decodeErr, err := openLibrary(args[0], extractStripPrefix)
	if err != nil {
		return err
	}
	records := component.FromLibrary(lib)
	logf("extracted %d records from %s", len(records), args[0])

	if extractOutput == "" {
		if err := table.WriteCSV(os.Stdout, records); err != nil {
			return err
		}
	} else {
		if err := table.WriteFile(extractOutput, records); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
		fmt.Printf("Wrote %d records to %s\n", len(records), extractOutput)
	}

	if decodeErr != nil && !extractKeepGoing {
		failed := len(decodeErr.Failures)
		return fmt.Errorf("%d of %d symbols could not be read", failed, failed+len(records))
	}
	return nil
}
