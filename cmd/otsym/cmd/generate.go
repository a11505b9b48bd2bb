package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/table"
)

var (
	genCategory  string
	genInput     string
	genOutput    string
	genKeepGoing bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a symbol library from a component table",
	Long: `Read a .csv or .xlsx table (one component per row, "Symbol Name" column
required) and write one symbol per row into a KiCad symbol library.

Every row is drawn with the template of the given category. Rows that fail
(missing attributes, repeated Symbol Name) are reported and left out; the
command exits with an error unless --keep-going is set.

Examples:
  otsym generate -c resistor -i resistors.csv -o Resistors.kicad_sym
  otsym generate -c ic -i flash.xlsx > Flash.kicad_sym
  otsym generate -c led -i leds.csv -o LEDs.kicad_sym --keep-going`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genCategory, "category", "c", "",
		"symbol category (see 'otsym categories')")
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "",
		"component table (.csv or .xlsx)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "",
		"output library (default: stdout)")
	generateCmd.Flags().BoolVar(&genKeepGoing, "keep-going", false,
		"exit successfully when some rows fail")
	generateCmd.MarkFlagRequired("category")
	generateCmd.MarkFlagRequired("input")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := table.ReadFile(genInput)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}
	logf("read %d records from %s", len(records), genInput)

	res, genErr := symgen.Generate(cmdContext(cmd), cfg, genCategory, records)
	var batchErr *symgen.BatchError
	if genErr != nil && !errors.As(genErr, &batchErr) {
		return genErr
	}

	if err := writeOutput(genOutput, res.Library); err != nil {
		return err
	}
	if genOutput != "" {
		fmt.Printf("Wrote %d symbols to %s\n", res.Rendered, genOutput)
	}

	if batchErr != nil {
		for _, f := range batchErr.Failures {
			fmt.Fprintf(os.Stderr, "skipped %v\n", f)
		}
		if !genKeepGoing {
			return fmt.Errorf("%d of %d records failed", res.Failed, len(records))
		}
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logf("wrote %d bytes to %s", len(data), path)
	return nil
}
