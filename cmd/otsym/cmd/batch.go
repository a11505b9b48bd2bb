package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/manifest"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/table"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Generate every library listed in a manifest",
	Long: `Generate several libraries in one run. The manifest lists, for each
library, its name, input table, category and output file, and may override
the header settings:

  generator:
    version: "8.0"
  libraries:
    - name: Resistors
      input: parts/resistors.csv
      category: resistor
      output: lib/Resistors.kicad_sym

Paths are relative to the manifest. A failing library does not stop the
others; rows that fail are left out of their library.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	base, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err := m.Apply(base)
	if err != nil {
		return err
	}

	failed := 0
	for _, lib := range m.Libraries {
		if err := buildLibrary(cmd, cfg, lib); err != nil {
			fmt.Printf("%-20s FAILED: %v\n", lib.Name, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d libraries failed", failed, len(m.Libraries))
	}
	return nil
}

func buildLibrary(cmd *cobra.Command, cfg *symgen.Config, lib manifest.Library) error {
	records, err := table.ReadFile(lib.Input)
	if err != nil {
		return err
	}
	logf("%s: %d records from %s", lib.Name, len(records), lib.Input)

	res, genErr := symgen.Generate(cmdContext(cmd), cfg, lib.Category, records)
	var batchErr *symgen.BatchError
	if genErr != nil && !errors.As(genErr, &batchErr) {
		return genErr
	}

	if err := os.MkdirAll(filepath.Dir(lib.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeOutput(lib.Output, res.Library); err != nil {
		return err
	}

	fmt.Printf("%-20s %d symbols -> %s\n", lib.Name, res.Rendered, lib.Output)
	if batchErr != nil {
		for _, f := range batchErr.Failures {
			fmt.Printf("  skipped %v\n", f)
		}
	}
	return nil
}
