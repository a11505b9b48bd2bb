package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
)

var (
	// Global flags
	verbose  bool
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "otsym",
	Short: "KiCad symbol library generator and extractor",
	Long: `otsym turns component tables into KiCad symbol libraries (.kicad_sym)
and reads existing libraries back into tables.

Examples:
  otsym generate -c resistor -i resistors.csv -o Resistors.kicad_sym
  otsym extract Resistors.kicad_sym -o resistors.xlsx
  otsym check lib/*.kicad_sym
  otsym preview Resistors.kicad_sym R_10K_0402 -o r.png
  otsym batch symbols.yaml`,
	Version:       "0.9.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil,
		".env files with OTSYM_* settings (process environment wins)")
}

// logf prints diagnostics to stderr in verbose mode
func logf(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}

// loadConfig reads the generator configuration from --env files and the
// environment
func loadConfig() (*symgen.Config, error) {
	cfg, err := symgen.LoadConfig(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logf("header: version %d, generator %s %s, %d workers",
		cfg.FormatVersion, cfg.Generator, cfg.GeneratorVersion, cfg.Workers)
	return cfg, nil
}
