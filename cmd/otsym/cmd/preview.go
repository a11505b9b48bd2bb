package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib/preview"
)

var (
	previewOutput string
	previewTheme  string
	previewScale  float64
	previewUnit   int
)

var previewCmd = &cobra.Command{
	Use:   "preview <library.kicad_sym> <symbol>",
	Short: "Render a symbol to PNG",
	Long: `Draw the body and pins of one symbol into a PNG image. Text is not drawn.

Examples:
  otsym preview Resistors.kicad_sym R_10K_0402 -o r.png
  otsym preview ICs.kicad_sym W25Q128JVP -o flash.png --theme dark --scale 40
  otsym preview Transistors.kicad_sym Q_DUAL -o q2.png --unit 2`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "",
		"output PNG file")
	previewCmd.Flags().StringVar(&previewTheme, "theme", "light",
		"color theme (light, dark)")
	previewCmd.Flags().Float64Var(&previewScale, "scale", 20,
		"pixels per millimetre")
	previewCmd.Flags().IntVar(&previewUnit, "unit", 1,
		"unit of a multi-unit symbol to draw")
	previewCmd.MarkFlagRequired("output")
}

func runPreview(cmd *cobra.Command, args []string) error {
	theme, ok := preview.ParseTheme(previewTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q", previewTheme)
	}
	if previewScale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", previewScale)
	}
	if previewUnit < 1 {
		return fmt.Errorf("unit must be at least 1, got %d", previewUnit)
	}

	lib, _, err := openLibrary(args[0], false)
	if err != nil {
		return err
	}
	sym, ok := lib.Lookup(args[1])
	if !ok {
		return fmt.Errorf("symbol %q not found in %s", args[1], args[0])
	}

	opts := preview.DefaultOptions()
	opts.Theme = theme
	opts.Scale = previewScale
	opts.Unit = previewUnit

	f, err := os.Create(previewOutput)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := preview.Encode(f, sym, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", previewOutput)
	return nil
}
