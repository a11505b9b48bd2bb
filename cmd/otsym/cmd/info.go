package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

var infoCmd = &cobra.Command{
	Use:   "info <library.kicad_sym|schematic.kicad_sch> [symbol]",
	Short: "Show symbol library information",
	Long: `Display information about a KiCad symbol library.

Without symbol argument: shows the library summary
With symbol argument: shows the properties and pins of that symbol`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	lib, _, err := openLibrary(filename, false)
	if err != nil {
		return err
	}

	if len(args) >= 2 {
		sym, ok := lib.Lookup(args[1])
		if !ok {
			return fmt.Errorf("symbol %q not found in %s", args[1], filename)
		}
		showSymbolDetails(sym)
		return nil
	}

	showLibrarySummary(lib, filename)
	return nil
}

func showLibrarySummary(lib *symlib.Library, filename string) {
	fmt.Printf("Library: %s\n", filename)
	fmt.Printf("Version: %d\n", lib.Header.Version)
	fmt.Printf("Generator: %s", lib.Header.Generator)
	if lib.Header.GeneratorVersion != "" {
		fmt.Printf(" v%s", lib.Header.GeneratorVersion)
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("Symbols: %d\n", len(lib.Symbols))
	for _, s := range lib.Symbols {
		value := ""
		if p, ok := s.Property("Value"); ok {
			value = p.Value
		}
		fmt.Printf("  %-30s %-20s %3d pins\n", s.Name, value, len(s.Pins()))
	}
}

func showSymbolDetails(sym *symlib.Symbol) {
	fmt.Printf("Symbol: %s\n", sym.Name)
	if sym.Extends != "" {
		fmt.Printf("Extends: %s\n", sym.Extends)
	}
	fmt.Printf("In BOM: %v, On board: %v\n", sym.InBOM, sym.OnBoard)
	fmt.Println()

	fmt.Println("Properties:")
	for _, p := range sym.Properties {
		hidden := ""
		if p.Effects.Hide {
			hidden = " (hidden)"
		}
		fmt.Printf("  %-16s %s%s\n", p.Key+":", p.Value, hidden)
	}
	fmt.Println()

	pins := sym.Pins()
	fmt.Printf("Pins: %d\n", len(pins))
	for _, p := range pins {
		line := fmt.Sprintf("  %-4s %-16s %-14s (%.2f, %.2f) %d°",
			p.Number.Number, p.Name.Name, p.Type, p.Position.X, p.Position.Y, int(p.Angle))
		if len(p.Alternate) > 0 {
			alts := make([]string, len(p.Alternate))
			for i, a := range p.Alternate {
				alts[i] = a.Name
			}
			line += " alt: " + strings.Join(alts, ", ")
		}
		fmt.Println(line)
	}

	bb := sym.Bounds()
	if !bb.IsEmpty() {
		fmt.Println()
		fmt.Printf("Bounds: %.2f x %.2f mm\n", bb.Width(), bb.Height())
	}
}
