package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the symbol categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	for _, c := range symgen.Categories() {
		fmt.Printf("%-20s %-3s %s\n", c.Name, c.Reference, c.Description)
		if !verbose {
			continue
		}
		if extra := categoryExtras(c.Required); len(extra) > 0 {
			fmt.Printf("    required: %s\n", strings.Join(extra, ", "))
		}
		if len(c.Optional) > 0 {
			fmt.Printf("    optional: %s\n", strings.Join(c.Optional, ", "))
		}
	}
	return nil
}

// categoryExtras drops the attributes every category requires
func categoryExtras(required []string) []string {
	var out []string
	for _, name := range required {
		if name == component.FieldSymbolName || name == component.FieldReference || name == component.FieldValue {
			continue
		}
		out = append(out, name)
	}
	return out
}
