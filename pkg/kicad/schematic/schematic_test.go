package schematic

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

func TestParseMinimalSchematic(t *testing.T) {
	input := `(kicad_sch
		(version 20250114)
		(generator "eeschema")
		(generator_version "9.0")
		(uuid 862335ee-c981-4fe1-9eb9-84db19301dd4)
		(paper "A4")
		(lib_symbols)
		(sheet_instances
			(path "/"
				(page "1")
			)
		)
	)`

	sch, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	if sch.Header.Version != 20250114 {
		t.Errorf("Expected version 20250114, got %d", sch.Header.Version)
	}
	if sch.Header.Generator != "eeschema" {
		t.Errorf("Expected generator 'eeschema', got '%s'", sch.Header.Generator)
	}
	if sch.Header.GeneratorVersion != "9.0" {
		t.Errorf("Expected generator version '9.0', got '%s'", sch.Header.GeneratorVersion)
	}
	if sch.Paper != "A4" {
		t.Errorf("Expected paper 'A4', got '%s'", sch.Paper)
	}
	if len(sch.LibSymbols) != 0 || len(sch.Instances) != 0 {
		t.Errorf("Expected no symbols, got %d/%d", len(sch.LibSymbols), len(sch.Instances))
	}
}

const schematicWithResistor = `(kicad_sch
	(version 20231120)
	(generator "eeschema")
	(generator_version "8.0")
	(uuid test-uuid)
	(paper "A4")
	(lib_symbols
		(symbol "Device:R"
			(pin_numbers (hide yes))
			(pin_names (offset 0))
			(exclude_from_sim no)
			(in_bom yes)
			(on_board yes)
			(property "Reference" "R" (at 2.032 0 90))
			(property "Value" "R" (at 0 0 90))
			(property "Tolerance" "1%" (at 0 0 0) (effects (font (size 1.27 1.27)) (hide yes)))
			(symbol "R_0_1"
				(rectangle (start -1.016 -2.54) (end 1.016 2.54)
					(stroke (width 0.254) (type default))
					(fill (type none))
				)
			)
			(symbol "R_1_1"
				(pin passive line (at 0 3.81 270) (length 1.27)
					(name "~" (effects (font (size 1.27 1.27))))
					(number "1" (effects (font (size 1.27 1.27))))
				)
				(pin passive line (at 0 -3.81 90) (length 1.27)
					(name "~" (effects (font (size 1.27 1.27))))
					(number "2" (effects (font (size 1.27 1.27))))
				)
			)
		)
	)
	(symbol (lib_id "Device:R")
		(at 100 50 0)
		(unit 1)
		(uuid sym-uuid-1)
		(property "Reference" "R1" (at 100 45 0))
		(property "Value" "10k" (at 100 55 0))
	)
	(symbol (lib_id "Device:R")
		(at 120 50 0)
		(unit 1)
		(uuid sym-uuid-2)
		(property "Reference" "R2" (at 120 45 0))
		(property "Value" "4k7" (at 120 55 0))
	)
	(wire (pts (xy 100 50) (xy 150 50))
		(stroke (width 0) (type default))
		(uuid wire-1)
	)
)`

func TestParseSchematicWithSymbol(t *testing.T) {
	sch, err := Parse(strings.NewReader(schematicWithResistor))
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	if len(sch.LibSymbols) != 1 {
		t.Fatalf("Expected 1 lib symbol, got %d", len(sch.LibSymbols))
	}
	r := sch.LibSymbols[0]
	if r.Name != "Device:R" {
		t.Errorf("Expected 'Device:R', got '%s'", r.Name)
	}
	if len(r.Pins()) != 2 {
		t.Errorf("Expected 2 pins, got %d", len(r.Pins()))
	}
	if p, ok := r.Property("Tolerance"); !ok || p.Value != "1%" || !p.Effects.Hide {
		t.Errorf("Expected hidden Tolerance 1%%, got %+v", p)
	}

	if len(sch.Instances) != 2 {
		t.Fatalf("Expected 2 instances, got %d", len(sch.Instances))
	}
	r2, ok := sch.GetInstance("R2")
	if !ok {
		t.Fatal("GetInstance('R2') not found")
	}
	if r2.LibID != "Device:R" || r2.Value != "4k7" || r2.Unit != 1 {
		t.Errorf("Unexpected instance: %+v", r2)
	}
	if n := sch.Uses()["Device:R"]; n != 2 {
		t.Errorf("Expected Device:R used twice, got %d", n)
	}
}

func TestLibrary(t *testing.T) {
	sch, err := Parse(strings.NewReader(schematicWithResistor))
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	lib := sch.Library(true)
	if got := lib.Names(); len(got) != 1 || got[0] != "R" {
		t.Errorf("Expected names [R], got %v", got)
	}
	if sch.LibSymbols[0].Name != "Device:R" {
		t.Error("Stripping the prefix modified the schematic")
	}

	if got := sch.Library(false).Names(); got[0] != "Device:R" {
		t.Errorf("Expected full lib_id, got %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a schematic", `(kicad_symbol_lib (version 20231120))`},
		{"missing version", `(kicad_sch (generator "eeschema"))`},
		{"empty", ``},
		{"unterminated", `(kicad_sch (version 20231120)`},
		{"unnamed lib symbol", `(kicad_sch (version 20231120) (lib_symbols (symbol)))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error")
			}
		})
	}

	sch, err := Parse(strings.NewReader(`(kicad_sch (version 20231120)
		(lib_symbols
			(symbol "Device:R" (property "Reference" "R"))
			(symbol "Device:C" (property "Value"))
		))`))
	var decodeErr *symlib.DecodeError
	if !errors.As(err, &decodeErr) || len(decodeErr.Failures) != 1 {
		t.Fatalf("Expected one decode failure, got %v", err)
	}
	if sch == nil || len(sch.LibSymbols) != 1 || sch.LibSymbols[0].Name != "Device:R" {
		t.Errorf("Expected the good symbol to be kept, got %+v", sch)
	}

	_, err = Parse(strings.NewReader(`(kicad_sch (version 20200101))`))
	if !errors.Is(err, symlib.ErrUnsupportedVersion) {
		t.Errorf("Expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestStripPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"Device:R":       "R",
		"R":              "R",
		"Lib:Sub:Symbol": "Sub:Symbol",
	} {
		if got := StripPrefix(in); got != want {
			t.Errorf("StripPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
