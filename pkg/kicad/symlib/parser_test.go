package symlib

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

func TestParseFixture(t *testing.T) {
	lib, err := ParseFile("testdata/passives.kicad_sym")
	if err != nil {
		t.Fatalf("Failed to parse library: %v", err)
	}

	if lib.Header.Version != 20231120 {
		t.Errorf("Expected version 20231120, got %d", lib.Header.Version)
	}
	if lib.Header.Generator != "kicad_symbol_editor" {
		t.Errorf("Expected generator 'kicad_symbol_editor', got '%s'", lib.Header.Generator)
	}
	if lib.Header.GeneratorVersion != "8.0" {
		t.Errorf("Expected generator version '8.0', got '%s'", lib.Header.GeneratorVersion)
	}

	// Sub-unit symbols must not show up as separate symbols
	if len(lib.Symbols) != 2 {
		t.Fatalf("Expected 2 symbols, got %d", len(lib.Symbols))
	}

	r := lib.Symbols[0]
	if r.Name != "R_10K_0402" {
		t.Errorf("Expected name 'R_10K_0402', got '%s'", r.Name)
	}
	if !r.PinNumbersHidden {
		t.Error("Expected pin numbers hidden")
	}
	if !r.InBOM || !r.OnBoard || r.ExcludeFromSim {
		t.Errorf("Unexpected flags: in_bom=%v on_board=%v exclude_from_sim=%v", r.InBOM, r.OnBoard, r.ExcludeFromSim)
	}
	if len(r.Properties) != 6 {
		t.Fatalf("Expected 6 properties, got %d", len(r.Properties))
	}

	tol, ok := r.Property("Tolerance")
	if !ok {
		t.Fatal("Expected Tolerance property")
	}
	if tol.Value != "1%" || !tol.ShowName || !tol.Effects.Hide {
		t.Errorf("Unexpected Tolerance property: %+v", tol)
	}
	if tol.Effects.Justify.Horizontal != "left" {
		t.Errorf("Expected justify left, got '%s'", tol.Effects.Justify.Horizontal)
	}

	ds, _ := r.Property("Datasheet")
	if ds.Value != "" {
		t.Errorf("Expected empty datasheet, got '%s'", ds.Value)
	}

	if len(r.Units) != 2 {
		t.Fatalf("Expected 2 units, got %d", len(r.Units))
	}
	if len(r.Graphics()) != 1 || r.Graphics()[0].Kind != KindRectangle {
		t.Errorf("Expected one rectangle, got %+v", r.Graphics())
	}

	pins := r.Pins()
	if len(pins) != 2 {
		t.Fatalf("Expected 2 pins, got %d", len(pins))
	}
	if pins[0].Type != PinPassive || pins[0].Style != StyleLine {
		t.Errorf("Unexpected pin type/style %s/%s", pins[0].Type, pins[0].Style)
	}
	if pins[0].Position != (sexp.Position{X: 0, Y: 3.81}) || pins[0].Angle != 270 {
		t.Errorf("Unexpected pin position %+v angle %v", pins[0].Position, pins[0].Angle)
	}
	if pins[1].Number.Number != "2" {
		t.Errorf("Expected pin number '2', got '%s'", pins[1].Number.Number)
	}
}

func TestParseKiCad6HideForms(t *testing.T) {
	lib, err := ParseFile("testdata/passives.kicad_sym")
	if err != nil {
		t.Fatalf("Failed to parse library: %v", err)
	}

	led := lib.Symbols[1]
	if !led.PinNumbersHidden {
		t.Error("Expected bare 'hide' in pin_numbers to hide numbers")
	}
	if !led.PinNames.Hide || led.PinNames.Offset != 1.016 {
		t.Errorf("Unexpected pin_names %+v", led.PinNames)
	}
	fp, _ := led.Property("Footprint")
	if !fp.Effects.Hide {
		t.Error("Expected bare 'hide' in effects to hide the footprint")
	}
	val, _ := led.Property("Value")
	if val.Value != `Red "0603"` {
		t.Errorf("Expected escaped quotes decoded, got %q", val.Value)
	}
	if len(led.Graphics()) != 3 {
		t.Errorf("Expected 3 polylines, got %d", len(led.Graphics()))
	}
}

func TestSplitKeepsOrderAndPositions(t *testing.T) {
	input := "(kicad_symbol_lib (version 20231120) (generator \"x\")\n" +
		"  (symbol \"B\")\n" +
		"  (symbol \"A\")\n" +
		"  (symbol \"B\"))"

	h, blocks, err := Split(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	if h.Generator != "x" {
		t.Errorf("Expected generator 'x', got '%s'", h.Generator)
	}

	var names []string
	for _, b := range blocks {
		names = append(names, b.Name)
	}
	if diff := cmp.Diff([]string{"B", "A", "B"}, names); diff != "" {
		t.Errorf("Block names mismatch (-want +got):\n%s", diff)
	}
	if blocks[1].Pos.Line != 3 || blocks[1].Pos.Column != 3 {
		t.Errorf("Expected second block at line 3 column 3, got %+v", blocks[1].Pos)
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"schematic", "(kicad_sch (version 20231120))", ErrNotSymbolLibrary},
		{"empty", "", ErrNotSymbolLibrary},
		{"kicad 5", "(kicad_symbol_lib (version 20200101))", ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Split(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	_, _, err := Split(strings.NewReader("(kicad_symbol_lib (version 20231120) (symbol \"X\""))
	var synErr *kicadsexp.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("Expected SyntaxError, got %v", err)
	}
	if synErr.Pos.Offset != 37 {
		t.Errorf("Expected unclosed symbol at offset 37, got %d", synErr.Pos.Offset)
	}
}

func TestDecodeSchemaErrors(t *testing.T) {
	tests := []struct {
		name       string
		block      string
		wantSymbol string
		wantMsg    string
	}{
		{
			name:    "missing name",
			block:   `(symbol (property "Reference" "R"))`,
			wantMsg: "no name",
		},
		{
			name:       "property without value",
			block:      `(symbol "X" (property "Reference" (at 0 0 0)))`,
			wantSymbol: "X",
			wantMsg:    `property "Reference" has no value`,
		},
		{
			name:       "property without key",
			block:      `(symbol "X" (property))`,
			wantSymbol: "X",
			wantMsg:    "property has no key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sexps, err := kicadsexp.ParseString(tt.block)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			_, err = Decode(Block{Node: sexps[0], Pos: sexp.GetPos(sexps[0])})

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Expected *SchemaError, got %v", err)
			}
			if schemaErr.Symbol != tt.wantSymbol {
				t.Errorf("Expected symbol %q, got %q", tt.wantSymbol, schemaErr.Symbol)
			}
			if !strings.Contains(schemaErr.Msg, tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, schemaErr.Msg)
			}
		})
	}
}

const libraryWithBadBlock = `(kicad_symbol_lib (version 20231120) (generator "kicad_symbol_editor")
	(symbol "A" (property "Reference" "R") (property "Value" "1k"))
	(symbol "B" (property "Value"))
	(symbol "A" (property "Reference" "R") (property "Value" "2k"))
)`

func TestParseKeepsGoodBlocks(t *testing.T) {
	lib, err := Parse(strings.NewReader(libraryWithBadBlock))

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected *DecodeError, got %v", err)
	}
	if len(decodeErr.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(decodeErr.Failures))
	}
	if f := decodeErr.Failures[0]; f.Symbol != "B" || f.Pos.Line != 3 {
		t.Errorf("Expected failure in B on line 3, got %+v", f)
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Error("Expected failures to unwrap to *SchemaError")
	}

	if lib == nil {
		t.Fatal("Expected the decoded symbols to be returned")
	}
	if diff := cmp.Diff([]string{"A", "A"}, lib.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	dups := FindDuplicates(lib.Names())
	if len(dups) != 1 || dups[0].Name != "A" {
		t.Errorf("Expected duplicate A, got %v", dups)
	}
	if lib.Symbols[1].Pos.Line != 4 {
		t.Errorf("Expected second A on line 4, got %d", lib.Symbols[1].Pos.Line)
	}
}

func TestSplitRejectsTrailingExpressions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPos kicadsexp.Pos
	}{
		{
			name:    "symbol after root",
			input:   "(kicad_symbol_lib (version 20231120))\n(symbol \"X\")",
			wantPos: kicadsexp.Pos{Offset: 38, Line: 2, Column: 1},
		},
		{
			name:    "atom after root",
			input:   "(kicad_symbol_lib (version 20231120)) stray",
			wantPos: kicadsexp.Pos{Offset: 38, Line: 1, Column: 39},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Split(strings.NewReader(tt.input))
			if !errors.Is(err, ErrNotSymbolLibrary) {
				t.Errorf("Expected ErrNotSymbolLibrary, got %v", err)
			}
			var synErr *kicadsexp.SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Expected *SyntaxError, got %v", err)
			}
			if synErr.Pos != tt.wantPos {
				t.Errorf("Expected position %+v, got %+v", tt.wantPos, synErr.Pos)
			}
		})
	}
}

func TestDecodeAcceptsUnknownPinType(t *testing.T) {
	sexps, err := kicadsexp.ParseString(`(symbol "X" (symbol "X_1_1" (pin weird_type line (at 0 0 0) (length 2.54) (name "A") (number "1"))))`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	sym, err := Decode(Block{Node: sexps[0]})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := sym.Pins()[0].Type; got != "weird_type" {
		t.Errorf("Expected pin type 'weird_type', got '%s'", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lib, err := ParseFile("testdata/passives.kicad_sym")
	if err != nil {
		t.Fatalf("Failed to parse library: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteLibrary(&buf, lib); err != nil {
		t.Fatalf("WriteLibrary() error: %v", err)
	}

	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Failed to re-parse written library: %v\n%s", err, buf.String())
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(Symbol{}, "Pos"),
		cmpopts.IgnoreFields(Property{}, "Pos"),
	}
	if diff := cmp.Diff(lib, again, opts); diff != "" {
		t.Errorf("Library changed after write/parse (-want +got):\n%s", diff)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	lib, err := ParseFile("testdata/passives.kicad_sym")
	if err != nil {
		t.Fatalf("Failed to parse library: %v", err)
	}

	first, err := MarshalSymbol(lib.Symbols[0])
	if err != nil {
		t.Fatalf("MarshalSymbol() error: %v", err)
	}
	second, _ := MarshalSymbol(lib.Symbols[0])
	if !bytes.Equal(first, second) {
		t.Error("Expected identical output for identical input")
	}
	if !bytes.HasPrefix(first, []byte("\t(symbol \"R_10K_0402\"\n")) {
		t.Errorf("Unexpected block start: %q", first[:40])
	}
}

func TestGeneratedPinTypes(t *testing.T) {
	for _, typ := range GeneratedPinTypes {
		if !IsPinType(typ) {
			t.Errorf("Generated type %q is not a KiCad type", typ)
		}
	}
	for _, typ := range []string{PinTriState, PinNoConnect, PinOpenCollector, PinFree} {
		if IsGeneratedPinType(typ) {
			t.Errorf("Expected %q to be read-only", typ)
		}
	}
	if IsPinType("weird_type") {
		t.Error("Expected weird_type to be unknown")
	}
}
