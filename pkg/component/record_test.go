package component

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

func TestCanonicalOrder(t *testing.T) {
	r := New("R_TEST1",
		"Tolerance", "1%",
		"Value", "10k",
		"MPN", "RC0402",
		"Reference", "R",
		"Footprint", "Resistor_SMD:R_0402_1005Metric",
	)

	want := []string{"Reference", "Value", "Footprint", "Tolerance", "MPN"}
	if diff := cmp.Diff(want, r.Canonical().Names()); diff != "" {
		t.Errorf("Canonical() order mismatch (-want +got):\n%s", diff)
	}

	// Source record is untouched
	if r.Attributes[0].Name != "Tolerance" {
		t.Errorf("Expected original order kept, got %v", r.Names())
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	r := New("X", "A", "1", "B", "2")
	r.Set("A", "3")
	if diff := cmp.Diff([]Attribute{{"A", "3"}, {"B", "2"}}, r.Attributes); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
}

func TestRequire(t *testing.T) {
	r := New("Q1", "Reference", "Q", "Value", "IRF540", "Drain Current", "")

	if err := r.Require("Reference", "Value"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	tests := []struct {
		name string
		attr string
	}{
		{"absent", "Transistor Type"},
		{"empty", "Drain Current"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Require("Reference", tt.attr)
			var missing *MissingAttributeError
			if !errors.As(err, &missing) {
				t.Fatalf("Expected *MissingAttributeError, got %v", err)
			}
			if missing.Attribute != tt.attr || missing.Symbol != "Q1" {
				t.Errorf("Unexpected error fields: %+v", missing)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := New("X", "Reference", "R", "Value", "1k")
	b := New("X", "Reference", "R", "Value", "1k")
	if !a.Equal(b) {
		t.Error("Expected records to be equal")
	}
	c := New("X", "Value", "1k", "Reference", "R")
	if a.Equal(c) {
		t.Error("Expected order to matter")
	}
	if a.Equal(New("Y", "Reference", "R", "Value", "1k")) {
		t.Error("Expected symbol name to matter")
	}
}

func TestFromSymbol(t *testing.T) {
	sym := &symlib.Symbol{
		Name: "C_100N",
		Properties: []symlib.Property{
			{Key: "Reference", Value: "C"},
			{Key: "Value", Value: "100n"},
			{Key: "Voltage Rating", Value: "50V"},
		},
		Units: []symlib.Unit{{Name: "C_100N_1_1", Pins: []symlib.Pin{{Type: symlib.PinPassive}}}},
	}

	got := FromSymbol(sym)
	want := New("C_100N", "Reference", "C", "Value", "100n", "Voltage Rating", "50V")
	if !got.Equal(want) {
		t.Errorf("FromSymbol() = %v, want %v", got, want)
	}
}

func TestFromLibraryFixture(t *testing.T) {
	lib, err := symlib.ParseFile("../kicad/symlib/testdata/passives.kicad_sym")
	if err != nil {
		t.Fatalf("Failed to parse library: %v", err)
	}

	records := FromLibrary(lib)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].SymbolName != "R_10K_0402" {
		t.Errorf("Expected 'R_10K_0402', got '%s'", records[0].SymbolName)
	}
	if v := records[0].Value("Tolerance"); v != "1%" {
		t.Errorf("Expected Tolerance '1%%', got '%s'", v)
	}
	if v := records[1].Value("Value"); v != `Red "0603"` {
		t.Errorf("Expected Value 'Red \"0603\"', got '%s'", v)
	}
}
