package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/symgen"
)

const sampleManifest = `
generator:
  version: "7.0"
  workers: 2
libraries:
  - name: Resistors
    input: parts/resistors.csv
    category: resistor
    output: lib/Resistors.kicad_sym
  - name: LEDs
    input: /abs/leds.xlsx
    category: LED
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	want := []Library{
		{
			Name:     "Resistors",
			Input:    filepath.Join(dir, "parts", "resistors.csv"),
			Category: "resistor",
			Output:   filepath.Join(dir, "lib", "Resistors.kicad_sym"),
		},
		{
			Name:     "LEDs",
			Input:    "/abs/leds.xlsx",
			Category: "LED",
			Output:   filepath.Join(dir, "LEDs.kicad_sym"),
		},
	}
	if diff := cmp.Diff(want, m.Libraries); diff != "" {
		t.Errorf("Libraries mismatch (-want +got):\n%s", diff)
	}
	if m.Dir() != dir {
		t.Errorf("Expected dir %s, got %s", dir, m.Dir())
	}
}

func TestApply(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	base := symgen.DefaultConfig()
	cfg, err := m.Apply(base)
	if err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}
	if cfg.GeneratorVersion != "7.0" || cfg.Workers != 2 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.Generator != base.Generator || cfg.FormatVersion != base.FormatVersion {
		t.Errorf("Unset fields should keep defaults: %+v", cfg)
	}
	if base.Workers == 2 && base.GeneratorVersion == "7.0" {
		t.Error("Base config was modified")
	}

	m.Generator.Version = "5.0"
	if _, err := m.Apply(base); err == nil {
		t.Error("Expected error for generator version below 6.0")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"empty document", "", func(err error) bool { return errors.Is(err, ErrNoLibraries) }},
		{"no libraries", "libraries: []\n", func(err error) bool { return errors.Is(err, ErrNoLibraries) }},
		{"unknown field", "libraries:\n  - name: A\n    input: a.csv\n    category: ic\n    colour: red\n", nil},
		{"missing input", "libraries:\n  - name: A\n    category: ic\n", entryAt(0)},
		{"unknown category", "libraries:\n  - name: A\n    input: a.csv\n    category: relay\n", entryAt(0)},
		{"duplicate name", "libraries:\n  - {name: A, input: a.csv, category: ic}\n  - {name: A, input: b.csv, category: led}\n", entryAt(1)},
		{"duplicate output", "libraries:\n  - {name: A, input: a.csv, category: ic, output: x.kicad_sym}\n  - {name: B, input: b.csv, category: led, output: ./x.kicad_sym}\n", entryAt(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.check != nil && !tt.check(err) {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func entryAt(i int) func(error) bool {
	return func(err error) bool {
		var e *EntryError
		return errors.As(err, &e) && e.Index == i
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
