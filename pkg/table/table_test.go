package table

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
)

const resistorsCSV = `Symbol Name,Reference,Value,Footprint,Tolerance,MPN
R_10K_0402,R,10k,Resistor_SMD:R_0402_1005Metric,1%,RC0402FR-0710KL
,,,,,
R_1K_0603,R,1k,,5%,"RC0603JR-071KL, reel"
`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(resistorsCSV))
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	want := component.New("R_10K_0402",
		"Reference", "R", "Value", "10k", "Footprint", "Resistor_SMD:R_0402_1005Metric",
		"Tolerance", "1%", "MPN", "RC0402FR-0710KL")
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}

	// Empty Footprint cell is left out
	if _, ok := records[1].Get("Footprint"); ok {
		t.Error("Expected empty Footprint to be absent")
	}
	if v := records[1].Value("MPN"); v != "RC0603JR-071KL, reel" {
		t.Errorf("Expected quoted MPN, got '%s'", v)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"no symbol name column", "Reference,Value\nR,1k\n", func(err error) bool { return errors.Is(err, ErrNoSymbolNameColumn) }},
		{"empty input", "", func(err error) bool { return errors.Is(err, ErrNoSymbolNameColumn) }},
		{"empty symbol name", "Symbol Name,Value\nR1,1k\n,2k\n", func(err error) bool {
			var rowErr *RowError
			return errors.As(err, &rowErr) && rowErr.Row == 3
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			if !tt.check(err) {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestColumns(t *testing.T) {
	records := []component.Record{
		component.New("A", "Color", "Red", "Value", "LED", "Reference", "D"),
		component.New("B", "Reference", "D", "Tolerance", "1%", "Pin Count", "2"),
	}

	want := []string{"Symbol Name", "Reference", "Value", "Tolerance", "Color", "Pin Count"}
	if diff := cmp.Diff(want, Columns(records)); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
}

func sampleRecords() []component.Record {
	return []component.Record{
		component.New("R_10K_0402", "Reference", "R", "Value", "10k", "Tolerance", "1%", "Footprint", "0402"),
		component.New("LED_RED", "Reference", "D", "Value", `Red "0603"`, "Color", "Red"),
	}
}

// canonicalColumns reorders attributes the way the header lays them out
func canonicalColumns(records []component.Record) []component.Record {
	cols := Columns(records)
	out := make([]component.Record, len(records))
	for i, r := range records {
		out[i] = component.Record{SymbolName: r.SymbolName}
		for _, c := range cols[1:] {
			if v, ok := r.Get(c); ok {
				out[i].Set(c, v)
			}
		}
	}
	return out
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if diff := cmp.Diff(canonicalColumns(sampleRecords()), got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords()); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	got, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if diff := cmp.Diff(canonicalColumns(sampleRecords()), got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileDispatch(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"parts.csv", "parts.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, sampleRecords()); err != nil {
				t.Fatalf("Failed to write: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read: %v", err)
			}
			if len(got) != 2 {
				t.Errorf("Expected 2 records, got %d", len(got))
			}
		})
	}

	if err := WriteFile(filepath.Join(dir, "parts.ods"), nil); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
