package symgen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
)

func TestParsePinMap(t *testing.T) {
	pm, err := ParsePinMap("1=~{CS}/input, 2=DO/output[IO1,MISO]; 3=/power_in 4=")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	type entry struct {
		Number, Name, Type string
		Alternates         []string
	}
	var got []entry
	for _, e := range pm.Entries {
		got = append(got, entry{e.Number, e.Name, e.Type, e.Alternates})
	}

	want := []entry{
		{"1", "~{CS}", "input", nil},
		{"2", "DO", "output", []string{"IO1", "MISO"}},
		{"3", "", "power_in", nil},
		{"4", "", "", nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePinMapEmpty(t *testing.T) {
	pm, err := ParsePinMap("   ")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(pm.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(pm.Entries))
	}
}

func TestPinMapErrors(t *testing.T) {
	tests := []struct {
		name   string
		pinMap string
	}{
		{"pin beyond count", "9=X"},
		{"unknown type", "1=A/bogus"},
		{"tri-state type", "1=A/tri_state"},
		{"no-connect type", "1=A 2=B/no_connect"},
		{"mapped twice", "1=A 1=B"},
		{"syntax", "1=A/"},
		{"unclosed alternates", "1=A[IO1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := component.New("U1", "Reference", "U", "Value", "X", "Pin Count", "8", "Pin Map", tt.pinMap)
			_, err := Render(rec, "ic")
			var invalid *InvalidAttributeError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected *InvalidAttributeError, got %v", err)
			}
			if invalid.Attribute != AttrPinMap {
				t.Errorf("Expected attribute '%s', got '%s'", AttrPinMap, invalid.Attribute)
			}
		})
	}
}

func TestConnectorPinMapWidensBody(t *testing.T) {
	plain, err := Render(component.New("J1", "Reference", "J", "Value", "X", "Pin Count", "2"), "connector")
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	named, err := Render(component.New("J2", "Reference", "J", "Value", "X", "Pin Count", "2",
		"Pin Map", "1=VBUS_SENSE/power_in 2=GND/power_in"), "connector")
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	if plain.Bounds().Width() >= named.Bounds().Width() {
		t.Errorf("Expected named connector wider than %g, got %g", plain.Bounds().Width(), named.Bounds().Width())
	}
	if !plain.PinNames.Hide {
		t.Error("Expected pin names hidden without a pin map")
	}
	if named.PinNames.Hide {
		t.Error("Expected pin names shown with a pin map")
	}
	if got := named.Pins()[0].Type; got != "power_in" {
		t.Errorf("Expected pin 1 type 'power_in', got '%s'", got)
	}
}
