// Package symgen renders component records into KiCad symbol blocks.
//
// Each category is a template: a reference prefix, a set of required
// attributes and a pure Draw function that returns the graphics and pins for
// one record. Graphics depend only on pin count and orientation, never on the
// record's Value.
package symgen

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Category-specific attribute names
const (
	AttrPinCount       = "Pin Count"
	AttrRows           = "Number of Rows"
	AttrPinMap         = "Pin Map"
	AttrTransistorType = "Transistor Type"
	AttrDrainCurrent   = "Drain Current"
	AttrColor          = "Color"
	AttrSecondaries    = "Secondary Windings"
)

// Drawing is what a category template produces for one record
type Drawing struct {
	Graphics []symlib.Graphic
	Pins     []symlib.Pin

	// Property anchor in grid units (multiples of 2.54)
	TextX, TextY float64

	HidePinNames   bool
	HidePinNumbers bool

	// Units replaces Graphics and Pins for parts drawn as several units or
	// body styles, e.g. the two halves of a dual MOSFET
	Units []UnitDrawing
}

// UnitDrawing is one "NAME_unit_style" sub-symbol. Unit or Style 0 means
// shared by all units or styles.
type UnitDrawing struct {
	Unit, Style int
	Graphics    []symlib.Graphic
	Pins        []symlib.Pin
}

// Category is one symbol template
type Category struct {
	Name        string
	Reference   string // usual reference designator prefix
	Description string
	Required    []string
	Optional    []string
	Draw        func(rec component.Record) (*Drawing, error)
}

var mandatory = []string{component.FieldReference, component.FieldValue}

var registry = map[string]*Category{
	"resistor": {
		Name: "resistor", Reference: "R", Description: "Two-terminal resistor, zigzag body",
		Required: mandatory, Draw: drawResistor,
	},
	"thermistor": {
		Name: "thermistor", Reference: "R", Description: "Resistor with temperature arrows",
		Required: mandatory, Draw: drawThermistor,
	},
	"capacitor": {
		Name: "capacitor", Reference: "C", Description: "Non-polarised capacitor",
		Required: mandatory, Draw: drawCapacitor,
	},
	"polarised_capacitor": {
		Name: "polarised_capacitor", Reference: "C", Description: "Electrolytic or tantalum capacitor, pin 1 positive",
		Required: mandatory, Draw: drawPolarisedCapacitor,
	},
	"inductor": {
		Name: "inductor", Reference: "L", Description: "Four-turn inductor",
		Required: mandatory, Draw: drawInductor,
	},
	"ferrite_bead": {
		Name: "ferrite_bead", Reference: "FB", Description: "Ferrite bead",
		Required: mandatory, Draw: drawFerriteBead,
	},
	"transformer": {
		Name: "transformer", Reference: "T", Description: "Transformer with one or two secondary windings",
		Required: mandatory, Optional: []string{AttrSecondaries}, Draw: drawTransformer,
	},
	"coupled_inductor": {
		Name: "coupled_inductor", Reference: "L", Description: "Two windings on one core; body style 2 reverses the second winding",
		Required: mandatory, Draw: drawCoupledInductor,
	},
	"rectifier_diode": {
		Name: "rectifier_diode", Reference: "D", Description: "Rectifier diode, pin 1 cathode",
		Required: mandatory, Draw: drawRectifier,
	},
	"schottky_diode": {
		Name: "schottky_diode", Reference: "D", Description: "Schottky diode, pin 1 cathode",
		Required: mandatory, Draw: drawSchottky,
	},
	"zener_diode": {
		Name: "zener_diode", Reference: "D", Description: "Zener diode, pin 1 cathode",
		Required: mandatory, Draw: drawZener,
	},
	"tvs_diode": {
		Name: "tvs_diode", Reference: "D", Description: "Unidirectional TVS diode",
		Required: mandatory, Draw: drawTVS,
	},
	"bidirectional_tvs_diode": {
		Name: "bidirectional_tvs_diode", Reference: "D", Description: "Bidirectional TVS diode",
		Required: mandatory, Draw: drawBidirectionalTVS,
	},
	"dual_diode": {
		Name: "dual_diode", Reference: "D", Description: "Two small-signal diodes in series, common node on pin 3",
		Required: mandatory, Draw: drawDualDiode,
	},
	"dual_schottky_diode": {
		Name: "dual_schottky_diode", Reference: "D", Description: "Two Schottky diodes in series, common node on pin 3",
		Required: mandatory, Draw: drawDualSchottky,
	},
	"led": {
		Name: "led", Reference: "D", Description: "Light emitting diode, body filled with Color",
		Required: mandatory, Optional: []string{AttrColor}, Draw: drawLED,
	},
	"transistor": {
		Name: "transistor", Reference: "Q", Description: "MOSFET in a 5-pin package (D, S, S, S, G)",
		Required: append(append([]string{}, mandatory...), AttrTransistorType, AttrDrainCurrent),
		Draw:     drawTransistor,
	},
	"dual_transistor": {
		Name: "dual_transistor", Reference: "Q", Description: "Two MOSFETs as separate units (S1 G1 D1 on 1 2 6, S2 G2 D2 on 3 4 5)",
		Required: append(append([]string{}, mandatory...), AttrTransistorType), Draw: drawDualTransistor,
	},
	"connector": {
		Name: "connector", Reference: "J", Description: "Pin header; Pin Count per row, odd/even numbering on two rows",
		Required: append(append([]string{}, mandatory...), AttrPinCount),
		Optional: []string{AttrRows, AttrPinMap}, Draw: drawConnector,
	},
	"dip_switch": {
		Name: "dip_switch", Reference: "S", Description: "DIP switch; Pin Count positions, counter-clockwise numbering",
		Required: append(append([]string{}, mandatory...), AttrPinCount),
		Optional: []string{AttrRows}, Draw: drawDIPSwitch,
	},
	"tactile_switch": {
		Name: "tactile_switch", Reference: "S", Description: "Tactile push button, 4 pins by default",
		Required: mandatory, Optional: []string{AttrPinCount, AttrRows}, Draw: drawTactileSwitch,
	},
	"slide_switch": {
		Name: "slide_switch", Reference: "S", Description: "Single-pole changeover slide switch, common on pin 2",
		Required: mandatory, Draw: drawSlideSwitch,
	},
	"tactile_switch_led": {
		Name: "tactile_switch_led", Reference: "S", Description: "Push button with indicator LED; LED filled with Color",
		Required: mandatory, Optional: []string{AttrColor}, Draw: drawTactileSwitchLED,
	},
	"terminal_block": {
		Name: "terminal_block", Reference: "J", Description: "Screw terminal block, 2 positions by default",
		Required: mandatory, Optional: []string{AttrPinCount, AttrPinMap}, Draw: drawTerminalBlock,
	},
	"seven_segment_display": {
		Name: "seven_segment_display", Reference: "U", Description: "Single seven-segment digit; even Pin Count, 10 by default",
		Required: mandatory, Optional: []string{AttrPinCount, AttrPinMap}, Draw: drawSevenSegment,
	},
	"ic": {
		Name: "ic", Reference: "U", Description: "Dual-row IC; even Pin Count, counter-clockwise numbering",
		Required: append(append([]string{}, mandatory...), AttrPinCount),
		Optional: []string{AttrPinMap}, Draw: drawIC,
	},
}

// normalizeCategory accepts "Polarised Capacitor", "dip-switch" and similar
func normalizeCategory(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// Lookup returns the template for a category name
func Lookup(name string) (*Category, error) {
	c, ok := registry[normalizeCategory(name)]
	if !ok {
		return nil, &UnsupportedCategoryError{Category: name}
	}
	return c, nil
}

// Categories returns every registered template sorted by name
func Categories() []*Category {
	out := make([]*Category, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
