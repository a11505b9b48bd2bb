package symgen

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// diodePins puts the cathode (pin 1) on the right
func diodePins() []symlib.Pin {
	return []symlib.Pin{
		pin("1", "", symlib.PinPassive, 5.08, 0, 180, 3.81),
		pin("2", "", symlib.PinPassive, -5.08, 0, 0, 3.81),
	}
}

var rectifierBody = []float64{1.27, 1.905, 1.27, 0, -1.27, 1.905, -1.27, -1.905, 1.27, 0, 1.27, -1.905}

func diode(body ...float64) *Drawing {
	return &Drawing{
		Graphics:       []symlib.Graphic{polyline(thinStroke, noFill(), body...)},
		Pins:           diodePins(),
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}
}

func drawRectifier(component.Record) (*Drawing, error) {
	return diode(rectifierBody...), nil
}

func drawSchottky(component.Record) (*Drawing, error) {
	return diode(
		0.635, 1.27, 0.635, 1.905, 1.27, 1.905, 1.27, 0, -1.27, 1.905,
		-1.27, -1.905, 1.27, 0, 1.27, -1.905, 1.905, -1.905, 1.905, -1.27,
	), nil
}

func drawZener(component.Record) (*Drawing, error) {
	return diode(
		0.635, 1.905, 1.27, 1.27, 1.27, 0, -1.27, 1.905, -1.27, -1.905,
		1.27, 0, 1.27, -1.27, 1.905, -1.905,
	), nil
}

// ledColors maps the Color attribute to a body fill, components 0-1
var ledColors = map[string]sexp.Color{
	"red":    {R: 1, G: 0, B: 0, A: 1},
	"green":  {R: 0.8, G: 1, B: 0, A: 1},
	"blue":   {R: 0, G: 0, B: 1, A: 1},
	"yellow": {R: 1, G: 1, B: 0, A: 1},
	"orange": {R: 1, G: 0.6, B: 0, A: 1},
	"white":  {R: 1, G: 1, B: 1, A: 1},
}

// ledFill fills an LED body with its Color; unknown colours stay unfilled
func ledFill(rec component.Record) sexp.Fill {
	if c, ok := ledColors[strings.ToLower(strings.TrimSpace(rec.Value(AttrColor)))]; ok {
		return sexp.Fill{Type: "color", Color: c}
	}
	return noFill()
}

func drawLED(rec component.Record) (*Drawing, error) {
	d := diode(rectifierBody...)
	d.Graphics[0].Fill = ledFill(rec)
	d.Graphics = append(d.Graphics,
		polyline(thinStroke, noFill(), 1.778, 2.54, 3.302, 4.064, 2.54, 4.064, 3.302, 4.064, 3.302, 3.302),
		polyline(thinStroke, noFill(), 3.048, 2.54, 4.572, 4.064, 3.81, 4.064, 4.572, 4.064, 4.572, 3.302),
	)
	return d, nil
}

// Transistor Type values
const (
	NChannel = "N-Channel"
	PChannel = "P-Channel"
)

var nChannelBody = []float64{
	5.08, 1.27, 5.08, 0, 2.54, 0, 2.54, 1.27, 0.508, 1.27, 0.508, 1.778,
	-0.508, 1.27, -0.508, 1.778, -0.508, 1.27, -2.54, 1.27, -2.54, 0, -5.08, 0,
	-5.08, 1.27, -5.08, 0, -2.032, 0, -2.032, -2.032, -2.54, -2.032, -1.524, -2.032,
	-2.032, -2.032, -2.032, 0, -2.54, 0, -2.54, 1.27, -0.508, 1.27, -0.508, 0.762,
	-0.508, 1.27, 0.508, 0.762, 0.508, 1.27, 2.54, 1.27, 2.54, 0, 0, 0,
	0, -1.016, -0.508, -1.016, 0, -2.032, -0.508, -2.032, 0.508, -2.032, 0, -2.032,
	0.508, -1.016, 0, -1.016, 0, 0, 2.032, 0, 2.032, -2.032, 1.524, -2.032,
	2.54, -2.032, 2.032, -2.032, 2.032, 0, 5.08, 0, 5.08, -3.81,
}

var pChannelBody = []float64{
	-5.08, 1.27, -5.08, 0, -2.54, 0, -2.032, 0, -2.032, -2.032, -2.54, -2.032,
	-1.524, -2.032, -2.032, -2.032, -2.032, 0, -2.54, 0, -2.54, 1.27, -0.508, 1.27,
	-0.508, 0.762, 0.508, 1.27, 0.508, 0.762, 0.508, 1.27, 2.54, 1.27, 2.54, 0,
	0, 0, -0.508, -1.016, 0, -1.016, 0, -2.032, -0.508, -2.032, 0.508, -2.032,
	0, -2.032, 0, -1.016, 0.508, -1.016, 0, 0, 2.032, 0, 2.032, -2.032,
	1.524, -2.032, 2.54, -2.032, 2.032, -2.032, 2.032, 0, 2.54, 0, 5.08, 0,
	5.08, -3.81, 5.08, 1.27, 5.08, 0, 2.54, 0, 2.54, 1.27, 0.508, 1.27,
	0.508, 1.778, 0.508, 1.27, -0.508, 1.778, -0.508, 1.27, -2.54, 1.27, -2.54, 0,
	-5.08, 0, -5.08, 1.27,
}

// drawTransistor draws a MOSFET in a five-pin power package: drain on pin 5,
// sources on pins 1-3 and gate on pin 4
func drawTransistor(rec component.Record) (*Drawing, error) {
	body, err := channelBody(rec)
	if err != nil {
		return nil, err
	}

	outline := sexp.Fill{Type: "outline"}
	graphics := []symlib.Graphic{
		polyline(0, outline, 0, -6.35, 0, -2.54, -2.54, -2.54, 2.54, -2.54, 0, -2.54, 0, -6.35),
		polyline(0, outline, body...),
		circle(0.381, noFill(), xy(-2.54, 0), dotRadius),
		circle(0.381, noFill(), xy(2.032, 0), dotRadius),
		circle(0.381, noFill(), xy(2.54, 0), dotRadius),
	}

	pins := []symlib.Pin{
		pin("5", "D", symlib.PinPassive, -7.62, 1.27, 0, pinLength),
		pin("1", "S", symlib.PinPassive, 7.62, 1.27, 180, pinLength),
		pin("2", "S", symlib.PinPassive, 7.62, -1.27, 180, pinLength),
		pin("3", "S", symlib.PinPassive, 7.62, -3.81, 180, pinLength),
		pin("4", "G", symlib.PinPassive, 2.54, -6.35, 180, pinLength),
	}

	return &Drawing{
		Graphics:     graphics,
		Pins:         pins,
		TextY:        3,
		HidePinNames: true,
	}, nil
}

func drawTVS(component.Record) (*Drawing, error) {
	return diode(1.27, 1.905, 1.27, 0, -1.27, 1.905, -1.27, -1.905, 1.27, 0, 1.27, -1.905, 0.635, -1.905), nil
}

// drawBidirectionalTVS draws two back-to-back diodes between short pins
func drawBidirectionalTVS(component.Record) (*Drawing, error) {
	d := diode(
		3.81, 0, 2.54, 0, 2.54, 1.905, 0, 0, 0, 1.27, -0.635, 1.905, 0, 1.27, 0, 0,
		-2.54, 1.905, -2.54, 0, -3.81, 0, -2.54, 0, -2.54, -1.905, 0, 0, 0, -1.27,
		0.635, -1.905, 0, -1.27, 0, 0, 2.54, -1.905, 2.54, 0,
	)
	d.Pins = []symlib.Pin{
		pin("1", "", symlib.PinPassive, 5.08, 0, 180, 1.27),
		pin("2", "", symlib.PinPassive, -5.08, 0, 0, 1.27),
	}
	return d, nil
}

// dualDiode draws two diodes in series with the common node on pin 3
func dualDiode(body ...float64) *Drawing {
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(thinStroke, noFill(), body...),
			circle(0, sexp.Fill{Type: "outline"}, xy(0, 0), contactSize),
		},
		Pins: []symlib.Pin{
			pin("1", "", symlib.PinPassive, -10.16, 0, 0, 3.81),
			pin("2", "", symlib.PinPassive, 10.16, 0, 180, 3.81),
			pin("3", "", symlib.PinPassive, 0, 5.08, 270, 3.81),
		},
		TextY:          3,
		HidePinNames:   true,
		HidePinNumbers: true,
	}
}

func drawDualDiode(component.Record) (*Drawing, error) {
	return dualDiode(
		6.35, 1.905, 6.35, 0, 3.81, 1.905, 3.81, 0, 0, 0, 0, 1.27, 0, 0, -3.81, 0,
		-3.81, 1.905, -3.81, 0, -6.35, 1.905, -6.35, -1.905, -3.81, 0, -3.81, -1.905,
		-3.81, 0, 3.81, 0, 3.81, -1.905, 6.35, 0, 6.35, -1.905,
	), nil
}

func drawDualSchottky(component.Record) (*Drawing, error) {
	return dualDiode(
		6.35, 1.905, 6.35, 0, 3.81, 1.905, 3.81, 0, 0, 0, 0, 1.27, 0, 0, -3.81, 0,
		-3.81, 1.905, -6.35, 0, -6.35, 1.905, -6.35, -1.905, -6.35, 0, -3.81, -1.905,
		-3.81, 0, 3.81, 0, 3.81, -1.905, 6.35, 0, 6.35, -1.905,
	), nil
}

// channelBody returns the MOSFET body for the Transistor Type attribute
func channelBody(rec component.Record) ([]float64, error) {
	switch strings.ToLower(rec.Value(AttrTransistorType)) {
	case strings.ToLower(NChannel):
		return nChannelBody, nil
	case strings.ToLower(PChannel):
		return pChannelBody, nil
	}
	return nil, &InvalidAttributeError{
		Symbol:    rec.SymbolName,
		Attribute: AttrTransistorType,
		Value:     rec.Value(AttrTransistorType),
		Reason:    "expected " + NChannel + " or " + PChannel,
	}
}

// shift returns coords with dy added to every y
func shift(coords []float64, dy float64) []float64 {
	out := make([]float64, len(coords))
	for i, c := range coords {
		if i%2 == 1 {
			c += dy
		}
		out[i] = c
	}
	return out
}

// drawDualTransistor draws two MOSFETs as units 1 and 2. Unit 1 is S1 G1 D1
// on pins 1, 2 and 6; unit 2 is S2 G2 D2 on pins 3, 4 and 5.
func drawDualTransistor(rec component.Record) (*Drawing, error) {
	body, err := channelBody(rec)
	if err != nil {
		return nil, err
	}

	const o = 1.27
	outline := sexp.Fill{Type: "outline"}
	half := func(unit int, s, g, d string) UnitDrawing {
		return UnitDrawing{
			Unit:  unit,
			Style: 1,
			Graphics: []symlib.Graphic{
				polyline(0, outline, shift([]float64{0, -5.08, 0, -1.27, -2.54, -1.27, 2.54, -1.27, 0, -1.27, 0, -5.08}, o)...),
				polyline(0, outline, shift(body, o)...),
				circle(0.381, noFill(), xy(-2.54, o), dotRadius),
				circle(0.381, noFill(), xy(2.032, o), dotRadius),
				circle(0.381, noFill(), xy(2.54, o), dotRadius),
			},
			Pins: []symlib.Pin{
				pin(s, "S", symlib.PinPassive, 10.16, 2.54+o, 180, pinLength),
				pin(g, "G", symlib.PinPassive, 2.54, -5.08+o, 180, pinLength),
				pin(d, "D", symlib.PinPassive, -10.16, 2.54+o, 0, pinLength),
			},
		}
	}

	return &Drawing{
		Units:        []UnitDrawing{half(1, "1", "2", "6"), half(2, "3", "4", "5")},
		TextY:        3,
		HidePinNames: true,
	}, nil
}
