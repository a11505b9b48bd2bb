package symgen

import (
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// twoTerminal places pin 1 on the left and pin 2 on the right, pointing
// inwards, with their outer ends at -x and +x
func twoTerminal(x, length float64) []symlib.Pin {
	return []symlib.Pin{
		pin("1", "", symlib.PinPassive, -x, 0, 0, length),
		pin("2", "", symlib.PinPassive, x, 0, 180, length),
	}
}

func resistorBody() []symlib.Graphic {
	return []symlib.Graphic{
		polyline(0, noFill(), 2.286, 0, 2.54, 0),
		polyline(0, noFill(), -2.286, 0, -2.54, 0),
		polyline(0, noFill(), 0.762, 0, 1.143, 1.016, 1.524, 0, 1.905, -1.016, 2.286, 0),
		polyline(0, noFill(), -0.762, 0, -0.381, 1.016, 0, 0, 0.381, -1.016, 0.762, 0),
		polyline(0, noFill(), -2.286, 0, -1.905, 1.016, -1.524, 0, -1.143, -1.016, -0.762, 0),
	}
}

func drawResistor(component.Record) (*Drawing, error) {
	return &Drawing{
		Graphics:       resistorBody(),
		Pins:           twoTerminal(5.08, pinLength),
		TextY:          1,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

func drawThermistor(component.Record) (*Drawing, error) {
	outline := sexp.Fill{Type: "outline"}
	graphics := append(resistorBody(),
		polyline(0, noFill(), 2.54, 1.778, 1.524, 1.778, -1.524, -1.778, -2.54, -1.778),
		polyline(0, outline, -3.302, 2.54, -1.016, 2.54, -1.778, 2.794, -1.778, 2.286, -1.016, 2.54, -1.27, 2.54),
		polyline(0, outline, -1.016, 1.778, -3.302, 1.778, -2.54, 2.032, -2.54, 1.524, -3.302, 1.778, -3.048, 1.778),
	)
	return &Drawing{
		Graphics:       graphics,
		Pins:           twoTerminal(5.08, pinLength),
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

func drawCapacitor(component.Record) (*Drawing, error) {
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(0.508, noFill(), -0.762, -2.032, -0.762, 2.032),
			polyline(0.508, noFill(), 0.762, -2.032, 0.762, 2.032),
		},
		Pins:           twoTerminal(3.81, 2.8),
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

func drawPolarisedCapacitor(component.Record) (*Drawing, error) {
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(0.508, noFill(), -0.762, -2.032, -0.762, 2.032),
			// plus sign marks pin 1
			polyline(0, noFill(), -2.54, -1.016, -2.54, -2.032),
			polyline(0, noFill(), -2.032, -1.524, -3.048, -1.524),
			arc(0.508, xy(1.524, 2.032), xy(0.9088, 0), xy(1.524, -2.032)),
		},
		Pins:           twoTerminal(3.81, 2.8),
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

func drawInductor(component.Record) (*Drawing, error) {
	turns := [][3]float64{
		{-2.54, -3.81, -5.08},
		{0, -1.27, -2.54},
		{2.54, 1.27, 0},
		{5.08, 3.81, 2.54},
	}
	graphics := make([]symlib.Graphic, 0, len(turns))
	for _, t := range turns {
		graphics = append(graphics, arc(thinStroke, xy(t[0], 0.0056), xy(t[1], 1.27), xy(t[2], 0.0056)))
	}
	return &Drawing{
		Graphics:       graphics,
		Pins:           twoTerminal(7.62, pinLength),
		TextY:          1,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

func drawFerriteBead(component.Record) (*Drawing, error) {
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(0, noFill(), -1.27, 0, -2.54, 0),
			polyline(0, noFill(), 1.27, 0, 2.54, 0),
			polyline(thinStroke, noFill(), 0, 2.54, 2.54, 2.54, 0, -2.54, -2.54, -2.54, 0, 2.54),
		},
		Pins:           twoTerminal(5.08, pinLength),
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}
