package symgen

import (
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

const (
	windingTurns = 4
	phaseDot     = 0.508
	coreGap      = 0.254
)

// winding draws four half-turns stacked upwards from y0 at x. Turns bulge
// away from the core: left of it for x < 0, right for x > 0.
func winding(x, y0 float64) []symlib.Graphic {
	bulge := 1.27
	if x < 0 {
		bulge = -bulge
	}
	out := make([]symlib.Graphic, 0, windingTurns)
	for k := 0; k < windingTurns; k++ {
		y := y0 + float64(k)*pitch
		out = append(out, arc(0, xy(x, y), xy(x+bulge, y+1.27), xy(x, y+pitch)))
	}
	return out
}

// core draws the two bars between the windings, spanning top to bottom
func core(top, bottom float64) []symlib.Graphic {
	return []symlib.Graphic{
		polyline(0, noFill(), -coreGap, top, -coreGap, bottom),
		polyline(0, noFill(), coreGap, top, coreGap, bottom),
	}
}

func dot(x, y float64) symlib.Graphic {
	return circle(0, noFill(), xy(x, y), phaseDot)
}

// drawTransformer draws a primary on the left and one or two secondaries on
// the right. Primary is pins 1-2, secondaries 3-4 and 5-6, top to bottom.
func drawTransformer(rec component.Record) (*Drawing, error) {
	n, err := intAttr(rec, AttrSecondaries, 1)
	if err != nil {
		return nil, err
	}
	if n > 2 {
		return nil, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: AttrSecondaries, Value: rec.Value(AttrSecondaries), Reason: "must be 1 or 2"}
	}

	const x = 3 * pitch
	if n == 1 {
		graphics := append(winding(-pitch, -2*pitch), winding(pitch, -2*pitch)...)
		graphics = append(graphics, core(2*pitch, -2*pitch)...)
		graphics = append(graphics, dot(-pitch, 3.81), dot(pitch, -3.81))
		return &Drawing{
			Graphics: graphics,
			Pins: []symlib.Pin{
				pin("1", "", symlib.PinPassive, -x, 2*pitch, 0, 2*pitch),
				pin("2", "", symlib.PinPassive, -x, -2*pitch, 0, 2*pitch),
				pin("3", "", symlib.PinPassive, x, 2*pitch, 180, 2*pitch),
				pin("4", "", symlib.PinPassive, x, -2*pitch, 180, 2*pitch),
			},
			TextY:          3,
			HidePinNames:   true,
			HidePinNumbers: true,
		}, nil
	}

	graphics := append(winding(-pitch, -2*pitch), winding(pitch, pitch)...)
	graphics = append(graphics, winding(pitch, -5*pitch)...)
	graphics = append(graphics, core(5*pitch, -5*pitch)...)
	graphics = append(graphics, dot(-pitch, -3.81), dot(pitch, -3.81), dot(pitch, 11.43))
	return &Drawing{
		Graphics: graphics,
		Pins: []symlib.Pin{
			pin("1", "", symlib.PinPassive, -x, 2*pitch, 0, 2*pitch),
			pin("2", "", symlib.PinPassive, -x, -2*pitch, 0, 2*pitch),
			pin("3", "", symlib.PinPassive, x, 5*pitch, 180, 2*pitch),
			pin("4", "", symlib.PinPassive, x, pitch, 180, 2*pitch),
			pin("5", "", symlib.PinPassive, x, -pitch, 180, 2*pitch),
			pin("6", "", symlib.PinPassive, x, -5*pitch, 180, 2*pitch),
		},
		TextY:          6,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

// drawCoupledInductor draws two windings on a shared core. Body style 1
// has the windings in phase; style 2 swaps the ends of the second winding.
func drawCoupledInductor(component.Record) (*Drawing, error) {
	const x = 3 * pitch
	body := func(secondaryDot float64) []symlib.Graphic {
		g := append(winding(-pitch, -2*pitch), winding(pitch, -2*pitch)...)
		g = append(g, core(2*pitch, -2*pitch)...)
		return append(g, dot(-pitch, 3.81), dot(pitch, secondaryDot))
	}
	pins := func(top, bottom string) []symlib.Pin {
		return []symlib.Pin{
			pin("1", "", symlib.PinPassive, -x, 2*pitch, 0, 2*pitch),
			pin("3", "", symlib.PinPassive, -x, -2*pitch, 0, 2*pitch),
			pin(top, "", symlib.PinPassive, x, 2*pitch, 180, 2*pitch),
			pin(bottom, "", symlib.PinPassive, x, -2*pitch, 180, 2*pitch),
		}
	}

	return &Drawing{
		Units: []UnitDrawing{
			{Unit: 1, Style: 1, Graphics: body(-3.81), Pins: pins("2", "4")},
			{Unit: 1, Style: 2, Graphics: body(3.81), Pins: pins("4", "2")},
		},
		TextY:          3,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}
