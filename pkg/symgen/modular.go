package symgen

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Approximate advance of one character of 1.27 mm text
const charWidth = 1.016

var overbar = strings.NewReplacer("~{", "", "}", "")

// nameWidth estimates the drawn width of the longest pin name
func nameWidth(pins []symlib.Pin) float64 {
	longest := 0
	for _, p := range pins {
		if n := utf8.RuneCountInString(overbar.Replace(p.Name.Name)); n > longest {
			longest = n
		}
	}
	if longest == 0 {
		return 0
	}
	return float64(longest)*charWidth + sexp.HalfPitch
}

// columns builds a left column of pins pointing right and a right column
// pointing left, both centred on y = 0. X positions are set by placeColumns
// once pin names are known.
func columns(left, right []string, n int, typ string) []symlib.Pin {
	pins := make([]symlib.Pin, 0, len(left)+len(right))
	for i, num := range left {
		pins = append(pins, pin(num, "", typ, 0, columnY(i, n, pitch), 0, pinLength))
	}
	for i, num := range right {
		pins = append(pins, pin(num, "", typ, 0, columnY(i, n, pitch), 180, pinLength))
	}
	return pins
}

// placeColumns moves the outer ends of the pins to x = -(hw+pitch) and
// x = hw+pitch, so the inner ends touch a body of half width hw
func placeColumns(pins []symlib.Pin, hw float64) {
	for i := range pins {
		if pins[i].Angle == 0 {
			pins[i].Position.X = -(hw + pinLength)
		} else {
			pins[i].Position.X = hw + pinLength
		}
	}
}

// drawConnector draws a pin header. Pin Count is the number of pins per
// row; two-row headers are numbered odd on the left, even on the right.
func drawConnector(rec component.Record) (*Drawing, error) {
	n, err := intAttr(rec, AttrPinCount, 1)
	if err != nil {
		return nil, err
	}
	rows, err := rowsAttr(rec, 1)
	if err != nil {
		return nil, err
	}

	var left, right []string
	if rows == 2 {
		left, right = numberOddEven(n)
	} else {
		left, right = numberSequential(n)
	}

	pins := columns(left, right, n, symlib.PinPassive)
	if err := applyPinMap(rec, pins); err != nil {
		return nil, err
	}

	hw := pitch
	named := nameWidth(pins)
	if named > 0 {
		hw = math.Max(pitch, snapUp(named))
	}
	placeColumns(pins, hw)

	height := math.Max(3*pitch, float64(n)*pitch+pitch)
	tx := hw/pitch + 1
	if rows == 2 {
		tx = -hw / pitch
	}

	return &Drawing{
		Graphics:     []symlib.Graphic{rectangle(-hw, height/2, hw, -height/2, sexp.Fill{Type: "background"})},
		Pins:         pins,
		TextX:        tx,
		TextY:        1 + float64(n)/2,
		HidePinNames: named == 0,
	}, nil
}

// drawDIPSwitch draws one switch per position. Two-row parts are numbered
// counter-clockwise: down the left side, back up the right.
func drawDIPSwitch(rec component.Record) (*Drawing, error) {
	count, err := intAttr(rec, AttrPinCount, 1)
	if err != nil {
		return nil, err
	}
	rows, err := rowsAttr(rec, 2)
	if err != nil {
		return nil, err
	}

	var left, right []string
	if rows == 2 {
		left, right = numberDIP(count)
	} else {
		left, right = numberSequential(count)
	}

	pins := columns(left, right, count, symlib.PinPassive)
	placeColumns(pins, pitch)

	outline := sexp.Fill{Type: "outline"}
	graphics := make([]symlib.Graphic, 0, 4*count)
	for i := 0; i < count; i++ {
		y := columnY(i, count, pitch)
		graphics = append(graphics,
			polyline(0, noFill(), -2.54, y, -1.27, y, 1.27, y+1.27),
			circle(0, outline, xy(-1.27, y), contactSize),
			circle(0, outline, xy(1.27, y), contactSize),
			polyline(0, noFill(), 2.54, y, 1.27, y),
		)
	}

	extra := float64(count) / 2
	if rows == 2 {
		extra = float64(count)
	}

	return &Drawing{
		Graphics:     graphics,
		Pins:         pins,
		TextY:        0.5 + extra,
		HidePinNames: true,
	}, nil
}

// drawTactileSwitch draws a push button. With two rows each pin pair shares
// one side of the contact; the upper pair points down, the lower pair up.
func drawTactileSwitch(rec component.Record) (*Drawing, error) {
	count, err := intAttr(rec, AttrPinCount, 2)
	if err != nil {
		return nil, err
	}
	rows, err := rowsAttr(rec, 2)
	if err != nil {
		return nil, err
	}

	const spacing = 4 * pitch
	var pins []symlib.Pin
	if rows == 2 {
		angle := 270
		for k := 0; k < count; k++ {
			y := columnY(k, count, spacing)
			pins = append(pins,
				pin(strconv.Itoa(2*k+1), "", symlib.PinPassive, -sexp.HalfPitch, y, angle, pinLength),
				pin(strconv.Itoa(2*k+2), "", symlib.PinPassive, sexp.HalfPitch, y, angle, pinLength),
			)
			if angle == 270 {
				angle = 90
			} else {
				angle = 270
			}
		}
	} else {
		for k := 0; k < count; k++ {
			pins = append(pins, pin(strconv.Itoa(k+1), "", symlib.PinPassive, -2*pitch, columnY(k, count, spacing), 0, pinLength))
		}
	}

	outline := sexp.Fill{Type: "outline"}
	graphics := []symlib.Graphic{
		circle(0, outline, xy(0, 1.27), contactSize),
		circle(0, outline, xy(0, -1.27), contactSize),
		polyline(0, noFill(), 1.27, 2.54, -1.27, 2.54, 0, 2.54, 0, 1.27, 1.27, -1.27),
		polyline(0, noFill(), 1.27, -2.54, -1.27, -2.54, 0, -2.54, 0, -1.27),
	}

	extra := float64(count) / 2
	if rows == 2 {
		extra = float64(count) / float64(rows)
	}

	return &Drawing{
		Graphics:     graphics,
		Pins:         pins,
		TextX:        2,
		TextY:        1 + extra,
		HidePinNames: true,
	}, nil
}

// drawIC draws a dual-row package body. Pins run counter-clockwise from pin
// 1 at the top left; names, types and alternates come from the Pin Map.
func drawIC(rec component.Record) (*Drawing, error) {
	n, err := intAttr(rec, AttrPinCount, 0)
	if err != nil {
		return nil, err
	}
	if n%2 != 0 {
		return nil, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: AttrPinCount, Value: rec.Value(AttrPinCount), Reason: "must be even"}
	}

	half := n / 2
	left, right := numberDIP(half)
	pins := columns(left, right, half, symlib.PinUnspecified)
	if err := applyPinMap(rec, pins); err != nil {
		return nil, err
	}

	hw := math.Max(2*pitch, snapUp(nameWidth(pins)))
	placeColumns(pins, hw)

	top := columnY(0, half, pitch) + pitch

	return &Drawing{
		Graphics: []symlib.Graphic{rectangle(-hw, top, hw, -top, sexp.Fill{Type: "background"})},
		Pins:     pins,
		TextX:    -hw / pitch,
		TextY:    float64(half)/2 + 1.5,
	}, nil
}

// drawSlideSwitch draws a single-pole changeover: common on pin 2, throws
// on pins 1 and 3
func drawSlideSwitch(component.Record) (*Drawing, error) {
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(thinStroke, noFill(), -2.54, 0, 0, 0, 2.032, 2.286),
			circle(thinStroke, noFill(), xy(2.286, 2.54), contactSize),
			circle(thinStroke, noFill(), xy(2.286, -2.54), contactSize),
		},
		Pins: []symlib.Pin{
			pin("1", "", symlib.PinPassive, 5.08, -2.54, 180, pinLength),
			pin("2", "", symlib.PinPassive, -5.08, 0, 0, pinLength),
			pin("3", "", symlib.PinPassive, 5.08, 2.54, 180, pinLength),
		},
		TextY:          2,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

// drawTactileSwitchLED draws a push button beside an indicator LED. The
// switch is pins 1-2, the LED anode and cathode pins 3-4.
func drawTactileSwitchLED(rec component.Record) (*Drawing, error) {
	outline := sexp.Fill{Type: "outline"}
	return &Drawing{
		Graphics: []symlib.Graphic{
			polyline(0, noFill(), -2.286, 1.27, -2.286, -1.27, -2.286, 0, -3.81, 0),
			polyline(0, noFill(), 0, 2.54, -2.54, 2.54, -1.27, 2.54, -1.27, 1.27),
			polyline(0, noFill(), 0, -2.54, -2.54, -2.54, -1.27, -2.54, -1.27, -1.27),
			circle(0, outline, xy(-1.27, 1.27), contactSize),
			circle(0, outline, xy(-1.27, -1.27), contactSize),
			polyline(thinStroke, ledFill(rec),
				2.54, -2.54, 2.54, -1.27, 3.81, -1.27, 2.54, -1.27, 3.81, 1.27, 2.54, 1.27,
				2.54, 2.54, 2.54, 1.27, 1.27, 1.27, 2.54, -1.27, 1.27, -1.27, 2.54, -1.27, 2.54, -2.54),
			polyline(thinStroke, noFill(), 4.445, -0.508, 5.969, -2.032, 5.969, -1.27, 5.969, -2.032, 5.207, -2.032),
			polyline(thinStroke, noFill(), 4.445, -1.778, 5.969, -3.302, 5.969, -2.54, 5.969, -3.302, 5.207, -3.302),
		},
		Pins: []symlib.Pin{
			pin("1", "", symlib.PinPassive, -1.27, 5.08, 270, pinLength),
			pin("2", "", symlib.PinPassive, -1.27, -5.08, 90, pinLength),
			pin("3", "A", symlib.PinPassive, 2.54, 5.08, 270, pinLength),
			pin("4", "K", symlib.PinPassive, 2.54, -5.08, 90, pinLength),
		},
		TextX:          3,
		TextY:          3,
		HidePinNames:   true,
		HidePinNumbers: true,
	}, nil
}

// drawTerminalBlock draws one screw per position, pins numbered down the
// left side
func drawTerminalBlock(rec component.Record) (*Drawing, error) {
	n, err := intAttr(rec, AttrPinCount, 2)
	if err != nil {
		return nil, err
	}

	left, _ := numberSequential(n)
	pins := columns(left, nil, n, symlib.PinPassive)
	if err := applyPinMap(rec, pins); err != nil {
		return nil, err
	}
	placeColumns(pins, pitch)

	height := math.Max(3*pitch, float64(n)*pitch+pitch)
	graphics := []symlib.Graphic{rectangle(-pitch, height/2, pitch, -height/2, sexp.Fill{Type: "background"})}
	for i := 0; i < n; i++ {
		y := columnY(i, n, pitch)
		graphics = append(graphics,
			circle(0, noFill(), xy(0, y), 0.762),
			polyline(0, noFill(), 0.508, y+0.508, -0.508, y-0.508),
		)
	}

	return &Drawing{
		Graphics:     graphics,
		Pins:         pins,
		TextX:        2,
		TextY:        1 + float64(n)/2,
		HidePinNames: true,
	}, nil
}

// Segments a-g of a seven-segment digit, clockwise from the top, then the
// middle bar
var segments = [][]float64{
	{-3.9624, 12.446, -1.8034, 14.351, 5.8166, 14.351, 7.4676, 12.446, 5.2832, 10.541, -2.3368, 10.541, -3.9624, 12.446},
	{6.2992, 0.508, 8.4582, 2.413, 9.5504, 10.033, 7.8994, 11.938, 5.7404, 10.033, 4.6482, 2.413, 6.2992, 0.508},
	{4.5466, -11.938, 6.7056, -10.033, 7.7978, -2.413, 6.1468, -0.508, 3.9878, -2.413, 2.8956, -10.033, 4.5466, -11.938},
	{-7.4676, -12.446, -5.2832, -10.541, 2.3368, -10.541, 3.9624, -12.446, 1.8034, -14.351, -5.8166, -14.351, -7.4676, -12.446},
	{-7.8994, -11.938, -5.7404, -10.033, -4.6482, -2.413, -6.2992, -0.508, -8.4582, -2.413, -9.5504, -10.033, -7.8994, -11.938},
	{-6.1468, 0.508, -3.9878, 2.413, -2.8956, 10.033, -4.5466, 11.938, -6.7056, 10.033, -7.7978, 2.413, -6.1468, 0.508},
	{-5.715, 0, -3.5306, 1.905, 4.0894, 1.905, 5.715, 0, 3.5306, -1.905, -4.0894, -1.905, -5.715, 0},
}

// drawSevenSegment draws a single digit with decimal point. Pins are split
// evenly between the sides, numbered down the left then down the right.
func drawSevenSegment(rec component.Record) (*Drawing, error) {
	n, err := intAttr(rec, AttrPinCount, 10)
	if err != nil {
		return nil, err
	}
	if n%2 != 0 {
		return nil, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: AttrPinCount, Value: rec.Value(AttrPinCount), Reason: "must be even"}
	}

	half := n / 2
	left := make([]string, half)
	right := make([]string, half)
	for i := 0; i < half; i++ {
		left[i] = strconv.Itoa(i + 1)
		right[i] = strconv.Itoa(half + i + 1)
	}
	pins := columns(left, right, half, symlib.PinUnspecified)
	if err := applyPinMap(rec, pins); err != nil {
		return nil, err
	}

	const hw = 5 * pitch
	placeColumns(pins, hw)

	height := math.Max(14*pitch, float64(half)*pitch+pitch)
	graphics := []symlib.Graphic{rectangle(-hw, height/2, hw, -height/2, noFill())}
	for _, s := range segments {
		graphics = append(graphics, polyline(0, noFill(), s...))
	}
	graphics = append(graphics, circle(0, noFill(), xy(8.128, -12.446), 1.651))

	return &Drawing{
		Graphics: graphics,
		Pins:     pins,
		TextX:    -hw / pitch,
		TextY:    height/(2*pitch) + 1,
	}, nil
}
