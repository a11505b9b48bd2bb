package symgen

import (
	"math"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

const (
	pitch       = sexp.Pitch
	pinLength   = sexp.Pitch
	pinNameGap  = 0.254
	bodyStroke  = 0.254
	thinStroke  = 0.2032
	dotRadius   = 0.0254
	contactSize = 0.254
)

// Property placement, in grid units relative to (tx, ty):
//
//	Reference    (tx,  ty)    visible
//	Value        (tx, -ty)    visible
//	Footprint    (tx, -ty-1)  hidden, name shown
//	Datasheet    (tx, -ty-2)  hidden, name shown
//	Description  (tx, -ty-3)  hidden, name shown
//	others       (tx, -ty-4), (tx, -ty-5), ...  hidden, name shown
func layoutProperties(rec component.Record, tx, ty float64) []symlib.Property {
	x := pitch * tx
	fixed := map[string]struct {
		y    float64
		hide bool
	}{
		component.FieldReference:   {pitch * ty, false},
		component.FieldValue:       {-pitch * ty, false},
		component.FieldFootprint:   {-pitch * (ty + 1), true},
		component.FieldDatasheet:   {-pitch * (ty + 2), true},
		component.FieldDescription: {-pitch * (ty + 3), true},
	}

	canon := rec.Canonical()
	props := make([]symlib.Property, 0, len(canon.Attributes))
	extraY := -pitch * (ty + 4)

	for _, a := range canon.Attributes {
		effects := sexp.DefaultEffects()
		effects.Justify.Horizontal = "left"

		prop := symlib.Property{Key: a.Name, Value: a.Value}
		if f, ok := fixed[a.Name]; ok {
			prop.Position = at(x, f.y, 0)
			effects.Hide = f.hide
			prop.ShowName = f.hide
		} else {
			prop.Position = at(x, extraY, 0)
			prop.ShowName = true
			effects.Hide = true
			extraY -= pitch
		}
		prop.Effects = effects
		props = append(props, prop)
	}

	return props
}

func at(x, y float64, angle float64) sexp.PositionAngle {
	return sexp.PositionAngle{Position: sexp.Position{X: x, Y: y}, Angle: sexp.Angle(angle)}
}

func xy(x, y float64) sexp.Position {
	return sexp.Position{X: x, Y: y}
}

// points turns a flat x0, y0, x1, y1, ... list into positions
func points(coords ...float64) []sexp.Position {
	pts := make([]sexp.Position, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, xy(coords[i], coords[i+1]))
	}
	return pts
}

func stroke(width float64) sexp.Stroke {
	return sexp.Stroke{Width: width, Type: "default"}
}

func noFill() sexp.Fill {
	return sexp.Fill{Type: "none"}
}

func polyline(width float64, fill sexp.Fill, coords ...float64) symlib.Graphic {
	return symlib.Graphic{
		Kind:   symlib.KindPolyline,
		Points: points(coords...),
		Stroke: stroke(width),
		Fill:   fill,
	}
}

func arc(width float64, start, mid, end sexp.Position) symlib.Graphic {
	return symlib.Graphic{
		Kind:   symlib.KindArc,
		Start:  start,
		Mid:    mid,
		End:    end,
		Stroke: stroke(width),
		Fill:   noFill(),
	}
}

func circle(width float64, fill sexp.Fill, center sexp.Position, radius float64) symlib.Graphic {
	return symlib.Graphic{
		Kind:   symlib.KindCircle,
		Center: center,
		Radius: radius,
		Stroke: sexp.Stroke{Width: width, Type: "solid"},
		Fill:   fill,
	}
}

func rectangle(x0, y0, x1, y1 float64, fill sexp.Fill) symlib.Graphic {
	return symlib.Graphic{
		Kind:   symlib.KindRectangle,
		Start:  xy(x0, y0),
		End:    xy(x1, y1),
		Stroke: sexp.Stroke{Width: bodyStroke, Type: "default"},
		Fill:   fill,
	}
}

// pin builds a plain line pin with default 1.27 mm text
func pin(number, name, typ string, x, y float64, angle int, length float64) symlib.Pin {
	return symlib.Pin{
		Type:     typ,
		Style:    symlib.StyleLine,
		Position: xy(x, y),
		Angle:    sexp.Angle(angle),
		Length:   length,
		Name:     symlib.PinName{Name: name, Effects: sexp.DefaultEffects()},
		Number:   symlib.PinNum{Number: number, Effects: sexp.DefaultEffects()},
	}
}

// columnY returns the y of the i-th pin in a column of n pins centred on 0
func columnY(i, n int, spacing float64) float64 {
	return float64(n-1)*spacing/2 - float64(i)*spacing
}

// snapUp rounds v up to the next multiple of the grid pitch
func snapUp(v float64) float64 {
	return math.Ceil(v/pitch-1e-9) * pitch
}

// Pin numbering conventions. Each returns the pin numbers of the left and
// right columns, top to bottom.

// numberSequential numbers a single column 1..n
func numberSequential(n int) (left, right []string) {
	for i := 1; i <= n; i++ {
		left = append(left, strconv.Itoa(i))
	}
	return left, nil
}

// numberDIP numbers down the left side and back up the right side
func numberDIP(perSide int) (left, right []string) {
	total := perSide * 2
	for i := 0; i < perSide; i++ {
		left = append(left, strconv.Itoa(i+1))
		right = append(right, strconv.Itoa(total-i))
	}
	return left, right
}

// numberOddEven zig-zags across the two rows: 1 2 on the first line, 3 4 on
// the next, and so on
func numberOddEven(perSide int) (left, right []string) {
	for i := 0; i < perSide; i++ {
		left = append(left, strconv.Itoa(2*i+1))
		right = append(right, strconv.Itoa(2*i+2))
	}
	return left, right
}

// intAttr reads a positive integer attribute, falling back to def when the
// attribute is absent or empty
func intAttr(rec component.Record, name string, def int) (int, error) {
	v, ok := rec.Get(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: name, Value: v, Reason: "not an integer"}
	}
	if n < 1 {
		return 0, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: name, Value: v, Reason: "must be at least 1"}
	}
	return n, nil
}

// rowsAttr reads Number of Rows, which must be 1 or 2
func rowsAttr(rec component.Record, def int) (int, error) {
	rows, err := intAttr(rec, AttrRows, def)
	if err != nil {
		return 0, err
	}
	if rows > 2 {
		return 0, &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: AttrRows, Value: rec.Value(AttrRows), Reason: "must be 1 or 2"}
	}
	return rows, nil
}
