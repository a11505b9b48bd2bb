package sexp

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

// Node builders. They mirror the Get* helpers and always emit the KiCad 8
// spelling of each field.

// AtNode builds (at X Y ANGLE)
func AtNode(p PositionAngle) *kicadsexp.List {
	return kicadsexp.L("at", kicadsexp.Float(p.X), kicadsexp.Float(p.Y), kicadsexp.Float(float64(p.Angle)))
}

// XYNode builds (key X Y), e.g. (start 0 1) or (xy 2 3)
func XYNode(key string, p Position) *kicadsexp.List {
	return kicadsexp.L(key, kicadsexp.Float(p.X), kicadsexp.Float(p.Y))
}

// PointsNode builds (pts (xy ...) ...)
func PointsNode(points []Position) *kicadsexp.List {
	pts := kicadsexp.L("pts")
	for _, p := range points {
		pts.Append(XYNode("xy", p))
	}
	return pts
}

// ColorNode builds (color R G B A)
func ColorNode(c Color) *kicadsexp.List {
	return kicadsexp.L("color",
		kicadsexp.Int(int(math.Round(c.R*255))),
		kicadsexp.Int(int(math.Round(c.G*255))),
		kicadsexp.Int(int(math.Round(c.B*255))),
		kicadsexp.Float(c.A),
	)
}

// StrokeNode builds (stroke (width W) (type T) [(color ...)])
func StrokeNode(s Stroke) *kicadsexp.List {
	typ := s.Type
	if typ == "" {
		typ = "default"
	}
	node := kicadsexp.L("stroke",
		kicadsexp.L("width", kicadsexp.Float(s.Width)),
		kicadsexp.L("type", kicadsexp.Symbol(typ)),
	)
	if !s.Color.IsZero() {
		node.Append(ColorNode(s.Color))
	}
	return node
}

// FillNode builds (fill (type T) [(color ...)])
func FillNode(f Fill) *kicadsexp.List {
	typ := f.Type
	if typ == "" {
		typ = "none"
	}
	node := kicadsexp.L("fill", kicadsexp.L("type", kicadsexp.Symbol(typ)))
	if typ == "color" && !f.Color.IsZero() {
		node.Append(ColorNode(f.Color))
	}
	return node
}

// FontNode builds (font [(face F)] (size W H) [(thickness T)] [(bold yes)] [(italic yes)])
func FontNode(f Font) *kicadsexp.List {
	node := kicadsexp.L("font")
	if f.Face != "" {
		node.Append(kicadsexp.L("face", kicadsexp.String(f.Face)))
	}
	node.Append(kicadsexp.L("size", kicadsexp.Float(f.Size.Width), kicadsexp.Float(f.Size.Height)))
	if f.Thickness != 0 {
		node.Append(kicadsexp.L("thickness", kicadsexp.Float(f.Thickness)))
	}
	if f.Bold {
		node.Append(kicadsexp.L("bold", kicadsexp.Bool(true)))
	}
	if f.Italic {
		node.Append(kicadsexp.L("italic", kicadsexp.Bool(true)))
	}
	return node
}

// JustifyNode builds (justify ...) or returns nil for centred text
func JustifyNode(j Justify) *kicadsexp.List {
	if j.IsZero() {
		return nil
	}
	node := kicadsexp.L("justify")
	if j.Horizontal != "" {
		node.Append(kicadsexp.Symbol(j.Horizontal))
	}
	if j.Vertical != "" {
		node.Append(kicadsexp.Symbol(j.Vertical))
	}
	if j.Mirror {
		node.Append(kicadsexp.Symbol("mirror"))
	}
	return node
}

// EffectsNode builds (effects (font ...) [(justify ...)] [(hide yes)])
func EffectsNode(e Effects) *kicadsexp.List {
	node := kicadsexp.L("effects", FontNode(e.Font))
	if j := JustifyNode(e.Justify); j != nil {
		node.Append(j)
	}
	if e.Hide {
		node.Append(kicadsexp.L("hide", kicadsexp.Bool(true)))
	}
	return node
}
