// Package preview rasterises a symbol's graphics and pins to an image.
// Text is not drawn.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Options controls the output image
type Options struct {
	Scale  float64 // Pixels per millimetre (default: 20)
	Margin float64 // Border around the symbol in mm (default: 2.54)
	Theme  Theme
	Unit   int // Unit to draw, body style 1 (default: 1)
}

// DefaultOptions returns a 20 px/mm light preview
func DefaultOptions() Options {
	return Options{Scale: 20, Margin: sexp.Pitch, Theme: ThemeLight, Unit: 1}
}

const (
	defaultStroke = 0.1524 // mm, used for width 0
	minStrokePx   = 1.5
	arcSegments   = 32
	pinEndRadius  = 0.25 // mm
)

// canvas maps symbol coordinates (mm, Y up) to pixels (Y down)
type canvas struct {
	scale   float64
	originX float64
	originY float64

	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

func (c *canvas) pt(p sexp.Position) fixed.Point26_6 {
	x := (p.X - c.originX) * c.scale
	y := (c.originY - p.Y) * c.scale
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// Render draws sym onto a new image sized to its bounds
func Render(sym *symlib.Symbol, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.Unit < 1 {
		opts.Unit = 1
	}
	sym = sym.View(opts.Unit, 1)
	colors := GetColors(opts.Theme)

	bb := sym.Bounds()
	if bb.IsEmpty() {
		bb = sexp.BoundingBox{Max: sexp.Position{X: sexp.Pitch, Y: sexp.Pitch}}
	}

	w := int(math.Ceil((bb.Width() + 2*opts.Margin) * opts.Scale))
	h := int(math.Ceil((bb.Height() + 2*opts.Margin) * opts.Scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colors.Background}, image.Point{}, draw.Src)

	c := &canvas{
		scale:   opts.Scale,
		originX: bb.Min.X - opts.Margin,
		originY: bb.Max.Y + opts.Margin,
	}
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	c.filler = rasterx.NewFiller(w, h, scanner)
	c.dasher = rasterx.NewDasher(w, h, scanner)

	// Fills first so outlines stay visible
	for _, g := range sym.Graphics() {
		if fill, ok := fillColor(g.Fill, colors); ok {
			c.fillShape(g, fill)
		}
	}
	for _, g := range sym.Graphics() {
		c.strokeShape(g, g.Stroke.Width, colors.Body)
	}
	for _, p := range sym.Pins() {
		if p.Hide {
			continue
		}
		c.strokePath([]sexp.Position{p.Position, p.End()}, false, defaultStroke, colors.Pin)
		c.fillPath(arcPoints(p.Position, pinEndRadius, 0, 2*math.Pi), colors.PinEnd)
	}

	return img
}

// Encode writes the preview of sym as PNG
func Encode(w io.Writer, sym *symlib.Symbol, opts Options) error {
	return png.Encode(w, Render(sym, opts))
}

func fillColor(f sexp.Fill, colors *Colors) (color.NRGBA, bool) {
	switch f.Type {
	case "outline":
		return colors.Body, true
	case "background":
		return colors.Fill, true
	case "color":
		return toNRGBA(f.Color), true
	}
	return color.NRGBA{}, false
}

func toNRGBA(c sexp.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// outline returns the closed or open point list tracing g
func outline(g symlib.Graphic) (pts []sexp.Position, closed bool) {
	switch g.Kind {
	case symlib.KindPolyline:
		return g.Points, false
	case symlib.KindRectangle:
		return []sexp.Position{
			g.Start,
			{X: g.End.X, Y: g.Start.Y},
			g.End,
			{X: g.Start.X, Y: g.End.Y},
		}, true
	case symlib.KindCircle:
		return arcPoints(g.Center, g.Radius, 0, 2*math.Pi), true
	case symlib.KindArc:
		center, radius, ok := circleThrough(g.Start, g.Mid, g.End)
		if !ok {
			return []sexp.Position{g.Start, g.End}, false
		}
		a0 := math.Atan2(g.Start.Y-center.Y, g.Start.X-center.X)
		am := math.Atan2(g.Mid.Y-center.Y, g.Mid.X-center.X)
		a1 := math.Atan2(g.End.Y-center.Y, g.End.X-center.X)
		sweep := normalize(a1 - a0)
		// Go the other way round when mid is not on the ccw path
		if normalize(am-a0) > sweep {
			sweep -= 2 * math.Pi
		}
		return arcPoints(center, radius, a0, sweep), false
	}
	return nil, false
}

func normalize(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func arcPoints(center sexp.Position, r, start, sweep float64) []sexp.Position {
	pts := make([]sexp.Position, 0, arcSegments+1)
	for i := 0; i <= arcSegments; i++ {
		a := start + sweep*float64(i)/arcSegments
		pts = append(pts, sexp.Position{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return pts
}

// circleThrough returns the circle through three points
func circleThrough(a, b, c sexp.Position) (sexp.Position, float64, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return sexp.Position{}, 0, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	center := sexp.Position{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
	return center, math.Hypot(a.X-center.X, a.Y-center.Y), true
}

func (c *canvas) fillShape(g symlib.Graphic, col color.NRGBA) {
	pts, _ := outline(g)
	c.fillPath(pts, col)
}

func (c *canvas) fillPath(pts []sexp.Position, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	c.filler.Clear()
	c.filler.Start(c.pt(pts[0]))
	for _, p := range pts[1:] {
		c.filler.Line(c.pt(p))
	}
	c.filler.Stop(true)
	c.filler.Scanner.SetColor(col)
	c.filler.Draw()
}

func (c *canvas) strokeShape(g symlib.Graphic, width float64, col color.NRGBA) {
	pts, closed := outline(g)
	c.strokePath(pts, closed, width, col)
}

func (c *canvas) strokePath(pts []sexp.Position, closed bool, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	if width <= 0 {
		width = defaultStroke
	}
	px := math.Max(width*c.scale, minStrokePx)

	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(px*64), 4*64, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	c.dasher.Start(c.pt(pts[0]))
	for _, p := range pts[1:] {
		c.dasher.Line(c.pt(p))
	}
	c.dasher.Stop(closed)
	c.dasher.Scanner.SetColor(col)
	c.dasher.Draw()
}
