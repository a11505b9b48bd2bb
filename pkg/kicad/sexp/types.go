// Package sexp provides shared S-expression helpers for KiCad symbol files.
// It holds the geometric and text-style types common to symbol properties,
// pins and graphics, plus typed accessors for reading and building nodes.
package sexp

// Library units: KiCad symbol files store coordinates in millimetres on a
// 100 mil grid.
const (
	Pitch     = 2.54  // 100 mil
	HalfPitch = 1.27  // 50 mil
	FontSize  = 1.27  // default text height and width
	MilToMM   = 0.0254
)

// Position represents a 2D coordinate in library units (mm, Y up)
type Position struct {
	X float64
	Y float64
}

// Angle represents rotation in degrees
type Angle float64

// PositionAngle combines position with rotation
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions
type Size struct {
	Width  float64
	Height float64
}

// Color represents RGBA color
type Color struct {
	R, G, B, A float64 // Color components (0.0-1.0)
}

// IsZero reports whether no colour was given.
func (c Color) IsZero() bool {
	return c == Color{}
}

// Stroke defines line/outline appearance
type Stroke struct {
	Width float64 // Line width in mm, 0 means the editor default
	Type  string  // default, solid, dash, dot, ...
	Color Color
}

// Fill defines area fill
type Fill struct {
	Type  string // none, outline, background, color
	Color Color
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position
	Max Position
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// Effects represents text effects (font, justification, visibility)
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// DefaultEffects returns the 1.27 mm font used for every generated field.
func DefaultEffects() Effects {
	return Effects{Font: Font{Size: Size{Width: FontSize, Height: FontSize}}}
}

// Font represents font properties
type Font struct {
	Face      string
	Size      Size
	Thickness float64
	Bold      bool
	Italic    bool
}

// Justify represents text justification. Empty fields mean centred.
type Justify struct {
	Horizontal string // left, right
	Vertical   string // top, bottom
	Mirror     bool
}

// IsZero reports whether the text is centred and unmirrored.
func (j Justify) IsZero() bool {
	return j == Justify{}
}
