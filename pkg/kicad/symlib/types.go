// Package symlib reads and writes KiCad symbol libraries (.kicad_sym).
//
// A library is a header followed by top-level symbol blocks. Split separates
// the blocks without interpreting them, Decode projects one block into a
// Symbol, and Assemble writes a header plus pre-encoded blocks back out.
package symlib

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version for symbol libraries (6.0 = 20211014)
const MinSupportedVersion = 20211014

// Header carries the library-level version information
type Header struct {
	Version          int    // File format version (e.g., 20231120)
	Generator        string // Generator name
	GeneratorVersion string // Generator version (e.g., "8.0")
}

// Library is a fully decoded symbol library
type Library struct {
	Header  Header
	Symbols []*Symbol
}

// Symbol represents one top-level symbol block
type Symbol struct {
	Name             string     // Symbol name (unique within a library)
	Extends          string     // Parent symbol for derived symbols
	Power            bool       // Power symbol flag
	PinNames         PinNames   // Pin name placement
	PinNumbersHidden bool       // Hide pin numbers
	ExcludeFromSim   bool       // Exclude from simulation
	InBOM            bool       // Include in BOM
	OnBoard          bool       // Place on board
	Properties       []Property // Fields, in file order
	Units            []Unit     // NAME_u_s sub-symbols holding graphics and pins
	Pos              kicadsexp.Pos
}

// PinNames controls where pin names are drawn
type PinNames struct {
	Offset float64
	Hide   bool
}

// Property represents a symbol field
type Property struct {
	Key      string
	Value    string
	Position sexp.PositionAngle
	Effects  sexp.Effects
	ShowName bool
	Pos      kicadsexp.Pos
}

// Unit represents a sub-symbol ("NAME_unit_style")
type Unit struct {
	Name     string
	Graphics []Graphic
	Pins     []Pin
}

// GraphicKind identifies a drawing primitive
type GraphicKind string

const (
	KindPolyline  GraphicKind = "polyline"
	KindArc       GraphicKind = "arc"
	KindCircle    GraphicKind = "circle"
	KindRectangle GraphicKind = "rectangle"
)

// Graphic represents a graphical element in a symbol unit
type Graphic struct {
	Kind   GraphicKind
	Points []sexp.Position // polyline
	Start  sexp.Position   // arc, rectangle
	Mid    sexp.Position   // arc
	End    sexp.Position   // arc, rectangle
	Center sexp.Position   // circle
	Radius float64         // circle
	Stroke sexp.Stroke
	Fill   sexp.Fill
}

// Electrical pin types
const (
	PinInput         = "input"
	PinOutput        = "output"
	PinBidirectional = "bidirectional"
	PinTriState      = "tri_state"
	PinPassive       = "passive"
	PinFree          = "free"
	PinUnspecified   = "unspecified"
	PinPowerIn       = "power_in"
	PinPowerOut      = "power_out"
	PinOpenCollector = "open_collector"
	PinOpenEmitter   = "open_emitter"
	PinNoConnect     = "no_connect"
)

// PinTypes lists every electrical type KiCad accepts
var PinTypes = []string{
	PinInput, PinOutput, PinBidirectional, PinTriState, PinPassive, PinFree,
	PinUnspecified, PinPowerIn, PinPowerOut, PinOpenCollector, PinOpenEmitter,
	PinNoConnect,
}

// GeneratedPinTypes lists the electrical types written into generated
// symbols. The other KiCad types are kept when read but never produced.
var GeneratedPinTypes = []string{
	PinInput, PinOutput, PinBidirectional, PinPassive, PinPowerIn, PinPowerOut,
	PinUnspecified,
}

// IsGeneratedPinType reports whether t may appear in a generated symbol
func IsGeneratedPinType(t string) bool {
	for _, pt := range GeneratedPinTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// IsPinType reports whether t is a known electrical type
func IsPinType(t string) bool {
	for _, pt := range PinTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// StyleLine is the plain pin graphic style
const StyleLine = "line"

// Pin represents a symbol pin
type Pin struct {
	Type      string        // Electrical type (input, output, passive, ...)
	Style     string        // Graphic style (line, inverted, clock, ...)
	Position  sexp.Position // Connection point
	Angle     sexp.Angle    // 0, 90, 180 or 270
	Length    float64
	Name      PinName
	Number    PinNum
	Hide      bool
	Alternate []AltPin
}

// PinName contains pin name information
type PinName struct {
	Name    string
	Effects sexp.Effects
}

// PinNum contains pin number information
type PinNum struct {
	Number  string
	Effects sexp.Effects
}

// AltPin represents an alternate pin function
type AltPin struct {
	Name  string
	Type  string
	Style string
}

// Property returns the field with the given key
func (s *Symbol) Property(key string) (*Property, bool) {
	for i := range s.Properties {
		if s.Properties[i].Key == key {
			return &s.Properties[i], true
		}
	}
	return nil, false
}

// Number returns the unit and body style encoded in a "NAME_unit_style"
// name, or 0, 0 when the name carries no such suffix
func (u Unit) Number() (unit, style int) {
	i := strings.LastIndexByte(u.Name, '_')
	if i <= 0 {
		return 0, 0
	}
	j := strings.LastIndexByte(u.Name[:i], '_')
	if j < 0 {
		return 0, 0
	}
	n, err1 := strconv.Atoi(u.Name[j+1 : i])
	st, err2 := strconv.Atoi(u.Name[i+1:])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return n, st
}

// View returns a shallow copy of the symbol holding only the sub-symbols
// drawn for one unit and body style
func (s *Symbol) View(unit, style int) *Symbol {
	v := *s
	v.Units = nil
	for _, u := range s.Units {
		n, st := u.Number()
		if (n == 0 || n == unit) && (st == 0 || st == style) {
			v.Units = append(v.Units, u)
		}
	}
	return &v
}

// Pins returns the pins of every unit in file order
func (s *Symbol) Pins() []Pin {
	var pins []Pin
	for _, u := range s.Units {
		pins = append(pins, u.Pins...)
	}
	return pins
}

// Graphics returns the drawings of every unit in file order
func (s *Symbol) Graphics() []Graphic {
	var graphics []Graphic
	for _, u := range s.Units {
		graphics = append(graphics, u.Graphics...)
	}
	return graphics
}

// Bounds returns the extent of the symbol's graphics and pins
func (s *Symbol) Bounds() sexp.BoundingBox {
	bb := sexp.NewBoundingBox()
	for _, g := range s.Graphics() {
		switch g.Kind {
		case KindPolyline:
			for _, p := range g.Points {
				bb.Expand(p)
			}
		case KindArc:
			bb.Expand(g.Start)
			bb.Expand(g.Mid)
			bb.Expand(g.End)
		case KindCircle:
			bb.Expand(sexp.Position{X: g.Center.X - g.Radius, Y: g.Center.Y - g.Radius})
			bb.Expand(sexp.Position{X: g.Center.X + g.Radius, Y: g.Center.Y + g.Radius})
		case KindRectangle:
			bb.Expand(g.Start)
			bb.Expand(g.End)
		}
	}
	for _, p := range s.Pins() {
		bb.Expand(p.Position)
		bb.Expand(p.End())
	}
	return bb
}

// End returns the inner end of the pin, where it meets the body
func (p Pin) End() sexp.Position {
	end := p.Position
	switch int(p.Angle) % 360 {
	case 0:
		end.X += p.Length
	case 90:
		end.Y += p.Length
	case 180:
		end.X -= p.Length
	case 270:
		end.Y -= p.Length
	}
	return end
}
