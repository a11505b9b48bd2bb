package symlib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

// Node builds the S-expression tree of a symbol block
func (s *Symbol) Node() *kicadsexp.List {
	node := kicadsexp.L("symbol", kicadsexp.String(s.Name))

	if s.Extends != "" {
		node.Append(kicadsexp.L("extends", kicadsexp.String(s.Extends)))
	}
	if s.Power {
		node.Append(kicadsexp.L("power"))
	}
	if s.PinNumbersHidden {
		node.Append(kicadsexp.L("pin_numbers", kicadsexp.L("hide", kicadsexp.Bool(true))))
	}
	if s.PinNames.Offset != 0 || s.PinNames.Hide {
		pn := kicadsexp.L("pin_names")
		if s.PinNames.Offset != 0 {
			pn.Append(kicadsexp.L("offset", kicadsexp.Float(s.PinNames.Offset)))
		}
		if s.PinNames.Hide {
			pn.Append(kicadsexp.L("hide", kicadsexp.Bool(true)))
		}
		node.Append(pn)
	}
	node.Append(
		kicadsexp.L("exclude_from_sim", kicadsexp.Bool(s.ExcludeFromSim)),
		kicadsexp.L("in_bom", kicadsexp.Bool(s.InBOM)),
		kicadsexp.L("on_board", kicadsexp.Bool(s.OnBoard)),
	)

	for _, p := range s.Properties {
		node.Append(p.Node())
	}
	for _, u := range s.Units {
		node.Append(u.Node())
	}

	return node
}

// Node builds (property "key" "value" (at ...) [(show_name)] (effects ...))
func (p Property) Node() *kicadsexp.List {
	node := kicadsexp.L("property",
		kicadsexp.String(p.Key),
		kicadsexp.String(p.Value),
		sexp.AtNode(p.Position),
	)
	if p.ShowName {
		node.Append(kicadsexp.L("show_name"))
	}
	node.Append(sexp.EffectsNode(p.Effects))
	return node
}

// Node builds the (symbol "NAME_u_s" ...) sub-symbol
func (u Unit) Node() *kicadsexp.List {
	node := kicadsexp.L("symbol", kicadsexp.String(u.Name))
	for _, g := range u.Graphics {
		node.Append(g.Node())
	}
	for _, p := range u.Pins {
		node.Append(p.Node())
	}
	return node
}

// Node builds a polyline, arc, circle or rectangle
func (g Graphic) Node() *kicadsexp.List {
	node := kicadsexp.L(string(g.Kind))
	switch g.Kind {
	case KindPolyline:
		node.Append(sexp.PointsNode(g.Points))
	case KindArc:
		node.Append(
			sexp.XYNode("start", g.Start),
			sexp.XYNode("mid", g.Mid),
			sexp.XYNode("end", g.End),
		)
	case KindCircle:
		node.Append(
			sexp.XYNode("center", g.Center),
			kicadsexp.L("radius", kicadsexp.Float(g.Radius)),
		)
	case KindRectangle:
		node.Append(
			sexp.XYNode("start", g.Start),
			sexp.XYNode("end", g.End),
		)
	}
	node.Append(sexp.StrokeNode(g.Stroke), sexp.FillNode(g.Fill))
	return node
}

// Node builds (pin TYPE STYLE (at ...) (length L) [(hide yes)] (name ...) (number ...) [(alternate ...)])
func (p Pin) Node() *kicadsexp.List {
	style := p.Style
	if style == "" {
		style = StyleLine
	}
	node := kicadsexp.L("pin",
		kicadsexp.Symbol(p.Type),
		kicadsexp.Symbol(style),
		sexp.AtNode(sexp.PositionAngle{Position: p.Position, Angle: p.Angle}),
		kicadsexp.L("length", kicadsexp.Float(p.Length)),
	)
	if p.Hide {
		node.Append(kicadsexp.L("hide", kicadsexp.Bool(true)))
	}
	node.Append(
		kicadsexp.L("name", kicadsexp.String(p.Name.Name), sexp.EffectsNode(p.Name.Effects)),
		kicadsexp.L("number", kicadsexp.String(p.Number.Number), sexp.EffectsNode(p.Number.Effects)),
	)
	for _, alt := range p.Alternate {
		altStyle := alt.Style
		if altStyle == "" {
			altStyle = StyleLine
		}
		node.Append(kicadsexp.L("alternate",
			kicadsexp.String(alt.Name),
			kicadsexp.Symbol(alt.Type),
			kicadsexp.Symbol(altStyle),
		))
	}
	return node
}

// EncodeSymbol writes a symbol block indented one level, as it appears
// inside a library, followed by a newline
func EncodeSymbol(w io.Writer, s *Symbol) error {
	return kicadsexp.NewEncoder(w).Encode(s.Node(), 1)
}

// MarshalSymbol returns the encoded block text of s
func MarshalSymbol(s *Symbol) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSymbol(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Assemble writes a complete library: the header, every block in the given
// order, and the closing parenthesis. Blocks are written verbatim; no
// deduplication or validation happens here.
func Assemble(w io.Writer, h Header, blocks [][]byte) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "(kicad_symbol_lib\n")
	fmt.Fprintf(bw, "\t(version %d)\n", h.Version)
	fmt.Fprintf(bw, "\t(generator %s)\n", kicadsexp.Quote(h.Generator))
	if h.GeneratorVersion != "" {
		fmt.Fprintf(bw, "\t(generator_version %s)\n", kicadsexp.Quote(h.GeneratorVersion))
	}

	for _, b := range blocks {
		bw.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			bw.WriteByte('\n')
		}
	}

	bw.WriteString(")\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write library: %w", err)
	}
	return nil
}

// WriteLibrary encodes and assembles every symbol of lib
func WriteLibrary(w io.Writer, lib *Library) error {
	blocks := make([][]byte, 0, len(lib.Symbols))
	for _, s := range lib.Symbols {
		b, err := MarshalSymbol(s)
		if err != nil {
			return fmt.Errorf("failed to encode symbol %q: %w", s.Name, err)
		}
		blocks = append(blocks, b)
	}
	return Assemble(w, lib.Header, blocks)
}
