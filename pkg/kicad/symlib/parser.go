package symlib

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

// Block is one undecoded top-level symbol of a library
type Block struct {
	Name string // best-effort name, empty if the block has none
	Pos  kicadsexp.Pos
	Node kicadsexp.Sexp
}

// ParseFile reads and parses a KiCad symbol library file
func ParseFile(filename string) (*Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a library and decodes every symbol block. A block that fails
// to decode does not stop the others: the library of good symbols is
// returned together with a *DecodeError listing the failures. Syntax and
// header errors are fatal and return a nil library.
func Parse(r io.Reader) (*Library, error) {
	header, blocks, err := Split(r)
	if err != nil {
		return nil, err
	}

	symbols, err := DecodeAll(blocks)
	return &Library{Header: header, Symbols: symbols}, err
}

// DecodeAll decodes blocks in order, skipping the ones that fail. The error,
// if any, is a *DecodeError.
func DecodeAll(blocks []Block) ([]*Symbol, error) {
	symbols := make([]*Symbol, 0, len(blocks))
	var failed DecodeError
	for _, b := range blocks {
		sym, err := Decode(b)
		if err != nil {
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				schemaErr = &SchemaError{Symbol: b.Name, Pos: b.Pos, Msg: err.Error()}
			}
			failed.Failures = append(failed.Failures, schemaErr)
			continue
		}
		symbols = append(symbols, sym)
	}

	if len(failed.Failures) > 0 {
		return symbols, &failed
	}
	return symbols, nil
}

// Split parses the library text and returns its header and top-level symbol
// blocks in file order. Blocks are not validated beyond their shape.
// Anything after the kicad_symbol_lib expression is an error.
func Split(r io.Reader) (Header, []Block, error) {
	p := kicadsexp.NewParser(r)

	root, err := p.Next()
	if err == io.EOF {
		return Header{}, nil, fmt.Errorf("%w: empty file", ErrNotSymbolLibrary)
	}
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	rootName, err := sexp.GetNodeName(root)
	if err != nil || root.IsLeaf() {
		return Header{}, nil, fmt.Errorf("%w: root is not a list", ErrNotSymbolLibrary)
	}
	if rootName != "kicad_symbol_lib" {
		return Header{}, nil, fmt.Errorf("%w: expected 'kicad_symbol_lib', got '%s'", ErrNotSymbolLibrary, rootName)
	}

	switch _, err := p.Next(); {
	case err == nil:
		extra := &kicadsexp.SyntaxError{Pos: p.Pos(), Msg: "unexpected expression after kicad_symbol_lib"}
		return Header{}, nil, fmt.Errorf("%w: %w", ErrNotSymbolLibrary, extra)
	case err != io.EOF:
		return Header{}, nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	header, err := parseHeader(root)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	var blocks []Block
	for _, node := range sexp.FindAllNodes(root, "symbol") {
		name, _ := sexp.GetQuotedString(node, 1)
		blocks = append(blocks, Block{Name: name, Pos: sexp.GetPos(node), Node: node})
	}

	return header, blocks, nil
}

// parseHeader extracts version and generator information
func parseHeader(root kicadsexp.Sexp) (Header, error) {
	h := Header{}

	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return h, fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return h, fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return h, fmt.Errorf("%w: %d (minimum required: %d / KiCad 6.0)", ErrUnsupportedVersion, ver, MinSupportedVersion)
	}
	h.Version = ver

	if genNode, found := sexp.FindNode(root, "generator"); found {
		h.Generator, _ = sexp.GetString(genNode, 1)
	}

	if genVerNode, found := sexp.FindNode(root, "generator_version"); found {
		h.GeneratorVersion, _ = sexp.GetString(genVerNode, 1)
	}

	return h, nil
}

// Decode projects a symbol block into a Symbol. Every property must carry a
// quoted key and value; the block itself must be named.
func Decode(b Block) (*Symbol, error) {
	node := b.Node
	if node == nil || node.IsLeaf() {
		return nil, &SchemaError{Pos: b.Pos, Msg: "block is not a list"}
	}
	if head, _ := sexp.GetNodeName(node); head != "symbol" {
		return nil, &SchemaError{Pos: b.Pos, Msg: fmt.Sprintf("expected 'symbol' block, got '%s'", head)}
	}

	name, err := sexp.GetQuotedString(node, 1)
	if err != nil || name == "" {
		return nil, &SchemaError{Pos: b.Pos, Msg: "symbol has no name"}
	}

	sym := &Symbol{
		Name:    name,
		InBOM:   sexp.GetYesNo(node, "in_bom", true),
		OnBoard: sexp.GetYesNo(node, "on_board", true),
		Pos:     b.Pos,
	}
	sym.ExcludeFromSim = sexp.GetYesNo(node, "exclude_from_sim", false)

	if extNode, found := sexp.FindNode(node, "extends"); found {
		sym.Extends, _ = sexp.GetString(extNode, 1)
	}
	_, sym.Power = sexp.FindNode(node, "power")

	if pnNode, found := sexp.FindNode(node, "pin_numbers"); found {
		sym.PinNumbersHidden = sexp.HasSymbol(pnNode, "hide") || sexp.GetYesNo(pnNode, "hide", false)
	}

	if pnNode, found := sexp.FindNode(node, "pin_names"); found {
		if offNode, found := sexp.FindNode(pnNode, "offset"); found {
			sym.PinNames.Offset, _ = sexp.GetFloat(offNode, 1)
		}
		sym.PinNames.Hide = sexp.HasSymbol(pnNode, "hide") || sexp.GetYesNo(pnNode, "hide", false)
	}

	for _, pn := range sexp.FindAllNodes(node, "property") {
		prop, err := decodeProperty(pn)
		if err != nil {
			return nil, &SchemaError{Symbol: name, Pos: sexp.GetPos(pn), Msg: err.Error()}
		}
		sym.Properties = append(sym.Properties, prop)
	}

	// Nested symbols are units of this symbol, never separate records
	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		unit, err := decodeUnit(unitNode)
		if err != nil {
			return nil, &SchemaError{Symbol: name, Pos: sexp.GetPos(unitNode), Msg: err.Error()}
		}
		sym.Units = append(sym.Units, unit)
	}

	return sym, nil
}

// decodeProperty parses (property "key" "value" (at X Y angle) [(show_name)] (effects ...))
func decodeProperty(node kicadsexp.Sexp) (Property, error) {
	prop := Property{Pos: sexp.GetPos(node)}

	key, err := sexp.GetQuotedString(node, 1)
	if err != nil || key == "" {
		return prop, fmt.Errorf("property has no key")
	}
	prop.Key = key

	value, err := sexp.GetQuotedString(node, 2)
	if err != nil {
		return prop, fmt.Errorf("property %q has no value", key)
	}
	prop.Value = value

	if atNode, found := sexp.FindNode(node, "at"); found {
		if pos, err := sexp.GetPosition(atNode); err == nil {
			prop.Position = pos
		}
	}

	prop.ShowName = sexp.GetYesNo(node, "show_name", false)

	if effectsNode, found := sexp.FindNode(node, "effects"); found {
		prop.Effects, _ = sexp.GetEffects(effectsNode)
	}
	// KiCad 9 moved (hide yes) out of effects
	if sexp.GetYesNo(node, "hide", false) {
		prop.Effects.Hide = true
	}

	return prop, nil
}

// decodeUnit parses a nested symbol unit (contains graphics and pins)
func decodeUnit(node kicadsexp.Sexp) (Unit, error) {
	unit := Unit{}
	unit.Name, _ = sexp.GetQuotedString(node, 1)

	for _, item := range sexp.GetListItems(node) {
		key, err := sexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}
		switch key {
		case "polyline", "arc", "circle", "rectangle":
			g, err := decodeGraphic(GraphicKind(key), item)
			if err != nil {
				return unit, err
			}
			unit.Graphics = append(unit.Graphics, g)
		case "pin":
			p, err := decodePin(item)
			if err != nil {
				return unit, err
			}
			unit.Pins = append(unit.Pins, p)
		}
	}

	return unit, nil
}

// decodeGraphic parses one drawing primitive
func decodeGraphic(kind GraphicKind, node kicadsexp.Sexp) (Graphic, error) {
	g := Graphic{Kind: kind, Stroke: sexp.Stroke{Type: "default"}, Fill: sexp.Fill{Type: "none"}}

	var err error
	switch kind {
	case KindPolyline:
		if ptsNode, found := sexp.FindNode(node, "pts"); found {
			g.Points, err = sexp.GetPoints(ptsNode)
		}
	case KindArc:
		err = firstErr(
			readXY(node, "start", &g.Start),
			readXY(node, "mid", &g.Mid),
			readXY(node, "end", &g.End),
		)
	case KindCircle:
		err = readXY(node, "center", &g.Center)
		if radiusNode, found := sexp.FindNode(node, "radius"); found && err == nil {
			g.Radius, err = sexp.GetFloat(radiusNode, 1)
		}
	case KindRectangle:
		err = firstErr(
			readXY(node, "start", &g.Start),
			readXY(node, "end", &g.End),
		)
	}
	if err != nil {
		return g, fmt.Errorf("invalid %s: %w", kind, err)
	}

	if strokeNode, found := sexp.FindNode(node, "stroke"); found {
		g.Stroke, _ = sexp.GetStroke(strokeNode)
	}
	if fillNode, found := sexp.FindNode(node, "fill"); found {
		g.Fill, _ = sexp.GetFill(fillNode)
	}

	return g, nil
}

func readXY(node kicadsexp.Sexp, key string, dst *sexp.Position) error {
	n, found := sexp.FindNode(node, key)
	if !found {
		return nil
	}
	p, err := sexp.GetPositionXY(n)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = p
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// decodePin parses a pin definition. Unknown electrical types are kept as-is.
func decodePin(node kicadsexp.Sexp) (Pin, error) {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, err := sexp.GetPosition(atNode)
		if err != nil {
			return pin, fmt.Errorf("invalid pin position: %w", err)
		}
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}

	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}

	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name.Name, _ = sexp.GetString(nameNode, 1)
		if effectsNode, found := sexp.FindNode(nameNode, "effects"); found {
			pin.Name.Effects, _ = sexp.GetEffects(effectsNode)
		}
	}

	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number.Number, _ = sexp.GetString(numNode, 1)
		if effectsNode, found := sexp.FindNode(numNode, "effects"); found {
			pin.Number.Effects, _ = sexp.GetEffects(effectsNode)
		}
	}

	pin.Hide = sexp.HasSymbol(node, "hide") || sexp.GetYesNo(node, "hide", false)

	for _, altNode := range sexp.FindAllNodes(node, "alternate") {
		alt := AltPin{}
		alt.Name, _ = sexp.GetString(altNode, 1)
		alt.Type, _ = sexp.GetString(altNode, 2)
		alt.Style, _ = sexp.GetString(altNode, 3)
		pin.Alternate = append(pin.Alternate, alt)
	}

	return pin, nil
}
