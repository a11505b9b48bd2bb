package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// FindNode searches for a child list with the given key (first symbol)
// Example: FindNode(sexp, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if sym, ok := item.Head().(kicadsexp.Symbol); ok && string(sym) == key {
			return item, true
		}
	}

	return nil, false
}

// FindAllNodes finds all child nodes with the given key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp

	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if sym, ok := item.Head().(kicadsexp.Symbol); ok && string(sym) == key {
			results = append(results, item)
		}
	}

	return results
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((justify left bottom)) returns [left, bottom]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	allItems := SexpToSlice(s)
	if len(allItems) <= 1 {
		return []kicadsexp.Sexp{}
	}
	return allItems[1:]
}

// SexpToSlice converts an s-expression list to a Go slice
func SexpToSlice(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if s == nil || s.IsLeaf() {
		return nil
	}

	if list, ok := s.(*kicadsexp.List); ok {
		return list.Elements()
	}

	// Foreign Sexp implementations: walk Head/Tail
	var items []kicadsexp.Sexp
	for s != nil && !s.IsLeaf() && s.LeafCount() > 0 {
		items = append(items, s.Head())
		if s.LeafCount() <= 1 {
			break
		}
		s = s.Tail()
	}
	return items
}

// Typed value extraction helpers

// GetString extracts an atom at the given index in a list, quoted or not.
// Index 0 is the key, 1 is first value, etc.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s == nil || s.IsLeaf() {
		return "", fmt.Errorf("expected list, got leaf")
	}

	items := SexpToSlice(s)

	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	switch v := items[index].(type) {
	case kicadsexp.Symbol:
		return string(v), nil
	case kicadsexp.String:
		return string(v), nil
	}

	return "", fmt.Errorf("expected atom at index %d, got %T", index, items[index])
}

// GetQuotedString extracts a quoted string at the given index. A bare atom is
// rejected so a missing value cannot silently pick up the next keyword.
func GetQuotedString(s kicadsexp.Sexp, index int) (string, error) {
	items := SexpToSlice(s)

	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	str, ok := items[index].(kicadsexp.String)
	if !ok {
		return "", fmt.Errorf("expected quoted string at index %d, got %T", index, items[index])
	}

	return string(str), nil
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// GetYesNo reads a (key yes|no) flag. Missing nodes yield def.
func GetYesNo(s kicadsexp.Sexp, key string, def bool) bool {
	node, ok := FindNode(s, key)
	if !ok {
		return def
	}
	v, err := GetString(node, 1)
	if err != nil {
		// bare (key) form means yes
		return true
	}
	return v == "yes"
}

// HasSymbol checks if a list contains a specific bare atom
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range SexpToSlice(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}

	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("expected symbol, got nil")
	}
	if s.IsLeaf() {
		if sym, ok := s.(kicadsexp.Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}

	head := s.Head()
	if sym, ok := head.(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at head of list")
}

// GetPos returns the source position of a parsed list, or the zero Pos.
func GetPos(s kicadsexp.Sexp) kicadsexp.Pos {
	if list, ok := s.(*kicadsexp.List); ok {
		return list.Pos()
	}
	return kicadsexp.Pos{}
}

// Domain-specific extraction helpers

// GetPosition extracts a PositionAngle from an (at X Y [angle]) node.
// Symbol libraries store millimetres and whole degrees.
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	if s == nil || s.IsLeaf() {
		return PositionAngle{}, fmt.Errorf("expected (at X Y [angle]) list")
	}

	key, err := GetString(s, 0)
	if err != nil {
		return PositionAngle{}, err
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	pos, err := GetPositionXY(s)
	if err != nil {
		return PositionAngle{}, err
	}

	result := PositionAngle{Position: pos}

	// Angle is optional
	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = Angle(angle)
	}

	return result, nil
}

// GetPositionXY extracts just X,Y coordinates (no angle)
// Used for (start X Y), (end X Y), (center X Y), (xy X Y), etc.
func GetPositionXY(s kicadsexp.Sexp) (Position, error) {
	if s == nil || s.IsLeaf() {
		return Position{}, fmt.Errorf("expected position list")
	}

	x, err := GetFloat(s, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}

	y, err := GetFloat(s, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}

	return Position{X: x, Y: y}, nil
}

// GetPoints extracts the (xy X Y) entries of a (pts ...) node
func GetPoints(s kicadsexp.Sexp) ([]Position, error) {
	var points []Position
	for _, xy := range FindAllNodes(s, "xy") {
		p, err := GetPositionXY(xy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse point: %w", err)
		}
		points = append(points, p)
	}
	return points, nil
}

// GetStroke extracts stroke properties from (stroke ...) node
// Format: (stroke (width W) (type default|solid|dash|dot) [(color R G B A)])
func GetStroke(s kicadsexp.Sexp) (Stroke, error) {
	stroke := Stroke{Type: "default"}

	if s == nil || s.IsLeaf() {
		return stroke, fmt.Errorf("expected (stroke ...) list")
	}

	if widthNode, ok := FindNode(s, "width"); ok {
		if width, err := GetFloat(widthNode, 1); err == nil {
			stroke.Width = width
		}
	}

	if typeNode, ok := FindNode(s, "type"); ok {
		if strokeType, err := GetString(typeNode, 1); err == nil {
			stroke.Type = strokeType
		}
	}

	if colorNode, ok := FindNode(s, "color"); ok {
		if color, err := GetColor(colorNode); err == nil {
			stroke.Color = color
		}
	}

	return stroke, nil
}

// GetFill extracts fill properties from (fill ...) node
// Format: (fill (type none|outline|background|color) [(color R G B A)])
func GetFill(s kicadsexp.Sexp) (Fill, error) {
	fill := Fill{Type: "none"}

	if s == nil || s.IsLeaf() {
		return fill, fmt.Errorf("expected (fill ...) list")
	}

	if typeNode, ok := FindNode(s, "type"); ok {
		if fillType, err := GetString(typeNode, 1); err == nil {
			fill.Type = fillType
		}
	}

	if colorNode, ok := FindNode(s, "color"); ok {
		if color, err := GetColor(colorNode); err == nil {
			fill.Color = color
		}
	}

	return fill, nil
}

// GetColor extracts RGBA color from (color R G B [A]) node
// R, G, B are 0-255 in the file and A is already 0-1
func GetColor(s kicadsexp.Sexp) (Color, error) {
	color := Color{A: 1.0}

	if s == nil || s.IsLeaf() {
		return color, fmt.Errorf("expected (color ...) list")
	}

	r, err := GetFloat(s, 1)
	if err != nil {
		return color, fmt.Errorf("failed to parse R: %w", err)
	}

	g, err := GetFloat(s, 2)
	if err != nil {
		return color, fmt.Errorf("failed to parse G: %w", err)
	}

	b, err := GetFloat(s, 3)
	if err != nil {
		return color, fmt.Errorf("failed to parse B: %w", err)
	}

	color.R = r / 255.0
	color.G = g / 255.0
	color.B = b / 255.0

	if a, err := GetFloat(s, 4); err == nil {
		color.A = a
	}

	return color, nil
}

// GetEffects extracts text effects from an (effects ...) node.
// Both the KiCad 6/7 bare "hide" atom and the KiCad 8 (hide yes) form are
// recognised.
func GetEffects(s kicadsexp.Sexp) (Effects, error) {
	effects := Effects{}

	if s == nil || s.IsLeaf() {
		return effects, fmt.Errorf("expected (effects ...) list")
	}

	if fontNode, ok := FindNode(s, "font"); ok {
		if font, err := GetFont(fontNode); err == nil {
			effects.Font = font
		}
	}

	if justifyNode, ok := FindNode(s, "justify"); ok {
		if justify, err := GetJustify(justifyNode); err == nil {
			effects.Justify = justify
		}
	}

	effects.Hide = HasSymbol(s, "hide") || GetYesNo(s, "hide", false)

	return effects, nil
}

// GetFont extracts font properties from a (font ...) node
func GetFont(s kicadsexp.Sexp) (Font, error) {
	font := Font{}

	if s == nil || s.IsLeaf() {
		return font, fmt.Errorf("expected (font ...) list")
	}

	if sizeNode, ok := FindNode(s, "size"); ok {
		w, _ := GetFloat(sizeNode, 1)
		h, _ := GetFloat(sizeNode, 2)
		font.Size = Size{Width: w, Height: h}
	}

	if thicknessNode, ok := FindNode(s, "thickness"); ok {
		font.Thickness, _ = GetFloat(thicknessNode, 1)
	}

	font.Bold = HasSymbol(s, "bold") || GetYesNo(s, "bold", false)
	font.Italic = HasSymbol(s, "italic") || GetYesNo(s, "italic", false)

	if faceNode, ok := FindNode(s, "face"); ok {
		font.Face, _ = GetString(faceNode, 1)
	}

	return font, nil
}

// GetJustify extracts justification from a (justify ...) node
func GetJustify(s kicadsexp.Sexp) (Justify, error) {
	justify := Justify{}

	if s == nil || s.IsLeaf() {
		return justify, nil
	}

	for _, item := range GetListItems(s) {
		sym, ok := item.(kicadsexp.Symbol)
		if !ok {
			continue
		}
		switch string(sym) {
		case "left", "right":
			justify.Horizontal = string(sym)
		case "top", "bottom":
			justify.Vertical = string(sym)
		case "mirror":
			justify.Mirror = true
		}
	}

	return justify, nil
}
