package symgen

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// PinMapLexer tokenises the Pin Map attribute, e.g.
//
//	1=~{CS}/input 2=DO/output[IO1] 4=GND/power_in
var PinMapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Eq", Pattern: `=`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Ident", Pattern: `[^\s=/,;\[\]]+`},
})

// PinMap is the parsed Pin Map attribute
type PinMap struct {
	Entries []*PinMapEntry `( @@ ( Comma | Semicolon )? )*`
}

// PinMapEntry assigns a name, an electrical type and alternate functions to
// one pin number. Name and type are optional: "3=/input" keeps the default
// name.
type PinMapEntry struct {
	Pos lexer.Position

	Number     string   `@Ident Eq`
	Name       string   `( @Ident )?`
	Type       string   `( Slash @Ident )?`
	Alternates []string `( LBracket @Ident ( Comma @Ident )* RBracket )?`
}

var pinMapParser = participle.MustBuild[PinMap](
	participle.Lexer(PinMapLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParsePinMap parses a Pin Map attribute value
func ParsePinMap(s string) (*PinMap, error) {
	pm, err := pinMapParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return pm, nil
}

// applyPinMap overrides names, types and alternates of generated pins from
// the record's Pin Map. Every entry must name a generated pin exactly once.
func applyPinMap(rec component.Record, pins []symlib.Pin) error {
	raw, ok := rec.Get(AttrPinMap)
	if !ok || raw == "" {
		return nil
	}

	invalid := func(reason string) error {
		return &InvalidAttributeError{Symbol: rec.SymbolName, Attribute: AttrPinMap, Value: raw, Reason: reason}
	}

	pm, err := ParsePinMap(raw)
	if err != nil {
		return invalid(err.Error())
	}

	index := make(map[string]int, len(pins))
	for i, p := range pins {
		index[p.Number.Number] = i
	}

	seen := make(map[string]bool, len(pm.Entries))
	for _, e := range pm.Entries {
		i, ok := index[e.Number]
		if !ok {
			return invalid(fmt.Sprintf("no pin %q", e.Number))
		}
		if seen[e.Number] {
			return invalid(fmt.Sprintf("pin %q mapped twice", e.Number))
		}
		seen[e.Number] = true

		if e.Type != "" && !symlib.IsGeneratedPinType(e.Type) {
			return invalid(fmt.Sprintf("pin %s: unsupported type %q", e.Number, e.Type))
		}

		p := &pins[i]
		if e.Name != "" {
			p.Name.Name = e.Name
		}
		if e.Type != "" {
			p.Type = e.Type
		}
		for _, alt := range e.Alternates {
			p.Alternate = append(p.Alternate, symlib.AltPin{Name: alt, Type: p.Type, Style: symlib.StyleLine})
		}
	}

	return nil
}
