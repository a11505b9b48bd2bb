package symgen

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/component"
	"github.com/OpenTraceLab/OpenTraceSymbols/pkg/kicad/symlib"
)

// Render builds the symbol for one record using the named category. The
// record's properties appear in canonical order: Reference, Value,
// Footprint, Datasheet and Description first, then the rest in input order.
func Render(rec component.Record, category string) (*symlib.Symbol, error) {
	cat, err := Lookup(category)
	if err != nil {
		return nil, err
	}
	return cat.Render(rec)
}

// Render builds the symbol for one record
func (c *Category) Render(rec component.Record) (*symlib.Symbol, error) {
	if rec.SymbolName == "" {
		return nil, &component.MissingAttributeError{Symbol: rec.SymbolName, Attribute: component.FieldSymbolName}
	}
	if err := rec.Require(c.Required...); err != nil {
		return nil, err
	}

	d, err := c.Draw(rec)
	if err != nil {
		return nil, err
	}

	sym := &symlib.Symbol{
		Name:             rec.SymbolName,
		PinNames:         symlib.PinNames{Offset: pinNameGap, Hide: d.HidePinNames},
		PinNumbersHidden: d.HidePinNumbers,
		InBOM:            true,
		OnBoard:          true,
		Properties:       layoutProperties(rec, d.TextX, d.TextY),
	}

	if len(d.Units) == 0 {
		sym.Units = []symlib.Unit{
			{Name: rec.SymbolName + "_0_1", Graphics: d.Graphics},
			{Name: rec.SymbolName + "_1_1", Pins: d.Pins},
		}
		return sym, nil
	}
	for _, u := range d.Units {
		sym.Units = append(sym.Units, symlib.Unit{
			Name:     fmt.Sprintf("%s_%d_%d", rec.SymbolName, u.Unit, u.Style),
			Graphics: u.Graphics,
			Pins:     u.Pins,
		})
	}
	return sym, nil
}

// RenderBlock renders one record straight to its encoded symbol block
func RenderBlock(rec component.Record, category string) ([]byte, error) {
	sym, err := Render(rec, category)
	if err != nil {
		return nil, err
	}
	return symlib.MarshalSymbol(sym)
}
